package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-coagen/pkg/collect"
	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/orchestrator"
	"github.com/goliatone/go-coagen/pkg/output"
	"github.com/goliatone/go-coagen/pkg/render"
	"github.com/goliatone/go-coagen/pkg/variant"
)

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	variantID := strings.TrimSpace(r.URL.Query().Get("variant"))
	s.renderForm(w, r, http.StatusOK, variantID, render.RenderOptions{})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	variantID, values, ok := s.parseForm(w, r)
	if !ok {
		return
	}

	result, err := s.orch.Generate(r.Context(), orchestrator.Request{
		Variant: variantID,
		Values:  values,
	})
	if err != nil {
		if errors.Is(err, variant.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Printf("generate %s: %v", RequestID(r.Context()), err)
		s.renderForm(w, r, http.StatusInternalServerError, variantID, render.RenderOptions{
			Values: s.echo(r, variantID, values),
			Status: &render.Status{
				Kind:    render.StatusError,
				Message: fmt.Sprintf("Error generating PDF: %v", err),
			},
		})
		return
	}

	s.renderForm(w, r, http.StatusOK, result.Variant.ID, render.RenderOptions{
		Values: result.Values,
		Status: &render.Status{Kind: render.StatusSuccess, Message: SuccessMessage},
		Download: &render.Download{
			Label:       DownloadLabel,
			Filename:    result.Artifact.Filename,
			ContentType: result.Artifact.ContentType,
			URI:         DataURI(result.Artifact),
		},
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	variantID, values, ok := s.parseForm(w, r)
	if !ok {
		return
	}

	result, err := s.orch.Generate(r.Context(), orchestrator.Request{
		Variant: variantID,
		Values:  values,
	})
	if err != nil {
		s.generateFailed(w, r, err, false)
		return
	}
	s.writeArtifact(w, result.Artifact)
}

type apiRequest struct {
	Variant string          `json:"variant"`
	Values  json.RawMessage `json:"values"`
}

type apiError struct {
	Error string `json:"error"`
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	s.limitBody(w, r)
	defer drain(r.Body)

	var payload apiRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid payload: %v", err))
		return
	}

	var values collect.Source
	if len(payload.Values) > 0 {
		parsed, err := collect.Parse(payload.Values)
		if err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		values = parsed
	}

	result, err := s.orch.Generate(r.Context(), orchestrator.Request{
		Variant: strings.TrimSpace(payload.Variant),
		Values:  values,
	})
	if err != nil {
		s.generateFailed(w, r, err, true)
		return
	}
	s.writeArtifact(w, result.Artifact)
}

// parseForm reads a urlencoded or multipart submission. The variant comes
// from the hidden form input, falling back to the query string.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) (string, collect.Source, bool) {
	s.limitBody(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, fmt.Sprintf("invalid form payload: %v", err), http.StatusBadRequest)
		return "", nil, false
	}
	variantID := strings.TrimSpace(r.PostForm.Get("variant"))
	if variantID == "" {
		variantID = strings.TrimSpace(r.URL.Query().Get("variant"))
	}
	return variantID, collect.FormValues(r.PostForm), true
}

// echo rebuilds the submitted values so a failed generation keeps the form
// filled in.
func (s *Server) echo(r *http.Request, variantID string, values collect.Source) model.ValueMap {
	form, err := s.orch.Form(r.Context(), variantID)
	if err != nil {
		return nil
	}
	return collect.Collect(form, values)
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, variantID string, opts render.RenderOptions) {
	opts.Action = "/generate"
	opts.DownloadAction = "/download"

	themeVariant := s.themeVariant
	if requested := strings.TrimSpace(r.URL.Query().Get("theme")); requested != "" {
		themeVariant = requested
	}

	body, err := s.orch.RenderForm(r.Context(), orchestrator.FormRequest{
		Variant:       variantID,
		Renderer:      s.renderer,
		ThemeName:     s.themeName,
		ThemeVariant:  themeVariant,
		RenderOptions: opts,
	})
	if err != nil {
		if errors.Is(err, variant.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Printf("render form %s: %v", RequestID(r.Context()), err)
		http.Error(w, fmt.Sprintf("render form: %v", err), http.StatusInternalServerError)
		return
	}
	s.write(w, status, "text/html; charset=utf-8", body)
}

func (s *Server) generateFailed(w http.ResponseWriter, r *http.Request, err error, asJSON bool) {
	status := http.StatusInternalServerError
	if errors.Is(err, variant.ErrNotFound) {
		status = http.StatusNotFound
	} else {
		s.logger.Printf("generate %s: %v", RequestID(r.Context()), err)
	}
	if asJSON {
		s.writeJSONError(w, status, err.Error())
		return
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) writeArtifact(w http.ResponseWriter, artifact output.Artifact) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(artifact.Data)))
	s.write(w, http.StatusOK, artifact.ContentType, artifact.Data)
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	body, err := json.Marshal(apiError{Error: message})
	if err != nil {
		http.Error(w, message, status)
		return
	}
	s.write(w, status, "application/json", body)
}

// DataURI embeds an artifact in a data: URI for the download link.
func DataURI(artifact output.Artifact) string {
	return "data:" + artifact.ContentType + ";base64," + base64.StdEncoding.EncodeToString(artifact.Data)
}
