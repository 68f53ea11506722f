package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/render"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	inputConfigs []InputConfig
	infoMessages []string
	inputErr     error
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func testForm() model.FormModel {
	return model.FormModel{
		ID:    "full",
		Title: "Certificate of Analysis Generator",
		Fields: []model.Field{
			{Name: "Customer", Label: "Customer", Placeholder: "Enter Customer..."},
			{Name: "Moisture (%)", Label: "Moisture (%)", Placeholder: "Enter Moisture (%)..."},
		},
	}
}

func TestCollector_PromptsEachFieldInOrder(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Acme", "8.5"}}
	collector := NewCollector(WithPromptDriver(driver))

	values, err := collector.Collect(context.Background(), testForm(), model.ValueMap{"Customer": "Prefilled"})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if values["Customer"] != "Acme" || values["Moisture (%)"] != "8.5" {
		t.Fatalf("unexpected values: %v", values)
	}
	if len(driver.inputConfigs) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(driver.inputConfigs))
	}
	first := driver.inputConfigs[0]
	if first.Message != "Customer" || first.Help != "Enter Customer..." || first.Default != "Prefilled" {
		t.Fatalf("unexpected prompt config: %+v", first)
	}
	if len(driver.infoMessages) != 1 || driver.infoMessages[0] != "Certificate of Analysis Generator" {
		t.Fatalf("expected title info message, got %v", driver.infoMessages)
	}
}

func TestCollector_AbortPropagates(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}
	_, err := NewCollector(WithPromptDriver(driver)).Collect(context.Background(), testForm(), nil)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestCollector_ConfirmDeclined(t *testing.T) {
	driver := &stubDriver{inputs: []string{"a", "b"}, confirm: []bool{false}}
	_, err := NewCollector(WithPromptDriver(driver), WithConfirm(true)).Collect(context.Background(), testForm(), nil)
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
}

func TestCollector_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	driver := &stubDriver{inputs: []string{"a", "b"}}
	if _, err := NewCollector(WithPromptDriver(driver)).Collect(ctx, testForm(), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if driver.inputPos != 0 {
		t.Fatalf("no prompt should run on a cancelled context")
	}
}

func TestCollector_SelectVariant(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1}}
	collector := NewCollector(WithPromptDriver(driver))

	got, err := collector.SelectVariant(context.Background(), []string{"compact", "full"}, "compact")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got != "full" {
		t.Fatalf("expected full, got %s", got)
	}

	single, err := collector.SelectVariant(context.Background(), []string{"full"}, "")
	if err != nil || single != "full" {
		t.Fatalf("single variant should not prompt: %s %v", single, err)
	}
	if driver.selectPos != 1 {
		t.Fatalf("expected one select prompt, got %d", driver.selectPos)
	}
}

func TestRenderer_Formats(t *testing.T) {
	cases := []struct {
		format      OutputFormat
		contentType string
		check       func(t *testing.T, out []byte)
	}{
		{
			format:      OutputFormatJSON,
			contentType: "application/json",
			check: func(t *testing.T, out []byte) {
				var decoded map[string]string
				if err := json.Unmarshal(out, &decoded); err != nil {
					t.Fatalf("decode json: %v", err)
				}
				if decoded["Moisture (%)"] != "8.5" {
					t.Fatalf("unexpected json: %s", out)
				}
			},
		},
		{
			format:      OutputFormatYAML,
			contentType: "application/yaml",
			check: func(t *testing.T, out []byte) {
				var decoded map[string]string
				if err := yaml.Unmarshal(out, &decoded); err != nil {
					t.Fatalf("decode yaml: %v", err)
				}
				if decoded["Moisture (%)"] != "8.5" || decoded["Customer"] != "Acme" {
					t.Fatalf("unexpected yaml: %s", out)
				}
				if strings.Index(string(out), "Customer") > strings.Index(string(out), "Moisture") {
					t.Fatalf("yaml should keep form order: %s", out)
				}
			},
		},
		{
			format:      OutputFormatPrettyText,
			contentType: "text/plain",
			check: func(t *testing.T, out []byte) {
				if string(out) != "Customer: Acme\nMoisture (%): 8.5\n" {
					t.Fatalf("unexpected text: %q", out)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(string(tc.format), func(t *testing.T) {
			driver := &stubDriver{inputs: []string{"Acme", "8.5"}}
			r, err := New(WithPromptDriver(driver), WithOutputFormat(tc.format))
			if err != nil {
				t.Fatalf("new renderer: %v", err)
			}
			if r.Name() != "tui" || r.ContentType() != tc.contentType {
				t.Fatalf("unexpected identity %s %s", r.Name(), r.ContentType())
			}
			out, err := r.Render(context.Background(), testForm(), render.RenderOptions{})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			tc.check(t, out)
		})
	}
}
