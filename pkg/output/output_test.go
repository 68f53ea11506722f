package output

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-coagen/pkg/certificate"
	"github.com/goliatone/go-coagen/pkg/document"
	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/testsupport"
)

func renderDocument(t *testing.T, id string, values model.ValueMap) *document.Document {
	t.Helper()
	doc, err := certificate.New(testsupport.MustVariant(t, id)).Render(values)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return doc
}

func TestSerializer_ProducesPDF(t *testing.T) {
	data, err := NewSerializer().Serialize(renderDocument(t, "full", testsupport.SampleValues()))
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("missing PDF header, got %q", data[:min(len(data), 8)])
	}
	if !bytes.Contains(data, []byte("%%EOF")) {
		t.Fatalf("missing PDF trailer")
	}
}

func TestSerializer_ByteIdenticalForEqualInput(t *testing.T) {
	values := model.ValueMap{"Customer": "Acme", "Moisture (%)": "8.5"}
	serializer := NewSerializer()

	first, err := serializer.Serialize(renderDocument(t, "full", values))
	if err != nil {
		t.Fatalf("serialize first: %v", err)
	}
	second, err := serializer.Serialize(renderDocument(t, "full", values.Clone()))
	if err != nil {
		t.Fatalf("serialize second: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("serialization is not deterministic (%d vs %d bytes)", len(first), len(second))
	}
}

func TestSerializer_CreationDateIsConfigurable(t *testing.T) {
	doc := renderDocument(t, "compact", nil)
	defaults, err := NewSerializer(WithCompression(false)).Serialize(doc)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	dated, err := NewSerializer(
		WithCompression(false),
		WithCreationDate(time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)),
	).Serialize(doc)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if bytes.Equal(defaults, dated) {
		t.Fatalf("expected creation date to change the output")
	}
	if !bytes.Contains(dated, []byte("D:20240305")) {
		t.Fatalf("creation date not written to metadata")
	}
}

func TestSerializer_UncompressedStreamsCarryText(t *testing.T) {
	data, err := NewSerializer(WithCompression(false)).Serialize(renderDocument(t, "full", nil))
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	for _, fragment := range []string{"MICROBIOLOGICAL ANALYSIS", "less than 5000/gm"} {
		if !bytes.Contains(data, []byte(fragment)) {
			t.Fatalf("expected %q in content stream", fragment)
		}
	}
}

func TestSerializer_NilDocument(t *testing.T) {
	_, err := NewSerializer().Serialize(nil)
	if !errors.Is(err, ErrSerialize) {
		t.Fatalf("expected ErrSerialize, got %v", err)
	}
}

func TestDispatch_Artifact(t *testing.T) {
	artifact, err := NewSerializer().Dispatch(renderDocument(t, "full", nil))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if artifact.Filename != "COA_Food_Filled.pdf" {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}
	if artifact.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", artifact.ContentType)
	}
	if len(artifact.Data) == 0 {
		t.Fatalf("artifact is empty")
	}
}

func TestEncodeText(t *testing.T) {
	cases := map[string]string{
		"Batch 42":  "Batch 42",
		"Crème":     "Cr\xe8me",
		"≥ 5 cps":   "? 5 cps",
		"Mould €10": "Mould \x8010",
	}
	for in, want := range cases {
		if got := encodeText(in); got != want {
			t.Fatalf("encodeText(%q) = %q, want %q", in, got, want)
		}
	}
}
