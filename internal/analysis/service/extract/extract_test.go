package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRegistry_ForFile(t *testing.T) {
	registry := NewRegistry()

	cases := []struct {
		fileName  string
		supported bool
	}{
		{"essay.txt", true},
		{"essay.TXT", true},
		{"report.docx", true},
		{"noextension", true},
		{"image.png", false},
		{"archive.zip", false},
	}

	for _, tc := range cases {
		_, err := registry.ForFile(tc.fileName)
		if tc.supported && err != nil {
			t.Errorf("%s: expected extractor, got %v", tc.fileName, err)
		}
		if !tc.supported && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%s: expected ErrUnsupportedFormat, got %v", tc.fileName, err)
		}
	}
}

func TestPlainTextExtractor(t *testing.T) {
	e := NewPlainTextExtractor()

	text, err := e.Extract([]byte("Quick sort is an efficient algorithm."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Quick sort is an efficient algorithm." {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestPlainTextExtractor_StripsBOM(t *testing.T) {
	e := NewPlainTextExtractor()

	text, err := e.Extract([]byte("\xef\xbb\xbfhello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello" {
		t.Errorf("expected BOM to be stripped, got %q", text)
	}
}

func TestDocxExtractor(t *testing.T) {
	document := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Quick sort is an </w:t></w:r><w:r><w:t>efficient algorithm.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	e := NewDocxExtractor()

	text, err := e.Extract(buildDocx(t, document))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "Quick sort is an efficient algorithm.") {
		t.Errorf("runs within a paragraph must concatenate, got %q", text)
	}
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d: %q", len(lines), text)
	}
	if lines[1] != "Second paragraph." {
		t.Errorf("unexpected second paragraph: %q", lines[1])
	}
}

func TestDocxExtractor_MissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/other.xml")
	if err != nil {
		t.Fatal(err)
	}
	f.Write([]byte("<x/>"))
	w.Close()

	e := NewDocxExtractor()

	text, err := e.Extract(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
}

func TestDocxExtractor_NotAZip(t *testing.T) {
	e := NewDocxExtractor()

	if _, err := e.Extract([]byte("plain bytes, not a container")); err == nil {
		t.Error("expected an error for a broken container")
	}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	f, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}
