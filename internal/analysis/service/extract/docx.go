package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

type docxExtractor struct{}

func NewDocxExtractor() Extractor {
	return &docxExtractor{}
}

func (e *docxExtractor) CanExtract(fileName string) bool {
	return extension(fileName) == ".docx"
}

// Extract читает word/document.xml из zip-контейнера и собирает текст
// всех текстовых узлов. Абзацы разделяются переводом строки.
func (e *docxExtractor) Extract(content []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}

	var document *zip.File
	for _, f := range reader.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", nil
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("open document part: %w", err)
	}
	defer rc.Close()

	return readDocumentText(rc)
}

func readDocumentText(r io.Reader) (string, error) {
	var b strings.Builder
	decoder := xml.NewDecoder(r)

	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
