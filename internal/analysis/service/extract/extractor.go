package extract

import (
	"errors"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// Extractor умеет достать текст из файла определённого формата.
type Extractor interface {
	CanExtract(fileName string) bool
	Extract(content []byte) (string, error)
}

type Registry struct {
	extractors []Extractor
}

func NewRegistry() *Registry {
	return &Registry{
		extractors: []Extractor{
			NewPlainTextExtractor(),
			NewDocxExtractor(),
		},
	}
}

// ForFile подбирает экстрактор по имени файла.
func (r *Registry) ForFile(fileName string) (Extractor, error) {
	for _, e := range r.extractors {
		if e.CanExtract(fileName) {
			return e, nil
		}
	}
	return nil, ErrUnsupportedFormat
}

func extension(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}
