package extract

import "strings"

type plainTextExtractor struct{}

func NewPlainTextExtractor() Extractor {
	return &plainTextExtractor{}
}

// Файлы без расширения тоже считаются обычным текстом.
func (e *plainTextExtractor) CanExtract(fileName string) bool {
	ext := extension(fileName)
	return ext == ".txt" || ext == ""
}

func (e *plainTextExtractor) Extract(content []byte) (string, error) {
	text := strings.TrimPrefix(string(content), "\uFEFF")
	return text, nil
}
