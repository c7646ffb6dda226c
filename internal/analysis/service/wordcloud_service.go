package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/config"
)

const wordCloudTopWords = 50

// WordCloudService строит облако слов через внешний сервис QuickChart.
type WordCloudService interface {
	Generate(ctx context.Context, text string) (string, error)
}

type wordCloudService struct {
	httpClient *http.Client
	url        string
	logger     zerolog.Logger
}

func NewWordCloudService(cfg config.WordCloudConfig, logger zerolog.Logger) WordCloudService {
	return &wordCloudService{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
		logger:     logger,
	}
}

type wordCloudRequest struct {
	Format          string `json:"format"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	BackgroundColor string `json:"backgroundColor"`
	Text            string `json:"text"`
}

func (s *wordCloudService) Generate(ctx context.Context, text string) (string, error) {
	words := topWords(text, wordCloudTopWords)
	if len(words) == 0 {
		return "", fmt.Errorf("no words to visualize")
	}

	payload, err := json.Marshal(wordCloudRequest{
		Format:          "png",
		Width:           800,
		Height:          600,
		BackgroundColor: "white",
		Text:            strings.Join(words, " "),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal word cloud request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call word cloud service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("word cloud service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read word cloud response: %w", err)
	}

	url := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if url == "" {
		return "", fmt.Errorf("word cloud service returned empty body")
	}

	return url, nil
}

// topWords отбирает самые частые слова длиннее двух символов.
// При равной частоте порядок лексикографический, чтобы картинка
// была воспроизводимой для одного и того же текста.
func topWords(text string, limit int) []string {
	counts := make(map[string]int)
	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(" \r\n\t.,;:!?", r)
	}) {
		if len(w) <= 2 {
			continue
		}
		counts[strings.ToLower(w)]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}

	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > limit {
		words = words[:limit]
	}
	return words
}
