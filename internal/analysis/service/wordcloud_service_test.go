package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/config"
)

func TestTopWords_FrequencyOrder(t *testing.T) {
	words := topWords("alpha beta alpha gamma alpha beta", 50)

	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
	if words[0] != "alpha" || words[1] != "beta" || words[2] != "gamma" {
		t.Errorf("unexpected order: %v", words)
	}
}

func TestTopWords_SkipsShortWords(t *testing.T) {
	words := topWords("go is ok but golang is fine", 50)

	for _, w := range words {
		if len(w) <= 2 {
			t.Errorf("short word %q must be filtered out", w)
		}
	}
}

func TestTopWords_Limit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("word")
		b.WriteByte(byte('a' + i%26))
		b.WriteString("x ")
	}

	words := topWords(b.String(), 50)
	if len(words) > 50 {
		t.Errorf("expected at most 50 words, got %d", len(words))
	}
}

func TestTopWords_Deterministic(t *testing.T) {
	text := "one two three four five six seven eight"

	first := topWords(text, 50)
	second := topWords(text, 50)

	if strings.Join(first, " ") != strings.Join(second, " ") {
		t.Errorf("tie-break must be deterministic: %v vs %v", first, second)
	}
}

func TestWordCloudService_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Write([]byte("https://quickchart.io/wordcloud/abc.png"))
	}))
	defer server.Close()

	svc := NewWordCloudService(config.WordCloudConfig{URL: server.URL, Timeout: 0}, zerolog.Nop())

	url, err := svc.Generate(context.Background(), "quick sort algorithm quick sort")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://quickchart.io/wordcloud/abc.png" {
		t.Errorf("unexpected url: %q", url)
	}
}

func TestWordCloudService_GenerateFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewWordCloudService(config.WordCloudConfig{URL: server.URL}, zerolog.Nop())

	if _, err := svc.Generate(context.Background(), "some long enough text"); err == nil {
		t.Error("expected an error on a non-success status")
	}
}

func TestWordCloudService_EmptyText(t *testing.T) {
	svc := NewWordCloudService(config.WordCloudConfig{URL: "http://localhost:0"}, zerolog.Nop())

	if _, err := svc.Generate(context.Background(), "a an of"); err == nil {
		t.Error("expected an error when no words survive the filter")
	}
}
