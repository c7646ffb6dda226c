package httpd

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/rs/zerolog"
)

// NewFileProxy прозрачно проксирует /api/v1/files/* в file-service:
// метод, путь, query, заголовки и тело передаются как есть, без
// ретраев и кеширования.
func NewFileProxy(fileServiceURL string, logger zerolog.Logger) (http.Handler, error) {
	target, err := url.Parse(fileServiceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file service url: %w", err)
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error().Err(err).
			Str("path", r.URL.Path).
			Msg("File proxy request failed")
		w.WriteHeader(http.StatusBadGateway)
	}

	return proxy, nil
}
