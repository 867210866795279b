package egress

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Handler exposes a Checker over HTTP so the function can sit behind API
// Gateway or a Function URL (through httpadapter.New and httpadapter.NewV2).
// Any request triggers one check.
type Handler struct {
	checker *Checker
	logger  zerolog.Logger
}

// NewHandler creates a new Handler
func NewHandler(checker *Checker, logger zerolog.Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := h.logger.WithContext(r.Context())

	result, err := h.checker.Check(ctx)
	if err != nil {
		h.logger.Error().Err(err).Str("url", h.checker.URL()).Msg("Egress check failed")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	contentType := result.Headers[contentTypeHeader]
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set(contentTypeHeader, contentType)
	w.WriteHeader(result.StatusCode)
	_, _ = w.Write([]byte(result.Body))
}
