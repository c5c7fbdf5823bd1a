package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/api/shared"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withUserID attaches an authenticated user ID to the request the way the
// auth middleware does.
func withUserID(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(shared.WithUserID(r.Context(), userID))
}
