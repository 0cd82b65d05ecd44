package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/utafrali/audiophile/pkg/httputil"
	"github.com/utafrali/audiophile/pkg/validator"
)

const maxBodyBytes = 1 << 20

// decode reads and validates a JSON body. On failure it writes a 400 and
// returns false.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := validator.DecodeAndValidate(r, dst); err != nil {
		httputil.WriteValidationError(w, r, err)
		return false
	}
	return true
}

// writeError renders service errors. Validation failures keep their field
// detail.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		httputil.WriteValidationError(w, r, err)
		return
	}
	httputil.WriteError(w, r, err, logger)
}
