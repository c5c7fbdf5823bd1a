package shared

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxRequestBodyBytes caps how much of a request body is read. No endpoint
// in this API accepts a payload anywhere near this size.
const maxRequestBodyBytes = 1 << 20

// Shared validator instance; validator.Validate caches struct metadata, so
// one instance serves all handlers.
var validate = validator.New()

// DecodeJSON decodes the request body into v. Unknown fields are rejected
// so client typos surface as 400s instead of silently dropped data.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// ValidateRequest validates a decoded request model. Types carrying their
// own Validate method use it; everything else is checked against its
// validator struct tags.
func ValidateRequest(v interface{}) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return validate.Struct(v)
}
