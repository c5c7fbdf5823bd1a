package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Email string `json:"email" validate:"required,email"`
	Limit int    `json:"limit" validate:"gte=0"`
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeJSON(t *testing.T) {
	var target decodeTarget
	err := DecodeJSON(jsonRequest(`{"email": "a@example.com", "limit": 3}`), &target)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", target.Email)
	assert.Equal(t, 3, target.Limit)
}

func TestDecodeJSONMalformed(t *testing.T) {
	var target decodeTarget
	assert.Error(t, DecodeJSON(jsonRequest(`{"email": `), &target))
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var target decodeTarget
	err := DecodeJSON(jsonRequest(`{"email": "a@example.com", "emial": "typo"}`), &target)
	assert.Error(t, err)
}

func TestValidateRequestStructTags(t *testing.T) {
	assert.NoError(t, ValidateRequest(decodeTarget{Email: "a@example.com"}))
	assert.Error(t, ValidateRequest(decodeTarget{Email: "not-an-email"}))
	assert.Error(t, ValidateRequest(decodeTarget{Email: "a@example.com", Limit: -1}))
}

type selfValidating struct {
	err error
}

func (s selfValidating) Validate() error { return s.err }

func TestValidateRequestPrefersValidateMethod(t *testing.T) {
	sentinel := errors.New("custom validation failed")
	assert.ErrorIs(t, ValidateRequest(selfValidating{err: sentinel}), sentinel)
	assert.NoError(t, ValidateRequest(selfValidating{}))
}
