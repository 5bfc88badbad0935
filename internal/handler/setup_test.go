package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/learnroute-api/internal/validation"
)

const (
	menuID   = "0b1a8f0e-6a54-4c8e-9d0c-2f4b1e6d7a11"
	parentID = "7d3c2b1a-0f9e-4d8c-8b7a-6e5f4d3c2b1a"
	userID   = "3f2e1d0c-9b8a-4765-a432-10fedcba9876"
)

type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Errors     map[string]string `json:"errors"`
	Pagination *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validation.Validator {
	return validation.NewValidator()
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	switch payload := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(payload)
	default:
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp, env
}
