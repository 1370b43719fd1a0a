//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"conference-booking/internal/handler/httperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccessResponse checks the status and, for 2xx replies, decodes the body into target.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if expectedStatus >= 200 && expectedStatus < 300 && target != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "failed to decode body: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and that the envelope message contains msg.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, msg string) {
	t.Helper()

	resp := decodeEnvelope(t, w, expectedStatus)
	if msg != "" {
		assert.Contains(t, resp.Error.Message, msg, "error message mismatch")
	}
}

// AssertRejection checks a business-rule reply: status plus detail.reason.
func AssertRejection(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, reason string) {
	t.Helper()

	resp := decodeEnvelope(t, w, expectedStatus)
	detail, ok := resp.Detail.(map[string]any)
	require.True(t, ok, "missing detail in %s", w.Body.String())
	assert.Equal(t, reason, detail["reason"])
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int) httperr.Response {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var resp httperr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to decode error envelope: %s", w.Body.String())
	return resp
}
