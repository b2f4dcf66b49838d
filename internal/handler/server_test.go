package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mittalpriyanshi/globaltrotter/internal/handler"
)

// testUserID is the identity every test token resolves to.
var testUserID = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")

// mockVerifier is a test double for the token verifier the auth middleware uses.
type mockVerifier struct {
	verify func(token string) (uuid.UUID, error)
}

func (m *mockVerifier) Verify(token string) (uuid.UUID, error) { return m.verify(token) }

// okVerifier accepts every token as testUserID.
func okVerifier() *mockVerifier {
	return &mockVerifier{verify: func(string) (uuid.UUID, error) { return testUserID, nil }}
}

// newTestRouter wires a Server with the given deps into the real router,
// mirroring how main.go wires it in production. Absent deps get quiet
// defaults so each test only sets the services it exercises.
func newTestRouter(t *testing.T, deps handler.ServerDeps) http.Handler {
	t.Helper()
	if deps.Verifier == nil {
		deps.Verifier = okVerifier()
	}
	if deps.Log == nil {
		deps.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return handler.NewServer(deps).Routes()
}

// doRequest performs an authenticated request against h and returns the recorder.
// body may be nil; any other value is JSON-encoded.
func doRequest(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = jsonBody(t, body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// errorEnvelope mirrors the error response shape for decoding in assertions.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}
