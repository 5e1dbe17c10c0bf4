package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AnthonysMotion/mappr/backend/internal/auth"
	"github.com/AnthonysMotion/mappr/backend/internal/handler"
)

// testUserID is the authenticated user every test request runs as.
var testUserID = uuid.MustParse("4dbd21b1-5a3f-4b37-b161-2c72c0a0c983")

// newRouter builds the full route tree with a stub auth middleware that
// injects testUserID, mirroring how main.go wires the real one.
func newRouter(deps handler.Deps) http.Handler {
	return handler.NewServer(deps).Routes(fakeAuth)
}

// fakeAuth stands in for auth.RequireAuth: every request is authenticated
// as testUserID.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), testUserID)))
	})
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// errorBody is the uniform error envelope as tests decode it.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Status string `json:"status"`
}

func decodeError(t *testing.T, body *bytes.Buffer) errorBody {
	t.Helper()
	var eb errorBody
	require.NoError(t, json.NewDecoder(body).Decode(&eb))
	return eb
}
