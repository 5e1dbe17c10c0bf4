package gh_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnthonysMotion/mappr/backend/internal/gh"
)

func TestStarsClient_Stars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/AnthonysMotion/mappr", r.URL.Path)
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"full_name": "AnthonysMotion/mappr", "stargazers_count": 42}`))
	}))
	defer srv.Close()

	c := gh.NewStarsClient("AnthonysMotion/mappr", nil, srv.URL)

	got, err := c.Stars(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestStarsClient_Stars_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := gh.NewStarsClient("AnthonysMotion/does-not-exist", nil, srv.URL)

	_, err := c.Stars(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestStarsClient_Stars_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := gh.NewStarsClient("AnthonysMotion/mappr", nil, srv.URL)

	_, err := c.Stars(context.Background())

	assert.Error(t, err)
}
