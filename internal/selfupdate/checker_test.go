package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/abhisek/langbuddy/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"tag_name":"` + tag + `","html_url":"https://example.com/` + tag + `","assets":[]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{"newer patch", "v1.2.3", "v1.2.4", true},
		{"newer minor without prefix", "1.2.3", "v1.3.0", true},
		{"same", "v1.2.3", "v1.2.3", false},
		{"older release", "v2.0.0", "v1.9.9", false},
		{"prerelease is older than release", "v1.0.0", "v1.0.0-rc.1", false},
		{"dev build", "(devel)", "v9.0.0", false},
		{"bad tag", "v1.0.0", "latest", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := releaseServer(t, tt.latest)
			c := NewChecker(WithBaseURL(srv.URL))

			res, err := c.Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.UpdateAvailable)
			assert.Equal(t, tt.latest, res.LatestVersion)
			assert.Equal(t, "https://example.com/"+tt.latest, res.ReleaseURL)
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()
		_, err := NewChecker(WithBaseURL(srv.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		assert.ErrorIs(t, err, ErrNoRelease)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()
		_, err := NewChecker(WithBaseURL(srv.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 502")
	})

	t.Run("missing tag", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"html_url":"x"}`))
		}))
		defer srv.Close()
		_, err := NewChecker(WithBaseURL(srv.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		assert.Error(t, err)
	})
}

func TestWithRepository(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/someone/fork/releases/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"tag_name":"v1.0.1"}`))
	}))
	defer srv.Close()

	res, err := NewChecker(WithBaseURL(srv.URL), WithRepository("someone", "fork")).
		Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.NoError(t, err)
	assert.True(t, res.UpdateAvailable)
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "v1.2.0", canonical("1.2"))
	assert.Equal(t, "v1.2.3", canonical(" v1.2.3 "))
	assert.Empty(t, canonical("(devel)"))
	assert.Empty(t, canonical(""))
}
