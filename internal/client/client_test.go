package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestClient_CookiesPersistAcrossRequests(t *testing.T) {
	var sawCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/set":
			http.SetCookie(w, &http.Cookie{Name: "SESSION", Value: "s1", Path: "/"})
			w.WriteHeader(http.StatusOK)
		case "/check":
			if c, err := r.Cookie("SESSION"); err == nil {
				sawCookie = c.Value
			}
			_, _ = w.Write([]byte("ok"))
		}
	}))
	defer srv.Close()

	c, err := New()
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), srv.URL+"/set")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, resp.Cookies, 1)

	resp, err = c.Get(context.Background(), srv.URL+"/check")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(resp.Body))
	assert.Equal(t, "s1", sawCookie)

	cookies := c.Cookies(srv.URL)
	require.Len(t, cookies, 1)
	assert.Equal(t, "SESSION", cookies[0].Name)
}

func TestClient_PostFormSendsBodyVerbatim(t *testing.T) {
	var gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New()
	require.NoError(t, err)

	_, err = c.PostForm(context.Background(), srv.URL, "z=1&a=2")
	require.NoError(t, err)
	assert.Equal(t, "z=1&a=2", gotBody)
	assert.Equal(t, ContentTypeForm, gotType)
}

func TestClient_DefaultHeadersAndUserAgent(t *testing.T) {
	var ua, accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
	}))
	defer srv.Close()

	c, err := New(WithUserAgent("godenodo-test"))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "godenodo-test", ua)
	assert.Equal(t, acceptHeader, accept)
}

func TestClient_NonSuccessStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := New()
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "denied")
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(WithTimeout(50 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, c.Timeout())
	assert.Equal(t, 50*time.Millisecond, c.HTTPClient().Timeout)

	_, err = c.Get(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestClient_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c, err := New(WithRateLimit(rate.Every(time.Hour), 1))
	require.NoError(t, err)

	// first request consumes the only token
	_, err = c.Get(context.Background(), srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Get(ctx, srv.URL)
	require.Error(t, err)
}

func TestClient_CookiesBadURL(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.Nil(t, c.Cookies("://bad"))
}
