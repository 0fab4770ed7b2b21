package authclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanmayd/user_platform_app/internal/apperrors"
)

func TestVerify_ReturnsIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/verify", r.URL.Path)
		assert.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"userID":"u-1","email":"a@x.com","name":"A"}`))
	}))
	defer server.Close()

	identity, err := NewClient(server.URL).Verify(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.UserID)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestVerify_RejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid token"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Verify(context.Background(), "bad-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestVerify_UnreachableServiceFailsClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := NewClient(server.URL).Verify(context.Background(), "good-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestVerify_MalformedBodyFailsClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Verify(context.Background(), "good-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestVerify_EmptyIdentityFailsClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Verify(context.Background(), "good-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
