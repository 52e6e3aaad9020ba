package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient("test-secret", nil)
	require.NotNil(t, client)
	client.endpoint = srv.URL
	return client, srv
}

func TestNewClient_NoSecret(t *testing.T) {
	if NewClient("", nil) != nil {
		t.Fatal("expected nil client without a secret")
	}
	if NewClient("   ", nil) != nil {
		t.Fatal("expected nil client for blank secret")
	}
}

func TestVerify_Success(t *testing.T) {
	var gotSecret, gotResponse string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotSecret = r.PostFormValue("secret")
		gotResponse = r.PostFormValue("response")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"score":   0.9,
		})
	})

	result := client.Verify(context.Background(), "tok1")

	assert.True(t, result.Success)
	assert.Equal(t, 0.9, result.Score)
	assert.Empty(t, result.ErrorCode)
	assert.Equal(t, "test-secret", gotSecret)
	assert.Equal(t, "tok1", gotResponse)
}

func TestVerify_RejectedWithErrorCodes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success":     false,
			"error-codes": []string{"invalid-input-response", "timeout-or-duplicate"},
		})
	})

	result := client.Verify(context.Background(), "bad-token")

	assert.False(t, result.Success)
	assert.Equal(t, "invalid-input-response", result.ErrorCode)
}

func TestVerify_TransportFailure(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	result := client.Verify(context.Background(), "tok1")

	assert.False(t, result.Success)
	assert.Equal(t, ErrorCodeTransport, result.ErrorCode)
}

func TestVerify_MalformedResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	result := client.Verify(context.Background(), "tok1")

	assert.False(t, result.Success)
	assert.Equal(t, ErrorCodeTransport, result.ErrorCode)
}

func TestVerify_LowScorePassesThrough(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"score":   0.1,
		})
	})

	// The client reports what the oracle said; score policy belongs to the
	// submission service.
	result := client.Verify(context.Background(), "tok1")

	assert.True(t, result.Success)
	assert.Equal(t, 0.1, result.Score)
}
