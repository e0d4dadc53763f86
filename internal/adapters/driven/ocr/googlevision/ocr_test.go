package googlevision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewService(context.Background(), Config{
		Endpoint:   server.URL + "/",
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)
	return svc
}

func TestDetectText(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff}

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images:annotate", r.URL.Path)

		var req struct {
			Requests []struct {
				Image    struct{ Content string }
				Features []struct{ Type string }
			}
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 1)
		assert.Equal(t, base64.StdEncoding.EncodeToString(image), req.Requests[0].Image.Content)
		assert.Equal(t, textDetection, req.Requests[0].Features[0].Type)

		_, _ = w.Write([]byte(`{"responses":[{"fullTextAnnotation":{"text":"SOUP 5\nSALAD 7"}}]}`))
	})

	text, err := svc.DetectText(context.Background(), image)

	require.NoError(t, err)
	assert.Equal(t, "SOUP 5\nSALAD 7", text)
}

func TestDetectText_NoText(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{}]}`))
	})

	text, err := svc.DetectText(context.Background(), []byte("img"))

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestDetectText_ResponseError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{"error":{"code":3,"message":"Bad image data."}}]}`))
	})

	_, err := svc.DetectText(context.Background(), []byte("img"))

	var ocrErr *domain.OCRError
	require.True(t, errors.As(err, &ocrErr))
	assert.Equal(t, "google", ocrErr.Provider)
	assert.Contains(t, err.Error(), "Bad image data.")
}

func TestDetectText_RateLimited(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
	})

	_, err := svc.DetectText(context.Background(), []byte("img"))

	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestNewService_RequiresCredentials(t *testing.T) {
	_, err := NewService(context.Background(), Config{})
	assert.ErrorIs(t, err, domain.ErrConfigMissing)

	_, err = NewService(context.Background(), Config{CredentialsFile: "/nonexistent/sa.json"})
	assert.Error(t, err)
}
