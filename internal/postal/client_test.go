package postal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/config"
	apperrors "atelier/internal/errors"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.PostalConfig{BaseURL: baseURL, Timeout: time.Second})
}

func TestLookupResolvesAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/01310100", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cep": "01310100",
			"street": "Avenida Paulista",
			"neighborhood": "Bela Vista",
			"city": "São Paulo",
			"state": "SP"
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	lookup, err := client.Lookup(context.Background(), "01310-100")

	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", lookup.Street)
	assert.Equal(t, "SP", lookup.Province)
}

func TestLookupUnknownPostalCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.Lookup(context.Background(), "99999999")

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestLookupRejectsMalformedInput(t *testing.T) {
	client := newTestClient("http://unused.invalid")

	for _, cep := range []string{"", "123", "123456789"} {
		_, err := client.Lookup(context.Background(), cep)

		_, ok := apperrors.IsValidationError(err)
		assert.True(t, ok, "cep %q", cep)
	}
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.Lookup(context.Background(), "01310100")

	ext, ok := apperrors.IsExternalServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "brasilapi", ext.Service)
}

func TestLookupNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.Lookup(context.Background(), "01310100")

	_, ok := apperrors.IsExternalServiceError(err)
	assert.True(t, ok)
}
