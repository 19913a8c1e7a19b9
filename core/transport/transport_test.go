package transport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OleksUA-dev/magento-go/core/transport"
)

func TestHTTPClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("resolves path against base url", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		client, err := transport.NewHTTPClient(srv.URL)
		require.NoError(t, err)

		req := &transport.Request{Method: http.MethodGet, Path: "/rest/V1/products"}
		req.Query = map[string][]string{"searchCriteria[pageSize]": {"10"}}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, resp.IsSuccess())
		assert.Equal(t, "/rest/V1/products", gotPath)
		assert.Contains(t, gotQuery, "pageSize%5D=10")
	})

	t.Run("encodes json body and sets headers", func(t *testing.T) {
		t.Parallel()

		var gotContentType, gotAccept, gotRequestID string
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			gotAccept = r.Header.Get("Accept")
			gotRequestID = r.Header.Get("X-Request-ID")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		client, err := transport.NewHTTPClient(srv.URL)
		require.NoError(t, err)

		resp, err := client.Do(context.Background(), &transport.Request{
			Method: http.MethodPost,
			Path:   "rest/V1/products",
			Body:   map[string]string{"sku": "TEST-1"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "application/json", gotAccept)
		assert.NotEmpty(t, gotRequestID)
		assert.Equal(t, "TEST-1", gotBody["sku"])
	})

	t.Run("returns non-2xx as response", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Requested product doesn't exist"}`))
		}))
		defer srv.Close()

		client, err := transport.NewHTTPClient(srv.URL)
		require.NoError(t, err)

		resp, err := client.Do(context.Background(), &transport.Request{
			Method: http.MethodGet,
			Path:   "rest/V1/products/MISSING",
		})
		require.NoError(t, err)
		assert.False(t, resp.IsSuccess())
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("classifies connection refused", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // closed immediately, port is now refused

		client, err := transport.NewHTTPClient(srv.URL)
		require.NoError(t, err)

		_, err = client.Do(context.Background(), &transport.Request{
			Method: http.MethodGet,
			Path:   "rest/V1/store/storeViews",
		})
		require.Error(t, err)

		var terr *transport.Error
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, transport.KindConnection, terr.Kind)
		assert.True(t, terr.Retryable())
	})

	t.Run("classifies client timeout", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client, err := transport.NewHTTPClient(srv.URL, transport.WithHTTPTimeout(20*time.Millisecond))
		require.NoError(t, err)

		_, err = client.Do(context.Background(), &transport.Request{
			Method: http.MethodGet,
			Path:   "rest/V1/store/storeViews",
		})
		require.Error(t, err)

		var terr *transport.Error
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, transport.KindTimeout, terr.Kind)
	})

	t.Run("propagates context cancellation unchanged", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client, err := transport.NewHTTPClient(srv.URL)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err = client.Do(ctx, &transport.Request{Method: http.MethodGet, Path: "rest/V1/orders"})
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestNewHTTPClient_Validation(t *testing.T) {
	t.Parallel()

	_, err := transport.NewHTTPClient("://bad")
	assert.Error(t, err)

	_, err = transport.NewHTTPClient("relative/path")
	assert.Error(t, err)
}

func TestResponse_DecodeJSON(t *testing.T) {
	t.Parallel()

	resp := &transport.Response{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"sku":"TEST-1","price":19.99}`),
	}

	var out struct {
		SKU   string  `json:"sku"`
		Price float64 `json:"price"`
	}
	require.NoError(t, resp.DecodeJSON(&out))
	assert.Equal(t, "TEST-1", out.SKU)
	assert.InDelta(t, 19.99, out.Price, 0.001)
}

func TestAPIErrorFromResponse(t *testing.T) {
	t.Parallel()

	t.Run("extracts upstream message", func(t *testing.T) {
		t.Parallel()

		req := &transport.Request{Method: http.MethodGet, Path: "rest/V1/products/MISSING"}
		resp := &transport.Response{
			StatusCode: http.StatusNotFound,
			Body:       []byte(`{"message":"Requested product doesn't exist"}`),
		}

		apiErr := transport.APIErrorFromResponse(req, resp)
		assert.Equal(t, transport.KindNotFound, apiErr.Kind)
		assert.Equal(t, "Requested product doesn't exist", apiErr.Message)
		assert.Equal(t, "rest/V1/products/MISSING", apiErr.Endpoint)
		assert.False(t, apiErr.Retryable())
	})

	t.Run("falls back to status text", func(t *testing.T) {
		t.Parallel()

		req := &transport.Request{Method: http.MethodGet, Path: "rest/V1/orders"}
		resp := &transport.Response{StatusCode: http.StatusBadGateway, Body: []byte("upstream down")}

		apiErr := transport.APIErrorFromResponse(req, resp)
		assert.Equal(t, transport.KindServerError, apiErr.Kind)
		assert.Equal(t, "Bad Gateway", apiErr.Message)
		assert.True(t, apiErr.Retryable())
	})
}

func TestKindForStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		kind   transport.Kind
	}{
		{http.StatusBadRequest, transport.KindBadRequest},
		{http.StatusUnauthorized, transport.KindUnauthorized},
		{http.StatusForbidden, transport.KindForbidden},
		{http.StatusNotFound, transport.KindNotFound},
		{http.StatusConflict, transport.KindConflict},
		{http.StatusUnprocessableEntity, transport.KindValidation},
		{http.StatusTooManyRequests, transport.KindRateLimited},
		{http.StatusInternalServerError, transport.KindServerError},
		{http.StatusServiceUnavailable, transport.KindServerError},
		{http.StatusTeapot, transport.KindAPI},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.kind, transport.KindForStatus(tc.status), "status %d", tc.status)
	}
}
