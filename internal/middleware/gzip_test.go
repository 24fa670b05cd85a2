package middleware

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoResponse struct {
	Received string `json:"received"`
}

// echoJSON отвечает JSON-ом так же, как обработчики сайта, и выставляет Content-Length.
func echoJSON(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	raw, _ := json.Marshal(echoResponse{Received: string(body)})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(raw)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func gzipBytes(t *testing.T, s string) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return &buf
}

func TestGzipMiddleware_CompressesJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/me", strings.NewReader(`{"category":"mead"}`))
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	rec := httptest.NewRecorder()
	GzipMiddleware(http.HandlerFunc(echoJSON)).ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "gzip", res.Header.Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", res.Header.Get("Vary"))
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	assert.Empty(t, res.Header.Get("Content-Length"), "length of the plain body must not leak")

	gr, err := gzip.NewReader(res.Body)
	require.NoError(t, err)
	defer gr.Close()

	var got echoResponse
	require.NoError(t, json.NewDecoder(gr).Decode(&got))
	assert.Equal(t, `{"category":"mead"}`, got.Received)
}

func TestGzipMiddleware_PlainWhenNotAccepted(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/menu/filter", strings.NewReader("plain"))

	rec := httptest.NewRecorder()
	GzipMiddleware(http.HandlerFunc(echoJSON)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Empty(t, rec.Header().Get("Vary"))
	assert.NotEmpty(t, rec.Header().Get("Content-Length"))
	assert.JSONEq(t, `{"received":"plain"}`, rec.Body.String())
}

func TestGzipMiddleware_DecompressesRequest(t *testing.T) {
	var seenEncoding string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenEncoding = r.Header.Get("Content-Encoding")
		echoJSON(w, r)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", gzipBytes(t, "Медовуха просто прекрасна"))
	req.Header.Set("Content-Encoding", "gzip")

	rec := httptest.NewRecorder()
	GzipMiddleware(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, seenEncoding)

	var got echoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Медовуха просто прекрасна", got.Received)
}

func TestGzipMiddleware_InvalidRequestBody(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("not gzip at all"))
	req.Header.Set("Content-Encoding", "gzip")

	rec := httptest.NewRecorder()
	GzipMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestGzipMiddleware_ImplicitHeaderDropsLength(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "5")
		_, _ = w.Write([]byte("honey"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rec := httptest.NewRecorder()
	GzipMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Empty(t, rec.Header().Get("Content-Length"))
}
