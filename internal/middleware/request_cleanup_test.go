package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fitnease/tracking/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackingBody struct {
	io.Reader
	read   int
	closed bool
}

func (b *trackingBody) Read(p []byte) (int, error) {
	n, err := b.Reader.Read(p)
	b.read += n
	return n, err
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func TestLimitRequestBody_DrainsUnreadBody(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader(strings.Repeat("x", 1024))}
	req := httptest.NewRequest(http.MethodPost, "/", body)

	handler := middleware.LimitRequestBody(4096)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, body.closed)
	assert.Equal(t, 1024, body.read)
}

func TestLimitRequestBody_OversizedBody(t *testing.T) {
	payload := `{"notes": "` + strings.Repeat("a", 2048) + `"}`
	body := &trackingBody{Reader: strings.NewReader(payload)}
	req := httptest.NewRequest(http.MethodPost, "/", body)

	var decodeErr error
	handler := middleware.LimitRequestBody(512)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var v map[string]string
		decodeErr = json.NewDecoder(r.Body).Decode(&v)
		http.Error(w, "invalid request body", http.StatusBadRequest)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var maxBytesErr *http.MaxBytesError
	require.True(t, errors.As(decodeErr, &maxBytesErr), "%v", decodeErr)
	assert.Equal(t, int64(512), maxBytesErr.Limit)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.True(t, body.closed)
	// nothing past the cap is consumed
	assert.LessOrEqual(t, body.read, 513)
}

func TestLimitRequestBody_DrainIsBounded(t *testing.T) {
	size := 1 << 20
	body := &trackingBody{Reader: strings.NewReader(strings.Repeat("x", size))}
	req := httptest.NewRequest(http.MethodPut, "/", body)

	handler := middleware.LimitRequestBody(int64(size))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, body.closed)
	assert.Less(t, body.read, size)
}

func TestLimitRequestBody_NoBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	called := false
	handler := middleware.LimitRequestBody(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.NoBody, r.Body)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, called)
}
