package emitter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"channel-metrics-service/internal/metrics/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newEmitter(url string, retries uint64) *HTTPEmitter {
	return NewHTTPEmitter(HTTPConfig{
		Endpoint:      url,
		AuthToken:     "secret",
		Timeout:       time.Second,
		MaxRetries:    retries,
		RetryInterval: time.Millisecond,
	}, nil)
}

func TestHTTPEmitter_Delivers(t *testing.T) {
	var (
		gotBody   string
		gotMethod string
		gotAuth   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := newEmitter(srv.URL, 0).Emit(context.Background(), "za.binu.supporter", domain.IntValue(3), domain.HintLast)

	assert.True(t, d.Delivered)
	assert.Equal(t, http.StatusOK, d.StatusCode)
	assert.Empty(t, d.Error)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.JSONEq(t, `[["za.binu.supporter",3,"LAST"]]`, gotBody)
}

func TestHTTPEmitter_NullValue(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	}))
	defer srv.Close()

	d := newEmitter(srv.URL, 0).Emit(context.Background(), "tz.supporter", domain.NullValue, domain.HintLast)

	assert.True(t, d.Delivered)
	assert.JSONEq(t, `[["tz.supporter",null,"LAST"]]`, gotBody)
}

func TestHTTPEmitter_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := newEmitter(srv.URL, 5).Emit(context.Background(), "supporter", domain.IntValue(1), domain.HintLast)

	assert.True(t, d.Delivered)
	assert.Equal(t, http.StatusNoContent, d.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPEmitter_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	d := newEmitter(srv.URL, 2).Emit(context.Background(), "supporter", domain.IntValue(1), domain.HintLast)

	assert.False(t, d.Delivered)
	assert.Equal(t, http.StatusServiceUnavailable, d.StatusCode)
	assert.Contains(t, d.Error, "503")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPEmitter_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad metric name", http.StatusBadRequest)
	}))
	defer srv.Close()

	d := newEmitter(srv.URL, 5).Emit(context.Background(), "bad name", domain.IntValue(1), domain.HintLast)

	assert.False(t, d.Delivered)
	assert.Equal(t, http.StatusBadRequest, d.StatusCode)
	assert.Contains(t, d.Error, "bad metric name")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPEmitter_UnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	d := newEmitter(url, 1).Emit(context.Background(), "supporter", domain.IntValue(1), domain.HintLast)

	assert.False(t, d.Delivered)
	assert.Zero(t, d.StatusCode)
	assert.NotEmpty(t, d.Error)
}

func TestLogEmitter(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	d := NewLogEmitter(zap.New(core)).Emit(context.Background(), "za.supporter", domain.IntValue(7), domain.HintLast)

	assert.True(t, d.Delivered)
	require.Equal(t, 1, logs.Len())

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "za.supporter", fields["metric"])
	assert.Equal(t, "7", fields["value"])
	assert.Equal(t, "LAST", fields["hint"])
}
