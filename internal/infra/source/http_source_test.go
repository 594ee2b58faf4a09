package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/internal/domain/mocks"
	"github.com/NewsFeedBlocks/internal/infra/transformer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_Load(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"title":"First","redirectTarget":"https://example.com/1","date":45292},
			{"title":"Second","redirectTarget":"https://example.com/2","date":45293}
		]}`))
	}))
	defer server.Close()

	src := NewHTTPSource("press", server.URL, transformer.NewSheetTransformer(), time.Second)
	items, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "First", items[0].Title)
	assert.Equal(t, "press", src.GetName())
}

func TestHTTPSource_EmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	src := NewHTTPSource("press", server.URL, transformer.NewSheetTransformer(), time.Second)
	items, err := src.Load(context.Background())
	assert.Nil(t, items)

	var failure *domain.LoadFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "press", failure.Source)
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestHTTPSource_NoRetryOnFailure(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	src := NewHTTPSource("press", server.URL, transformer.NewSheetTransformer(), time.Second)
	_, err := src.Load(context.Background())

	var failure *domain.LoadFailure
	require.ErrorAs(t, err, &failure)
	assert.Contains(t, err.Error(), "returned status 502")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "a failed load is terminal, not retried")
}

func TestHTTPSource_TransformError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	tr := new(mocks.MockTransformer)
	tr.On("Transform", mock.Anything).Return(nil, errors.New("bad payload")).Once()

	src := NewHTTPSource("press", server.URL, tr, time.Second)
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad payload")
	assert.NotErrorIs(t, err, domain.ErrNoResults)
	tr.AssertExpectations(t)
}

func TestHTTPSource_CircuitBreakerOpens(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	src := NewHTTPSource("press", server.URL, transformer.NewSheetTransformer(), time.Second)
	for i := 0; i < 5; i++ {
		_, err := src.Load(context.Background())
		require.Error(t, err)
	}

	// Three consecutive failures trip the breaker; later loads fail fast.
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestHTTPSource_RecoveryResetsFailureCount(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"title":"a","redirectTarget":"https://example.com/a","date":45292}]}`))
	}))
	defer server.Close()

	src := NewHTTPSource("press", server.URL, transformer.NewSheetTransformer(), time.Second)

	_, err := src.Load(context.Background())
	require.Error(t, err)
	_, err = src.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, src.sampler.Count("press"))

	fail.Store(false)
	_, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, src.sampler.Count("press"))
}
