package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyeonlab/lawtrace/pkg/retry"
)

func fastClient(baseURL string) *HTTPClient {
	return NewHTTPClient(baseURL, "test-key",
		WithRateLimit(1000, 10),
		WithRetryOptions(retry.WithMaxAttempts(3), retry.WithInitialInterval(time.Millisecond)),
	)
}

func TestHTTPClient_SearchDecodesSummaries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("OC"))
		assert.Equal(t, "law", r.URL.Query().Get("target"))
		_, _ = w.Write([]byte(`{"LawSearch":{"totalCnt":"1","law":{"법령일련번호":"248346","법령명한글":"근로기준법","법종구분명":"법률","공포일자":"20210518","시행일자":"20211119"}}}`))
	}))
	defer srv.Close()

	summaries, err := fastClient(srv.URL).Search(context.Background(), "근로기준법")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "248346", summaries[0].MasterID)
	assert.Equal(t, "법률", summaries[0].StatuteType)
}

func TestHTTPClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"LawSearch":{"totalCnt":"0","law":""}}`))
	}))
	defer srv.Close()

	_, err := fastClient(srv.URL).Search(context.Background(), "근로기준법")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPClient_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := fastClient(srv.URL).Search(context.Background(), "근로기준법")
	require.Error(t, err)
	assert.False(t, IsTransient(err))
	assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
}

func TestHTTPClient_DetailNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"법령":{}}`))
	}))
	defer srv.Close()

	_, err := fastClient(srv.URL).Detail(context.Background(), "999999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestHTTPClient_PrecedentExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "prec", r.URL.Query().Get("target"))
		_, _ = w.Write([]byte(`{"PrecSearch":{"totalCnt":"2"}}`))
	}))
	defer srv.Close()

	exists, err := fastClient(srv.URL).PrecedentExists(context.Background(), "2019다12345")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&TransientError{Op: "fetch", Err: errors.New("boom")}))
	assert.False(t, IsTransient(errors.New("plain")))
}
