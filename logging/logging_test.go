package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestSlogAdapterJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogAdapter(SlogConfig{Writer: &buf, JSON: true, Level: slog.LevelDebug})

	l.WithFields(Fields{"trace_id": "abc"}).Error("store failed", errors.New("boom"), Fields{"op": "count"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "store failed", entry["msg"])
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "abc", entry["trace_id"])
	assert.Equal(t, "count", entry["op"])
	assert.Equal(t, "boom", entry["err"])
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	l.Info("hidden", nil)
	assert.Zero(t, buf.Len())
	l.Warn("shown", nil)
	assert.Contains(t, buf.String(), "shown")
}

type recordingPoster struct {
	mu    sync.Mutex
	tags  []string
	posts []Fields
}

func (p *recordingPoster) Post(tag string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tags = append(p.tags, tag)
	p.posts = append(p.posts, message.(Fields))
	return nil
}

func TestFluentAdapterMergesFieldsAndFilters(t *testing.T) {
	poster := &recordingPoster{}
	l := newFluentAdapter(poster, slog.LevelInfo).WithFields(Fields{"service": "unidirectory"})

	l.Debug("dropped", nil)
	l.Error("failed", errors.New("boom"), Fields{"id": 5})

	require.Len(t, poster.posts, 1)
	assert.Equal(t, "error", poster.tags[0])
	post := poster.posts[0]
	assert.Equal(t, "unidirectory", post["service"])
	assert.Equal(t, 5, post["id"])
	assert.Equal(t, "boom", post["error"])
	assert.Equal(t, "failed", post["message"])
}

type countingLogger struct {
	nopLogger
	infos int
}

func (c *countingLogger) Info(string, Fields)      { c.infos++ }
func (c *countingLogger) WithFields(Fields) Logger { return c }

func TestMultiLoggerFansOut(t *testing.T) {
	_, err := NewMultiLogger()
	require.Error(t, err)

	a, b := &countingLogger{}, &countingLogger{}
	m, err := NewMultiLogger(a, b)
	require.NoError(t, err)

	m.WithFields(Fields{"k": "v"}).Info("hello", nil)
	assert.Equal(t, 1, a.infos)
	assert.Equal(t, 1, b.infos)
}

func TestFromContextFallsBackToNop(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := &countingLogger{}
	assert.Same(t, l, FromContext(WithContext(context.Background(), l)))
}

func TestMiddlewareAttachesLoggerAndTrace(t *testing.T) {
	var buf bytes.Buffer
	base := NewSlogAdapter(SlogConfig{Writer: &buf, JSON: true})

	var seen Logger
	h := Middleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/favorites", nil)
	req.Header.Set(TraceHeader, "trace-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.NotNil(t, seen)
	assert.IsType(t, &SlogAdapter{}, seen)
	assert.Equal(t, "trace-123", rec.Header().Get(TraceHeader))

	out := buf.String()
	assert.Contains(t, out, `"msg":"Request finished"`)
	assert.Contains(t, out, `"status_code":201`)
	assert.Contains(t, out, `"trace_id":"trace-123"`)
	assert.True(t, strings.Contains(out, `"http_path":"/api/favorites"`))
}

func TestMiddlewareGeneratesTraceID(t *testing.T) {
	h := Middleware(Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, rec.Header().Get(TraceHeader), 36)
}
