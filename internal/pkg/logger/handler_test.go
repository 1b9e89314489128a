package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"strings"
	"testing"
)

func TestContextHandlerAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)})

	l.InfoContext(WithTraceID(context.Background(), "trace-123"), "hello")

	if !strings.Contains(buf.String(), `"trace_id":"trace-123"`) {
		t.Fatalf("trace_id missing from %s", buf.String())
	}
}

func TestContextHandlerWithoutTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)})

	l.InfoContext(context.Background(), "hello")

	if strings.Contains(buf.String(), "trace_id") {
		t.Fatalf("unexpected trace_id in %s", buf.String())
	}
}

func TestTeeHandlerRemoteFilter(t *testing.T) {
	var local, remote bytes.Buffer
	tee := &TeeHandler{handlers: []log.Handler{
		log.NewJSONHandler(&local, nil),
		&RemoteFilterHandler{next: log.NewJSONHandler(&remote, nil)},
	}}
	l := log.New(&ContextHandler{tee})

	l.Info("no trace")
	if remote.Len() != 0 {
		t.Fatalf("record without trace_id forwarded: %s", remote.String())
	}

	l.InfoContext(WithTraceID(context.Background(), "abc"), "with trace")
	if !strings.Contains(remote.String(), "with trace") {
		t.Fatalf("record with trace_id not forwarded: %s", remote.String())
	}
	if strings.Count(local.String(), "\n") != 2 {
		t.Fatalf("local handler should see both records, got %q", local.String())
	}
}

func TestTraceIDNilContext(t *testing.T) {
	//nolint:staticcheck // nil ctx 是被测行为
	if got := TraceID(nil); got != "" {
		t.Fatalf("TraceID(nil) = %q", got)
	}
}
