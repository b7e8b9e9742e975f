package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"INFO", false},
		{" warn ", false},
		{"error", false},
		{"loud", true},
	}
	for _, tt := range tests {
		_, err := New(tt.level, "console")
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
		}
	}
}

func TestMustFallsBack(t *testing.T) {
	log := Must("loud", "json")
	if log == nil {
		t.Fatal("Must returned nil")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("fallback logger should log at info")
	}
}

func TestMiddlewareRecordsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := Middleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["status"] != int64(http.StatusTeapot) || ctx["path"] != "/api/healthz" {
		t.Errorf("fields = %v", ctx)
	}
}
