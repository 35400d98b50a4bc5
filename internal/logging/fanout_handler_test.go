package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestTeeHandlerWithoutHandlersDiscards(t *testing.T) {
	h := TeeHandler(nil, nil)
	if _, ok := h.(NoopHandler); !ok {
		t.Fatalf("expected NoopHandler, got %T", h)
	}
}

func TestTeeHandlerSingleHandlerIsReturnedDirectly(t *testing.T) {
	lvl := new(slog.LevelVar)
	inner := newJSONHandler(&bytes.Buffer{}, lvl, false)
	if got := TeeHandler(inner); got != inner {
		t.Fatalf("expected inner handler to be returned, got %T", got)
	}
}

func TestTeeHandlerRespectsPerHandlerLevels(t *testing.T) {
	var infoBuf, warnBuf bytes.Buffer
	infoLevel := new(slog.LevelVar)
	warnLevel := new(slog.LevelVar)
	warnLevel.Set(slog.LevelWarn)

	logger := slog.New(TeeHandler(
		newJSONHandler(&infoBuf, infoLevel, false),
		newJSONHandler(&warnBuf, warnLevel, false),
	)).With("component", "formats")

	logger.Info("bootstrap complete")
	logger.Warn("background write failed")

	if got := strings.Count(infoBuf.String(), "\n"); got != 2 {
		t.Fatalf("expected 2 lines in info handler, got %d: %q", got, infoBuf.String())
	}
	if got := strings.Count(warnBuf.String(), "\n"); got != 1 {
		t.Fatalf("expected 1 line in warn handler, got %d: %q", got, warnBuf.String())
	}
	if !strings.Contains(warnBuf.String(), `"component":"formats"`) {
		t.Fatalf("expected attrs to propagate, got %q", warnBuf.String())
	}
}
