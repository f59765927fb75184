package db

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"finance-tracker-go/pkg/logger"
)

func TestOrDefault(t *testing.T) {
	if got := orDefault(0, 10); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := orDefault(3, 10); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := orDefault(time.Duration(0), time.Minute); got != time.Minute {
		t.Fatalf("expected 1m, got %v", got)
	}
}

func TestGormWriterLogsStructured(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, logger.Options{Level: slog.LevelDebug, Format: "json"})

	gormWriter{log: log.With("component", "gorm")}.Printf("slow sql >= %v", slowQueryThreshold)

	out := buf.String()
	if !strings.Contains(out, `"component":"gorm"`) || !strings.Contains(out, "slow sql") {
		t.Fatalf("unexpected output %q", out)
	}
}
