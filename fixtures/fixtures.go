// Package fixtures bootstraps logging for test binaries and holds the
// small helpers shared by tests that talk to real upstreams.
package fixtures

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/databricks/databricks-sdk-go/logger"
	"github.com/joho/godotenv"
)

func init() {
	logFile, ok := os.LookupEnv("WEBSITE_TEST_LOG_FILE")
	if !ok {
		// we're debugging from IDE
		logger.DefaultLogger = &logger.SimpleLogger{
			Level: logger.LevelDebug,
		}
		return
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		panic(err)
	}
	// file descriptor stays open, this is a test-binary-wide logger
	installSlogJSON(file)
}

func installSlogJSON(w io.Writer) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	logger.DefaultLogger = &slogAdapter{slog.New(handler)}
}

// GetEnvOrSkipTest skips live tests on machines without credentials.
func GetEnvOrSkipTest(t *testing.T, name string) string {
	value := os.Getenv(name)
	if value == "" {
		t.Skipf("environment variable %s is missing", name)
	}
	return value
}

// LoadDotEnv pulls a local .env into the test process, if one exists.
func LoadDotEnv(t *testing.T) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		t.Logf("loading .env: %s", err)
	}
}

// slogAdapter makes an slog.Logger usable with the Databricks SDK.
type slogAdapter struct {
	*slog.Logger
}

func (s *slogAdapter) Enabled(ctx context.Context, level logger.Level) bool {
	switch level {
	case logger.LevelTrace:
		return s.Logger.Enabled(ctx, slog.LevelDebug)
	case logger.LevelDebug:
		return s.Logger.Enabled(ctx, slog.LevelDebug)
	case logger.LevelInfo:
		return s.Logger.Enabled(ctx, slog.LevelInfo)
	case logger.LevelWarn:
		return s.Logger.Enabled(ctx, slog.LevelWarn)
	case logger.LevelError:
		return s.Logger.Enabled(ctx, slog.LevelError)
	default:
		return true
	}
}

func (s *slogAdapter) Tracef(ctx context.Context, format string, v ...any) {
	s.DebugContext(ctx, fmt.Sprintf(format, v...))
}

func (s *slogAdapter) Debugf(ctx context.Context, format string, v ...any) {
	s.DebugContext(ctx, fmt.Sprintf(format, v...))
}

func (s *slogAdapter) Infof(ctx context.Context, format string, v ...any) {
	s.InfoContext(ctx, fmt.Sprintf(format, v...))
}

func (s *slogAdapter) Warnf(ctx context.Context, format string, v ...any) {
	s.WarnContext(ctx, fmt.Sprintf(format, v...))
}

func (s *slogAdapter) Errorf(ctx context.Context, format string, v ...any) {
	s.ErrorContext(ctx, fmt.Sprintf(format, v...))
}
