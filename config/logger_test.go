package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggingPrepare_NoOutputs(t *testing.T) {
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none"},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if log == nil {
		t.Fatal("Prepare() returned nil logger")
	}

	// must be safe to use even with all cores disabled
	log.Debug("quiet")
	log.Error("still quiet")
}

func TestLoggingPrepare_FileLogger(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "run.log")

	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "debug", Destination: dest, Mode: "overwrite"},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	log.Info("file logger works")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("unable to read log file: %v", err)
	}
	if !strings.Contains(string(data), "file logger works") {
		t.Errorf("log file missing entry: %q", string(data))
	}
}
