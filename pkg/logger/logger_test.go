package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wonhee/golddash/backend/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		wantLevel zerolog.Level
	}{
		{"debug level", "debug", zerolog.DebugLevel},
		{"info level", "info", zerolog.InfoLevel},
		{"warn level", "warn", zerolog.WarnLevel},
		{"error level", "error", zerolog.ErrorLevel},
		{"unknown defaults to info", "whatever", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Env:       "development",
				LogLevel:  tt.logLevel,
				LogFormat: "json",
			}

			log := New(cfg)
			if log == nil {
				t.Fatal("New() returned nil")
			}

			if got := zerolog.GlobalLevel(); got != tt.wantLevel {
				t.Errorf("global level = %v, want %v", got, tt.wantLevel)
			}
		})
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.WithFields(map[string]interface{}{
		"period": "1m",
		"count":  25,
	}).Info("fetched")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}

	if entry["period"] != "1m" {
		t.Errorf("period field = %v, want 1m", entry["period"])
	}
	if entry["message"] != "fetched" {
		t.Errorf("message = %v, want fetched", entry["message"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.WithError(errors.New("upstream down")).Error("fetch failed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}

	if entry["error"] != "upstream down" {
		t.Errorf("error field = %v, want 'upstream down'", entry["error"])
	}
}
