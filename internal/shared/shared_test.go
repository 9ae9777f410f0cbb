package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == b {
		t.Error("expected distinct identifiers")
	}

	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("expected a valid UUID, got %q: %v", a, err)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]int{"plays": 12}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(compact) != `{"plays":12}` {
		t.Errorf("unexpected compact output: %s", compact)
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n") {
		t.Errorf("expected indented output, got %s", pretty)
	}
}

func TestLoggerHelpers(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(buf)

	SetLogLevel(logger, log.DebugLevel)
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", logger.GetLevel())
	}

	child := WithLogger(logger, "component", "typeahead")
	child.Info("attached")

	if !strings.Contains(buf.String(), "component") {
		t.Errorf("expected child logger fields in output, got %s", buf.String())
	}
}
