package extensions

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	blackboard "github.com/blackboard-go/blackboard"
)

func TestGraphDebugExtension_OnError(t *testing.T) {
	var buf bytes.Buffer
	handler := NewHumanHandler(&buf, slog.LevelError)

	b := blackboard.New(
		blackboard.WithName("habitat"),
		blackboard.WithExtension(NewGraphDebugExtension(handler)),
	)
	defer b.Dispose()

	temperature, err := blackboard.NewField(b, "temperature", 21.0)
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}

	// Fails once the reading goes out of range.
	_, err = blackboard.Derive1(b, "comfort_index", temperature,
		func(c float64) (float64, error) {
			if c > 60 {
				return 0, errors.New("sensor reading out of range")
			}
			return c / 60, nil
		})
	if err != nil {
		t.Fatalf("Failed to derive comfort_index: %v", err)
	}

	err = temperature.Set(80.0)
	if err == nil {
		t.Fatal("Expected the set pass to fail")
	}

	output := buf.String()

	if !strings.Contains(output, "Set Pass Error") {
		t.Error("Expected 'Set Pass Error' message")
	}
	if !strings.Contains(output, "habitat") {
		t.Error("Expected the board name in the output")
	}
	if !strings.Contains(output, "temperature") {
		t.Error("Expected the written field in the output")
	}
	if !strings.Contains(output, "sensor reading out of range") {
		t.Error("Expected the compute error message in the output")
	}
	if !strings.Contains(output, "└─>") {
		t.Error("Expected tree structure with '└─>'")
	}
	if !strings.Contains(output, "comfort_index (failed: sensor reading out of range)") {
		t.Error("Expected the failed field marked in the graph")
	}
	if !strings.Contains(output, "Error Details:") {
		t.Error("Expected 'Error Details:' section")
	}
}

func TestGraphDebugExtension_NoDerivedFields(t *testing.T) {
	var buf bytes.Buffer
	ext := NewGraphDebugExtension(NewHumanHandler(&buf, slog.LevelError))

	b := blackboard.New(blackboard.WithExtension(ext))
	defer b.Dispose()

	if _, err := blackboard.NewField(b, "lonely", 1); err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}

	op := &blackboard.Operation{Kind: blackboard.OpSet, Board: b}
	ext.OnError(errors.New("vetoed"), op, b)

	output := buf.String()
	if !strings.Contains(output, "(no derived fields declared)") {
		t.Errorf("Expected placeholder for an edge-free graph, got:\n%s", output)
	}
	if !strings.Contains(output, "(batch)") {
		t.Error("Expected the field to render as '(batch)' when the op has none")
	}
}

func TestRenderTree(t *testing.T) {
	b := blackboard.New(blackboard.WithName("rover"))
	defer b.Dispose()

	volts, err := blackboard.NewField(b, "volts", 12.0,
		blackboard.WithTag(blackboard.Unit(), "V"))
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}
	amps, err := blackboard.NewField(b, "amps", 1.5)
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}
	_, err = blackboard.Derive2(b, "watts", volts, amps,
		func(v, i float64) (float64, error) { return v * i, nil })
	if err != nil {
		t.Fatalf("Failed to derive watts: %v", err)
	}

	out := RenderTree(b)

	for _, want := range []string{"rover", "volts [V]", "amps", "watts"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in rendered tree:\n%s", want, out)
		}
	}
}

func TestSilentHandler(t *testing.T) {
	h := NewSilentHandler()
	if h.Enabled(context.Background(), slog.LevelError) {
		t.Error("SilentHandler must report disabled at every level")
	}
	logger := slog.New(h)
	logger.Error("should vanish")
}

func TestHumanHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHumanHandler(&buf, slog.LevelWarn))

	logger.Info("below threshold")
	if buf.Len() != 0 {
		t.Errorf("Info must be filtered at LevelWarn, got: %s", buf.String())
	}

	logger.Error("above threshold", "board", "test")
	output := buf.String()
	if !strings.Contains(output, "[ERROR] above threshold") {
		t.Errorf("Expected formatted message, got: %s", output)
	}
	if !strings.Contains(output, "board: test") {
		t.Errorf("Expected attribute line, got: %s", output)
	}
}
