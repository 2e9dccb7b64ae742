package extensions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/m1gwings/treedrawer/tree"

	blackboard "github.com/blackboard-go/blackboard"
)

// GraphDebugExtension logs the board's dependency topology when a set pass
// fails, so a compute error arrives together with the graph it happened in.
//
// Usage:
//
//	// Human-readable formatted output (with line breaks)
//	handler := extensions.NewHumanHandler(os.Stdout, slog.LevelError)
//	ext := extensions.NewGraphDebugExtension(handler)
//
//	// Structured JSON logging (compact, machine-readable)
//	handler := slog.NewJSONHandler(os.Stdout, nil)
//	ext := extensions.NewGraphDebugExtension(handler)
//
//	// Silent (for testing)
//	ext := extensions.NewGraphDebugExtension(extensions.NewSilentHandler())
type GraphDebugExtension struct {
	blackboard.BaseExtension

	// Fields that have failed a recomputation, by name.
	failedFields map[string]error
	logger       *slog.Logger
}

// NewGraphDebugExtension creates a new graph debug extension.
func NewGraphDebugExtension(logHandler slog.Handler) *GraphDebugExtension {
	return &GraphDebugExtension{
		BaseExtension: blackboard.NewBaseExtension("graph-debug"),
		failedFields:  make(map[string]error),
		logger:        slog.New(logHandler),
	}
}

// OnError logs the dependency graph when a pass fails
func (e *GraphDebugExtension) OnError(err error, op *blackboard.Operation, b *blackboard.Board) {
	fieldName := "(batch)"
	if op.Field != nil {
		fieldName = op.Field.Name()
	}
	var ce *blackboard.ComputeError
	if errors.As(err, &ce) {
		e.failedFields[ce.Field] = ce.Cause
	}

	e.logger.Error("Set Pass Error",
		"board", b.Name(),
		"field", fieldName,
		"error", err.Error(),
		"operation", string(op.Kind),
		"dependency_graph", e.formatDependencyGraph(b, err),
	)
}

func (e *GraphDebugExtension) formatDependencyGraph(b *blackboard.Board, failedErr error) string {
	var sb strings.Builder
	graph := b.DependencyGraph()

	hasEdges := false
	for _, children := range graph {
		if len(children) > 0 {
			hasEdges = true
			break
		}
	}
	if !hasEdges {
		sb.WriteString("\n(no derived fields declared)")
		return sb.String()
	}

	sb.WriteString("\n")

	parents := make([]string, 0, len(graph))
	for parent := range graph {
		parents = append(parents, parent)
	}
	sort.Strings(parents)

	for _, parent := range parents {
		children := graph[parent]
		if len(children) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s\n", parent))

		for i, child := range children {
			childName := child
			if childErr, failed := e.failedFields[child]; failed {
				childName = fmt.Sprintf("%s (failed: %v)", childName, childErr)
			}
			if i == len(children)-1 {
				sb.WriteString(fmt.Sprintf("    └─> %s\n", childName))
			} else {
				sb.WriteString(fmt.Sprintf("    ├─> %s\n", childName))
			}
		}
	}

	if failedErr != nil {
		sb.WriteString("\nError Details:\n")
		sb.WriteString(fmt.Sprintf("  Error: %v\n", failedErr))
	}

	return sb.String()
}

// RenderTree draws the board's topology as an ASCII tree: the board at the
// root, primitive fields as its children, derived fields under everything
// they depend on. A field reachable through several dependencies appears
// once per parent.
func RenderTree(b *blackboard.Board) string {
	graph := b.DependencyGraph()
	root := tree.NewTree(tree.NodeString(b.Name()))

	childIndex := 0
	for _, name := range b.Names() {
		f, ok := b.Field(name)
		if !ok || f.IsDerived() {
			continue
		}
		root.AddChild(tree.NodeString(fieldLabel(b, name)))
		child, err := root.Child(childIndex)
		childIndex++
		if err != nil {
			continue
		}
		addDependents(child, b, graph, name)
	}

	return root.String()
}

func addDependents(t *tree.Tree, b *blackboard.Board, graph map[string][]string, name string) {
	for i, depName := range graph[name] {
		t.AddChild(tree.NodeString(fieldLabel(b, depName)))
		child, err := t.Child(i)
		if err != nil {
			continue
		}
		addDependents(child, b, graph, depName)
	}
}

func fieldLabel(b *blackboard.Board, name string) string {
	f, ok := b.Field(name)
	if !ok {
		return name
	}
	if unit, ok := blackboard.Unit().Get(f); ok {
		return fmt.Sprintf("%s [%s]", name, unit)
	}
	return name
}

// SilentHandler is a slog.Handler that discards all log output
// Useful for testing when you don't want log output
type SilentHandler struct{}

// NewSilentHandler creates a new silent log handler
func NewSilentHandler() *SilentHandler {
	return &SilentHandler{}
}

func (h *SilentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return false
}

func (h *SilentHandler) Handle(ctx context.Context, record slog.Record) error {
	return nil
}

func (h *SilentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *SilentHandler) WithGroup(name string) slog.Handler {
	return h
}

// HumanHandler is a slog.Handler that formats logs for human readability
// with proper line breaks (especially for dependency graphs).
type HumanHandler struct {
	writer io.Writer
	level  slog.Level
}

// NewHumanHandler creates a new human-readable log handler
func NewHumanHandler(writer io.Writer, level slog.Level) *HumanHandler {
	return &HumanHandler{
		writer: writer,
		level:  level,
	}
}

func (h *HumanHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *HumanHandler) Handle(ctx context.Context, record slog.Record) error {
	if _, err := fmt.Fprintf(h.writer, "[%s] %s\n", record.Level, record.Message); err != nil {
		return err
	}
	var writeErr error
	record.Attrs(func(a slog.Attr) bool {
		if _, err := fmt.Fprintf(h.writer, "  %s: %v\n", a.Key, a.Value); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	return writeErr
}

func (h *HumanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *HumanHandler) WithGroup(name string) slog.Handler {
	return h
}
