package blackboard

// Extension provides hooks into a board's write path. Set and SetValues
// calls are threaded through every registered extension's Wrap, so
// extensions can time, log, or veto passes without the core knowing about
// observability at all.
type Extension interface {
	// Name returns the extension's name
	Name() string

	// Order determines extension execution order (lower = earlier)
	Order() int

	// Init is called when the extension is registered on a board
	Init(b *Board) error

	// Wrap intercepts a set pass; call next to run it
	Wrap(next func() error, op *Operation) error

	// OnError is called after a pass fails
	OnError(err error, op *Operation, b *Board)

	// Dispose is called when the board is disposed
	Dispose(b *Board) error
}

// BaseExtension provides default implementations for Extension methods
type BaseExtension struct {
	name string
}

// NewBaseExtension creates a new base extension with the given name
func NewBaseExtension(name string) BaseExtension {
	return BaseExtension{name: name}
}

func (e *BaseExtension) Name() string {
	return e.name
}

func (e *BaseExtension) Order() int {
	return 100
}

func (e *BaseExtension) Init(b *Board) error {
	return nil
}

func (e *BaseExtension) Wrap(next func() error, op *Operation) error {
	return next()
}

func (e *BaseExtension) OnError(err error, op *Operation, b *Board) {
}

func (e *BaseExtension) Dispose(b *Board) error {
	return nil
}

// Operation describes the pass an extension is observing
type Operation struct {
	Kind  OperationKind
	Field AnyField // nil for batch passes
	Board *Board
}

// OperationKind represents the type of operation
type OperationKind string

const (
	// OpSet indicates a single-field set pass
	OpSet OperationKind = "set"
	// OpBatch indicates a multi-field SetValues pass
	OpBatch OperationKind = "batch-set"
)
