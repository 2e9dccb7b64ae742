package blackboard

//go:generate go run ./codegen -w

func Derive1[T any, D1 any](
	b *Board,
	name string,
	d1 Source[D1],
	combine func(D1) (T, error),
	opts ...FieldOption,
) (*Derived[T], error) {
	if combine == nil {
		return nil, newConfigError(boardName(b), name, "nil combine function")
	}
	d := &Derived[T]{
		cell: cell[T]{b: b, name: name, tags: make(map[any]any)},
		deps: []AnyField{d1},
	}
	d.compute = func() (T, error) {
		return combine(d1.current())
	}

	for _, opt := range opts {
		opt(d)
	}

	return registerDerived(b, d)
}

func Derive2[T any, D1 any, D2 any](
	b *Board,
	name string,
	d1 Source[D1],
	d2 Source[D2],
	combine func(D1, D2) (T, error),
	opts ...FieldOption,
) (*Derived[T], error) {
	if combine == nil {
		return nil, newConfigError(boardName(b), name, "nil combine function")
	}
	d := &Derived[T]{
		cell: cell[T]{b: b, name: name, tags: make(map[any]any)},
		deps: []AnyField{d1, d2},
	}
	d.compute = func() (T, error) {
		return combine(d1.current(), d2.current())
	}

	for _, opt := range opts {
		opt(d)
	}

	return registerDerived(b, d)
}

func Derive3[T any, D1 any, D2 any, D3 any](
	b *Board,
	name string,
	d1 Source[D1],
	d2 Source[D2],
	d3 Source[D3],
	combine func(D1, D2, D3) (T, error),
	opts ...FieldOption,
) (*Derived[T], error) {
	if combine == nil {
		return nil, newConfigError(boardName(b), name, "nil combine function")
	}
	d := &Derived[T]{
		cell: cell[T]{b: b, name: name, tags: make(map[any]any)},
		deps: []AnyField{d1, d2, d3},
	}
	d.compute = func() (T, error) {
		return combine(d1.current(), d2.current(), d3.current())
	}

	for _, opt := range opts {
		opt(d)
	}

	return registerDerived(b, d)
}

func Derive4[T any, D1 any, D2 any, D3 any, D4 any](
	b *Board,
	name string,
	d1 Source[D1],
	d2 Source[D2],
	d3 Source[D3],
	d4 Source[D4],
	combine func(D1, D2, D3, D4) (T, error),
	opts ...FieldOption,
) (*Derived[T], error) {
	if combine == nil {
		return nil, newConfigError(boardName(b), name, "nil combine function")
	}
	d := &Derived[T]{
		cell: cell[T]{b: b, name: name, tags: make(map[any]any)},
		deps: []AnyField{d1, d2, d3, d4},
	}
	d.compute = func() (T, error) {
		return combine(d1.current(), d2.current(), d3.current(), d4.current())
	}

	for _, opt := range opts {
		opt(d)
	}

	return registerDerived(b, d)
}

func Derive5[T any, D1 any, D2 any, D3 any, D4 any, D5 any](
	b *Board,
	name string,
	d1 Source[D1],
	d2 Source[D2],
	d3 Source[D3],
	d4 Source[D4],
	d5 Source[D5],
	combine func(D1, D2, D3, D4, D5) (T, error),
	opts ...FieldOption,
) (*Derived[T], error) {
	if combine == nil {
		return nil, newConfigError(boardName(b), name, "nil combine function")
	}
	d := &Derived[T]{
		cell: cell[T]{b: b, name: name, tags: make(map[any]any)},
		deps: []AnyField{d1, d2, d3, d4, d5},
	}
	d.compute = func() (T, error) {
		return combine(d1.current(), d2.current(), d3.current(), d4.current(), d5.current())
	}

	for _, opt := range opts {
		opt(d)
	}

	return registerDerived(b, d)
}

func Derive6[T any, D1 any, D2 any, D3 any, D4 any, D5 any, D6 any](
	b *Board,
	name string,
	d1 Source[D1],
	d2 Source[D2],
	d3 Source[D3],
	d4 Source[D4],
	d5 Source[D5],
	d6 Source[D6],
	combine func(D1, D2, D3, D4, D5, D6) (T, error),
	opts ...FieldOption,
) (*Derived[T], error) {
	if combine == nil {
		return nil, newConfigError(boardName(b), name, "nil combine function")
	}
	d := &Derived[T]{
		cell: cell[T]{b: b, name: name, tags: make(map[any]any)},
		deps: []AnyField{d1, d2, d3, d4, d5, d6},
	}
	d.compute = func() (T, error) {
		return combine(d1.current(), d2.current(), d3.current(), d4.current(), d5.current(), d6.current())
	}

	for _, opt := range opts {
		opt(d)
	}

	return registerDerived(b, d)
}

func Derive7[T any, D1 any, D2 any, D3 any, D4 any, D5 any, D6 any, D7 any](
	b *Board,
	name string,
	d1 Source[D1],
	d2 Source[D2],
	d3 Source[D3],
	d4 Source[D4],
	d5 Source[D5],
	d6 Source[D6],
	d7 Source[D7],
	combine func(D1, D2, D3, D4, D5, D6, D7) (T, error),
	opts ...FieldOption,
) (*Derived[T], error) {
	if combine == nil {
		return nil, newConfigError(boardName(b), name, "nil combine function")
	}
	d := &Derived[T]{
		cell: cell[T]{b: b, name: name, tags: make(map[any]any)},
		deps: []AnyField{d1, d2, d3, d4, d5, d6, d7},
	}
	d.compute = func() (T, error) {
		return combine(d1.current(), d2.current(), d3.current(), d4.current(), d5.current(), d6.current(), d7.current())
	}

	for _, opt := range opts {
		opt(d)
	}

	return registerDerived(b, d)
}

func Derive8[T any, D1 any, D2 any, D3 any, D4 any, D5 any, D6 any, D7 any, D8 any](
	b *Board,
	name string,
	d1 Source[D1],
	d2 Source[D2],
	d3 Source[D3],
	d4 Source[D4],
	d5 Source[D5],
	d6 Source[D6],
	d7 Source[D7],
	d8 Source[D8],
	combine func(D1, D2, D3, D4, D5, D6, D7, D8) (T, error),
	opts ...FieldOption,
) (*Derived[T], error) {
	if combine == nil {
		return nil, newConfigError(boardName(b), name, "nil combine function")
	}
	d := &Derived[T]{
		cell: cell[T]{b: b, name: name, tags: make(map[any]any)},
		deps: []AnyField{d1, d2, d3, d4, d5, d6, d7, d8},
	}
	d.compute = func() (T, error) {
		return combine(d1.current(), d2.current(), d3.current(), d4.current(), d5.current(), d6.current(), d7.current(), d8.current())
	}

	for _, opt := range opts {
		opt(d)
	}

	return registerDerived(b, d)
}
