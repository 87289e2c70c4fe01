package hook

// Kind identifies the hook that produced a record.
type Kind uint8

const (
	KindState Kind = iota + 1
	KindEffect
	KindMemo
	KindRef
)

// String returns the hook's name.
func (k Kind) String() string {
	switch k {
	case KindState:
		return "State"
	case KindEffect:
		return "Effect"
	case KindMemo:
		return "Memo"
	case KindRef:
		return "Ref"
	default:
		return "Unknown"
	}
}

// Action transforms a state value. Actions are applied in the order they
// were queued.
type Action func(any) any

// Record is the persisted state of one hook call.
type Record struct {
	Kind  Kind
	Value any
	Deps  []any

	// depsOK is false when Deps was invalid; such records never match.
	depsOK bool

	// cell is shared by every record of one State hook; seq is the first
	// action in it that Value does not include yet.
	cell *cell
	seq  uint64
}

// Pending returns the number of queued state actions not yet reflected in
// the record's value.
func (r *Record) Pending() int {
	if r.cell == nil {
		return 0
	}
	return int(r.cell.end() - r.seq)
}

// cell is the action queue of one State hook. Actions are numbered;
// queue[0] has number base.
type cell struct {
	base   uint64
	queue  []Action
	setter any
}

func (c *cell) end() uint64 {
	return c.base + uint64(len(c.queue))
}

// since returns the actions numbered seq and later, dropping older ones.
// seq comes from a committed record, so no later render needs them.
func (c *cell) since(seq uint64) []Action {
	if seq > c.base {
		drop := seq - c.base
		if drop > uint64(len(c.queue)) {
			drop = uint64(len(c.queue))
		}
		c.queue = c.queue[drop:]
		c.base += drop
	}
	return c.queue
}

// Box is the mutable cell returned by Ref. Writing Current never triggers a
// render.
type Box[T any] struct {
	Current T
}
