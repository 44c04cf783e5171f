package notifier

import (
	"fmt"
	"log/slog"
	"math"
)

// GlobalID is the numeric id of senders that own no endpoint.
const GlobalID = math.MaxInt

// ID is the addressing unit of an endpoint: a numeric id assigned from the
// declaration order, an optional slot index for array endpoints and a display
// name.
//
// IDs are plain values. Once bound to a Service they never change.
type ID struct {
	num     int
	index   int
	indexed bool
	name    string
}

// Identifier is anything that resolves to an [ID]: an ID itself or a generated
// target.
type Identifier interface {
	ID() ID
}

func NewID(num int) ID {
	return ID{num: num}
}

// WithIndex returns a copy of id addressing slot index.
func (id ID) WithIndex(index int) ID {
	id.index = index
	id.indexed = true
	return id
}

// WithName returns a copy of id carrying a display name.
func (id ID) WithName(name string) ID {
	id.name = name
	return id
}

func (id ID) ID() ID {
	return id
}

func (id ID) Num() int {
	return id.num
}

func (id ID) Index() (int, bool) {
	return id.index, id.indexed
}

func (id ID) Name() string {
	return id.name
}

func (id ID) IsGlobal() bool {
	return id.num == GlobalID
}

// Equal reports whether id and other address the same endpoint slot. The
// display name does not take part in the comparison.
func (id ID) Equal(other ID) bool {
	if id.num != other.num || id.indexed != other.indexed {
		return false
	}

	return !id.indexed || id.index == other.index
}

// EqTarget reports whether id is addressed by target.
//
// An un-indexed target matches every slot of its endpoint; an indexed target
// matches exactly one slot.
func (id ID) EqTarget(target ID) bool {
	if target.indexed {
		return id.Equal(target)
	}

	return id.num == target.num
}

func (id ID) String() string {
	switch {
	case id.num == GlobalID:
		return fmt.Sprintf("[%s]", id.name)
	case id.indexed:
		return fmt.Sprintf("[%s(%d)](Id: %d)", id.name, id.index, id.num)
	default:
		return fmt.Sprintf("[%s](Id: %d)", id.name, id.num)
	}
}

func (id ID) LogValue() slog.Value {
	return slog.StringValue(id.String())
}
