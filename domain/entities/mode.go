package entities

import "fmt"

// InsertMode selects the conflict policy for an insert.
type InsertMode int

const (
	// InsertOverwrite replaces any existing value unconditionally.
	InsertOverwrite InsertMode = iota
	// InsertAdd fails with a precondition error if a value already exists.
	InsertAdd
	// InsertAppend writes the new bytes after the existing body.
	InsertAppend
	// InsertPrepend writes the new bytes before the existing body.
	InsertPrepend
)

func (m InsertMode) String() string {
	switch m {
	case InsertOverwrite:
		return "overwrite"
	case InsertAdd:
		return "add"
	case InsertAppend:
		return "append"
	case InsertPrepend:
		return "prepend"
	default:
		return fmt.Sprintf("InsertMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler for the JSON wire format.
func (m InsertMode) MarshalText() ([]byte, error) {
	switch m {
	case InsertOverwrite, InsertAdd, InsertAppend, InsertPrepend:
		return []byte(m.String()), nil
	}
	return nil, fmt.Errorf("unknown insert mode %d", int(m))
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string
// selects InsertOverwrite, matching the platform default.
func (m *InsertMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "overwrite":
		*m = InsertOverwrite
	case "add":
		*m = InsertAdd
	case "append":
		*m = InsertAppend
	case "prepend":
		*m = InsertPrepend
	default:
		return fmt.Errorf("unknown insert mode %q", string(text))
	}
	return nil
}
