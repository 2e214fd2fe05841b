package domain

// Value is a single table cell. A cell is either present with a raw string
// payload or explicitly absent; the zero Value is absent.
type Value struct {
	raw     string
	present bool
}

// Some returns a present Value holding s.
func Some(s string) Value {
	return Value{raw: s, present: true}
}

// Absent returns the absent Value.
func Absent() Value {
	return Value{}
}

// IsAbsent reports whether the cell carries no value.
func (v Value) IsAbsent() bool {
	return !v.present
}

// String returns the raw payload, or "" when absent.
func (v Value) String() string {
	return v.raw
}

// Get returns the payload and whether it is present.
func (v Value) Get() (string, bool) {
	return v.raw, v.present
}

// Equal compares presence and payload.
func (v Value) Equal(other Value) bool {
	return v.present == other.present && v.raw == other.raw
}
