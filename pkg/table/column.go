package table

// Row is one record keyed by field name. Rows are owned by the caller and
// are never modified by exporters.
type Row map[string]any

type accessorKind uint8

const (
	accessorNone accessorKind = iota
	accessorField
	accessorComputed
)

// Accessor extracts a cell value from a Row. Exactly one variant is active:
// a field lookup built with ByField, or a function built with Computed.
// The zero Accessor has no variant and is rejected by Sheet.Validate.
type Accessor struct {
	kind    accessorKind
	field   string
	compute func(Row) any
}

// ByField returns an accessor that reads row[name].
func ByField(name string) Accessor {
	return Accessor{kind: accessorField, field: name}
}

// Computed returns an accessor that derives the cell from the whole row.
// A nil fn yields the zero Accessor.
func Computed(fn func(Row) any) Accessor {
	if fn == nil {
		return Accessor{}
	}
	return Accessor{kind: accessorComputed, compute: fn}
}

// IsZero reports whether no variant is set.
func (a Accessor) IsZero() bool { return a.kind == accessorNone }

// Field returns the field name for ByField accessors.
func (a Accessor) Field() (string, bool) {
	return a.field, a.kind == accessorField
}

// Resolve returns the cell value for row. A missing field resolves to null.
func (a Accessor) Resolve(row Row) Value {
	switch a.kind {
	case accessorField:
		return ValueOf(row[a.field])
	case accessorComputed:
		return ValueOf(a.compute(row))
	default:
		return NullValue()
	}
}

// Column is a header paired with the accessor that fills its cells.
// Duplicate headers are allowed.
type Column struct {
	Header   string
	Accessor Accessor
}

// Field is shorthand for a column reading a single field.
func Field(header, field string) Column {
	return Column{Header: header, Accessor: ByField(field)}
}

// Compute is shorthand for a computed column.
func Compute(header string, fn func(Row) any) Column {
	return Column{Header: header, Accessor: Computed(fn)}
}
