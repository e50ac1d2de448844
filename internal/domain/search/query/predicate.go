// Package query compiles catalog search criteria into a store-independent query:
// AND-ed predicate clauses with positional bound values and an optional ordering.
package query

// Field is a logical catalog field. Stores map it to a physical column.
type Field string

// Logical catalog fields.
const (
	FieldID          Field = "id"
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldSKU         Field = "sku"
	FieldMake        Field = "make"
	FieldModel       Field = "model"
	FieldCategory    Field = "category"
	FieldYearStart   Field = "year_start"
	FieldYearEnd     Field = "year_end"
	// FieldValue is the single projected column of a suggestion query.
	FieldValue Field = "value"
)

// Op is a comparison operator.
type Op int

// Comparison operators.
const (
	OpEq       Op = iota + 1 // field = value
	OpContains               // value occurs anywhere in field
	OpPrefix                 // field starts with value
	OpAtMost                 // field <= value
	OpAtLeast                // field >= value
	OpNotNull                // field IS NOT NULL
	OpNotEmpty               // field <> ''
)

// String returns the operator name used in debug output.
func (o Op) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpContains:
		return "contains"
	case OpPrefix:
		return "prefix"
	case OpAtMost:
		return "lte"
	case OpAtLeast:
		return "gte"
	case OpNotNull:
		return "not_null"
	case OpNotEmpty:
		return "not_empty"
	default:
		return "unknown"
	}
}

// Bound reports whether the operator takes a bound value.
func (o Op) Bound() bool {
	return o != OpNotNull && o != OpNotEmpty
}

// Predicate is one comparison of a field against an optional bound value.
type Predicate struct {
	field Field
	op    Op
	arg   any
}

// Eq matches fields equal to v.
func Eq(f Field, v any) Predicate { return Predicate{field: f, op: OpEq, arg: v} }

// Contains matches fields containing s.
func Contains(f Field, s string) Predicate { return Predicate{field: f, op: OpContains, arg: s} }

// Prefix matches fields starting with s.
func Prefix(f Field, s string) Predicate { return Predicate{field: f, op: OpPrefix, arg: s} }

// AtMost matches fields less than or equal to v.
func AtMost(f Field, v int) Predicate { return Predicate{field: f, op: OpAtMost, arg: v} }

// AtLeast matches fields greater than or equal to v.
func AtLeast(f Field, v int) Predicate { return Predicate{field: f, op: OpAtLeast, arg: v} }

// NotNull matches non-NULL fields.
func NotNull(f Field) Predicate { return Predicate{field: f, op: OpNotNull} }

// NotEmpty matches fields that are not the empty string.
func NotEmpty(f Field) Predicate { return Predicate{field: f, op: OpNotEmpty} }

// Field returns the compared field.
func (p Predicate) Field() Field { return p.field }

// Op returns the operator.
func (p Predicate) Op() Op { return p.op }

// Arg returns the raw bound value. Pattern operators carry the plain term;
// renderers add wildcards and escaping.
func (p Predicate) Arg() any { return p.arg }

// Clause is an OR-group of predicates. Clauses of a query are AND-ed.
type Clause struct {
	any []Predicate
}

// Predicates returns the alternatives of the clause.
func (c Clause) Predicates() []Predicate { return c.any }

// Placeholders returns the number of bound values the clause consumes.
func (c Clause) Placeholders() int {
	n := 0
	for _, p := range c.any {
		if p.op.Bound() {
			n++
		}
	}
	return n
}
