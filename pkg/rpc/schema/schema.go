// Package schema describes wire shapes as runtime values. One Schema drives
// request validation, response validation and client type emission, so the
// three can never disagree about a shape.
package schema

// Kind enumerates the primitive and composite shapes a value can take.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindObject
	KindArray
)

// String formats with extra validation on top of KindString.
const (
	FormatEmail    = "email"
	FormatUUID     = "uuid"
	FormatDateTime = "date-time"
)

// Schema is a self-describing shape. Schemas are value types and are treated
// as immutable once registered on an endpoint.
type Schema struct {
	Kind Kind

	// Fields holds the object fields in declaration order. Declaration order
	// is significant: the client generator emits struct fields in this order.
	Fields []Field

	// Elem is the element shape for arrays.
	Elem *Schema

	// Format is an optional string format (FormatEmail, FormatDateTime).
	Format string

	// MinItems is the minimum array length.
	MinItems int
}

// Field is a named object member.
type Field struct {
	Name     string
	Schema   Schema
	Optional bool
}

// String describes a plain string value.
func String() Schema { return Schema{Kind: KindString} }

// Email describes a string value that must parse as an email address.
func Email() Schema { return Schema{Kind: KindString, Format: FormatEmail} }

// UUID describes a string value that must parse as a UUID.
func UUID() Schema { return Schema{Kind: KindString, Format: FormatUUID} }

// DateTime describes an RFC 3339 timestamp string.
func DateTime() Schema { return Schema{Kind: KindString, Format: FormatDateTime} }

// Int describes an integer value.
func Int() Schema { return Schema{Kind: KindInt} }

// Float describes a floating point value.
func Float() Schema { return Schema{Kind: KindFloat} }

// Bool describes a boolean value.
func Bool() Schema { return Schema{Kind: KindBool} }

// Object describes an object with the given fields, in declaration order.
func Object(fields ...Field) Schema {
	return Schema{Kind: KindObject, Fields: fields}
}

// Array describes an array of elem values.
func Array(elem Schema) Schema {
	return Schema{Kind: KindArray, Elem: &elem}
}

// Min returns a copy of an array schema with a minimum length constraint.
func (s Schema) Min(n int) Schema {
	s.MinItems = n
	return s
}

// F declares a required object field.
func F(name string, s Schema) Field {
	return Field{Name: name, Schema: s}
}

// Opt declares an optional object field.
func Opt(name string, s Schema) Field {
	return Field{Name: name, Schema: s, Optional: true}
}
