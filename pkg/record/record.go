// Package record builds typed entities from declarative field tables.
//
// A Table lists every attribute of an entity with the scheme key used to
// extract it and the kind it coerces to. Build extracts each raw value once;
// typed accessors coerce on every call, so reading twice yields the same value.
package record

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/tyler180/sportsref/pkg/extract"
)

type Kind int

const (
	String Kind = iota
	Int
	Float
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	}
	return "string"
}

// Quirk rewrites a raw value before coercion. Site-specific cleanups live in
// named quirks next to the table that uses them.
type Quirk func(raw string, ok bool) (string, bool)

// Descriptor describes one attribute.
type Descriptor struct {
	Name        string
	Key         string // scheme key, Name when empty
	Kind        Kind
	Options     []extract.Option
	Quirk       Quirk
	ZeroDefault bool // Int only: missing reads as 0
	Skip        bool // not extracted; computed by the consumer and stored with Set
}

func (d Descriptor) key() string {
	if d.Key != "" {
		return d.Key
	}
	return d.Name
}

// Table is an ordered list of descriptors.
type Table []Descriptor

// Names returns the attribute names in table order.
func (t Table) Names() []string {
	out := make([]string, len(t))
	for i, d := range t {
		out[i] = d.Name
	}
	return out
}

// Lookup finds the descriptor for name.
func (t Table) Lookup(name string) (Descriptor, bool) {
	for _, d := range t {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

type raw struct {
	s  string
	ok bool
}

// Record holds the raw values of one entity.
type Record struct {
	table Table
	vals  map[string]raw
}

// Build extracts every descriptor of t from frag, trying schemes in order.
func Build(t Table, schemes extract.Schemes, frag *goquery.Selection) *Record {
	r := &Record{table: t, vals: make(map[string]raw, len(t))}
	for _, d := range t {
		if d.Skip {
			continue
		}
		s, ok := extract.FieldIn(schemes, frag, d.key(), d.Options...)
		if d.Quirk != nil {
			s, ok = d.Quirk(s, ok)
		}
		if ok {
			r.vals[d.Name] = raw{s, true}
		}
	}
	return r
}

// Table returns the descriptors the record was built from.
func (r *Record) Table() Table { return r.table }

// Set stores a raw value computed outside the table's selectors.
func (r *Record) Set(name, value string) {
	r.vals[name] = raw{value, true}
}

// Raw returns the extracted text of name.
func (r *Record) Raw(name string) (string, bool) {
	v, ok := r.vals[name]
	return v.s, ok && v.ok
}

// String returns the raw text of name, or "" when absent.
func (r *Record) String(name string) string {
	s, _ := r.Raw(name)
	return s
}

// Int coerces name. Descriptors marked ZeroDefault never return nil.
func (r *Record) Int(name string) *int {
	if d, ok := r.table.Lookup(name); ok && d.ZeroDefault {
		n := extract.IntOrZero(r.Raw(name))
		return &n
	}
	return extract.Int(r.Raw(name))
}

// Float coerces name.
func (r *Record) Float(name string) *float64 {
	return extract.Float(r.Raw(name))
}

// Value returns name coerced per its descriptor kind, or nil when absent or
// not coercible.
func (r *Record) Value(name string) any {
	d, ok := r.table.Lookup(name)
	if !ok {
		if s, ok := r.Raw(name); ok {
			return s
		}
		return nil
	}
	switch d.Kind {
	case Int:
		if n := r.Int(name); n != nil {
			return *n
		}
		return nil
	case Float:
		if f := r.Float(name); f != nil {
			return *f
		}
		return nil
	}
	if s, ok := r.Raw(name); ok {
		return s
	}
	return nil
}

// Row flattens the record into attribute name -> coerced value.
func (r *Record) Row() map[string]any {
	out := make(map[string]any, len(r.table))
	for _, d := range r.table {
		out[d.Name] = r.Value(d.Name)
	}
	return out
}
