// Package property implements the typed property values that windows,
// skins and animations exchange by name.
package property

import (
	"sort"
	"strconv"
	"strings"
	"unique"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/guierr"
)

// Name is an interned property name
type Name struct {
	h unique.Handle[string]
}

// N interns s
func N(s string) Name { return Name{unique.Make(s)} }

func (n Name) String() string {
	if n == (Name{}) {
		return ""
	}
	return n.h.Value()
}

// Kind tags the variant held by a Value
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindFloat
	KindString
	KindColour
	KindImage
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindColour:
		return "colour"
	case KindImage:
		return "image"
	default:
		return "none"
	}
}

// ParseKind maps a kind name (as written in skin files) to a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bool", "boolean":
		return KindBool, nil
	case "float", "number":
		return KindFloat, nil
	case "string", "", "udim", "uvector2", "usize", "urect", "ubox":
		// Unified values travel as their property strings.
		return KindString, nil
	case "colour", "color", "colourrect", "colorrect":
		return KindColour, nil
	case "image":
		return KindImage, nil
	default:
		return KindNone, guierr.InvalidRequest("unknown property type %q", s)
	}
}

// Value is a tagged property value
type Value struct {
	kind   Kind
	b      bool
	f      float32
	s      string
	colour geom.ColourRect
}

func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Float(f float32) Value   { return Value{kind: KindFloat, f: f} }
func String(s string) Value   { return Value{kind: KindString, s: s} }
func Image(name string) Value { return Value{kind: KindImage, s: name} }

// Colour wraps a single colour as a solid colour rect value
func Colour(c geom.Colour) Value { return Value{kind: KindColour, colour: geom.Solid(c)} }

// Colours wraps a colour rect
func Colours(cr geom.ColourRect) Value { return Value{kind: KindColour, colour: cr} }

// Kind returns the variant tag
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v holds nothing
func (v Value) IsZero() bool { return v.kind == KindNone }

func mismatch(v Value, want Kind) error {
	return guierr.InvalidRequest("property value is %s, not %s", v.kind, want)
}

func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, mismatch(v, KindBool)
	}
	return v.b, nil
}

func (v Value) AsFloat() (float32, error) {
	if v.kind != KindFloat {
		return 0, mismatch(v, KindFloat)
	}
	return v.f, nil
}

func (v Value) AsColours() (geom.ColourRect, error) {
	if v.kind != KindColour {
		return geom.ColourRect{}, mismatch(v, KindColour)
	}
	return v.colour, nil
}

// AsImage returns the referenced image name
func (v Value) AsImage() (string, error) {
	if v.kind != KindImage {
		return "", mismatch(v, KindImage)
	}
	return v.s, nil
}

// String formats v in its property-string form
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindFloat:
		return strconv.FormatFloat(float64(v.f), 'g', -1, 32)
	case KindColour:
		return v.colour.String()
	case KindString, KindImage:
		return v.s
	default:
		return ""
	}
}

// Parse converts a property string into a Value of the given kind
func Parse(kind Kind, s string) (Value, error) {
	switch kind {
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes", "on":
			return Bool(true), nil
		case "false", "0", "no", "off", "":
			return Bool(false), nil
		}
		return Value{}, guierr.InvalidRequest("invalid bool %q", s)
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
		if err != nil {
			return Value{}, guierr.InvalidRequest("invalid float %q", s)
		}
		return Float(float32(f)), nil
	case KindColour:
		cr, err := geom.ParseColourRect(s)
		if err != nil {
			return Value{}, guierr.InvalidRequest("%v", err)
		}
		return Colours(cr), nil
	case KindImage:
		return Image(strings.TrimSpace(s)), nil
	case KindString:
		return String(s), nil
	default:
		return Value{}, guierr.InvalidRequest("cannot parse into %s", kind)
	}
}

// Definition declares a typed user property with a default value
type Definition struct {
	Name          string
	Kind          Kind
	Default       string
	RedrawOnWrite bool
	LayoutOnWrite bool
	Help          string
}

// DefaultValue parses the default string
func (d Definition) DefaultValue() (Value, error) {
	return Parse(d.Kind, d.Default)
}

// Bag maps property names to values and remembers typed definitions
type Bag struct {
	values map[Name]Value
	defs   map[Name]Definition
}

// Define registers a definition, seeding the value from its default
func (b *Bag) Define(def Definition) error {
	v, err := def.DefaultValue()
	if err != nil {
		return err
	}
	if b.defs == nil {
		b.defs = make(map[Name]Definition)
	}
	n := N(def.Name)
	b.defs[n] = def
	b.set(n, v)
	return nil
}

// Undefine drops a definition together with its value
func (b *Bag) Undefine(name string) {
	n := N(name)
	delete(b.defs, n)
	delete(b.values, n)
}

// Definition looks up the definition for name
func (b *Bag) Definition(name string) (Definition, bool) {
	d, ok := b.defs[N(name)]
	return d, ok
}

func (b *Bag) set(n Name, v Value) {
	if b.values == nil {
		b.values = make(map[Name]Value)
	}
	b.values[n] = v
}

// Set stores v under name, checking the kind against any definition
func (b *Bag) Set(name string, v Value) error {
	n := N(name)
	if def, ok := b.defs[n]; ok && def.Kind != v.kind {
		return guierr.InvalidRequest("property %q is %s, got %s", name, def.Kind, v.kind)
	}
	b.set(n, v)
	return nil
}

// SetString parses s using the definition's kind (string when undefined)
func (b *Bag) SetString(name, s string) error {
	kind := KindString
	if def, ok := b.defs[N(name)]; ok {
		kind = def.Kind
	}
	v, err := Parse(kind, s)
	if err != nil {
		return err
	}
	return b.Set(name, v)
}

// Get returns the value stored under name
func (b *Bag) Get(name string) (Value, bool) {
	v, ok := b.values[N(name)]
	return v, ok
}

// Has reports whether name holds a value
func (b *Bag) Has(name string) bool {
	_, ok := b.values[N(name)]
	return ok
}

// Delete removes a value, leaving any definition in place
func (b *Bag) Delete(name string) { delete(b.values, N(name)) }

// Names returns the stored property names in sorted order
func (b *Bag) Names() []string {
	out := make([]string, 0, len(b.values))
	for n := range b.values {
		out = append(out, n.String())
	}
	sort.Strings(out)
	return out
}

// IsDefault reports whether name still holds its definition's default
func (b *Bag) IsDefault(name string) bool {
	def, ok := b.defs[N(name)]
	if !ok {
		return false
	}
	v, _ := b.Get(name)
	return v.String() == def.Default || (def.Default == "" && v.IsZero())
}
