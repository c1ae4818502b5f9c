// Package value implements the evaluator's closed Value sum (spec.md §3).
// Following the teacher's cue/types.go convention of tagging a single
// struct with a Kind rather than growing an interface per variant, Value
// here is a small struct whose active field is selected by Kind; this
// keeps equality, Join, and Display as ordinary switches instead of a
// type-switch over a dozen concrete pointer types.
package value

import (
	"fmt"
	"sort"

	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/content"
)

// Kind identifies the active variant of a Value.
type Kind int

const (
	KindNone Kind = iota
	KindAuto
	KindBool
	KindInt
	KindFloat
	KindNumeric
	KindStr
	KindLabel
	KindSymbol
	KindArray
	KindDict
	KindContent
	KindFunc
	KindArgs
	KindModule
	KindDyn
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAuto:
		return "auto"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindNumeric:
		return "numeric"
	case KindStr:
		return "string"
	case KindLabel:
		return "label"
	case KindSymbol:
		return "symbol"
	case KindArray:
		return "array"
	case KindDict:
		return "dictionary"
	case KindContent:
		return "content"
	case KindFunc:
		return "function"
	case KindArgs:
		return "arguments"
	case KindModule:
		return "module"
	case KindDyn:
		return "value"
	default:
		return "unknown"
	}
}

// Value is the evaluator's universal result type. All values are cheap to
// copy: Array/Dict/Str share backing storage and are treated as
// copy-on-write by the operations that would otherwise mutate them
// (internal/core/mutref owns the one place actual mutation happens).
type Value struct {
	kind Kind

	b    bool
	i    int64
	f    float64
	unit ast.Unit
	s    string // Str, Label, or Symbol (a single codepoint encoded as a string)

	arr  *arrayData
	dict *dictData

	content content.Content
	fn      *Func
	args    *Args
	mod     *Module
	dyn     any
}

func (v Value) Kind() Kind { return v.kind }

var None = Value{kind: KindNone}
var Auto = Value{kind: KindAuto}

func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Int(i int64) Value       { return Value{kind: KindInt, i: i} }
func Float(f float64) Value   { return Value{kind: KindFloat, f: f} }
func Str(s string) Value      { return Value{kind: KindStr, s: s} }
func Label(s string) Value    { return Value{kind: KindLabel, s: s} }
func Symbol(s string) Value   { return Value{kind: KindSymbol, s: s} }
func Dyn(v any) Value         { return Value{kind: KindDyn, dyn: v} }
func ContentVal(c content.Content) Value {
	if c == nil {
		c = content.Empty
	}
	return Value{kind: KindContent, content: c}
}

func Numeric(f float64, u ast.Unit) Value {
	return Value{kind: KindNumeric, f: f, unit: u}
}

func (v Value) AsBool() bool       { return v.b }
func (v Value) AsInt() int64       { return v.i }
func (v Value) AsFloat() float64   { return v.f }
func (v Value) AsStr() string      { return v.s }
func (v Value) AsLabel() string    { return v.s }
func (v Value) AsSymbol() string   { return v.s }
func (v Value) AsDyn() any         { return v.dyn }
func (v Value) NumericUnit() ast.Unit { return v.unit }

func (v Value) AsContent() content.Content {
	if v.kind == KindContent {
		return v.content
	}
	return nil
}

func (v Value) AsFunc() *Func { return v.fn }
func (v Value) AsArgs() *Args { return v.args }
func (v Value) AsModule() *Module { return v.mod }

// Truthy reports whether v behaves as true in an `and`/`or`/condition
// context. Only Bool values determine short-circuit results (spec.md
// §4.1.3); this is used there, not for general coercion.
func (v Value) Truthy() (b bool, ok bool) {
	if v.kind == KindBool {
		return v.b, true
	}
	return false, false
}

// Display coerces any value to Content, used by markup sequencing for
// "any other value" (spec.md §4.1.1).
func Display(v Value) content.Content {
	switch v.kind {
	case KindNone:
		return content.Empty
	case KindContent:
		return v.content
	case KindStr:
		return content.Text{Value: v.s}
	default:
		return content.Text{Value: fmt.Sprint(v)}
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "none"
	case KindAuto:
		return "auto"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindNumeric:
		return fmt.Sprintf("%g%s", v.f, unitSuffix(v.unit))
	case KindStr:
		return v.s
	case KindLabel:
		return "<" + v.s + ">"
	case KindSymbol:
		return v.s
	case KindArray:
		return v.arr.String()
	case KindDict:
		return v.dict.String()
	case KindContent:
		return v.content.String()
	case KindFunc:
		return v.fn.String()
	case KindArgs:
		return "arguments"
	case KindModule:
		return "module(" + v.mod.Name + ")"
	case KindDyn:
		return fmt.Sprint(v.dyn)
	default:
		return "<invalid>"
	}
}

func unitSuffix(u ast.Unit) string {
	switch u {
	case ast.UnitPt:
		return "pt"
	case ast.UnitMm:
		return "mm"
	case ast.UnitCm:
		return "cm"
	case ast.UnitIn:
		return "in"
	case ast.UnitEm:
		return "em"
	case ast.UnitFr:
		return "fr"
	case ast.UnitRad:
		return "rad"
	case ast.UnitDeg:
		return "deg"
	case ast.UnitPercent:
		return "%"
	default:
		return ""
	}
}

// Equal implements the variant-specific equality spec.md §3 requires.
// Cross-kind comparisons (other than the numeric tower) are always false,
// matching the teacher's NullKind/BoolKind disjoint-comparison pattern in
// cue/types.go's equality handling.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		if (a.kind == KindInt || a.kind == KindFloat) && (b.kind == KindInt || b.kind == KindFloat) {
			af, bf := a.f, b.f
			if a.kind == KindInt {
				af = float64(a.i)
			}
			if b.kind == KindInt {
				bf = float64(b.i)
			}
			return af == bf
		}
		return false
	}
	switch a.kind {
	case KindNone, KindAuto:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindNumeric:
		return a.f == b.f && a.unit == b.unit
	case KindStr, KindLabel, KindSymbol:
		return a.s == b.s
	case KindArray:
		return a.arr.equal(b.arr)
	case KindDict:
		return a.dict.equal(b.dict)
	case KindModule:
		return a.mod == b.mod
	case KindFunc:
		return a.fn == b.fn
	default:
		return false
	}
}

// arrayData is the persistent backing store for Array values: copy-on-write
// via slice sharing, matching spec.md §9 "Persistent collections".
type arrayData struct {
	items []Value
}

func Array(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, arr: &arrayData{items: cp}}
}

func (a *arrayData) String() string {
	out := "("
	for i, it := range a.items {
		if i > 0 {
			out += ", "
		}
		out += it.String()
	}
	return out + ")"
}

func (a *arrayData) equal(b *arrayData) bool {
	if a == b {
		return true
	}
	if len(a.items) != len(b.items) {
		return false
	}
	for i := range a.items {
		if !Equal(a.items[i], b.items[i]) {
			return false
		}
	}
	return true
}

func (v Value) ArrayItems() []Value {
	if v.kind != KindArray {
		return nil
	}
	out := make([]Value, len(v.arr.items))
	copy(out, v.arr.items)
	return out
}

func (v Value) ArrayLen() int {
	if v.kind != KindArray {
		return 0
	}
	return len(v.arr.items)
}

// dictData preserves insertion order (spec.md §3 "insertion order
// preserved") via a parallel key slice next to the value map.
type dictData struct {
	keys   []string
	values map[string]Value
}

func Dict(keys []string, values map[string]Value) Value {
	d := &dictData{keys: append([]string(nil), keys...), values: make(map[string]Value, len(values))}
	for k, v := range values {
		d.values[k] = v
	}
	return Value{kind: KindDict, dict: d}
}

func EmptyDict() Value {
	return Value{kind: KindDict, dict: &dictData{values: map[string]Value{}}}
}

func (d *dictData) String() string {
	out := "("
	for i, k := range d.keys {
		if i > 0 {
			out += ", "
		}
		out += k + ": " + d.values[k].String()
	}
	if len(d.keys) == 0 {
		out += ":"
	}
	return out + ")"
}

func (d *dictData) equal(o *dictData) bool {
	if d == o {
		return true
	}
	if len(d.keys) != len(o.keys) {
		return false
	}
	for _, k := range d.keys {
		ov, ok := o.values[k]
		if !ok || !Equal(d.values[k], ov) {
			return false
		}
	}
	return true
}

func (v Value) DictGet(key string) (Value, bool) {
	if v.kind != KindDict {
		return None, false
	}
	val, ok := v.dict.values[key]
	return val, ok
}

// DictSet returns a new Dict value with key set to val, appending key to
// the insertion order if it was not already present (copy-on-write: the
// receiver is left untouched).
func (v Value) DictSet(key string, val Value) Value {
	nd := &dictData{
		keys:   append([]string(nil), v.dict.keys...),
		values: make(map[string]Value, len(v.dict.values)+1),
	}
	for k, vv := range v.dict.values {
		nd.values[k] = vv
	}
	if _, existed := nd.values[key]; !existed {
		nd.keys = append(nd.keys, key)
	}
	nd.values[key] = val
	return Value{kind: KindDict, dict: nd}
}

func (v Value) DictKeys() []string {
	if v.kind != KindDict {
		return nil
	}
	return append([]string(nil), v.dict.keys...)
}

func (v Value) DictLen() int {
	if v.kind != KindDict {
		return 0
	}
	return len(v.dict.keys)
}

// SortedKeys returns a's keys sorted by name, used wherever scope or
// dictionary iteration must be deterministic beyond insertion order
// (spec.md §4 "Ordering").
func SortedKeys(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	return out
}

// Module is the KindModule payload: a named unit exposing a binding scope
// and content tree, equal by handle (spec.md §6 "Module (produced)").
type Module struct {
	Name    string
	FileID  string
	Scope   ScopeLike
	Content content.Content
}

func ModuleVal(m *Module) Value { return Value{kind: KindModule, mod: m} }

// ScopeLike is satisfied by internal/core/scope.Scope; declared here to
// avoid an import cycle between value and scope (scope.Scope holds
// Values, so value cannot import scope).
type ScopeLike interface {
	Names() []string
	Get(name string) (Value, bool)
}

// Args is the KindArgs payload: an ordered positional list plus named
// arguments, used both as a call's argument bundle and as the sink value
// for `..rest` parameters (spec.md §4.1.6).
type Args struct {
	Span       ast.Node // originating call span carrier, kept opaque here
	Positional []Value
	NamedKeys  []string
	Named      map[string]Value
}

func NewArgs() *Args { return &Args{Named: map[string]Value{}} }

func ArgsVal(a *Args) Value { return Value{kind: KindArgs, args: a} }

func (a *Args) Clone() *Args {
	cp := &Args{
		Positional: append([]Value(nil), a.Positional...),
		NamedKeys:  append([]string(nil), a.NamedKeys...),
		Named:      make(map[string]Value, len(a.Named)),
	}
	for k, v := range a.Named {
		cp.Named[k] = v
	}
	return cp
}
