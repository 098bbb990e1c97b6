package logic

import (
	"fmt"
	"sort"
	"strings"
)

// Value is a concrete value an expression can evaluate to.
type Value interface {
	isValue()
	String() string
	Equal(other Value) bool
}

// BoolValue represents a boolean constant.
type BoolValue struct {
	Val bool
}

func (BoolValue) isValue() {}
func (v BoolValue) String() string {
	return fmt.Sprintf("%t", v.Val)
}

func (v BoolValue) Equal(other Value) bool {
	if o, ok := other.(BoolValue); ok {
		return v.Val == o.Val
	}
	return false
}

// IntValue represents an integer constant.
type IntValue struct {
	Val int64
}

func (IntValue) isValue() {}
func (v IntValue) String() string {
	return fmt.Sprintf("%d", v.Val)
}

func (v IntValue) Equal(other Value) bool {
	if o, ok := other.(IntValue); ok {
		return v.Val == o.Val
	}
	return false
}

// ArrayValue is a finite-support array: every index not in Entries maps to
// Default. Entries is keyed by the rendering of the index tuple.
type ArrayValue struct {
	Default Value
	Entries map[string]Value
}

func (ArrayValue) isValue() {}

func (v ArrayValue) String() string {
	keys := make([]string, 0, len(v.Entries))
	for k := range v.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, k+"->"+v.Entries[k].String())
	}
	parts = append(parts, "else->"+v.Default.String())
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v ArrayValue) Equal(other Value) bool {
	o, ok := other.(ArrayValue)
	if !ok || !v.Default.Equal(o.Default) || len(v.Entries) != len(o.Entries) {
		return false
	}
	for k, val := range v.Entries {
		ov, ok := o.Entries[k]
		if !ok || !val.Equal(ov) {
			return false
		}
	}
	return true
}

// Lookup returns the element stored at the given index tuple.
func (v ArrayValue) Lookup(index []Value) Value {
	if val, ok := v.Entries[IndexKey(index)]; ok {
		return val
	}
	return v.Default
}

// IndexKey renders an index tuple as an ArrayValue entry key.
func IndexKey(index []Value) string {
	parts := make([]string, len(index))
	for i, idx := range index {
		parts[i] = idx.String()
	}
	return strings.Join(parts, ",")
}

// Model assigns concrete values to variables.
type Model struct {
	vars   map[string]Value
	parent *Model
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{vars: make(map[string]Value)}
}

// NewChildModel creates a model whose bindings shadow those of parent.
func NewChildModel(parent *Model) *Model {
	return &Model{vars: make(map[string]Value), parent: parent}
}

// Get returns the value bound to name, or nil if it is unbound.
func (m *Model) Get(name string) Value {
	if v, ok := m.vars[name]; ok {
		return v
	}
	if m.parent != nil {
		return m.parent.Get(name)
	}
	return nil
}

// Set binds name in the current scope.
func (m *Model) Set(name string, val Value) {
	m.vars[name] = val
}

// SetBool is shorthand for Set(name, BoolValue{Val: b}).
func (m *Model) SetBool(name string, b bool) {
	m.Set(name, BoolValue{Val: b})
}

// SetInt is shorthand for Set(name, IntValue{Val: i}).
func (m *Model) SetInt(name string, i int64) {
	m.Set(name, IntValue{Val: i})
}

// Clone copies the current scope; the parent is shared.
func (m *Model) Clone() *Model {
	out := &Model{
		vars:   make(map[string]Value, len(m.vars)),
		parent: m.parent,
	}
	for k, v := range m.vars {
		out.vars[k] = v
	}
	return out
}

// Keys returns the variables bound in this scope, sorted.
func (m *Model) Keys() []string {
	keys := make([]string, 0, len(m.vars))
	for k := range m.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Model) String() string {
	keys := m.Keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+m.vars[k].String())
	}
	result := "{" + strings.Join(parts, ", ")
	if m.parent != nil {
		result += " | parent: " + m.parent.String()
	}
	return result + "}"
}
