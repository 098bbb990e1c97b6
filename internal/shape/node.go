package shape

import (
	"bytes"
	"io"
	"os"
	"slices"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hguenther/smtrs/internal/composite"
)

// Kind names a composite shape in a description.
type Kind string

const (
	KindSingleton Kind = "singleton"
	KindBool      Kind = "bool"
	KindUnit      Kind = "unit"
	KindVec       Kind = "vec"
	KindProduct   Kind = "product"
	KindPair      Kind = "pair"
	KindMap       Kind = "map"
	KindOption    Kind = "option"
	KindChoice    Kind = "choice"
	KindArray     Kind = "array"
)

// Node describes one composite value.
type Node struct {
	Kind Kind `yaml:"kind"`
	// Sort of a singleton.
	Sort string `yaml:"sort,omitempty"`
	// Elems of a vec or product.
	Elems []*Node `yaml:"elems,omitempty"`
	// Entries of a map.
	Entries map[string]*Node `yaml:"entries,omitempty"`
	// Alts of a choice.
	Alts map[string]*Node `yaml:"alts,omitempty"`
	// Value of an option; absent means none.
	Value *Node `yaml:"value,omitempty"`
	// Index and Elem of an array.
	Index *Node `yaml:"index,omitempty"`
	Elem  *Node `yaml:"elem,omitempty"`
	// First and Second of a pair.
	First  *Node `yaml:"first,omitempty"`
	Second *Node `yaml:"second,omitempty"`
}

// Value types built from descriptions.
type (
	Vec    = composite.Vec[composite.Composite]
	Map    = composite.Map[string, composite.Composite]
	Option = composite.Option[composite.Composite]
	Choice = composite.Choice[string, composite.Composite]
	Alt    = composite.Alt[string, composite.Composite]
	Array  = composite.Array[composite.Composite, composite.Composite]
	Pair   = composite.Pair[composite.Composite, composite.Composite]
)

// Decode reads one description. Unknown fields are rejected.
func Decode(r io.Reader) (*Node, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var n Node
	if err := dec.Decode(&n); err != nil {
		return nil, errors.Wrap(err, "decode shape")
	}
	return &n, nil
}

// Load reads a description file.
func Load(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return n, nil
}

// Marshal renders a description as YAML.
func Marshal(n *Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Build constructs the composite value n describes.
func (n *Node) Build() (composite.Composite, error) {
	if n == nil {
		return nil, errors.New("missing node")
	}
	switch n.Kind {
	case KindSingleton:
		s, err := ParseSort(n.Sort)
		if err != nil {
			return nil, err
		}
		return composite.Singleton{S: s}, nil

	case KindBool:
		return composite.Bool{}, nil

	case KindUnit:
		return composite.Unit{}, nil

	case KindVec, KindProduct:
		elems := make([]composite.Composite, len(n.Elems))
		for i, el := range n.Elems {
			c, err := el.Build()
			if err != nil {
				return nil, errors.Wrapf(err, "elems[%d]", i)
			}
			elems[i] = c
		}
		if n.Kind == KindVec {
			return Vec(elems), nil
		}
		return composite.Product(elems), nil

	case KindPair:
		first, err := n.First.Build()
		if err != nil {
			return nil, errors.Wrap(err, "first")
		}
		second, err := n.Second.Build()
		if err != nil {
			return nil, errors.Wrap(err, "second")
		}
		return Pair{First: first, Second: second}, nil

	case KindMap:
		entries := make(map[string]composite.Composite, len(n.Entries))
		for _, k := range sortedKeys(n.Entries) {
			c, err := n.Entries[k].Build()
			if err != nil {
				return nil, errors.Wrapf(err, "entries[%s]", k)
			}
			entries[k] = c
		}
		return composite.NewMap(entries), nil

	case KindOption:
		if n.Value == nil {
			return composite.None[composite.Composite](), nil
		}
		c, err := n.Value.Build()
		if err != nil {
			return nil, errors.Wrap(err, "value")
		}
		return composite.Some(c), nil

	case KindChoice:
		alts := make([]Alt, 0, len(n.Alts))
		for _, k := range sortedKeys(n.Alts) {
			c, err := n.Alts[k].Build()
			if err != nil {
				return nil, errors.Wrapf(err, "alts[%s]", k)
			}
			alts = append(alts, Alt{Key: k, Val: c})
		}
		return composite.NewChoice(alts...), nil

	case KindArray:
		index, err := n.Index.Build()
		if err != nil {
			return nil, errors.Wrap(err, "index")
		}
		elem, err := n.Elem.Build()
		if err != nil {
			return nil, errors.Wrap(err, "elem")
		}
		return Array{Index: index, Elem: elem}, nil
	}
	return nil, errors.Errorf("unknown shape kind %q", n.Kind)
}

// Describe returns the description of a value built from descriptions.
func Describe(c composite.Composite) (*Node, error) {
	switch c := c.(type) {
	case composite.Singleton:
		return &Node{Kind: KindSingleton, Sort: FormatSort(c.S)}, nil
	case composite.Bool:
		return &Node{Kind: KindBool}, nil
	case composite.Unit:
		return &Node{Kind: KindUnit}, nil

	case Vec:
		elems, err := describeAll(c)
		return &Node{Kind: KindVec, Elems: elems}, err
	case composite.Product:
		elems, err := describeAll(c)
		return &Node{Kind: KindProduct, Elems: elems}, err

	case Pair:
		first, err := Describe(c.First)
		if err != nil {
			return nil, err
		}
		second, err := Describe(c.Second)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindPair, First: first, Second: second}, nil

	case Map:
		n := &Node{Kind: KindMap, Entries: make(map[string]*Node, c.Len())}
		for _, e := range c.Entries() {
			d, err := Describe(e.Val)
			if err != nil {
				return nil, err
			}
			n.Entries[e.Key] = d
		}
		return n, nil

	case Option:
		n := &Node{Kind: KindOption}
		if v, ok := c.Value(); ok {
			d, err := Describe(v)
			if err != nil {
				return nil, err
			}
			n.Value = d
		}
		return n, nil

	case Choice:
		n := &Node{Kind: KindChoice, Alts: make(map[string]*Node, c.Len())}
		for _, a := range c.Alternatives() {
			d, err := Describe(a.Val)
			if err != nil {
				return nil, err
			}
			n.Alts[a.Key] = d
		}
		return n, nil

	case Array:
		index, err := Describe(c.Index)
		if err != nil {
			return nil, err
		}
		elem, err := Describe(c.Elem)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindArray, Index: index, Elem: elem}, nil
	}
	return nil, errors.Errorf("cannot describe %T", c)
}

func describeAll(cs []composite.Composite) ([]*Node, error) {
	out := make([]*Node, len(cs))
	for i, c := range cs {
		d, err := Describe(c)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func sortedKeys(m map[string]*Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
