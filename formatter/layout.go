package formatter

import (
	"fmt"
	"slices"

	"github.com/hguenther/smtrs/internal/composite"
	"github.com/hguenther/smtrs/internal/logic"
	"github.com/hguenther/smtrs/internal/shape"
)

type LayoutFormatter struct{}

func (f *LayoutFormatter) ReportTemplate() string {
	return `{{header .Kind .Source .Shape .IndexWidth -}}
{{slots .Slots .IndexWidth .PathWidth .SortWidth .Padding -}}
{{summary .Padding "%d leaves" (len .Slots)}}
`
}

// Slot is one leaf of a value's flat encoding.
type Slot struct {
	Index int
	// Path locates the leaf in the description: "$" is the root, [i] an
	// element, .k a map entry, pair component or choice payload, #k a
	// choice selector, ? an option payload and [*] an array element.
	Path string
	Sort string
	Expr string
}

// Slots lists the leaves of the value n describes. exprs, when not nil,
// holds the expression in each leaf.
func Slots(n *shape.Node, em logic.Embed, exprs []logic.Expr) ([]Slot, error) {
	c, err := n.Build()
	if err != nil {
		return nil, err
	}
	sorts, err := composite.Sorts(c, em)
	if err != nil {
		return nil, err
	}
	paths := leafPaths(n, "$", nil)
	if len(paths) != len(sorts) {
		panic(fmt.Sprintf("formatter: %d leaf paths for %d leaves", len(paths), len(sorts)))
	}
	if exprs != nil && len(exprs) != len(sorts) {
		return nil, fmt.Errorf("%d expressions for %d leaves", len(exprs), len(sorts))
	}

	out := make([]Slot, len(sorts))
	for i := range sorts {
		out[i] = Slot{Index: i, Path: paths[i], Sort: shape.FormatSort(sorts[i])}
		if exprs != nil {
			out[i].Expr = exprs[i].String()
		}
	}
	return out, nil
}

// leafPaths appends the path of every leaf of n in leaf order.
func leafPaths(n *shape.Node, path string, out []string) []string {
	switch n.Kind {
	case shape.KindSingleton, shape.KindBool:
		out = append(out, path)
	case shape.KindVec, shape.KindProduct:
		for i, el := range n.Elems {
			out = leafPaths(el, fmt.Sprintf("%s[%d]", path, i), out)
		}
	case shape.KindPair:
		out = leafPaths(n.First, path+".first", out)
		out = leafPaths(n.Second, path+".second", out)
	case shape.KindMap:
		for _, k := range sortedKeys(n.Entries) {
			out = leafPaths(n.Entries[k], path+"."+k, out)
		}
	case shape.KindOption:
		if n.Value != nil {
			out = leafPaths(n.Value, path+"?", out)
		}
	case shape.KindChoice:
		for _, k := range sortedKeys(n.Alts) {
			out = append(out, path+"#"+k)
			out = leafPaths(n.Alts[k], path+"."+k, out)
		}
	case shape.KindArray:
		out = leafPaths(n.Elem, path+"[*]", out)
	}
	return out
}

// Summary renders the top of a description, e.g. "vec of 3".
func Summary(n *shape.Node) string {
	switch n.Kind {
	case shape.KindSingleton:
		return "singleton " + n.Sort
	case shape.KindVec, shape.KindProduct:
		return fmt.Sprintf("%s of %d", n.Kind, len(n.Elems))
	case shape.KindMap:
		return fmt.Sprintf("map of %d", len(n.Entries))
	case shape.KindChoice:
		return fmt.Sprintf("choice of %d", len(n.Alts))
	case shape.KindOption:
		if n.Value == nil {
			return "option (none)"
		}
		return "option (some)"
	}
	return string(n.Kind)
}

func sortedKeys(m map[string]*shape.Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
