// Package check runs the layout, invariant and merge reports over shape
// description files.
package check

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hguenther/smtrs/formatter"
	"github.com/hguenther/smtrs/internal/composite"
	"github.com/hguenther/smtrs/internal/config"
	"github.com/hguenther/smtrs/internal/logic"
	"github.com/hguenther/smtrs/internal/shape"
	"github.com/hguenther/smtrs/internal/state"
	"github.com/hguenther/smtrs/internal/transform"
)

// Engine produces reports for description files.
type Engine interface {
	Run(path string) ([]formatter.Report, error)
	RunSource(name string, source []byte) ([]formatter.Report, error)
}

// Checker is the Engine producing one kind of report.
type Checker struct {
	kind   string
	config config.Config
	em     logic.Embed
	joiner *state.Joiner
	cache  *Cache
}

// New creates a checker for the given report kind, configured from the file
// at configurationPath.
func New(kind, configurationPath string, logger *zap.Logger) (*Checker, error) {
	cfg, err := config.Load(configurationPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(kind, cfg, logic.NewBuilder(), logger), nil
}

// NewWithConfig creates a checker from a loaded configuration.
func NewWithConfig(kind string, cfg config.Config, em logic.Embed, logger *zap.Logger) *Checker {
	return &Checker{
		kind:   kind,
		config: cfg,
		em:     em,
		joiner: state.NewJoiner(em, logger),
	}
}

// UseCache makes Run reuse the reports of unchanged files.
func (c *Checker) UseCache(cache *Cache) {
	c.cache = cache
}

// Run reads a .yaml description or a .txtar bundle of descriptions.
func (c *Checker) Run(path string) ([]formatter.Report, error) {
	key := c.kind + ":" + path
	settings := fmt.Sprintf("%+v", c.config)
	if c.cache != nil {
		if reports, ok := c.cache.Get(key, path, settings); ok {
			return reports, nil
		}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	reports, err := c.RunSource(path, source)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.Set(key, path, settings, reports); err != nil {
			return nil, err
		}
	}
	return reports, nil
}

// RunSource checks in-memory content; name decides how it is parsed.
func (c *Checker) RunSource(name string, source []byte) ([]formatter.Report, error) {
	bundle, err := readBundle(name, source)
	if err != nil {
		return nil, err
	}

	if c.kind == formatter.MergeReport {
		left, err := bundle.Get("left")
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		right, err := bundle.Get("right")
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		r, err := c.Merge(name, left, right)
		if err != nil {
			return nil, err
		}
		return []formatter.Report{r}, nil
	}

	reports := make([]formatter.Report, 0, len(bundle.Names))
	for _, n := range bundle.Names {
		label := name
		if filepath.Ext(name) == ".txtar" {
			label = name + ":" + n
		}
		var r formatter.Report
		var err error
		if c.kind == formatter.InvariantReport {
			r, err = c.Invariant(label, bundle.Nodes[n])
		} else {
			r, err = c.Layout(label, bundle.Nodes[n])
		}
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func readBundle(name string, source []byte) (*shape.Bundle, error) {
	if filepath.Ext(name) == ".txtar" {
		return shape.ParseBundle(source)
	}
	n, err := shape.Decode(bytes.NewReader(source))
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	base := filepath.Base(name)
	base = base[:len(base)-len(filepath.Ext(base))]
	return &shape.Bundle{Names: []string{base}, Nodes: map[string]*shape.Node{base: n}}, nil
}

// Layout lists the leaves of the described value.
func (c *Checker) Layout(source string, n *shape.Node) (formatter.Report, error) {
	slots, err := formatter.Slots(n, c.em, nil)
	if err != nil {
		return formatter.Report{}, errors.Wrap(err, source)
	}
	return formatter.Report{
		Kind:   formatter.LayoutReport,
		Source: source,
		Shape:  formatter.Summary(n),
		Slots:  slots,
	}, nil
}

// Invariant allocates fresh leaves for the described value and lists its
// invariants over them.
func (c *Checker) Invariant(source string, n *shape.Node) (formatter.Report, error) {
	v, err := n.Build()
	if err != nil {
		return formatter.Report{}, errors.Wrap(err, source)
	}
	base, err := state.Fresh(v, c.config.LeafPrefix, c.em)
	if err != nil {
		return formatter.Report{}, errors.Wrap(err, source)
	}
	inv, err := state.New(v).Assumptions(base, c.em)
	if err != nil {
		return formatter.Report{}, errors.Wrap(err, source)
	}
	slots, err := formatter.Slots(n, c.em, base)
	if err != nil {
		return formatter.Report{}, errors.Wrap(err, source)
	}
	return formatter.Report{
		Kind:   formatter.InvariantReport,
		Source: source,
		Shape:  formatter.Summary(n),
		Slots:  slots,
		Exprs:  logic.Strings(inv),
	}, nil
}

// Merge joins a left and a right value. Both get fresh leaves from one
// numbering, left first; the configured condition selects the left value.
func (c *Checker) Merge(source string, left, right *shape.Node) (formatter.Report, error) {
	l, err := left.Build()
	if err != nil {
		return formatter.Report{}, errors.Wrap(err, "left")
	}
	r, err := right.Build()
	if err != nil {
		return formatter.Report{}, errors.Wrap(err, "right")
	}
	report := formatter.Report{Kind: formatter.MergeReport, Source: source, Shape: formatter.Summary(left)}

	base, err := state.Fresh(composite.Product{l, r}, c.config.LeafPrefix, c.em)
	if err != nil {
		return formatter.Report{}, errors.Wrap(err, source)
	}
	id := transform.Id(len(base))
	ls := state.State{Value: l, Leaves: transform.View(0, l.NumElem(), id)}
	rs := state.State{Value: r, Leaves: transform.View(l.NumElem(), r.NumElem(), id)}
	cond := logic.Var{Name: c.config.Cond, S: logic.Bool()}

	res, ok, err := c.joiner.Join(cond, ls, rs, base)
	if err != nil {
		return formatter.Report{}, errors.Wrap(err, source)
	}
	if !ok {
		return report, nil
	}

	leaves, err := res.State.Materialize(nil, c.em)
	if err != nil {
		return formatter.Report{}, err
	}
	desc, err := shape.Describe(res.State.Value)
	if err != nil {
		return formatter.Report{}, err
	}
	slots, err := formatter.Slots(desc, c.em, leaves)
	if err != nil {
		return formatter.Report{}, err
	}
	report.Shape = formatter.Summary(desc)
	report.Slots = slots
	report.Merged = true
	report.Shared = res.Shared
	report.Ites = res.Ites
	return report, nil
}
