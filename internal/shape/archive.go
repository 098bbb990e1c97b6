package shape

import (
	"bytes"
	"os"
	"path"

	"github.com/pkg/errors"
	"golang.org/x/tools/txtar"
)

// Bundle is a set of named descriptions read from a txtar archive. Names are
// the archive file names without their .yaml extension.
type Bundle struct {
	// Comment is the archive's leading text.
	Comment string
	Names   []string
	Nodes   map[string]*Node
}

// ParseBundle reads every .yaml member of a txtar archive.
func ParseBundle(data []byte) (*Bundle, error) {
	ar := txtar.Parse(data)
	b := &Bundle{Comment: string(ar.Comment), Nodes: make(map[string]*Node)}
	for _, f := range ar.Files {
		if path.Ext(f.Name) != ".yaml" {
			continue
		}
		name := f.Name[:len(f.Name)-len(".yaml")]
		if _, dup := b.Nodes[name]; dup {
			return nil, errors.Errorf("duplicate shape %q", name)
		}
		n, err := Decode(bytes.NewReader(f.Data))
		if err != nil {
			return nil, errors.Wrap(err, f.Name)
		}
		b.Names = append(b.Names, name)
		b.Nodes[name] = n
	}
	return b, nil
}

// LoadBundle reads a txtar archive file.
func LoadBundle(file string) (*Bundle, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	b, err := ParseBundle(data)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	return b, nil
}

// Get returns the named description.
func (b *Bundle) Get(name string) (*Node, error) {
	n, ok := b.Nodes[name]
	if !ok {
		return nil, errors.Errorf("bundle has no shape %q", name)
	}
	return n, nil
}

// FormatBundle renders descriptions as a txtar archive, in the given order.
func FormatBundle(comment string, names []string, nodes map[string]*Node) ([]byte, error) {
	ar := &txtar.Archive{Comment: []byte(comment)}
	for _, name := range names {
		data, err := Marshal(nodes[name])
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		ar.Files = append(ar.Files, txtar.File{Name: name + ".yaml", Data: data})
	}
	return txtar.Format(ar), nil
}
