package shape

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/hguenther/smtrs/internal/logic"
)

// ParseSort parses a sort in SMT-LIB notation.
func ParseSort(s string) (logic.Sort, error) {
	p := &sortParser{toks: tokenize(s)}
	srt, err := p.sort()
	if err != nil {
		return logic.Sort{}, errors.Wrapf(err, "sort %q", s)
	}
	if p.pos != len(p.toks) {
		return logic.Sort{}, errors.Errorf("sort %q: trailing %q", s, p.toks[p.pos])
	}
	return srt, nil
}

// FormatSort renders a sort in the notation ParseSort accepts.
func FormatSort(s logic.Sort) string {
	switch s.Kind {
	case logic.KindBool:
		return "Bool"
	case logic.KindInt:
		return "Int"
	case logic.KindReal:
		return "Real"
	case logic.KindBitVec:
		return "(_ BitVec " + strconv.Itoa(s.Width) + ")"
	case logic.KindArray:
		parts := []string{"Array"}
		for _, idx := range s.Index {
			parts = append(parts, FormatSort(idx))
		}
		parts = append(parts, FormatSort(*s.Elem))
		return "(" + strings.Join(parts, " ") + ")"
	}
	return s.String()
}

func tokenize(s string) []string {
	var toks []string
	cur := strings.Builder{}
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

type sortParser struct {
	toks []string
	pos  int
}

func (p *sortParser) next() (string, error) {
	if p.pos >= len(p.toks) {
		return "", errors.New("unexpected end")
	}
	t := p.toks[p.pos]
	p.pos++
	return t, nil
}

func (p *sortParser) expect(want string) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	if t != want {
		return errors.Errorf("expected %q, got %q", want, t)
	}
	return nil
}

func (p *sortParser) sort() (logic.Sort, error) {
	t, err := p.next()
	if err != nil {
		return logic.Sort{}, err
	}
	switch t {
	case "Bool":
		return logic.Bool(), nil
	case "Int":
		return logic.Int(), nil
	case "Real":
		return logic.Real(), nil
	case "(":
	default:
		return logic.Sort{}, errors.Errorf("unknown sort %q", t)
	}

	head, err := p.next()
	if err != nil {
		return logic.Sort{}, err
	}
	switch head {
	case "_":
		if err := p.expect("BitVec"); err != nil {
			return logic.Sort{}, err
		}
		w, err := p.next()
		if err != nil {
			return logic.Sort{}, err
		}
		width, err := strconv.Atoi(w)
		if err != nil || width <= 0 {
			return logic.Sort{}, errors.Errorf("invalid bit-vector width %q", w)
		}
		if err := p.expect(")"); err != nil {
			return logic.Sort{}, err
		}
		return logic.BitVec(width), nil

	case "Array":
		var args []logic.Sort
		for p.pos < len(p.toks) && p.toks[p.pos] != ")" {
			a, err := p.sort()
			if err != nil {
				return logic.Sort{}, err
			}
			args = append(args, a)
		}
		if err := p.expect(")"); err != nil {
			return logic.Sort{}, err
		}
		if len(args) < 2 {
			return logic.Sort{}, errors.New("array sort needs index and element sorts")
		}
		return logic.Array(args[:len(args)-1], args[len(args)-1]), nil
	}
	return logic.Sort{}, errors.Errorf("unknown sort constructor %q", head)
}
