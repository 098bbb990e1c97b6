package state

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hguenther/smtrs/internal/composite"
	"github.com/hguenther/smtrs/internal/logic"
	"github.com/hguenther/smtrs/internal/transform"
)

// Joiner merges the states reaching a control-flow join.
type Joiner struct {
	em     logic.Embed
	logger *zap.Logger
}

// NewJoiner creates a joiner. A nil logger disables logging.
func NewJoiner(em logic.Embed, logger *zap.Logger) *Joiner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Joiner{em: em, logger: logger}
}

// JoinResult describes a successful merge.
type JoinResult struct {
	State State
	// Shared counts merged leaves present on both sides.
	Shared int
	// Ites counts shared leaves that differ and needed an ite.
	Ites int
}

// Join merges l, taken when cond holds, with r. Both states are evaluated
// over base. The second result is false when the values have incompatible
// shapes and must be kept separate.
//
// Map caches reachable from either state are cleared before evaluation.
func (j *Joiner) Join(cond logic.Expr, l, r State, base []logic.Expr) (JoinResult, bool, error) {
	merged, ok := l.Value.Combine(r.Value)
	if !ok {
		j.logger.Info("states kept separate",
			zap.String("left", fmt.Sprintf("%T", l.Value)),
			zap.String("right", fmt.Sprintf("%T", r.Value)),
		)
		return JoinResult{}, false, nil
	}

	l.Leaves.ClearCache()
	r.Leaves.ClearCache()
	left, err := l.Materialize(base, j.em)
	if err != nil {
		return JoinResult{}, false, err
	}
	right, err := r.Materialize(base, j.em)
	if err != nil {
		return JoinResult{}, false, err
	}

	m := &iteMerger{
		em:    j.em,
		cond:  cond,
		left:  left,
		right: right,
		out:   make([]logic.Expr, merged.NumElem()),
	}
	var cur composite.Cursors
	l.Value.CombineElem(r.Value, m, &cur)
	if m.err != nil {
		return JoinResult{}, false, m.err
	}
	if cur.Merged != len(m.out) || cur.Left != len(left) || cur.Right != len(right) {
		panic(fmt.Sprintf("state: leaf walk visited %d/%d/%d slots, want %d/%d/%d",
			cur.Left, cur.Right, cur.Merged, len(left), len(right), len(m.out)))
	}

	j.logger.Debug("states merged",
		zap.Int("leaves", len(m.out)),
		zap.Int("shared", m.shared),
		zap.Int("ites", m.ites),
	)
	return JoinResult{
		State:  State{Value: merged, Leaves: transform.Constant(m.out)},
		Shared: m.shared,
		Ites:   m.ites,
	}, true, nil
}

// iteMerger builds the merged leaves. Leaves present on both sides become
// ite(cond, l, r) unless they are identical; one-sided leaves pass through.
type iteMerger struct {
	em          logic.Embed
	cond        logic.Expr
	left, right []logic.Expr
	out         []logic.Expr

	shared, ites int
	err          error
}

func (m *iteMerger) Both(left, right, merged int) {
	m.shared++
	l, r := m.left[left], m.right[right]
	if l.String() == r.String() {
		m.out[merged] = l
		return
	}
	if m.err != nil {
		return
	}
	e, err := logic.Ite(m.em, m.cond, l, r)
	if err != nil {
		m.err = err
		return
	}
	m.ites++
	m.out[merged] = e
}

func (m *iteMerger) OnlyLeft(left, merged int) {
	m.out[merged] = m.left[left]
}

func (m *iteMerger) OnlyRight(right, merged int) {
	m.out[merged] = m.right[right]
}
