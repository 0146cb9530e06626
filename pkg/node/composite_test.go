package node_test

import (
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
	"github.com/stretchr/testify/assert"
)

func TestSequence_StopsAtFirstNonSuccess(t *testing.T) {
	var calls []string
	d := newProbe("D", &calls, domain.Success)
	seq := withChildren(node.NewSequence(),
		newProbe("A", &calls, domain.Success),
		newProbe("B", &calls, domain.Success),
		newProbe("C", &calls, domain.Failure),
		d,
	)

	assert.Equal(t, domain.Failure, seq.Tick(nil, newBoard(0)))
	assert.Equal(t, []string{"A", "B", "C"}, calls)
	assert.Zero(t, d.calls)
}

func TestSequence_AllSucceed(t *testing.T) {
	seq := withChildren(node.NewSequence(),
		newProbe("A", nil, domain.Success),
		newProbe("B", nil, domain.Success),
	)
	assert.Equal(t, domain.Success, seq.Tick(nil, newBoard(0)))
}

func TestSequence_RestartsEveryTick(t *testing.T) {
	var calls []string
	seq := withChildren(node.NewSequence(),
		newProbe("A", &calls, domain.Success),
		newProbe("B", &calls, domain.Running),
	)

	assert.Equal(t, domain.Running, seq.Tick(nil, newBoard(0)))
	assert.Equal(t, domain.Running, seq.Tick(nil, newBoard(0)))
	assert.Equal(t, []string{"A", "B", "A", "B"}, calls)
}

func TestSelect_StopsAtFirstNonFailure(t *testing.T) {
	var calls []string
	c := newProbe("C", &calls, domain.Success)
	sel := withChildren(node.NewSelect(),
		newProbe("A", &calls, domain.Failure),
		newProbe("B", &calls, domain.Success),
		c,
	)

	assert.Equal(t, domain.Success, sel.Tick(nil, newBoard(0)))
	assert.Equal(t, []string{"A", "B"}, calls)
	assert.Zero(t, c.calls)
}

func TestSelect_AllFail(t *testing.T) {
	sel := withChildren(node.NewSelect(),
		newProbe("A", nil, domain.Failure),
		newProbe("B", nil, domain.Failure),
	)
	assert.Equal(t, domain.Failure, sel.Tick(nil, newBoard(0)))
}

func TestComposites_NoChildrenFail(t *testing.T) {
	for _, n := range []node.Node{node.NewSequence(), node.NewSelect(), node.NewSequenceStar(), node.NewSelectStar()} {
		assert.Equal(t, domain.Failure, n.Tick(nil, newBoard(0)), n.Type())
	}
}

func TestSequenceStar_ResumesOnFirstChild(t *testing.T) {
	var calls []string
	a := newProbe("A", &calls, domain.Success, domain.Running, domain.Success)
	b := newProbe("B", &calls, domain.Running, domain.Success)
	seq := withChildren(node.NewSequenceStar(), a, b)

	// Scan: A succeeds, B runs and is remembered.
	assert.Equal(t, domain.Running, seq.Tick(nil, newBoard(0)))
	assert.Equal(t, 1, seq.RunningIndex())
	assert.Equal(t, []string{"A", "B"}, calls)

	// Resume re-invokes the first child, not the remembered one.
	assert.Equal(t, domain.Running, seq.Tick(nil, newBoard(0)))
	assert.Equal(t, []string{"A", "B", "A"}, calls)
	assert.Equal(t, 1, seq.RunningIndex())

	// The resumed result is returned unchanged and clears the memory.
	assert.Equal(t, domain.Success, seq.Tick(nil, newBoard(0)))
	assert.Equal(t, -1, seq.RunningIndex())
	assert.Equal(t, []string{"A", "B", "A", "A"}, calls)
}

func TestSequenceStar_ScanWithoutRunning(t *testing.T) {
	var calls []string
	seq := withChildren(node.NewSequenceStar(),
		newProbe("A", &calls, domain.Success),
		newProbe("B", &calls, domain.Failure),
	)
	assert.Equal(t, domain.Failure, seq.Tick(nil, newBoard(0)))
	assert.Equal(t, -1, seq.RunningIndex())
	assert.Equal(t, domain.Failure, seq.Tick(nil, newBoard(0)))
	assert.Equal(t, []string{"A", "B", "A", "B"}, calls)
}

func TestSelectStar_ScanReturnsFirstNonSuccess(t *testing.T) {
	var calls []string
	sel := withChildren(node.NewSelectStar(),
		newProbe("A", &calls, domain.Success),
		newProbe("B", &calls, domain.Failure),
		newProbe("C", &calls, domain.Success),
	)

	assert.Equal(t, domain.Failure, sel.Tick(nil, newBoard(0)))
	assert.Equal(t, []string{"A", "B"}, calls)
}

func TestSelectStar_AllSucceedFails(t *testing.T) {
	sel := withChildren(node.NewSelectStar(),
		newProbe("A", nil, domain.Success),
		newProbe("B", nil, domain.Success),
	)
	assert.Equal(t, domain.Failure, sel.Tick(nil, newBoard(0)))
}

func TestSelectStar_RemembersRunning(t *testing.T) {
	var calls []string
	a := newProbe("A", &calls, domain.Running, domain.Failure)
	b := newProbe("B", &calls, domain.Success)
	sel := withChildren(node.NewSelectStar(), a, b)

	assert.Equal(t, domain.Running, sel.Tick(nil, newBoard(0)))
	assert.Equal(t, 0, sel.RunningIndex())

	assert.Equal(t, domain.Failure, sel.Tick(nil, newBoard(0)))
	assert.Equal(t, -1, sel.RunningIndex())
	assert.Equal(t, []string{"A", "A"}, calls)
}

func TestStar_DebugValues(t *testing.T) {
	seq := withChildren(node.NewSequenceStar(), newProbe("A", nil, domain.Running))
	seq.SetLabel("patrol")
	bb := newBoard(0)
	seq.Tick(nil, bb)
	seq.LoadDebugValues(bb)
	assert.Equal(t, 0, bb.LocalOr("debug.patrol:running", nil))
}
