package node_test

import (
	"testing"

	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
	"github.com/stretchr/testify/assert"
)

func TestGetParam_Indirection(t *testing.T) {
	n := newProbe("p", nil, domain.Success)
	n.SetParam("target", "$foo")
	bb := blackboard.New(nil)

	bb.SetLocal("foo", 5)
	assert.Equal(t, 5, n.GetParam("target", "fallback", bb))
}

func TestGetParam_GlobalIndirection(t *testing.T) {
	n := newProbe("p", nil, domain.Success)
	n.SetParam("target", "$foo")
	bb := blackboard.New(nil)

	bb.SetGlobal("foo", "from-global")
	assert.Equal(t, "from-global", n.GetParam("target", "fallback", bb))

	bb.SetLocal("foo", "from-local")
	assert.Equal(t, "from-local", n.GetParam("target", "fallback", bb))
}

func TestGetParam_UnresolvedReturnsLiteral(t *testing.T) {
	n := newProbe("p", nil, domain.Success)
	n.SetParam("target", "$foo")

	got := n.GetParam("target", "fallback", blackboard.New(nil))
	assert.Equal(t, "$foo", got, "an unresolved indirection returns the literal marker, not the fallback")
}

func TestGetParam_AbsentAndLiteral(t *testing.T) {
	n := newProbe("p", nil, domain.Success)
	bb := blackboard.New(nil)

	assert.Equal(t, 7, n.GetParam("missing", 7, bb))

	n.SetParam("speed", 2.5)
	assert.Equal(t, 2.5, n.GetParam("speed", 0.0, bb))

	n.SetParam("name", "plain")
	assert.Equal(t, "plain", n.GetParam("name", "", bb))
}

func TestTypedParams(t *testing.T) {
	n := newProbe("p", nil, domain.Success)
	bb := blackboard.New(nil)
	bb.SetLocal("pos", domain.Vector{X: 1, Y: 2})

	n.SetParam("count", 3.0)
	n.SetParam("unresolved", "$nothing")
	n.SetParam("flag", "true")
	n.SetParam("where", "$pos")

	assert.Equal(t, 3, n.ParamInt("count", 1, bb))
	assert.Equal(t, 9.0, n.ParamFloat("unresolved", 9, bb), "literal marker does not coerce to a number")
	assert.Equal(t, "$nothing", n.ParamString("unresolved", "x", bb))
	assert.True(t, n.ParamBool("flag", false, bb))
	assert.Equal(t, domain.Vector{X: 1, Y: 2}, n.ParamVector("where", domain.Vector{}, bb))
}

func TestNewBase_CopiesDefaults(t *testing.T) {
	defaults := map[string]any{"count": 1}
	a := node.NewBase(node.Single, defaults)
	a.SetParam("count", 5)
	assert.Equal(t, 1, defaults["count"])
}

func TestRoot(t *testing.T) {
	root := node.NewRoot("guard")
	assert.Equal(t, "guard", root.Label())
	assert.Equal(t, node.TypeRoot, root.Type())
	assert.Equal(t, domain.Failure, root.Tick(nil, newBoard(0)), "empty root fails")

	root.AddChild(newProbe("c", nil, domain.Running))
	assert.Equal(t, domain.Running, root.Tick(nil, newBoard(0)))
}

func TestWalk(t *testing.T) {
	root := node.NewRoot("t")
	seq := withChildren(node.NewSequence(), newProbe("a", nil, domain.Success), newProbe("b", nil, domain.Success))
	seq.SetLabel("seq")
	root.AddChild(seq)

	var visited []string
	node.Walk(root, func(n node.Node, depth int) bool {
		visited = append(visited, n.Label())
		return true
	})
	assert.Equal(t, []string{"t", "seq", "a", "b"}, visited)

	visited = nil
	node.Walk(root, func(n node.Node, depth int) bool {
		visited = append(visited, n.Label())
		return depth < 1
	})
	assert.Equal(t, []string{"t", "seq"}, visited)
}
