package leaf_test

import (
	"testing"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/leaf"
	"github.com/stretchr/testify/assert"
)

type npc struct {
	Name string
	HP   int
}

func TestCondition(t *testing.T) {
	bb := blackboard.New(nil)
	bb.SetLocal("hp", 12)
	bb.SetGlobal("alarm", true)

	tests := []struct {
		expr string
		want domain.Status
	}{
		{`local.hp < 20`, domain.Success},
		{`local.hp > 20`, domain.Failure},
		{`Has("alarm") && Get("alarm") == true`, domain.Success},
		{`Has("nothing")`, domain.Failure},
		{`actor.HP == 7 && actor.Name == "grunt"`, domain.Success},
		{`local.hp <`, domain.Error},
		{`local.missing > 1`, domain.Error},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			n := leaf.NewCondition(logging.NewNop())
			n.SetParam("expression", tt.expr)
			assert.Equal(t, tt.want, n.Tick(npc{Name: "grunt", HP: 7}, bb))
		})
	}
}

func TestCondition_ReevaluatesEachTick(t *testing.T) {
	bb := blackboard.New(nil)
	bb.SetLocal("ready", false)

	n := leaf.NewCondition(logging.NewNop())
	n.SetParam("expression", "local.ready")
	assert.Equal(t, domain.Failure, n.Tick(nil, bb))

	bb.SetLocal("ready", true)
	assert.Equal(t, domain.Success, n.Tick(nil, bb))
}

func TestCondition_EmptyExpressionFails(t *testing.T) {
	assert.Equal(t, domain.Failure, leaf.NewCondition(nil).Tick(nil, blackboard.New(nil)))
}
