package leaf_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/leaf"
	"github.com/stretchr/testify/assert"
)

func TestDebugPrint(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	bb := blackboard.New(nil)
	bb.SetLocal("who", "orc")

	n := leaf.NewDebugPrint(logger)
	n.SetLabel("say")
	n.SetParam("message", "$who")

	assert.Equal(t, domain.Success, n.Tick(nil, bb))
	assert.Contains(t, buf.String(), "msg=orc")
	assert.Contains(t, buf.String(), "node=say")

	n.LoadDebugValues(bb)
	assert.Equal(t, "orc", bb.LocalOr("debug.say:message", nil))
}

func TestReturnStatus(t *testing.T) {
	tests := map[any]domain.Status{
		"SUCCESS": domain.Success,
		"failure": domain.Failure,
		"RUNNING": domain.Running,
		2:         domain.Running,
		"bogus":   domain.Error,
	}
	for in, want := range tests {
		n := leaf.NewReturnStatus()
		n.SetParam("status", in)
		assert.Equal(t, want, n.Tick(nil, blackboard.New(nil)), "%v", in)
	}
	assert.Equal(t, domain.Success, leaf.NewReturnStatus().Tick(nil, blackboard.New(nil)))
}

func TestWait(t *testing.T) {
	bb := blackboard.New(nil)
	bb.SetLocal(blackboard.DeltaKey, 0.25)

	n := leaf.NewWait()
	n.SetParam("seconds", 0.5)

	assert.Equal(t, domain.Running, n.Tick(nil, bb))
	assert.Equal(t, domain.Success, n.Tick(nil, bb))
	assert.Zero(t, n.Elapsed(), "wait resets after completing")
	assert.Equal(t, domain.Running, n.Tick(nil, bb))
}

func TestWait_MissingDelta(t *testing.T) {
	assert.Equal(t, domain.Error, leaf.NewWait().Tick(nil, blackboard.New(nil)))
}
