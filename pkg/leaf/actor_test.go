package leaf_test

import (
	"testing"

	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/leaf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockActor struct {
	mock.Mock
}

func (m *mockActor) Command(name string, args map[string]any) domain.Status {
	return m.Called(name, args).Get(0).(domain.Status)
}

func (m *mockActor) Sense(query string) bool {
	return m.Called(query).Bool(0)
}

func TestCommand_ForwardsResolvedParams(t *testing.T) {
	bb := blackboard.New(nil)
	bb.SetLocal("target", "door")

	actor := new(mockActor)
	actor.On("Command", "open", map[string]any{"what": "door", "force": 2}).Return(domain.Running)

	n := leaf.NewCommand()
	n.SetParam("command", "open")
	n.SetParam("what", "$target")
	n.SetParam("force", 2)

	assert.Equal(t, domain.Running, n.Tick(actor, bb))
	actor.AssertExpectations(t)
}

func TestCommand_WithoutCommander(t *testing.T) {
	n := leaf.NewCommand()
	n.SetParam("command", "open")
	assert.Equal(t, domain.Failure, n.Tick(struct{}{}, blackboard.New(nil)))
	assert.Equal(t, domain.Failure, n.Tick(nil, blackboard.New(nil)))
}

func TestSense(t *testing.T) {
	actor := new(mockActor)
	actor.On("Sense", "enemy_visible").Return(true).Once()
	actor.On("Sense", "door_open").Return(false).Once()

	n := leaf.NewSense()
	n.SetParam("query", "enemy_visible")
	assert.Equal(t, domain.Success, n.Tick(actor, blackboard.New(nil)))

	n.SetParam("query", "door_open")
	assert.Equal(t, domain.Failure, n.Tick(actor, blackboard.New(nil)))
	actor.AssertExpectations(t)

	assert.Equal(t, domain.Failure, n.Tick(nil, blackboard.New(nil)))
}
