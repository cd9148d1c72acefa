package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/MedAssist/internal/completion"
	"github.com/Rorical/MedAssist/internal/eventbus"
	"github.com/Rorical/MedAssist/internal/update"
)

func TestListenForCoreEvents(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	disp := NewEventDispatcher(eb)
	defer disp.Stop()

	event := eventbus.OutcomeEvent{ID: 3, Outcome: completion.Success("ok")}
	require.NoError(t, eb.SendToUI(event))

	msg := disp.ListenForCoreEvents()()
	assert.Equal(t, update.CoreEventMsg{Event: event}, msg)
}

func TestListenReturnsNilWhenStopped(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	disp := NewEventDispatcher(eb)
	disp.Stop()

	assert.Nil(t, disp.ListenForCoreEvents()())
}

func TestListenReturnsNilWhenBusClosed(t *testing.T) {
	eb := eventbus.NewEventBus()
	disp := NewEventDispatcher(eb)
	defer disp.Stop()
	eb.Close()

	assert.Nil(t, disp.ListenForCoreEvents()())
}
