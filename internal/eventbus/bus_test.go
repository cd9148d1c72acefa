package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/MedAssist/internal/completion"
)

func TestRoundTrip(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	require.NoError(t, eb.SendToCore(SubmitQuestionEvent{ID: 1, Question: "What is a fever?"}))
	got := <-eb.UIToCore()
	assert.Equal(t, SubmitQuestionEvent{ID: 1, Question: "What is a fever?"}, got)

	outcome := completion.Success("Rest and fluids.")
	require.NoError(t, eb.SendToUI(OutcomeEvent{ID: 1, Outcome: outcome}))
	assert.Equal(t, OutcomeEvent{ID: 1, Outcome: outcome}, <-eb.CoreToUI())
}

func TestFullChannelReportsError(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) { reported = append(reported, e) })

	for i := 0; i < cap(eb.uiToCore); i++ {
		require.NoError(t, eb.SendToCore(SubmitQuestionEvent{ID: uint64(i)}))
	}
	err := eb.SendToCore(SubmitQuestionEvent{ID: 99})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCoreChannelFull)
	require.Len(t, reported, 1)
	assert.Equal(t, "SendToCore", reported[0].Operation)
}

func TestSendAfterClose(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	assert.ErrorIs(t, eb.SendToCore(SubmitQuestionEvent{}), ErrClosed)
	assert.ErrorIs(t, eb.SendToUI(OutcomeEvent{}), ErrClosed)

	_, ok := <-eb.UIToCore()
	assert.False(t, ok)
}
