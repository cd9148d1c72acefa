package core

import (
	"bytes"
	"context"
	"log/slog"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/MedAssist/internal/completion"
	"github.com/Rorical/MedAssist/internal/connectivity"
	"github.com/Rorical/MedAssist/internal/eventbus"
	"github.com/Rorical/MedAssist/internal/logging"
)

type fakeSender struct {
	mu        sync.Mutex
	questions []string
	resp      openai.ChatCompletionResponse
	err       error
	release   chan struct{} // when set, Send blocks until closed
	started   chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, question string) (openai.ChatCompletionResponse, error) {
	f.mu.Lock()
	f.questions = append(f.questions, question)
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return openai.ChatCompletionResponse{}, ctx.Err()
		}
	}
	return f.resp, f.err
}

func answer(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: text}},
		},
	}
}

func newService(sender Sender, online bool) (*AskService, *eventbus.EventBus) {
	eb := eventbus.NewEventBus()
	return NewAskService(sender, connectivity.Static(online), eb, logging.Discard()), eb
}

func TestAskSuccess(t *testing.T) {
	sender := &fakeSender{resp: answer("Drink water.")}
	svc, eb := newService(sender, true)
	defer eb.Close()

	outcome, err := svc.Ask(context.Background(), "What are the symptoms of dehydration?")
	require.NoError(t, err)
	assert.Equal(t, completion.Success("Drink water."), outcome)
	assert.Equal(t, []string{"What are the symptoms of dehydration?"}, sender.questions)
	assert.False(t, svc.IsProcessing())
	assert.Equal(t, outcome, svc.state.LastOutcome())
	assert.Equal(t, 1, svc.state.Completed())
}

func TestAskOffline(t *testing.T) {
	sender := &fakeSender{err: &openai.APIError{HTTPStatusCode: 500, Message: "boom"}}
	svc, eb := newService(sender, false)
	defer eb.Close()

	outcome, err := svc.Ask(context.Background(), "Can I take aspirin with ibuprofen?")
	require.NoError(t, err)
	assert.Equal(t, completion.Failure(completion.CategoryNetworkOffline, completion.MsgNetworkOffline), outcome)
}

func TestAskOfflineIgnoredOnSuccess(t *testing.T) {
	sender := &fakeSender{resp: answer("Rest.")}
	svc, eb := newService(sender, false)
	defer eb.Close()

	outcome, err := svc.Ask(context.Background(), "How do I treat a mild sprain?")
	require.NoError(t, err)
	assert.True(t, outcome.OK())
}

func TestAskRejectsSecondRequestInFlight(t *testing.T) {
	sender := &fakeSender{
		resp:    answer("Answer."),
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	svc, eb := newService(sender, true)
	defer eb.Close()

	done := make(chan completion.Outcome, 1)
	go func() {
		outcome, _ := svc.Ask(context.Background(), "First question here?")
		done <- outcome
	}()
	<-sender.started
	assert.True(t, svc.IsProcessing())

	_, err := svc.Ask(context.Background(), "Second question here?")
	assert.ErrorIs(t, err, ErrRequestInFlight)

	close(sender.release)
	assert.Equal(t, completion.Success("Answer."), <-done)
	assert.Len(t, sender.questions, 1)
}

func TestEventLoopDeliversOutcome(t *testing.T) {
	sender := &fakeSender{err: errors.New("dial tcp: connection refused")}
	svc, eb := newService(sender, true)
	svc.Start()
	defer func() {
		svc.Stop()
		eb.Close()
	}()

	require.NoError(t, eb.SendToCore(eventbus.SubmitQuestionEvent{ID: 7, Question: "Why do I get headaches?"}))

	select {
	case event := <-eb.CoreToUI():
		outcome, ok := event.(eventbus.OutcomeEvent)
		require.True(t, ok)
		assert.Equal(t, uint64(7), outcome.ID)
		assert.Equal(t, completion.CategoryGeneric, outcome.Outcome.Category)
		assert.Equal(t, completion.MsgGeneric, outcome.Outcome.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("no outcome delivered")
	}
}

func TestStopCancelsInFlightRequest(t *testing.T) {
	sender := &fakeSender{release: make(chan struct{}), started: make(chan struct{})}
	svc, eb := newService(sender, true)
	svc.Start()

	require.NoError(t, eb.SendToCore(eventbus.SubmitQuestionEvent{ID: 1, Question: "Is a cold contagious?"}))
	<-sender.started

	stopped := make(chan struct{})
	go func() {
		svc.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	eb.Close()
}

func TestStopLogsSummary(t *testing.T) {
	var logs bytes.Buffer
	eb := eventbus.NewEventBus()
	defer eb.Close()
	svc := NewAskService(&fakeSender{resp: answer("Rest.")}, connectivity.Static(true), eb, slog.New(slog.NewTextHandler(&logs, nil)))

	_, err := svc.Ask(context.Background(), "How do I treat a mild sprain?")
	require.NoError(t, err)
	svc.Stop()

	assert.Contains(t, logs.String(), "ask service stopped")
	assert.Contains(t, logs.String(), "completed=1")
	assert.Contains(t, logs.String(), "last_category=none")
	assert.NotContains(t, logs.String(), "request in flight")
}

func TestStopWithoutStartCancelsContext(t *testing.T) {
	svc, eb := newService(&fakeSender{}, true)
	defer eb.Close()

	svc.Stop()
	assert.ErrorIs(t, svc.ctx.Err(), context.Canceled)
}
