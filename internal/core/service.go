package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/MedAssist/internal/completion"
	"github.com/Rorical/MedAssist/internal/connectivity"
	"github.com/Rorical/MedAssist/internal/eventbus"
)

var ErrRequestInFlight = errors.New("a request is already in flight")

// Sender performs one completion request. *completion.Client implements it.
type Sender interface {
	Send(ctx context.Context, question string) (openai.ChatCompletionResponse, error)
}

// AskService runs submissions against the completion endpoint, one at a time.
type AskService struct {
	sender   Sender
	online   connectivity.Checker
	state    *RequestState
	eventBus *eventbus.EventBus
	logger   *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewAskService(sender Sender, online connectivity.Checker, eb *eventbus.EventBus, logger *slog.Logger) *AskService {
	ctx, cancel := context.WithCancel(context.Background())
	return &AskService{
		sender:   sender,
		online:   online,
		state:    NewRequestState(),
		eventBus: eb,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs the event loop in a goroutine
func (s *AskService) Start() {
	s.wg.Add(1)
	go s.eventLoop()
}

// Stop cancels any in-flight request and waits for the loop to exit.
func (s *AskService) Stop() {
	if s.IsProcessing() {
		s.logger.Warn("stopping with a request in flight")
	}
	s.cancel()
	s.wg.Wait()
	s.logger.Info("ask service stopped",
		"completed", s.state.Completed(),
		"last_category", s.state.LastOutcome().Category.String(),
	)
}

func (s *AskService) IsProcessing() bool {
	return s.state.IsProcessing()
}

func (s *AskService) eventLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *AskService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitQuestionEvent:
		outcome, err := s.Ask(s.ctx, e.Question)
		if err != nil {
			s.logger.Warn("submission rejected", "id", e.ID, "error", err)
			outcome = completion.Failure(completion.CategoryGeneric, completion.MsgGeneric)
		}
		if err := s.eventBus.SendToUI(eventbus.OutcomeEvent{ID: e.ID, Outcome: outcome}); err != nil {
			s.logger.Error("failed to deliver outcome", "id", e.ID, "error", err)
		}
	}
}

// Ask sends question and classifies the result. Request failures are part of
// the Outcome; the error is only set when another request is in flight.
func (s *AskService) Ask(ctx context.Context, question string) (completion.Outcome, error) {
	if !s.state.TryStart() {
		return completion.Outcome{}, ErrRequestInFlight
	}

	started := time.Now()
	s.logger.Info("completion request started", "question_chars", utf8.RuneCountInString(question))

	resp, err := s.sender.Send(ctx, question)
	offline := err != nil && !s.online.Online()
	outcome := completion.Interpret(resp, err, offline)
	s.state.Finish(outcome)

	attrs := []any{
		"category", outcome.Category.String(),
		"duration", time.Since(started),
	}
	if err != nil {
		s.logger.Warn("completion request failed", append(attrs, "error", err)...)
	} else {
		s.logger.Info("completion request finished", append(attrs, "answer_chars", utf8.RuneCountInString(outcome.Text))...)
	}

	return outcome, nil
}
