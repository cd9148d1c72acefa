package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/Rorical/MedAssist/internal/completion"
)

var (
	ErrCoreChannelFull = errors.New("UI to Core channel is full")
	ErrUIChannelFull   = errors.New("Core to UI channel is full")
	ErrClosed          = errors.New("event bus is closed")
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// SubmitQuestionEvent - UI asks core to send a validated question
type SubmitQuestionEvent struct {
	ID       uint64 // Echoed back on the matching OutcomeEvent
	Question string // Already trimmed
}

func (e SubmitQuestionEvent) UIEvent() {}

// OutcomeEvent - Core reports how a submission ended
type OutcomeEvent struct {
	ID      uint64
	Outcome completion.Outcome
}

func (e OutcomeEvent) CoreEvent() {}

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

func (e EventBusError) Unwrap() error {
	return e.Err
}

// EventBus handles communication between UI and Core
type EventBus struct {
	mu            sync.RWMutex
	closed        bool
	uiToCore      chan UIEvent
	coreToUI      chan CoreEvent
	errorCallback func(EventBusError)
}

// NewEventBus creates a bus with small buffers: the form never has more than
// one submission in flight.
func NewEventBus() *EventBus {
	return &EventBus{
		uiToCore: make(chan UIEvent, 4),
		coreToUI: make(chan CoreEvent, 4),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) error {
	busError := EventBusError{
		Operation: operation,
		Err:       err,
		Timestamp: time.Now(),
	}

	if eb.errorCallback != nil {
		eb.errorCallback(busError)
	}
	return busError
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return eb.reportError("SendToCore", ErrClosed)
	}

	select {
	case eb.uiToCore <- event:
		return nil
	default:
		return eb.reportError("SendToCore", ErrCoreChannelFull)
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return eb.reportError("SendToUI", ErrClosed)
	}

	select {
	case eb.coreToUI <- event:
		return nil
	default:
		return eb.reportError("SendToUI", ErrUIChannelFull)
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

// Close is safe to call more than once.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.uiToCore)
	close(eb.coreToUI)
}
