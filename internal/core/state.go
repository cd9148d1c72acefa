package core

import (
	"sync"

	"github.com/Rorical/MedAssist/internal/completion"
)

// RequestState tracks the single in-flight completion request.
type RequestState struct {
	mu           sync.RWMutex
	isProcessing bool
	lastOutcome  completion.Outcome
	completed    int
}

func NewRequestState() *RequestState {
	return &RequestState{}
}

// TryStart marks a request as in flight. It returns false if one already is.
func (rs *RequestState) TryStart() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.isProcessing {
		return false
	}
	rs.isProcessing = true
	return true
}

func (rs *RequestState) Finish(outcome completion.Outcome) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.isProcessing = false
	rs.lastOutcome = outcome
	rs.completed++
}

func (rs *RequestState) IsProcessing() bool {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.isProcessing
}

func (rs *RequestState) LastOutcome() completion.Outcome {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.lastOutcome
}

func (rs *RequestState) Completed() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.completed
}
