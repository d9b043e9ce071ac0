package relay

import (
	"fmt"
	"sync"
	"time"

	"github.com/yungbote/editais-backend/internal/platform/logger"
)

type State string

const (
	StateIdle             State = "idle"
	StateResolvingContext State = "resolving_context"
	StateStreaming        State = "streaming"
	StateCompleted        State = "completed"
	StateFailed           State = "failed"
)

var transitions = map[State][]State{
	StateIdle:             {StateResolvingContext, StateFailed},
	StateResolvingContext: {StateStreaming, StateFailed},
	StateStreaming:        {StateCompleted, StateFailed},
}

// Session tracks one chat request through its lifecycle. Completed and
// Failed are terminal.
type Session struct {
	log     *logger.Logger
	mu      sync.Mutex
	state   State
	started time.Time
	chunks  int
	err     error
}

func NewSession(log *logger.Logger) *Session {
	return &Session{log: log, state: StateIdle, started: time.Now()}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) Chunks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunks
}

func (s *Session) Resolving() error { return s.move(StateResolvingContext, nil) }
func (s *Session) Streaming() error { return s.move(StateStreaming, nil) }
func (s *Session) Complete() error  { return s.move(StateCompleted, nil) }

func (s *Session) Fail(err error) error { return s.move(StateFailed, err) }

// Chunk counts one forwarded delta.
func (s *Session) Chunk() {
	s.mu.Lock()
	s.chunks++
	s.mu.Unlock()
}

func (s *Session) move(to State, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !allowed(s.state, to) {
		return fmt.Errorf("relay session: invalid transition %s -> %s", s.state, to)
	}
	from := s.state
	s.state = to
	if cause != nil {
		s.err = cause
	}
	kv := []interface{}{"from", from, "to", to, "elapsed", time.Since(s.started).String()}
	switch to {
	case StateFailed:
		s.log.Warn("chat session transition", append(kv, "chunks", s.chunks, "error", cause)...)
	case StateCompleted:
		s.log.Info("chat session transition", append(kv, "chunks", s.chunks)...)
	default:
		s.log.Debug("chat session transition", kv...)
	}
	return nil
}

func allowed(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
