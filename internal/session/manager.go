package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"xiangqi/internal/aidriver"
	"xiangqi/internal/controller"
)

// ErrNotFound is returned by Get when no session exists under the given id.
var ErrNotFound = errors.New("session: game not found")

// Manager keys every live game by a generated id, guarded by a single
// mutex the way the teacher's game.Manager guards its map[string]*GameState.
// Every session shares the same engine collaborator: the external process
// (or its in-process stand-in) is a single long-lived subprocess, not one
// per game.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	engine            aidriver.Engine
	presentationDelay time.Duration
}

// NewManager wires a manager to the shared engine every session's driver
// will call into.
func NewManager(engine aidriver.Engine, presentationDelay time.Duration) *Manager {
	return &Manager{
		sessions:          make(map[string]*Session),
		engine:            engine,
		presentationDelay: presentationDelay,
	}
}

// New creates a fresh session. If opts.Engine is left nil it defaults to
// the manager's shared engine, matching how the AI driver is always wired
// to that same engine.
func (m *Manager) New(opts controller.Options) (*Session, error) {
	if opts.Engine == nil {
		opts.Engine = m.engine
	}
	ctrl, err := controller.New(opts)
	if err != nil {
		return nil, err
	}
	drv := aidriver.New(ctrl, m.engine, m.presentationDelay)

	now := time.Now()
	s := &Session{
		ID:         uuid.NewString(),
		Controller: ctrl,
		Driver:     drv,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s, nil
}

// Get looks up a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Touch bumps a session's UpdatedAt after a write-surface operation was
// applied to its controller.
func (m *Manager) Touch(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.UpdatedAt = time.Now()
	}
}

// Remove discards a session, e.g. once its front end disconnects.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len reports how many games are currently hosted.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
