package browse

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager hands out one browse Service per session, created lazily on first
// use. Sessions are cheap; stale ones are dropped with the process.
type Manager struct {
	fetcher  Fetcher
	debounce time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Service
}

func NewManager(fetcher Fetcher, debounce time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		fetcher:  fetcher,
		debounce: debounce,
		logger:   logger,
		sessions: make(map[string]*Service),
	}
}

// Get returns the session's browse state, creating and priming it on first
// access.
func (m *Manager) Get(session string) *Service {
	m.mu.Lock()
	defer m.mu.Unlock()

	svc, ok := m.sessions[session]
	if !ok {
		svc = NewService(m.fetcher, m.debounce, m.logger)
		m.sessions[session] = svc
		svc.Refresh()
	}
	return svc
}
