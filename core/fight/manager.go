package fight

import (
	"errors"
	"sync"
)

var (
	ErrInProgress = errors.New("a fight is already in progress here")
	ErrNoFight    = errors.New("there is no fight here")
)

// Manager keeps at most one fight per channel.
type Manager struct {
	mu       sync.Mutex
	cfg      Config
	strategy func() Strategy
	fights   map[string]*Fight
}

// NewManager uses strategy to equip every new fight; nil means DefaultStrategy.
func NewManager(cfg Config, strategy func() Strategy) *Manager {
	if strategy == nil {
		strategy = func() Strategy { return DefaultStrategy{Rand: cfg.Rand} }
	}
	return &Manager{cfg: cfg, strategy: strategy, fights: map[string]*Fight{}}
}

func (m *Manager) Start(channel, opponent string, advantage bool) (Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.fights[channel]; ok {
		return Output{}, ErrInProgress
	}
	f := New(m.cfg, opponent, advantage, m.strategy())
	out := f.Start()
	if !f.Finished() {
		m.fights[channel] = f
	}
	return out, nil
}

func (m *Manager) Advance(channel, input string) (Output, error) {
	return m.step(channel, func(f *Fight) (Output, error) { return f.Advance(input) })
}

func (m *Manager) Victory(channel string) (Output, error) {
	return m.step(channel, (*Fight).Victory)
}

// Opponent returns who is being fought in channel.
func (m *Manager) Opponent(channel string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.fights[channel]
	if !ok {
		return "", false
	}
	return f.Opponent(), true
}

func (m *Manager) step(channel string, fn func(*Fight) (Output, error)) (Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.fights[channel]
	if !ok {
		return Output{}, ErrNoFight
	}
	out, err := fn(f)
	if f.Finished() {
		delete(m.fights, channel)
	}
	return out, err
}
