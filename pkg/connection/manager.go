package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Manager errors.
var (
	ErrManagerClosed    = errors.New("connection manager closed")
	ErrAlreadyConnected = errors.New("already connected")
)

// State is the manager's view of the link.
type State uint8

const (
	// StateDisconnected indicates no link and no reconnection pending.
	StateDisconnected State = iota

	// StateConnecting indicates an explicit connect is in progress.
	StateConnecting

	// StateConnected indicates an established link.
	StateConnected

	// StateReconnecting indicates the link was lost and is being restored.
	StateReconnecting

	// StateClosed indicates the manager has been closed.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateReconnecting:
		return "RECONNECTING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// ConnectFunc establishes the link. It returns nil on success.
type ConnectFunc func(ctx context.Context) error

// Config configures a Manager.
type Config struct {
	// Backoff paces retries.
	Backoff BackoffConfig `yaml:"backoff"`

	// AttemptTimeout bounds each call to the ConnectFunc.
	AttemptTimeout time.Duration `yaml:"attemptTimeout"`

	// AutoReconnect restores a lost link in the background.
	AutoReconnect bool `yaml:"autoReconnect"`

	// Logger receives lifecycle logs. Nil means slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the default manager configuration.
func DefaultConfig() Config {
	return Config{
		Backoff:        DefaultBackoffConfig(),
		AttemptTimeout: 10 * time.Second,
		AutoReconnect:  true,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Backoff.Validate(); err != nil {
		return err
	}
	if c.AttemptTimeout <= 0 {
		return fmt.Errorf("%w: attempt timeout must be positive", ErrInvalidBackoff)
	}
	return nil
}

// Manager keeps a link up: it retries the initial connect with backoff and,
// when AutoReconnect is set, restores the link after NotifyConnectionLost.
type Manager struct {
	connectFn ConnectFunc
	backoff   *Backoff
	timeout   time.Duration
	logger    *slog.Logger

	mu            sync.RWMutex
	state         State
	autoReconnect bool

	onStateChange  func(oldState, newState State)
	onConnected    func()
	onReconnecting func(attempt int, delay time.Duration)

	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	reconnectCh chan struct{}
}

// NewManager creates a manager and starts its reconnection loop.
func NewManager(connectFn ConnectFunc, cfg Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		connectFn:     connectFn,
		backoff:       NewBackoffWithConfig(cfg.Backoff),
		timeout:       cfg.AttemptTimeout,
		logger:        logger.With("component", "connection-manager"),
		state:         StateDisconnected,
		autoReconnect: cfg.AutoReconnect,
		ctx:           ctx,
		cancel:        cancel,
		reconnectCh:   make(chan struct{}, 1),
	}
	m.wg.Add(1)
	go m.reconnectLoop()
	return m, nil
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsConnected reports whether the link is up.
func (m *Manager) IsConnected() bool {
	return m.State() == StateConnected
}

// SetAutoReconnect enables or disables background reconnection.
func (m *Manager) SetAutoReconnect(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoReconnect = enabled
}

// Connect establishes the link, retrying with backoff up to maxAttempts
// times. maxAttempts <= 0 retries until ctx ends.
func (m *Manager) Connect(ctx context.Context, maxAttempts int) error {
	if err := m.begin(StateConnecting); err != nil {
		return err
	}

	var err error
	attempt := 1
	for ; ; attempt++ {
		if err = m.attempt(ctx); err == nil {
			m.connected()
			return nil
		}
		m.logger.Debug("connect attempt failed", "attempt", attempt, "error", err)
		if maxAttempts > 0 && attempt >= maxAttempts {
			break
		}
		if werr := m.backoff.Wait(ctx); werr != nil {
			err = errors.Join(err, werr)
			break
		}
	}

	m.setState(StateDisconnected)
	return fmt.Errorf("connect failed after %d attempt(s): %w", attempt, err)
}

// NotifyConnectionLost reports that the established link went down.
func (m *Manager) NotifyConnectionLost() {
	m.mu.Lock()
	if m.state != StateConnected {
		m.mu.Unlock()
		return
	}
	next := StateDisconnected
	if m.autoReconnect {
		next = StateReconnecting
	}
	m.mu.Unlock()

	m.logger.Info("connection lost", "reconnect", next == StateReconnecting)
	m.setState(next)
	if next == StateReconnecting {
		select {
		case m.reconnectCh <- struct{}{}:
		default:
		}
	}
}

// Close stops reconnection and waits for the background loop to exit.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.setState(StateClosed)
	m.cancel()
	m.wg.Wait()
}

// OnStateChange sets a callback for state changes.
func (m *Manager) OnStateChange(fn func(oldState, newState State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStateChange = fn
}

// OnConnected sets a callback run after every successful connect.
func (m *Manager) OnConnected(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onConnected = fn
}

// OnReconnecting sets a callback run before each reconnection delay.
func (m *Manager) OnReconnecting(fn func(attempt int, delay time.Duration)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReconnecting = fn
}

// BackoffAttempts returns the number of retries since the last success.
func (m *Manager) BackoffAttempts() int {
	return m.backoff.Attempts()
}

func (m *Manager) begin(next State) error {
	m.mu.Lock()
	switch m.state {
	case StateClosed:
		m.mu.Unlock()
		return ErrManagerClosed
	case StateConnected:
		m.mu.Unlock()
		return ErrAlreadyConnected
	}
	m.mu.Unlock()
	m.setState(next)
	return nil
}

func (m *Manager) attempt(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.connectFn(ctx)
}

func (m *Manager) connected() {
	m.backoff.Reset()
	m.setState(StateConnected)

	m.mu.RLock()
	fn := m.onConnected
	m.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// setState records a transition and notifies the callback. A closed
// manager stays closed.
func (m *Manager) setState(next State) {
	m.mu.Lock()
	old := m.state
	if old == next || (old == StateClosed && next != StateClosed) {
		m.mu.Unlock()
		return
	}
	m.state = next
	fn := m.onStateChange
	m.mu.Unlock()

	m.logger.Debug("state change", "from", old, "to", next)
	if fn != nil {
		fn(old, next)
	}
}

func (m *Manager) reconnectLoop() {
	defer m.wg.Done()
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.reconnectCh:
			m.reconnect()
		}
	}
}

func (m *Manager) reconnect() {
	for m.State() == StateReconnecting {
		delay := m.backoff.Next()

		m.mu.RLock()
		fn := m.onReconnecting
		m.mu.RUnlock()
		if fn != nil {
			fn(m.backoff.Attempts(), delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-m.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		if m.State() != StateReconnecting {
			return
		}

		if err := m.attempt(m.ctx); err != nil {
			m.logger.Debug("reconnect attempt failed", "attempt", m.backoff.Attempts(), "error", err)
			continue
		}
		m.logger.Info("reconnected", "attempts", m.backoff.Attempts())
		m.connected()
		return
	}
}
