package monitor

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

const probeTimeout = 3 * time.Second

// Pinger is anything the monitor can health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// sizer is implemented by stores that can report how many items they hold.
type sizer interface {
	Size() (int, error)
}

type probe struct {
	name   string
	pinger Pinger
}

// Monitor pings registered dependencies on an interval and caches the result
// for the health endpoint.
type Monitor struct {
	probes []probe

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

// Register adds a named probe. Call before Start.
func (m *Monitor) Register(name string, p Pinger) {
	if p == nil {
		return
	}
	m.probes = append(m.probes, probe{name: name, pinger: p})
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) IsOnline() bool {
	return m.GetStatus().Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh(context.Background())
	for {
		select {
		case <-ticker.C:
			m.Refresh(context.Background())
		case <-m.stopCh:
			return
		}
	}
}

// Refresh checks every probe now and stores the result.
func (m *Monitor) Refresh(ctx context.Context) Status {
	status := Status{
		Services:  make(map[string]ServiceStatus, len(m.probes)),
		LastCheck: time.Now().UTC(),
	}
	for _, p := range m.probes {
		status.Services[p.name] = m.check(ctx, p)
	}

	m.mu.Lock()
	prev := m.status
	m.status = status
	m.mu.Unlock()

	for _, name := range status.Names() {
		was, seen := prev.Services[name]
		now := status.Services[name]
		if seen && was.Online && !now.Online {
			m.logger.Warn("dependency went offline", zap.String("service", name), zap.String("error", now.Error))
		} else if seen && !was.Online && now.Online {
			m.logger.Info("dependency back online", zap.String("service", name))
		}
	}
	return status
}

func (m *Monitor) check(ctx context.Context, p probe) ServiceStatus {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var out ServiceStatus
	if err := p.pinger.Ping(ctx); err != nil {
		out.Error = err.Error()
		return out
	}
	out.Online = true
	if s, ok := p.pinger.(sizer); ok {
		size, err := s.Size()
		if err != nil {
			m.logger.Warn("size check failed", zap.String("service", p.name), zap.Error(err))
		} else {
			out.Size = &size
		}
	}
	return out
}

// Names lists the checked services in a stable order.
func (s Status) Names() []string {
	names := make([]string, 0, len(s.Services))
	for name := range s.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
