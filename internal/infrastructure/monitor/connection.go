package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ProbeFunc checks connectivity to the active store backend.
type ProbeFunc func(ctx context.Context) error

// CountFunc reports how many todos the store currently holds.
type CountFunc func(ctx context.Context) (int, error)

// Monitor periodically probes the configured store and caches the result
// for the health endpoint.
type Monitor struct {
	driver string
	probe  ProbeFunc
	count  CountFunc

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(driver string, probe ProbeFunc, count CountFunc, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		driver:   driver,
		probe:    probe,
		count:    count,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Store
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	status := Status{
		Driver:    m.driver,
		Store:     m.checkStore(),
		LastCheck: time.Now(),
	}
	if status.Store && m.count != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if n, err := m.count(ctx); err == nil {
			status.TodoCount = n
		}
		cancel()
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *Monitor) checkStore() bool {
	if m.probe == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := m.probe(ctx); err != nil {
		m.logger.Warn("store probe failed", zap.String("driver", m.driver), zap.Error(err))
		return false
	}
	return true
}
