package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type sizedProbe struct{ n int }

func (p sizedProbe) Ping(context.Context) error { return nil }
func (p sizedProbe) Size() (int, error)         { return p.n, nil }

func TestRefreshCollectsProbeResults(t *testing.T) {
	m := New(0, zaptest.NewLogger(t))
	assert.False(t, m.IsOnline(), "no check has run yet")

	down := errors.New("connection refused")
	healthy := true
	m.Register("database", PingFunc(func(context.Context) error { return nil }))
	m.Register("redis", PingFunc(func(context.Context) error {
		if healthy {
			return nil
		}
		return down
	}))
	m.Register("storage", sizedProbe{n: 3})
	m.Register("ignored", nil)

	status := m.Refresh(context.Background())
	assert.Equal(t, []string{"database", "redis", "storage"}, status.Names())
	assert.True(t, status.Healthy())
	assert.True(t, m.IsOnline())
	require.NotNil(t, status.Services["storage"].Size)
	assert.Equal(t, 3, *status.Services["storage"].Size)

	healthy = false
	status = m.Refresh(context.Background())
	assert.False(t, status.Healthy())
	assert.Equal(t, "connection refused", status.Services["redis"].Error)
	assert.True(t, status.Services["database"].Online)
	assert.Equal(t, status, m.GetStatus())
}

func TestStopIsIdempotent(t *testing.T) {
	m := New(0, nil)
	m.Start()
	m.Stop()
	m.Stop()
}
