package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestShutdownRunsHooksInReverse(t *testing.T) {
	m := New(time.Second, zaptest.NewLogger(t))

	var order []string
	m.Register("database", func(context.Context) error {
		order = append(order, "database")
		return nil
	})
	m.Closer("storage", func() error {
		order = append(order, "storage")
		return errors.New("bolt: close failed")
	})
	m.Register("http_server", func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		order = append(order, "http_server")
		return nil
	})
	m.Register("skipped", nil)

	err := m.Shutdown(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bolt: close failed")
	assert.Equal(t, []string{"http_server", "storage", "database"}, order)

	require.NoError(t, m.Shutdown(context.Background()))
	assert.Len(t, order, 3, "hooks run once")
}
