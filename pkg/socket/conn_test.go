package socket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gkerrors "github.com/chatkc/gokc/pkg/errors"
	"github.com/chatkc/gokc/pkg/protocol"
)

func TestSendBackpressureOnFullQueue(t *testing.T) {
	c := newConn(1)

	require.NoError(t, c.Send(protocol.NewMessage("one", 0)))

	err := c.Send(protocol.NewMessage("two", 0))
	require.Error(t, err)
	var full *gkerrors.QueueFullError
	require.ErrorAs(t, err, &full)
	assert.Equal(t, 1, full.Capacity)
}

func TestSendOnClosedHandle(t *testing.T) {
	c := newConn(4)
	c.close()

	assert.True(t, c.Closed())
	err := c.Send(protocol.NewMessage("late", 0))
	var closed *gkerrors.ConnectionClosedError
	require.ErrorAs(t, err, &closed)
}

func TestSendPreservesEnqueueOrder(t *testing.T) {
	c := newConn(4)
	require.NoError(t, c.Send(protocol.NewMessage("first", 0)))
	require.NoError(t, c.Send(protocol.NewMessage("second", 0)))

	assert.Equal(t, protocol.NewMessage("first", 0), <-c.outbound)
	assert.Equal(t, protocol.NewMessage("second", 0), <-c.outbound)
}
