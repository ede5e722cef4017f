package cmd

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFatalConsumerErr(t *testing.T) {
	// A cancelled context is how shutdown stops the consumer, not a failure
	require.False(t, fatalConsumerErr(nil))
	require.False(t, fatalConsumerErr(context.Canceled))
	require.False(t, fatalConsumerErr(fmt.Errorf("receive loop: %w", context.Canceled)))

	require.True(t, fatalConsumerErr(fmt.Errorf("amqp: link detached")))
	require.True(t, fatalConsumerErr(context.DeadlineExceeded))
}
