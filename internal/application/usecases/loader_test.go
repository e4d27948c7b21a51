package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_KeysAreIndependent(t *testing.T) {
	l := NewLoader()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := l.Run(context.Background(), "a", func(ctx context.Context) (interface{}, error) {
			close(started)
			<-release
			return "a", ctx.Err()
		})
		done <- err
	}()

	<-started
	v, err := l.Run(context.Background(), "b", func(context.Context) (interface{}, error) { return "b", nil })
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	close(release)
	assert.NoError(t, <-done)
}

func TestLoader_PropagatesError(t *testing.T) {
	l := NewLoader()

	_, err := l.Run(context.Background(), "a", func(context.Context) (interface{}, error) {
		return nil, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}
