package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast() Option { return WithInitialDelay(time.Millisecond) }

func TestDo_Success(t *testing.T) {
	t.Parallel()
	attempts := 0
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}, fast())

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_GivesUp(t *testing.T) {
	t.Parallel()
	attempts := 0
	boom := errors.New("persistent error")
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return boom
	}, fast(), WithMaxRetries(2))

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "giving up after 3 attempts")
	assert.Equal(t, 3, attempts)
}

func TestDo_PermanentStops(t *testing.T) {
	t.Parallel()
	attempts := 0
	notFound := errors.New("status 404")
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return Permanent(notFound)
	}, fast())

	assert.Equal(t, notFound, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_ContextCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Do(ctx, func(context.Context) error {
		attempts++
		return errors.New("error")
	}, WithInitialDelay(time.Second))

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestDo_DelayIsCapped(t *testing.T) {
	t.Parallel()
	var stamps []time.Time
	err := Do(context.Background(), func(context.Context) error {
		stamps = append(stamps, time.Now())
		return errors.New("error")
	}, WithInitialDelay(10*time.Millisecond), WithMaxDelay(10*time.Millisecond), WithMaxRetries(3))

	require.Error(t, err)
	require.Len(t, stamps, 4)
	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Sub(stamps[i-1])
		assert.GreaterOrEqual(t, gap, 10*time.Millisecond)
		assert.Less(t, gap, time.Second)
	}
}

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))

	base := errors.New("bad request")
	err := Permanent(base)
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "bad request", err.Error())
	assert.False(t, IsPermanent(base))
}
