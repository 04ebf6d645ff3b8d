package log

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	for _, level := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelSilent} {
		parsed, err := ParseLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, parsed)
	}

	parsed, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LevelInfo, parsed)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	logger, err := NewFromConfig(Config{Level: "warn", Encoding: "console"})
	require.NoError(t, err)

	assert.False(t, logger.Enabled(LevelInfo))
	assert.True(t, logger.Enabled(LevelError))
	assert.False(t, logger.Enabled(LevelSilent))

	logger.SetLevel(LevelDebug)
	assert.True(t, logger.Enabled(LevelDebug))

	_, err = NewFromConfig(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.False(t, l.Enabled(LevelError))
	l.Named("x").With(String("k", "v")).Info("ignored")
}

func TestToZapFields(t *testing.T) {
	fields := toZapFields(
		Bool("b", true),
		Duration("d", time.Second),
		Int("i", 1),
		String("s", "v"),
		Error(errors.New("boom")),
		Any("a", []int{1}),
	)
	require.Len(t, fields, 6)
	assert.Equal(t, zapcore.BoolType, fields[0].Type)
	assert.Equal(t, zapcore.DurationType, fields[1].Type)
	assert.Equal(t, zapcore.Int64Type, fields[2].Type)
	assert.Equal(t, zapcore.StringType, fields[3].Type)
	assert.Equal(t, zapcore.ErrorType, fields[4].Type)
	assert.Equal(t, "a", fields[5].Key)
}

func TestProvide(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := NewFromConfig(Config{Level: "error"})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, Provide())
		}()
	}
	wg.Wait()

	first := Provide()
	require.NotSame(t, nopLogger, first)

	_, err := NewFromConfig(Config{Level: "debug"})
	require.NoError(t, err)
	assert.Same(t, first, Provide(), "the first logger stays the process logger")
}
