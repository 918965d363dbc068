package log

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestLoggerLevelIsShared(t *testing.T) {
	l := New(LevelInfo)
	child := l.Named("collision").With(String("k", "v"))

	require.Equal(t, LevelInfo, child.GetLevel())
	l.SetLevel(LevelError)
	require.Equal(t, LevelError, child.GetLevel())
}

func TestNopLoggerAcceptsAllFields(t *testing.T) {
	l := NewNop()
	require.NotPanics(t, func() {
		l.Info("frame",
			Int("pairs", 3),
			Uint64("frame", 7),
			Float32("depth", 1.5),
			Duration("took", time.Millisecond),
			Bool("ok", true),
			Error(errors.New("boom")),
			Any("obj", struct{}{}),
		)
	})
}

func TestLoggersAreIndependent(t *testing.T) {
	a := New(LevelInfo)
	b := NewConsole(LevelError)

	a.SetLevel(LevelDebug)
	require.Equal(t, LevelDebug, a.GetLevel())
	require.Equal(t, LevelError, b.GetLevel())
	require.Equal(t, LevelFatal, NewNop().GetLevel())
}
