package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyquest/internal/platform/logger"
	"studyquest/internal/platform/notify"
)

func TestChannelNeverBlocks(t *testing.T) {
	t.Parallel()
	ch := notify.NewChannel(1)
	ch.Notify(notify.Notice{Title: "first"})
	ch.Notify(notify.Notice{Title: "second"})

	got := <-ch.C()
	assert.Equal(t, "first", got.Title)
	select {
	case extra := <-ch.C():
		t.Fatalf("expected overflow to be dropped, got %+v", extra)
	default:
	}
}

func TestFanoutDeliversToAll(t *testing.T) {
	t.Parallel()
	a := notify.NewChannel(2)
	b := notify.NewChannel(2)
	fan := notify.NewFanout(a, notify.NewLogNotifier(logger.Nop()))
	fan.Add(b)

	fan.Notify(notify.Notice{Level: notify.LevelSuccess, Title: "Welcome back!"})

	require.Len(t, a.C(), 1)
	require.Len(t, b.C(), 1)
}
