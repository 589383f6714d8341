package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchDebouncesWrites(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	file := filepath.Join(dir, "session.json")
	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0644))

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	fw, err := NewFileWatcher(200*time.Millisecond, logger)
	require.NoError(t, err)

	changed := make(chan string, 10)
	require.NoError(t, fw.Watch([]string{file}, func(path string) {
		changed <- path
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fw.Run(ctx)

	require.NoError(t, os.WriteFile(other, []byte("{}"), 0644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte(`{"markers": []}`), 0644))
	}

	select {
	case path := <-changed:
		assert.Equal(t, file, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	select {
	case path := <-changed:
		t.Fatalf("unexpected second notification for %s", path)
	case <-time.After(500 * time.Millisecond):
	}
}
