package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Applies defaults for missing keys", func(t *testing.T) {
		// Given: a config file that only sets the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: it is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: every other value falls back to its default
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, "X", conf.Game.StartingMark)
		assert.Equal(t, 4, conf.Game.MessageQueueSize)
		assert.Equal(t, 200*time.Millisecond, conf.Game.ThinkDelay)
		assert.Equal(t, Difficulty{Easy: 0, Medium: 2, Hard: 9}, conf.Game.Difficulty)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file choosing memory storage and an env asking for redis
		path := writeConfig(t, "storage: memory\n")
		t.Setenv("STORAGE", StorageRedis)
		t.Setenv("GAME_STARTING_MARK", "O")

		// When: it is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the env values win
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "O", conf.Game.StartingMark)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to load config file")
	})

	t.Run("MustLoad panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}
