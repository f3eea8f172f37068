package resource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MerchantReports/internal/store"
)

type fixedClients int

func (f fixedClients) ClientCount() int { return int(f) }

func TestStartCreatesDirs(t *testing.T) {
	base := t.TempDir()
	rm := NewResourceManagerService(map[string]interface{}{"heartbeat_interval": "10ms"}, store.New(), fixedClients(2))
	rm.AddDir("upload", filepath.Join(base, "uploads"))
	rm.AddDir("output", filepath.Join(base, "nested", "output"))

	require.NoError(t, rm.Start())
	defer rm.Stop()

	for _, key := range []string{"upload", "output"} {
		p, ok := rm.Dir(key)
		require.True(t, ok)
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, rm.Stop())
	require.NoError(t, rm.Stop())
}

func TestStartFailsOnFileInTheWay(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "output")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	rm := NewResourceManagerService(nil, nil, nil)
	rm.AddDir("output", filepath.Join(blocker, "reports"))
	err := rm.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create output directory")
}

func TestHeartbeatIntervalDefault(t *testing.T) {
	rm := NewResourceManagerService(nil, nil, nil)
	assert.Equal(t, 5*time.Minute, rm.heartbeatInterval)
	rm.Heartbeat()
}
