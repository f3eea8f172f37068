package appmanager

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MerchantReports/internal/config"
	"MerchantReports/internal/notification"
	"MerchantReports/internal/store"
)

const sequence = `
services:
  - name: gateway
    start_order: 4
    config:
      host: 127.0.0.1
      shutdown_timeout: 2s
  - name: resourcemanager
    start_order: 2
    config:
      heartbeat_interval: 1h
  - name: billing
    start_order: 3
  - name: cron
    start_order: 3
    config:
      enabled: false
`

func testDeps(t *testing.T) *Deps {
	t.Helper()
	t.Setenv("PORT", "0")
	base := t.TempDir()
	cfg := config.Load()
	cfg.UploadDir = filepath.Join(base, "uploads")
	cfg.OutputDir = filepath.Join(base, "output")
	return &Deps{
		Config:   cfg,
		Store:    store.New(),
		Activity: notification.NewNotificationService(10),
	}
}

func TestParseServiceSequenceSorts(t *testing.T) {
	seq, err := ParseServiceSequence([]byte(sequence))
	require.NoError(t, err)
	names := make([]string, len(seq))
	for i, s := range seq {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"resourcemanager", "billing", "cron", "gateway"}, names)
	assert.Equal(t, "1h", seq[0].Config["heartbeat_interval"])
}

func TestLoadServiceSequenceMissingFile(t *testing.T) {
	_, err := LoadServiceSequence(filepath.Join(t.TempDir(), "services.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestAutoRegisterSkipsUnknownAndDisabled(t *testing.T) {
	seq, err := ParseServiceSequence([]byte(sequence))
	require.NoError(t, err)
	am := NewAppManager(testDeps(t))
	am.AutoRegisterServices(seq)
	assert.Equal(t, []string{"resourcemanager", "gateway"}, am.Services())
	assert.Nil(t, am.GetServiceByName("cron"))
	assert.NotNil(t, am.GetServiceByName("gateway"))
}

func TestStartAllServesAndStops(t *testing.T) {
	deps := testDeps(t)
	seq, err := ParseServiceSequence([]byte(sequence))
	require.NoError(t, err)
	am := NewAppManager(deps)
	am.AutoRegisterServices(seq)
	require.NoError(t, am.StartAll())

	for _, dir := range []string{deps.Config.UploadDir, deps.Config.OutputDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	gw := am.GetServiceByName("gateway").(interface{ Addr() string })
	resp, err := http.Get("http://" + gw.Addr() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, am.StopAll())
}

func TestDefaultServiceSequence(t *testing.T) {
	names := []string{}
	for _, s := range DefaultServiceSequence() {
		names = append(names, s.Name)
		_, ok := serviceConstructors[s.Name]
		assert.True(t, ok, s.Name)
	}
	assert.Equal(t, []string{"logger", "resourcemanager", "cron", "gateway"}, names)
}
