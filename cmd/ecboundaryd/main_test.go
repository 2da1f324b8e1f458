package main

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/pallas"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/grpcboundary"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/host"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/logging"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ecboundaryd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:7443", cfg.Listen)
	require.Equal(t, 64<<20, cfg.MaxMsgBytes)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	tags, err := cfg.tags()
	require.NoError(t, err)
	require.Empty(t, tags)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
listen: 0.0.0.0:9000
max_msg_bytes: 1048576
log_level: debug
log_format: json
curves:
  - secp256k1
  - pallas
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:9000", cfg.Listen)
	require.Equal(t, 1<<20, cfg.MaxMsgBytes)
	require.Equal(t, "json", cfg.LogFormat)
	tags, err := cfg.tags()
	require.NoError(t, err)
	require.Equal(t, []curve.Tag{curve.Secp256k1, curve.Pallas}, tags)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("ECBOUNDARY_LISTEN", "127.0.0.1:9100")
	t.Setenv("ECBOUNDARY_LOG_LEVEL", "warn")
	cfg, err := loadConfig(writeConfig(t, "listen: 127.0.0.1:9000\n"))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9100", cfg.Listen)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"listen":     "listen: nowhere\n",
		"size":       "max_msg_bytes: 0\n",
		"level":      "log_level: loud\n",
		"format":     "log_format: xml\n",
		"curve name": "curves: [mnt4-298]\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, body))
			require.Error(t, err)
		})
	}

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestServe(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	h, err := host.NewDefault(logging.Discard(), curve.Pallas)
	require.NoError(t, err)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, lis, h, cfg, logging.Discard()) }()

	client, err := grpcboundary.Dial(lis.Addr().String(), grpcboundary.DialOptions{Timeout: 5 * time.Second})
	require.NoError(t, err)
	defer client.Close()

	g := pallas.New()
	b := ecboundary.New(ecboundary.Config{Logger: logging.Discard()})
	require.NoError(t, b.Install(g, client))
	out, err := ecboundary.BatchNormalize(context.Background(), b, g, []pallas.Point{g.Double(g.Generator())})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.True(t, g.Equal(g.Double(g.Generator()), out[0]))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}
