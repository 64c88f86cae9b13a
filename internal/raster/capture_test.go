package raster

import (
	"bytes"
	"context"
	"image/png"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficinago/oficinago/internal/config"
	ierr "github.com/oficinago/oficinago/internal/errors"
	"github.com/oficinago/oficinago/internal/logger"
	"github.com/oficinago/oficinago/internal/types"
)

// chromeBinary locates a usable browser, skipping the test when the host has
// none. The capture path itself is covered either way by the failure tests.
func chromeBinary(t *testing.T) string {
	t.Helper()
	for _, name := range []string{
		"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell",
	} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("no chrome binary available")
	return ""
}

func newTestCapturer(t *testing.T, chromePath string) Capturer {
	t.Helper()
	log, err := logger.NewLoggerWithLevel(types.LogLevelInfo)
	require.NoError(t, err)

	cfg := config.GetDefaultConfig()
	cfg.Raster.ChromePath = chromePath
	cfg.Raster.CaptureTimeout = 30 * time.Second
	return NewCapturer(cfg, log)
}

const receiptHTML = `<!DOCTYPE html>
<html><head><style>
#receipt { width: 400px; background: #fff; padding: 16px; }
</style></head>
<body><div id="receipt"><h1>R$ 150,00</h1><p>Troca de óleo</p></div></body></html>`

func TestCapture(t *testing.T) {
	c := newTestCapturer(t, chromeBinary(t))

	artifact, err := c.Capture(context.Background(), receiptHTML)
	require.NoError(t, err)

	require.True(t, artifact.Valid())
	assert.Greater(t, artifact.Width, int64(0))
	assert.Greater(t, artifact.Height, int64(0))
	assert.True(t, strings.HasPrefix(artifact.Displayable, "data:image/png;base64,"))

	// the binary payload is a decodable PNG scaled by the device factor
	img, err := png.DecodeConfig(bytes.NewReader(artifact.Binary))
	require.NoError(t, err)
	scale := config.GetDefaultConfig().Raster.Scale
	assert.InDelta(t, float64(artifact.Width)*scale, float64(img.Width), 1)
	assert.InDelta(t, float64(artifact.Height)*scale, float64(img.Height), 1)
}

func TestCapture_Idempotent(t *testing.T) {
	c := newTestCapturer(t, chromeBinary(t))

	first, err := c.Capture(context.Background(), receiptHTML)
	require.NoError(t, err)
	second, err := c.Capture(context.Background(), receiptHTML)
	require.NoError(t, err)

	// a stable input yields visually identical artifacts; static content
	// renders deterministically, so byte equality holds
	assert.Equal(t, first.Width, second.Width)
	assert.Equal(t, first.Height, second.Height)
	assert.Equal(t, first.Binary, second.Binary)
}

func TestCapture_SkipsIgnoredImages(t *testing.T) {
	c := newTestCapturer(t, chromeBinary(t))

	// an unresolvable image inside a flagged container must not stall the
	// per-image wait; without the skip this capture would hang for the full
	// image timeout
	html := `<!DOCTYPE html>
<html><body><div id="receipt">
<div data-raster-ignore="true"><img src="http://127.0.0.1:1/video-poster.jpg"></div>
<p>Em execução</p>
</div></body></html>`

	started := time.Now()
	artifact, err := c.Capture(context.Background(), html)
	require.NoError(t, err)
	assert.True(t, artifact.Valid())
	assert.Less(t, time.Since(started), config.GetDefaultConfig().Raster.ImageTimeout)
}

func TestCapture_MissingBrowser(t *testing.T) {
	c := newTestCapturer(t, "/nonexistent/chrome")

	artifact, err := c.Capture(context.Background(), receiptHTML)
	require.Error(t, err)
	assert.Nil(t, artifact)
	// a failed capture is always marked so the pipeline can degrade the
	// delivery to its text-only tier
	assert.True(t, ierr.IsRasterization(err))
}

func TestCapture_CancelledContext(t *testing.T) {
	c := newTestCapturer(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Capture(ctx, receiptHTML)
	require.Error(t, err)
	assert.True(t, ierr.IsRasterization(err))
}
