// Package raster wraps headless-Chrome screenshot capture with the
// pre-capture synchronization the receipt pipeline needs: scroll reset,
// bounded per-image load waits, a paint settle delay, full-extent clipping
// and opaque background, then dual extraction into a displayable data URI and
// a binary PNG.
package raster

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/oficinago/oficinago/internal/config"
	"github.com/oficinago/oficinago/internal/domain/receipt"
	ierr "github.com/oficinago/oficinago/internal/errors"
	"github.com/oficinago/oficinago/internal/logger"
	"github.com/oficinago/oficinago/internal/media"
)

// Capturer rasterizes a rendered HTML document into a RenderArtifact. It
// never retries internally; retry, if any, is a fresh user action.
type Capturer interface {
	Capture(ctx context.Context, html string) (*receipt.RenderArtifact, error)
}

type chromeCapturer struct {
	cfg config.RasterConfig
	log *logger.Logger
}

func NewCapturer(cfg *config.Configuration, log *logger.Logger) Capturer {
	return &chromeCapturer{cfg: cfg.Raster, log: log}
}

// waitImagesScript resolves once every embedded image under the root has
// signalled load or error, or its individual timeout elapsed. Images inside
// [data-raster-ignore] containers (video placeholders) are skipped. Resolves
// to the number of images that timed out.
const waitImagesScript = `
(function(timeoutMs) {
	const imgs = Array.from(document.images)
		.filter(img => !img.closest('[data-raster-ignore]'));
	return Promise.all(imgs.map(img => {
		if (img.complete) return Promise.resolve(true);
		return new Promise(resolve => {
			const timer = setTimeout(() => resolve(false), timeoutMs);
			const done = ok => { clearTimeout(timer); resolve(ok); };
			img.addEventListener('load', () => done(true), { once: true });
			img.addEventListener('error', () => done(true), { once: true });
		});
	})).then(results => results.filter(ok => !ok).length);
})(%d)`

func (c *chromeCapturer) Capture(ctx context.Context, html string) (*receipt.RenderArtifact, error) {
	started := time.Now()

	tmpFile, err := os.CreateTemp("", "oficinago-receipt-*.html")
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to create temp html file").
			Mark(ierr.ErrRasterization)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(html); err != nil {
		tmpFile.Close()
		return nil, ierr.WithError(err).
			WithMessage("failed to write temp html file").
			Mark(ierr.ErrRasterization)
	}
	tmpFile.Close()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.CaptureTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("headless", true),
	)
	if c.cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(c.cfg.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var (
		scrollOffset []float64
		timedOut     int
		extent       []int64
		shot         []byte
	)

	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+tmpPath),
		chromedp.WaitReady("#receipt"),

		// Record and reset the scroll position: capturing a scrolled page
		// yields a translated, cropped region
		chromedp.Evaluate(`[window.scrollX, window.scrollY]`, &scrollOffset),
		chromedp.Evaluate(`window.scrollTo(0, 0); null`, nil),

		// Wait for every image to load or error so a single broken image
		// cannot hang the capture
		chromedp.Evaluate(
			fmt.Sprintf(waitImagesScript, c.cfg.ImageTimeout.Milliseconds()),
			&timedOut,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
				return p.WithAwaitPromise(true)
			},
		),

		// Let layout and paint stabilize after image decode
		chromedp.Sleep(c.cfg.SettleDelay),

		// Pin the capture to the document's full scrollable extent, not the
		// viewport, to avoid cropping
		chromedp.Evaluate(
			`[document.documentElement.scrollWidth, document.documentElement.scrollHeight]`,
			&extent,
		),

		chromedp.ActionFunc(func(ctx context.Context) error {
			if len(extent) != 2 || extent[0] == 0 || extent[1] == 0 {
				return fmt.Errorf("document has no measurable extent")
			}
			if timedOut > 0 {
				c.log.Warnw("capture proceeding with unloaded images", "timed_out", timedOut)
			}

			width, height := extent[0], extent[1]

			if err := (&emulation.SetDeviceMetricsOverrideParams{
				Width:             width,
				Height:            height,
				DeviceScaleFactor: c.cfg.Scale,
				Mobile:            false,
			}).Do(ctx); err != nil {
				return err
			}

			// The source document may have transparent regions; force an
			// opaque white fill
			if err := emulation.SetDefaultBackgroundColorOverride().
				WithColor(&cdp.RGBA{R: 255, G: 255, B: 255, A: 1}).
				Do(ctx); err != nil {
				return err
			}

			data, err := page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithCaptureBeyondViewport(true).
				WithClip(&page.Viewport{
					X:      0,
					Y:      0,
					Width:  float64(width),
					Height: float64(height),
					Scale:  c.cfg.Scale,
				}).
				Do(ctx)
			if err != nil {
				return err
			}
			shot = data
			return nil
		}),

		// Restore the original scroll position; the reset must never leak
		// past the capture
		chromedp.ActionFunc(func(ctx context.Context) error {
			if len(scrollOffset) != 2 {
				return nil
			}
			return chromedp.Evaluate(
				fmt.Sprintf("window.scrollTo(%f, %f); null", scrollOffset[0], scrollOffset[1]),
				nil,
			).Do(ctx)
		}),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Não foi possível gerar a imagem do informativo").
			Mark(ierr.ErrRasterization)
	}

	// A displayable-only artifact is useless to the delivery cascade; the
	// binary payload is mandatory
	if len(shot) == 0 {
		return nil, ierr.NewError("capture produced no image data").
			WithHint("Não foi possível gerar a imagem do informativo").
			Mark(ierr.ErrRasterization)
	}

	artifact := &receipt.RenderArtifact{
		Displayable: media.DataURI("image/png", shot),
		Binary:      shot,
		Width:       extent[0],
		Height:      extent[1],
	}

	c.log.Infow("captured receipt",
		"bytes", len(artifact.Binary),
		"width", artifact.Width,
		"height", artifact.Height,
		"scale", c.cfg.Scale,
		"duration", time.Since(started),
	)
	return artifact, nil
}
