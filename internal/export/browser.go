package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-builder/internal/rendering"
)

// DeviceScale is the capture scale factor used for sharper output
const DeviceScale = 2

// DefaultTimeout bounds a single browser session
const DefaultTimeout = 30 * time.Second

const (
	viewportWidth  = 1024
	viewportHeight = 1400
	pointsPerInch  = 72
)

// Printer turns rendered resume HTML into PDF bytes.
type Printer interface {
	Print(ctx context.Context, html []byte) ([]byte, error)
}

// ChromePrinter captures the preview element in headless Chrome and prints it
// onto a single A4 page. Requires Chrome/Chromium to be installed.
type ChromePrinter struct {
	Timeout time.Duration
}

// Print loads html, screenshots the preview element at DeviceScale and returns
// a one-page PDF holding that image placed by FitA4.
func (p ChromePrinter) Print(ctx context.Context, html []byte) ([]byte, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	selector := "#" + rendering.PreviewElementID
	var shot, pdf []byte

	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight, chromedp.EmulateScale(DeviceScale)),
		chromedp.Navigate("about:blank"),
		setContent(string(html)),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Screenshot(selector, &shot, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			cfg, err := png.DecodeConfig(bytes.NewReader(shot))
			if err != nil {
				return fmt.Errorf("failed to read screenshot: %w", err)
			}
			if cfg.Width == 0 || cfg.Height == 0 {
				return fmt.Errorf("preview element has no size")
			}
			return setContent(pageHTML(shot, FitA4(float64(cfg.Width), float64(cfg.Height)))).Do(ctx)
		}),
		chromedp.WaitReady("img", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(A4Width / pointsPerInch).
				WithPaperHeight(A4Height / pointsPerInch).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPrintBackground(true).
				WithPageRanges("1").
				Do(ctx)
			pdf = buf
			return err
		}),
	)
	if err != nil {
		return nil, &ExportError{Message: "browser capture failed", Cause: err}
	}
	return pdf, nil
}

// setContent replaces the current document of the main frame.
func setContent(html string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
	})
}

// pageHTML is a bare A4 page with the screenshot absolutely positioned on it.
func pageHTML(shot []byte, at Placement) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><style>
@page { size: %.2fpt %.2fpt; margin: 0; }
html, body { margin: 0; padding: 0; }
img { position: absolute; left: %.2fpt; top: %.2fpt; width: %.2fpt; height: %.2fpt; }
</style></head>
<body><img src="data:image/png;base64,%s"></body></html>`,
		A4Width, A4Height, at.X, at.Y, at.Width, at.Height, base64.StdEncoding.EncodeToString(shot))
}
