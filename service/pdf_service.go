package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"boutique-backoffice/models"
)

const (
	pdfTimeout = 30 * time.Second
	mmPerInch  = 25.4
	a4HeightMM = 297
	pxPerInch  = 96
	pxPerMM    = pxPerInch / mmPerInch

	pageViewportHeightPx   = 1200
	ticketViewportHeightPx = 200
)

// waitForAssetsJS resolves once fonts are ready and every image has loaded or failed
const waitForAssetsJS = `
(function() {
	return Promise.all([
		document.fonts.ready,
		Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
			return new Promise((resolve) => {
				if (img.complete && img.naturalWidth > 0) {
					resolve();
					return;
				}
				const timeout = setTimeout(() => resolve(), 5000);
				img.addEventListener('load', () => { clearTimeout(timeout); resolve(); });
				img.addEventListener('error', () => { clearTimeout(timeout); resolve(); });
			});
		}))
	]);
})();
`

// contentHeightJS returns the bottom of the printed sheet, independent of the viewport height
const contentHeightJS = `
(function() {
	const el = document.querySelector('.sheet') || document.body;
	return Math.ceil(el.getBoundingClientRect().bottom + window.scrollY);
})();
`

// DocumentRenderURL is the pure-print URL of a document served at baseURL
func DocumentRenderURL(baseURL, orderID string, variant models.DocumentVariant) string {
	query := url.Values{}
	query.Set("type", variant.Key())
	query.Set("embedded", "1")
	return strings.TrimRight(baseURL, "/") + "/documents/" + url.PathEscape(orderID) + "?" + query.Encode()
}

// PDFService prints rendered documents through headless Chrome
type PDFService struct {
	chromePath string
}

// NewPDFService creates a new PDFService.
// An empty chromePath is resolved with detectChromePath.
func NewPDFService(chromePath string) *PDFService {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	return &PDFService{chromePath: chromePath}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// GeneratePDF loads renderURL in headless Chrome and prints it on the variant's paper width
func (s *PDFService) GeneratePDF(ctx context.Context, renderURL string, variant models.DocumentVariant) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, pdfTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if s.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	widthMM := variant.PaperWidthMM()
	var contentHeightPx float64

	log.Printf("📄 GeneratePDF: variant=%s url=%s width=%.0fmm", variant.Key(), renderURL, widthMM)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(int64(widthMM*pxPerMM), viewportHeightPx(variant)),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(waitForAssetsJS, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.Evaluate(contentHeightJS, &contentHeightPx),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			widthIn, heightIn, preferCSS := paperSize(variant, contentHeightPx)
			printer := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(widthIn).
				WithPaperHeight(heightIn).
				WithPreferCSSPageSize(preferCSS).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0)
			pdfBuf, _, err = printer.Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✅ GeneratePDF: variant=%s bytes=%d", variant.Key(), len(pdfBuf))
	return pdfBuf, nil
}

// viewportHeightPx keeps the ticket viewport short so the measured strip is not padded to it
func viewportHeightPx(variant models.DocumentVariant) int64 {
	if variant == models.TicketCaisse {
		return ticketViewportHeightPx
	}
	return pageViewportHeightPx
}

// paperSize returns the paper in inches. Receipts are one continuous strip as long
// as the content; every other variant prints on A4 pages.
func paperSize(variant models.DocumentVariant, contentHeightPx float64) (widthIn, heightIn float64, preferCSS bool) {
	widthIn = variant.PaperWidthMM() / mmPerInch
	if variant == models.TicketCaisse && contentHeightPx > 0 {
		return widthIn, contentHeightPx / pxPerInch, false
	}
	return widthIn, a4HeightMM / mmPerInch, true
}
