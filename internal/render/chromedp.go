package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/danielokim/quotekit/internal/domain"
)

// Assets holds the file paths of a completed export.
type Assets struct {
	PDFPath string
	PNGPath string
}

// Renderer turns a quote into printable export assets.
type Renderer interface {
	Render(ctx context.Context, q *domain.Quote) (*Assets, error)
}

// ChromeRenderer renders quote documents to PDF and PNG files through a
// headless Chrome instance.
type ChromeRenderer struct {
	outDir  string
	timeout time.Duration
}

func NewChromeRenderer(outDir string) *ChromeRenderer {
	return &ChromeRenderer{outDir: outDir, timeout: 60 * time.Second}
}

// a4 dimensions in inches, with 14mm margins to match the print layout.
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69
	marginIn   = 0.55
)

func (r *ChromeRenderer) Render(ctx context.Context, q *domain.Quote) (*Assets, error) {
	html, err := HTML(q)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(r.outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdfBuf, pngBuf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithMarginTop(marginIn).
				WithMarginBottom(marginIn).
				WithMarginLeft(marginIn).
				WithMarginRight(marginIn).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
		chromedp.FullScreenshot(&pngBuf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering with headless chrome: %w", err)
	}

	base := assetBaseName(q)
	assets := &Assets{
		PDFPath: filepath.Join(r.outDir, base+".pdf"),
		PNGPath: filepath.Join(r.outDir, base+".png"),
	}
	if err := os.WriteFile(assets.PDFPath, pdfBuf, 0644); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	if err := os.WriteFile(assets.PNGPath, pngBuf, 0644); err != nil {
		return nil, fmt.Errorf("writing png: %w", err)
	}
	return assets, nil
}

var unsafePathChars = regexp.MustCompile(`[^\w가-힣.-]`)

// assetBaseName builds a filesystem-safe name from the quote identity.
func assetBaseName(q *domain.Quote) string {
	quoteNo := ""
	if q.Number != nil {
		quoteNo = q.Number.String()
	}
	safe := func(s string) string {
		return unsafePathChars.ReplaceAllString(s, "_")
	}
	return fmt.Sprintf("%s_%s_%s", safe(quoteNo), safe(q.Client), safe(q.Model.Raw))
}
