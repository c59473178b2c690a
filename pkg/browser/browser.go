// Package browser wraps chromedp with the small set of page operations the
// two site flows need: navigation, form input, HTML snapshots and
// authenticated in-page fetches.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// userAgent mirrors a current desktop Chrome; both portals serve a reduced
// login flow to unknown agents.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36"

// Env owns one browser process. Pages created from it share the process but
// keep independent tab contexts and cookie visibility.
type Env struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewEnv starts a browser. Headless is optional because the source portal's
// MFA step is easier to trust when the operator can watch it happen.
func NewEnv(headless bool) *Env {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Env{allocCtx: allocCtx, allocCancel: allocCancel}
}

// NewPage opens a fresh tab.
func (e *Env) NewPage() *Page {
	ctx, cancel := chromedp.NewContext(e.allocCtx)
	return &Page{ctx: ctx, cancel: cancel}
}

// Close tears down the browser process and every page with it.
func (e *Env) Close() {
	e.allocCancel()
}

// Page is one tab. All methods are blocking-with-timeout; a zero timeout
// means the caller's context alone bounds the operation.
type Page struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Close closes the tab.
func (p *Page) Close() {
	p.cancel()
}

// Run executes chromedp actions against this page, bounded by timeout.
func (p *Page) Run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx := p.ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(p.ctx, timeout)
		defer cancel()
	}
	return chromedp.Run(ctx, actions...)
}

// Navigate loads a URL and waits for the document to be ready.
func (p *Page) Navigate(url string, timeout time.Duration) error {
	if err := p.Run(timeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Click clicks the first element matching the CSS selector.
func (p *Page) Click(sel string, timeout time.Duration) error {
	if err := p.Run(timeout, chromedp.Click(sel, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to click %s: %w", sel, err)
	}
	return nil
}

// Type focuses the element and sends keystrokes, so per-key listeners fire
// the same way they would for a human.
func (p *Page) Type(sel, value string, timeout time.Duration) error {
	if err := p.Run(timeout, chromedp.SendKeys(sel, value, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to type into %s: %w", sel, err)
	}
	return nil
}

// WaitVisible blocks until the selector is visible or the timeout expires.
func (p *Page) WaitVisible(sel string, timeout time.Duration) error {
	if err := p.Run(timeout, chromedp.WaitVisible(sel, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("element %s did not appear: %w", sel, err)
	}
	return nil
}

// Exists reports whether the selector currently matches an element.
func (p *Page) Exists(sel string) (bool, error) {
	var found bool
	js := fmt.Sprintf(`document.querySelector(%q) !== null`, sel)
	if err := p.Run(5*time.Second, chromedp.Evaluate(js, &found)); err != nil {
		return false, err
	}
	return found, nil
}

// HTML returns a snapshot of the full document.
func (p *Page) HTML(timeout time.Duration) (string, error) {
	var html string
	if err := p.Run(timeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to snapshot page HTML: %w", err)
	}
	return html, nil
}

// URL returns the page's current location.
func (p *Page) URL() (string, error) {
	var loc string
	if err := p.Run(5*time.Second, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("failed to read page location: %w", err)
	}
	return loc, nil
}

// Eval runs a synchronous JavaScript expression and unmarshals the result
// into out (pass nil to discard it).
func (p *Page) Eval(js string, out any, timeout time.Duration) error {
	if out == nil {
		var discard any
		out = &discard
	}
	if err := p.Run(timeout, chromedp.Evaluate(js, out)); err != nil {
		return fmt.Errorf("script evaluation failed: %w", err)
	}
	return nil
}

// fetchResult is the shape the in-page fetch script resolves to.
type fetchResult struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// Fetch performs an in-page fetch with credentials included, so the request
// rides the session cookies the login flow established. Returns the HTTP
// status and the raw body.
func (p *Page) Fetch(ctx context.Context, url string) (int, []byte, error) {
	js := fmt.Sprintf(
		`fetch(%q, { credentials: "include" }).then(async (r) => ({ status: r.status, body: await r.text() }))`,
		url,
	)

	timeout := 30 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	runCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()

	var res fetchResult
	err := chromedp.Run(runCtx, chromedp.Evaluate(js, &res,
		func(params *runtime.EvaluateParams) *runtime.EvaluateParams {
			return params.WithAwaitPromise(true)
		}))
	if err != nil {
		return 0, nil, fmt.Errorf("in-page fetch of %s failed: %w", url, err)
	}
	return res.Status, []byte(res.Body), nil
}

// Sleep pauses for d; the destination UI has steps with no observable
// completion signal.
func (p *Page) Sleep(d time.Duration) {
	_ = p.Run(0, chromedp.Sleep(d))
}
