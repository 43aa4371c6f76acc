// Package balance scrapes the remaining credit from the vendor's billing
// page. The page is client-rendered and has no documented API, so a headless
// browser renders it and the first plausible number in the DOM is taken as
// the balance.
package balance

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

const (
	navigationTimeout = 30 * time.Second
	renderTimeout     = 5 * time.Second

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 NegarBot/1.0"

	// Loose on purpose: the vendor's markup is unversioned and has changed
	// before. Extraction proceeds even when no marker shows up in time.
	markerSelector = "[class*='balance'], [class*='credit'], main"

	// First element whose trimmed text is purely digits and parses into
	// (0, 10000) wins, in document order.
	extractScript = `(() => {
		const nodes = document.querySelectorAll('span, div, td, p, b, strong');
		for (const el of nodes) {
			const text = (el.textContent || '').trim();
			if (!/^\d+$/.test(text)) continue;
			const n = parseInt(text, 10);
			if (n > 0 && n < 10000) return n;
		}
		return 0;
	})()`
)

// Result distinguishes a read balance from a failed scrape. Amount is only
// meaningful when Available is true; a true zero balance reads as
// {Amount: 0, Available: true}.
type Result struct {
	Amount    int  `json:"balance"`
	Available bool `json:"available"`
}

type session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

func (s *session) alive() bool {
	return s.ctx.Err() == nil
}

// Fetcher owns at most one headless browser process, launched on first use
// and reused until Shutdown. Concurrent fetches share the browser, each in
// its own tab; there is no cap on concurrent tabs.
type Fetcher struct {
	billingURL string
	logger     zerolog.Logger

	mu      sync.Mutex
	browser *session

	// Swapped out in tests; production wiring is set by NewFetcher.
	launch func() (*session, error)
	scrape func(sess *session, apiKey string) (int, error)
}

func NewFetcher(billingURL, chromePath string, logger zerolog.Logger) *Fetcher {
	f := &Fetcher{
		billingURL: billingURL,
		logger:     logger,
	}
	f.launch = func() (*session, error) { return launchBrowser(chromePath) }
	f.scrape = f.scrapeTab
	return f
}

// Fetch renders the billing page and extracts the balance. It never returns
// an error: any failure is logged and reported as an unavailable result.
func (f *Fetcher) Fetch(apiKey string) Result {
	sess, err := f.acquire()
	if err != nil {
		f.logger.Error().Err(err).Msg("Browser launch failed")
		return Result{}
	}

	amount, err := f.scrape(sess, apiKey)
	if err != nil {
		f.logger.Error().Err(err).Str("url", f.billingURL).Msg("Balance scrape failed")
		return Result{}
	}

	return Result{Amount: amount, Available: true}
}

// acquire returns the shared browser session, launching one if none exists
// or the previous one has died.
func (f *Fetcher) acquire() (*session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil && f.browser.alive() {
		return f.browser, nil
	}

	sess, err := f.launch()
	if err != nil {
		return nil, err
	}
	f.browser = sess
	f.logger.Info().Msg("Headless browser launched")
	return sess, nil
}

// Shutdown closes the shared browser. A later Fetch launches a fresh one.
func (f *Fetcher) Shutdown() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser == nil {
		return
	}
	f.browser.cancel()
	if f.browser.allocCancel != nil {
		f.browser.allocCancel()
	}
	f.browser = nil
	f.logger.Info().Msg("Headless browser closed")
}

func launchBrowser(chromePath string) (*session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Run with no actions starts the browser process now instead of on the
	// first navigation, so launch failures surface here.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, err
	}

	return &session{ctx: browserCtx, cancel: browserCancel, allocCancel: allocCancel}, nil
}

// scrapeTab opens a tab in the shared browser, authenticates both through an
// Authorization header and a domain cookie (the page's auth mechanism is
// undocumented, so both channels are tried), navigates, and extracts.
// Closing the tab never touches the shared browser.
func (f *Fetcher) scrapeTab(sess *session, apiKey string) (int, error) {
	tabCtx, closeTab := chromedp.NewContext(sess.ctx)
	defer closeTab()

	host := ""
	if u, err := url.Parse(f.billingURL); err == nil {
		host = u.Hostname()
	}

	headers := network.Headers{
		"Authorization": "Bearer " + apiKey,
		"User-Agent":    userAgent,
	}

	navCtx, cancelNav := context.WithTimeout(tabCtx, navigationTimeout)
	defer cancelNav()

	err := chromedp.Run(navCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(headers),
		network.SetCookie("token", apiKey).
			WithDomain(host).
			WithPath("/").
			WithSecure(true),
		chromedp.Navigate(f.billingURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return 0, err
	}

	// Best effort: the page may render its numbers late. A missed marker is
	// logged and extraction runs against whatever has rendered.
	waitCtx, cancelWait := context.WithTimeout(tabCtx, renderTimeout)
	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(markerSelector, chromedp.ByQuery)); err != nil {
		f.logger.Warn().Err(err).Msg("Render marker not seen, extracting anyway")
	}
	cancelWait()

	var amount int
	if err := chromedp.Run(tabCtx, chromedp.Evaluate(extractScript, &amount)); err != nil {
		return 0, err
	}
	if amount < 0 {
		return 0, errors.New("extracted a negative balance")
	}
	return amount, nil
}
