package fetch

import (
	"context"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"
)

// maskWebdriver hides the automation fingerprint before any site script runs.
const maskWebdriver = `Object.defineProperty(navigator, 'webdriver', { get: () => undefined });`

// Rendered drives a headless browser for script-rendered pages. Every call
// launches and fully tears down its own browser instance so no session state
// leaks between requests.
type Rendered struct {
	ExecutablePath string
	UserAgent      string
	NavTimeout     time.Duration
	SettleDelay    time.Duration
}

func NewRendered(executablePath, userAgent string, navTimeout, settleDelay time.Duration) *Rendered {
	return &Rendered{
		ExecutablePath: executablePath,
		UserAgent:      userAgent,
		NavTimeout:     navTimeout,
		SettleDelay:    settleDelay,
	}
}

func (r *Rendered) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Error{URL: url, Reason: ReasonBrowser, Err: err}
	}

	pw, err := playwright.Run()
	if err != nil {
		return "", &Error{URL: url, Reason: ReasonBrowser, Err: err}
	}
	defer pw.Stop()

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     []string{"--disable-blink-features=AutomationControlled"},
	}
	if r.ExecutablePath != "" {
		launchOpts.ExecutablePath = playwright.String(r.ExecutablePath)
	}
	browser, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		return "", &Error{URL: url, Reason: ReasonBrowser, Err: err}
	}
	defer browser.Close()

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(r.UserAgent),
	})
	if err != nil {
		return "", &Error{URL: url, Reason: ReasonBrowser, Err: err}
	}
	if err := browserCtx.AddInitScript(playwright.Script{
		Content: playwright.String(maskWebdriver),
	}); err != nil {
		log.Printf("⚠️ Could not install stealth script: %v", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		return "", &Error{URL: url, Reason: ReasonBrowser, Err: err}
	}

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(r.NavTimeout.Milliseconds())),
	}); err != nil {
		return "", &Error{URL: url, Reason: ReasonNetwork, Err: err}
	}

	// short settle so late-loading listing scripts finish
	time.Sleep(r.SettleDelay)

	markup, err := page.Content()
	if err != nil {
		return "", &Error{URL: url, Reason: ReasonBrowser, Err: err}
	}
	return markup, nil
}
