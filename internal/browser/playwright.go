package browser

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightManager owns the driver process and the browser instance. The
// browser is launched headed on purpose: the login flow can hit a CAPTCHA
// the operator has to solve in a visible window.
type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewPlaywright(ctx context.Context) (*PlaywrightManager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright driver: %w", err)
	}

	browser, err := pw.Firefox.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(false),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	return &PlaywrightManager{pw: pw, browser: browser}, nil
}

// NewContext creates a browser context, seeding it with previously saved
// cookies when there are any.
func (pm *PlaywrightManager) NewContext(cookies []playwright.OptionalCookie) (playwright.BrowserContext, error) {
	browserCtx, err := pm.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("create browser context: %w", err)
	}

	if len(cookies) > 0 {
		if err := browserCtx.AddCookies(cookies); err != nil {
			return nil, fmt.Errorf("restore cookies: %w", err)
		}
	}

	return browserCtx, nil
}

func (pm *PlaywrightManager) Close() error {
	var firstErr error
	if pm.browser != nil {
		firstErr = pm.browser.Close()
	}
	if err := pm.pw.Stop(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
