package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-simplify-harvest/internal/session"
)

const (
	loginFormSelector  = "button.flex"
	credentialSelector = "input.form-input"
	//rendered only inside the authenticated UI, which makes it a reliable
	//positive login signal
	authenticatedMarker = "a.rounded-full.bg-primary-light"

	loginTimeoutMs = 30000
	probeTimeoutMs = 5000
)

// SimplifyLoginPage drives the live login form. It satisfies
// session.LoginPage.
type SimplifyLoginPage struct {
	page     playwright.Page
	loginURL string
}

func NewSimplifyLoginPage(page playwright.Page, loginURL string) *SimplifyLoginPage {
	return &SimplifyLoginPage{page: page, loginURL: loginURL}
}

func (l *SimplifyLoginPage) Open(ctx context.Context) error {
	if _, err := l.page.Goto(l.loginURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(loginTimeoutMs),
	}); err != nil {
		return fmt.Errorf("navigate to %s: %w", l.loginURL, err)
	}

	if _, err := l.page.WaitForSelector(loginFormSelector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(loginTimeoutMs),
	}); err != nil {
		return fmt.Errorf("wait for login form: %w", err)
	}
	return nil
}

func (l *SimplifyLoginPage) SubmitCredentials(ctx context.Context, email, password string) error {
	inputs := l.page.Locator(credentialSelector)
	if err := inputs.Nth(0).Fill(email); err != nil {
		return fmt.Errorf("fill email field: %w", err)
	}
	if err := inputs.Nth(1).Fill(password); err != nil {
		return fmt.Errorf("fill password field: %w", err)
	}
	if err := l.page.Locator(loginFormSelector).First().Click(); err != nil {
		return fmt.Errorf("click login button: %w", err)
	}
	return nil
}

// AwaitAuthenticated reports ErrMarkerTimeout whenever the marker fails to
// render, letting the session controller run its intervention loop.
func (l *SimplifyLoginPage) AwaitAuthenticated(timeout time.Duration) error {
	err := l.page.Locator(authenticatedMarker).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return session.ErrMarkerTimeout
	}
	return nil
}

// SessionActive probes whether restored cookies still carry a logged-in
// session: navigate to the target page and look for the marker with a
// short wait.
func (l *SimplifyLoginPage) SessionActive(ctx context.Context, probeURL string) bool {
	if _, err := l.page.Goto(probeURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(loginTimeoutMs),
	}); err != nil {
		return false
	}

	err := l.page.Locator(authenticatedMarker).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(probeTimeoutMs),
	})
	return err == nil
}
