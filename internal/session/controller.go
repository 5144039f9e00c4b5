package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// State of the login flow.
type State int

const (
	Unauthenticated State = iota
	CredentialsSubmitted
	ChallengePending
	Authenticated
)

// ErrMarkerTimeout means the authenticated-UI marker did not render within
// the bounded wait, usually because a CAPTCHA is blocking the flow.
var ErrMarkerTimeout = errors.New("authenticated marker did not appear")

// LoginPage is the slice of the browser the controller drives. The live
// playwright implementation lives in internal/browser; tests use a fake.
type LoginPage interface {
	// Open navigates to the login form and waits for it to render.
	Open(ctx context.Context) error
	// SubmitCredentials fills the credential fields and submits the form.
	SubmitCredentials(ctx context.Context, email, password string) error
	// AwaitAuthenticated blocks until the authenticated-UI marker renders.
	// A timeout is reported as ErrMarkerTimeout.
	AwaitAuthenticated(timeout time.Duration) error
}

// Prompt blocks until the operator signals that a challenge has been
// resolved, or until ctx is cancelled.
type Prompt interface {
	AwaitResolution(ctx context.Context) error
}

type Controller struct {
	page       LoginPage
	prompt     Prompt
	markerWait time.Duration
	state      State
}

func NewController(page LoginPage, prompt Prompt) *Controller {
	return &Controller{
		page:       page,
		prompt:     prompt,
		markerWait: 30 * time.Second,
	}
}

func (c *Controller) State() State {
	return c.state
}

// Establish submits credentials and blocks until the authenticated-UI
// marker is visible. Login succeeds only on that structural marker, never
// on the absence of an error. A challenge the automation cannot pass
// (CAPTCHA) parks the flow on the operator prompt and re-enters the same
// poll; the loop is never abandoned on its own, only ctx cancellation
// breaks it.
func (c *Controller) Establish(ctx context.Context, email, password string) error {
	log.Println("🔐 Logging in to the website...")
	if err := c.page.Open(ctx); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	if err := c.page.SubmitCredentials(ctx, email, password); err != nil {
		return fmt.Errorf("submit credentials: %w", err)
	}
	c.state = CredentialsSubmitted

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := c.page.AwaitAuthenticated(c.markerWait)
		if err == nil {
			c.state = Authenticated
			log.Println("✅ Login successful, proceeding to jobs...")
			return nil
		}
		if !errors.Is(err, ErrMarkerTimeout) {
			return fmt.Errorf("wait for authenticated marker: %w", err)
		}

		c.state = ChallengePending
		log.Println("⚠️ Login unsuccessful or CAPTCHA encountered. Solve it in the browser window, then confirm to retry.")
		if err := c.prompt.AwaitResolution(ctx); err != nil {
			return fmt.Errorf("manual intervention: %w", err)
		}
	}
}
