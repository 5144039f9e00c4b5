package crawler

import (
	"context"
	"errors"
)

// ErrNotInteractable means the scroll target cannot take input yet, which
// happens while the page is still rendering the next batch of listings.
var ErrNotInteractable = errors.New("scroll target is not interactable yet")

// ListingView is the rendered, infinitely scrolling jobs page the driver
// walks. The playwright implementation lives in playwright_view.go; tests
// drive the cursor machine with fakes.
type ListingView interface {
	// Open navigates to the filtered listing URL and waits for the first
	// summary blocks to render.
	Open(ctx context.Context) error
	// Items returns handles to every currently rendered summary block, in
	// document order.
	Items() ([]ListingItem, error)
	// ScrollPast issues the load-more scroll signal on item.
	ScrollPast(item ListingItem) error
}

// ListingItem is one summary block with an expandable detail pane.
type ListingItem interface {
	// OpenDetail clicks the detail trigger, waits for the pane to become
	// actionable and snapshots it together with the detail URL.
	OpenDetail(ctx context.Context) (*DetailSnapshot, error)
	// CloseDetail dismisses the pane and waits for it to disappear.
	CloseDetail(ctx context.Context) error
}

// DetailSnapshot is the static capture the extractor works on. Once taken,
// nothing downstream touches the live page.
type DetailSnapshot struct {
	SummaryHTML string
	DetailHTML  string
	URL         string
}
