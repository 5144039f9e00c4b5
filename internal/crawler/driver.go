package crawler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-simplify-harvest/internal/database"
	"go-simplify-harvest/internal/extract"
	"go-simplify-harvest/internal/models"
)

// Store is the only persistence capability the driver needs: insert or
// detect a duplicate. Transactions are the repository's business.
type Store interface {
	Append(ctx context.Context, listing *models.JobListing) (database.Outcome, error)
}

// windowSize matches the number of summary blocks the site renders per
// scroll step.
const windowSize = 21

const scrollBackoff = 500 * time.Millisecond

// Driver walks the listing one item at a time: exactly one detail pane is
// open, extracted and persisted before the next one is touched, because
// the pane snapshot is only meaningful against a single in-flight view.
type Driver struct {
	view    ListingView
	store   Store
	backoff time.Duration

	cursor     int
	inserted   int
	duplicates int
}

func NewDriver(view ListingView, store Store) *Driver {
	return &Driver{
		view:    view,
		store:   store,
		backoff: scrollBackoff,
	}
}

// Cursor is the offset of the next unvisited item in the rendered set.
func (d *Driver) Cursor() int { return d.cursor }

func (d *Driver) Inserted() int { return d.inserted }

func (d *Driver) Duplicates() int { return d.duplicates }

// Run crawls until a window past the cursor comes up empty, the one and
// only termination condition. A structural extraction failure aborts the
// run instead: it means the site layout drifted and every further row
// would be suspect.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.view.Open(ctx); err != nil {
		return fmt.Errorf("open listing view: %w", err)
	}
	log.Println("📋 Listing view loaded, starting crawl...")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		items, err := d.view.Items()
		if err != nil {
			return fmt.Errorf("query listing items: %w", err)
		}

		window := clampWindow(items, d.cursor, windowSize)
		if len(window) == 0 {
			log.Printf("🏁 No further listings past offset %d, crawl complete", d.cursor)
			return nil
		}

		for _, item := range window {
			err := d.visit(ctx, item)
			d.cursor++ //one step per item, success or not
			if err != nil {
				return err
			}
		}

		if err := d.view.ScrollPast(window[len(window)-1]); err != nil {
			if errors.Is(err, ErrNotInteractable) {
				//the page has not finished rendering the next batch
				time.Sleep(d.backoff)
				continue
			}
			return fmt.Errorf("scroll listing: %w", err)
		}
	}
}

// visit runs the per-item protocol: open the pane, snapshot it, extract,
// persist, close. Each step is a precondition for the next.
func (d *Driver) visit(ctx context.Context, item ListingItem) error {
	snap, err := item.OpenDetail(ctx)
	if err != nil {
		return fmt.Errorf("open detail at offset %d: %w", d.cursor, err)
	}

	if err := d.extractAndStore(ctx, snap); err != nil {
		return err
	}

	return d.closeWithRetry(ctx, item)
}

func (d *Driver) extractAndStore(ctx context.Context, snap *DetailSnapshot) error {
	summary, err := extract.ParseFragment(snap.SummaryHTML)
	if err != nil {
		return fmt.Errorf("parse summary snapshot of %s: %w", snap.URL, err)
	}
	detail, err := extract.ParseFragment(snap.DetailHTML)
	if err != nil {
		return fmt.Errorf("parse detail snapshot of %s: %w", snap.URL, err)
	}

	listing, err := extract.Listing(summary, detail, snap.URL)
	if err != nil {
		//structural: stop before writing rows from an unrecognized layout
		return err
	}

	outcome, err := d.store.Append(ctx, listing)
	if err != nil {
		return fmt.Errorf("persist listing %s: %w", listing.ID, err)
	}

	switch outcome {
	case database.Inserted:
		d.inserted++
		log.Printf("💾 %s is added to database", listing.ID)
	case database.AlreadyExists:
		d.duplicates++
		log.Printf("ℹ️ %s is already in database", listing.ID)
	}
	return nil
}

// closeWithRetry gives the close step one backoff retry: an unclosed pane
// would poison every later snapshot, so after the retry the failure
// propagates.
func (d *Driver) closeWithRetry(ctx context.Context, item ListingItem) error {
	if err := item.CloseDetail(ctx); err == nil {
		return nil
	}
	time.Sleep(d.backoff)
	if err := item.CloseDetail(ctx); err != nil {
		return fmt.Errorf("detail pane did not close: %w", err)
	}
	return nil
}

func clampWindow(items []ListingItem, start, size int) []ListingItem {
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
