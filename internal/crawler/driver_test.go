package crawler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-simplify-harvest/internal/database"
	"go-simplify-harvest/internal/extract"
	"go-simplify-harvest/internal/models"
)

const testSummaryHTML = `
<div class="bg-white rounded-md">
  <h3>Backend Intern</h3>
  <h4>Acme</h4>
  <p>Remote</p>
</div>`

const testDetailHTML = `
<div class="relative h-screen">
  <div class="mb-3"><div class="mt-3">Go</div></div>
  <div data-state="closed"><div class="mt-3">Backend</div></div>
  <p class="mt-1">11-50 employees</p>
  <a class="text-stone-600" href="https://acme.example.com">Website</a>
</div>`

func offerURL(id string) string {
	return fmt.Sprintf("https://simplify.jobs/jobs/%s/overview", id)
}

func testUUID(n int) string {
	return fmt.Sprintf("3fa85f64-5717-4562-b3fc-2c963f66af%02x", n)
}

type fakeItem struct {
	snap    DetailSnapshot
	openErr error
	opens   int
	closes  int
}

func (f *fakeItem) OpenDetail(ctx context.Context) (*DetailSnapshot, error) {
	f.opens++
	if f.openErr != nil {
		return nil, f.openErr
	}
	snap := f.snap
	return &snap, nil
}

func (f *fakeItem) CloseDetail(ctx context.Context) error {
	f.closes++
	return nil
}

func newFakeItem(id string) *fakeItem {
	return &fakeItem{snap: DetailSnapshot{
		SummaryHTML: testSummaryHTML,
		DetailHTML:  testDetailHTML,
		URL:         offerURL(id),
	}}
}

// fakeView serves batches of items keyed by how many scrolls succeeded,
// imitating the page loading more blocks after each scroll signal.
type fakeView struct {
	batches    [][]ListingItem
	scrolls    int
	scrollErrs []error //popped per ScrollPast call
}

func (f *fakeView) Open(ctx context.Context) error { return nil }

func (f *fakeView) Items() ([]ListingItem, error) {
	idx := f.scrolls
	if idx >= len(f.batches) {
		idx = len(f.batches) - 1
	}
	if idx < 0 {
		return nil, nil
	}
	return f.batches[idx], nil
}

func (f *fakeView) ScrollPast(item ListingItem) error {
	if len(f.scrollErrs) > 0 {
		err := f.scrollErrs[0]
		f.scrollErrs = f.scrollErrs[1:]
		if err != nil {
			return err
		}
	}
	f.scrolls++
	return nil
}

type fakeStore struct {
	seen      map[string]bool
	appended  []string
	appendErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{seen: map[string]bool{}}
}

func (s *fakeStore) Append(ctx context.Context, listing *models.JobListing) (database.Outcome, error) {
	if s.appendErr != nil {
		return 0, s.appendErr
	}
	if s.seen[listing.ID] {
		return database.AlreadyExists, nil
	}
	s.seen[listing.ID] = true
	s.appended = append(s.appended, listing.ID)
	return database.Inserted, nil
}

func newTestDriver(view ListingView, store Store) *Driver {
	d := NewDriver(view, store)
	d.backoff = time.Millisecond
	return d
}

func TestRunTerminatesOnEmptyWindow(t *testing.T) {
	view := &fakeView{batches: [][]ListingItem{{}}}
	d := newTestDriver(view, newFakeStore())

	require.NoError(t, d.Run(context.Background()))
	assert.Zero(t, d.Cursor())
	assert.Zero(t, view.scrolls, "no scroll signal after an empty window")
}

func TestRunAdvancesCursorPastDuplicates(t *testing.T) {
	//three items, the middle one a repeat of the first
	items := []ListingItem{
		newFakeItem(testUUID(1)),
		newFakeItem(testUUID(1)),
		newFakeItem(testUUID(2)),
	}
	view := &fakeView{batches: [][]ListingItem{items}}
	store := newFakeStore()
	d := newTestDriver(view, store)

	require.NoError(t, d.Run(context.Background()))

	assert.Equal(t, 3, d.Cursor(), "cursor advances once per item, duplicates included")
	assert.Equal(t, []string{testUUID(1), testUUID(2)}, store.appended)
	assert.Equal(t, 2, d.Inserted())
	assert.Equal(t, 1, d.Duplicates())
	for _, item := range items {
		assert.Equal(t, 1, item.(*fakeItem).closes, "every pane closed exactly once")
	}
}

func TestRunLoadsFurtherBatches(t *testing.T) {
	first := []ListingItem{newFakeItem(testUUID(1)), newFakeItem(testUUID(2))}
	second := append(append([]ListingItem{}, first...),
		newFakeItem(testUUID(3)))
	view := &fakeView{batches: [][]ListingItem{first, second}}
	store := newFakeStore()
	d := newTestDriver(view, store)

	require.NoError(t, d.Run(context.Background()))

	assert.Equal(t, 3, d.Cursor())
	assert.Equal(t, []string{testUUID(1), testUUID(2), testUUID(3)}, store.appended)
}

func TestRunIsIdempotentAcrossRuns(t *testing.T) {
	//an unchanged listing crawled twice against the same store: same rows
	makeItems := func() []ListingItem {
		return []ListingItem{newFakeItem(testUUID(1)), newFakeItem(testUUID(2))}
	}
	store := newFakeStore()

	first := newTestDriver(&fakeView{batches: [][]ListingItem{makeItems()}}, store)
	require.NoError(t, first.Run(context.Background()))

	second := newTestDriver(&fakeView{batches: [][]ListingItem{makeItems()}}, store)
	require.NoError(t, second.Run(context.Background()))

	assert.Equal(t, []string{testUUID(1), testUUID(2)}, store.appended)
	assert.Equal(t, 2, second.Duplicates())
	assert.Zero(t, second.Inserted())
}

func TestRunHaltsOnStructuralFailure(t *testing.T) {
	bad := newFakeItem(testUUID(1))
	bad.snap.URL = "https://simplify.jobs/jobs/not-a-uuid/overview"
	never := newFakeItem(testUUID(2))
	view := &fakeView{batches: [][]ListingItem{{bad, never}}}
	d := newTestDriver(view, newFakeStore())

	err := d.Run(context.Background())
	var structural *extract.StructuralError
	require.ErrorAs(t, err, &structural)

	assert.Equal(t, 1, d.Cursor(), "cursor still advances past the failed item")
	assert.Zero(t, never.opens, "no further item is visited after a layout failure")
}

func TestRunBacksOffOnTransientScroll(t *testing.T) {
	items := []ListingItem{newFakeItem(testUUID(1))}
	view := &fakeView{
		batches:    [][]ListingItem{items},
		scrollErrs: []error{ErrNotInteractable},
	}
	d := newTestDriver(view, newFakeStore())

	//the transient scroll failure is absorbed; the next iteration sees an
	//empty window past the cursor and terminates cleanly
	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, 1, d.Cursor())
}

func TestRunSurfacesStoreErrors(t *testing.T) {
	store := newFakeStore()
	store.appendErr = fmt.Errorf("connection refused")
	view := &fakeView{batches: [][]ListingItem{{newFakeItem(testUUID(1))}}}
	d := newTestDriver(view, store)

	err := d.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist listing")
}
