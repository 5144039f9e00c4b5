package crawler

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"go-simplify-harvest/utils"
)

const (
	summaryBlockSelector = "div.bg-white.rounded-md"
	detailTrigger        = "span.ml-2"
	detailReadySelector  = "button.text-lg"
	detailPaneSelector   = "div.relative.h-screen"
	closeTrigger         = "button.float-right"
	overlaySelector      = "div.fixed"

	navigationTimeoutMs = 30000
	paneTimeoutMs       = 30000
	scrollTimeoutMs     = 2000
)

// PlaywrightView drives the live jobs page. All selectors for the list
// view live here, mirroring how the detail-pane selectors live in the
// extract package.
type PlaywrightView struct {
	page playwright.Page
	url  string
}

func NewPlaywrightView(page playwright.Page, filterURL string) *PlaywrightView {
	return &PlaywrightView{page: page, url: filterURL}
}

func (v *PlaywrightView) Open(ctx context.Context) error {
	if _, err := v.page.Goto(v.url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(navigationTimeoutMs),
	}); err != nil {
		return fmt.Errorf("navigate to %s: %w", v.url, err)
	}

	if _, err := v.page.WaitForSelector(summaryBlockSelector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(navigationTimeoutMs),
	}); err != nil {
		return fmt.Errorf("wait for summary blocks: %w", err)
	}
	return nil
}

func (v *PlaywrightView) Items() ([]ListingItem, error) {
	blocks, err := v.page.Locator(summaryBlockSelector).All()
	if err != nil {
		return nil, fmt.Errorf("query summary blocks: %w", err)
	}

	items := make([]ListingItem, len(blocks))
	for i, block := range blocks {
		items[i] = &playwrightItem{page: v.page, block: block}
	}
	return items, nil
}

// ScrollPast sends PageDown to the block so the page loads the next batch.
func (v *PlaywrightView) ScrollPast(item ListingItem) error {
	pi, ok := item.(*playwrightItem)
	if !ok {
		return fmt.Errorf("foreign listing item %T", item)
	}
	if err := pi.block.Press("PageDown", playwright.LocatorPressOptions{
		Timeout: playwright.Float(scrollTimeoutMs),
	}); err != nil {
		return ErrNotInteractable
	}
	return nil
}

type playwrightItem struct {
	page  playwright.Page
	block playwright.Locator
}

func (it *playwrightItem) OpenDetail(ctx context.Context) (*DetailSnapshot, error) {
	//a touch of human pacing between clicks
	utils.RandomDelay(100, 300)

	if err := it.block.Locator(detailTrigger).First().Click(); err != nil {
		return nil, fmt.Errorf("click detail trigger: %w", err)
	}

	//the pane counts as rendered once its primary button takes clicks
	if err := it.page.Locator(detailReadySelector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(paneTimeoutMs),
	}); err != nil {
		return nil, fmt.Errorf("wait for detail pane: %w", err)
	}

	summaryHTML, err := outerHTML(it.block)
	if err != nil {
		return nil, fmt.Errorf("snapshot summary block: %w", err)
	}
	detailHTML, err := outerHTML(it.page.Locator(detailPaneSelector).First())
	if err != nil {
		return nil, fmt.Errorf("snapshot detail pane: %w", err)
	}

	return &DetailSnapshot{
		SummaryHTML: summaryHTML,
		DetailHTML:  detailHTML,
		URL:         it.page.URL(),
	}, nil
}

func (it *playwrightItem) CloseDetail(ctx context.Context) error {
	if err := it.page.Locator(closeTrigger).First().Click(); err != nil {
		return fmt.Errorf("click close trigger: %w", err)
	}

	if err := it.page.Locator(overlaySelector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(paneTimeoutMs),
	}); err != nil {
		return fmt.Errorf("wait for detail pane to close: %w", err)
	}
	return nil
}

func outerHTML(locator playwright.Locator) (string, error) {
	result, err := locator.Evaluate("el => el.outerHTML", nil)
	if err != nil {
		return "", err
	}
	html, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected outerHTML result %T", result)
	}
	return html, nil
}
