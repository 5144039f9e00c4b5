package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DetailPane wraps the expanded job-offer markup and exposes the handful
// of capabilities the site actually renders. Nothing on the page carries a
// stable name: the contract is purely positional ("the first labeled block
// of this class"), so every selector lives in this file and a site layout
// change lands here, not in the crawl logic.
type DetailPane struct {
	root *goquery.Selection
}

func NewDetailPane(root *goquery.Selection) *DetailPane {
	return &DetailPane{root: root}
}

// ExperienceBadges returns the highlighted experience tags. The site omits
// the badges entirely on internship-only listings.
func (p *DetailPane) ExperienceBadges() []string {
	return textsOf(p.root.Find("div.bg-primary-light"))
}

// SkillTags reads the tag pills of the first labeled block. ok is false
// when the block itself is missing from the markup.
func (p *DetailPane) SkillTags() (tags []string, ok bool) {
	block := p.root.Find("div.mb-3").First()
	if block.Length() == 0 {
		return nil, false
	}
	return textsOf(block.Find("div.mt-3")), true
}

// CategoryTags reads the tag pills of the collapsed categories block. ok
// is false when the block itself is missing from the markup.
func (p *DetailPane) CategoryTags() (tags []string, ok bool) {
	block := p.root.Find(`div[data-state="closed"]`).First()
	if block.Length() == 0 {
		return nil, false
	}
	return textsOf(block.Find("div.mt-3")), true
}

// EmployeeCount returns the headcount range with its trailing unit
// stripped, e.g. "11-50".
func (p *DetailPane) EmployeeCount() string {
	text := p.root.Find("p.mt-1").First().Text()
	return strings.TrimSpace(strings.ReplaceAll(text, "employees", ""))
}

func (p *DetailPane) CompanyWebsite() string {
	href, _ := p.root.Find("a.text-stone-600").First().Attr("href")
	return href
}

func (p *DetailPane) IndustryTags() []string {
	return textsOf(p.root.Find("div.mb-1 div.mt-3"))
}

// ProfileHeadings returns the headings of the optional company profile
// block in render order: stage, raised funding, foundation year. The slice
// is empty when the listing has no profile block.
func (p *DetailPane) ProfileHeadings() []string {
	return textsOf(p.root.Find("div.py-5 h1"))
}

func textsOf(sel *goquery.Selection) []string {
	out := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}
