// Turns rendered-HTML snapshots of a listing into a JobListing value.
// Everything here is pure: the crawl driver snapshots the live page, this
// package never touches it, so the whole extraction is testable against
// static fixtures.

package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"go-simplify-harvest/internal/funding"
	"go-simplify-harvest/internal/models"
)

var offerIDPattern = regexp.MustCompile(`/([0-9a-fA-F-]{36})/`)

// ParseFragment parses a rendered HTML snapshot into a goquery selection.
func ParseFragment(html string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return doc.Selection, nil
}

// OfferID pulls the 36-character UUID segment out of a detail URL. A URL
// without one cannot identify a listing and is a structural failure.
func OfferID(url string) (string, error) {
	m := offerIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", &StructuralError{Capability: "offer id segment", URL: url}
	}
	id := m[1]
	if _, err := uuid.Parse(id); err != nil {
		return "", &StructuralError{Capability: "offer id segment", URL: url}
	}
	return id, nil
}

// Listing assembles a JobListing from the summary block and the expanded
// detail pane. Missing skill or category containers indicate a layout
// regression and fail the item; unparseable funding or foundation year are
// cosmetic and map to absent values.
func Listing(summary, detail *goquery.Selection, url string) (*models.JobListing, error) {
	id, err := OfferID(url)
	if err != nil {
		return nil, err
	}

	pane := NewDetailPane(detail)

	skills, ok := pane.SkillTags()
	if !ok {
		return nil, &StructuralError{Capability: "skills block", URL: url}
	}
	categories, ok := pane.CategoryTags()
	if !ok {
		return nil, &StructuralError{Capability: "categories block", URL: url}
	}

	experience := pane.ExperienceBadges()
	if len(experience) == 0 {
		//the internship filter strips the badges, never store an empty level
		experience = []string{"Intern"}
	}

	listing := &models.JobListing{
		ID:                id,
		PositionName:      strings.TrimSpace(summary.Find("h3").First().Text()),
		CompanyName:       strings.TrimSpace(summary.Find("h4").First().Text()),
		Locations:         strings.TrimSpace(summary.Find("p").First().Text()),
		ExperienceLevel:   experience,
		DesiredSkills:     skills,
		Categories:        categories,
		EmployeeCount:     pane.EmployeeCount(),
		CompanyWebsite:    pane.CompanyWebsite(),
		CompanyIndustries: pane.IndustryTags(),
	}

	if headings := pane.ProfileHeadings(); len(headings) > 0 {
		stage := headings[0]
		listing.CompanyStage = &stage
		if len(headings) > 1 {
			listing.CompanyFunding = funding.Normalize(headings[1])
		}
		if len(headings) > 2 {
			if year, err := strconv.Atoi(strings.TrimSpace(headings[2])); err == nil && year >= 1000 && year <= 9999 {
				listing.FoundationYear = &year
			}
		}
	}

	return listing, nil
}
