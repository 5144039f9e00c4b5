package models

// JobListing is one scraped job offer, keyed by the UUID segment of its
// detail URL. Listings are append-only: a row is written once per
// detail-pane visit and never updated by the pipeline.
type JobListing struct {
	ID                string   `json:"id"`
	PositionName      string   `json:"position_name"`
	CompanyName       string   `json:"company_name"`
	Locations         string   `json:"locations"`
	ExperienceLevel   []string `json:"experience_level"`
	DesiredSkills     []string `json:"desired_skills"`
	Categories        []string `json:"categories"`
	EmployeeCount     string   `json:"employee_count"`
	CompanyWebsite    string   `json:"company_website"`
	CompanyStage      *string  `json:"company_stage,omitempty"`
	CompanyFunding    *int64   `json:"company_funding,omitempty"`
	FoundationYear    *int     `json:"foundation_year,omitempty"`
	CompanyIndustries []string `json:"company_industries"`
}
