package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-simplify-harvest/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Outcome reports what an Append actually did to the store.
type Outcome int

const (
	Inserted Outcome = iota
	AlreadyExists
)

const uniqueViolation = "23505"

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// IMPORTANT: Supabase connection pooler (PgBouncer in Transaction mode)
	// does not support prepared statements easily. We MUST disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// Migrate creates the job_offers table if it does not exist yet.
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS job_offers (
			id TEXT PRIMARY KEY,
			position_name TEXT NOT NULL,
			company_name TEXT NOT NULL,
			locations TEXT NOT NULL,
			experience_level TEXT[] NOT NULL,
			desired_skills TEXT[] NOT NULL,
			categories TEXT[] NOT NULL,
			employee_count TEXT NOT NULL,
			company_website TEXT NOT NULL,
			company_stage TEXT,
			company_funding BIGINT,
			foundation_year INT,
			company_industries TEXT[] NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to migrate job_offers: %w", err)
	}
	return nil
}

// Append inserts one listing. A unique violation on id is an expected
// outcome, not an error: each call runs in its own implicit transaction,
// so a rejected insert never leaves the shared pool in an aborted state
// and the next Append proceeds normally.
func (r *Repository) Append(ctx context.Context, listing *models.JobListing) (Outcome, error) {
	query := `
		INSERT INTO job_offers (
			id, position_name, company_name, locations, experience_level,
			desired_skills, categories, employee_count, company_website,
			company_stage, company_funding, foundation_year, company_industries)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		listing.ID, listing.PositionName, listing.CompanyName, listing.Locations,
		listing.ExperienceLevel, listing.DesiredSkills, listing.Categories,
		listing.EmployeeCount, listing.CompanyWebsite, listing.CompanyStage,
		listing.CompanyFunding, listing.FoundationYear, listing.CompanyIndustries)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return AlreadyExists, nil
		}
		return 0, fmt.Errorf("failed to append listing %s: %w", listing.ID, err)
	}

	return Inserted, nil
}

// SkillCount is one treemap row: how many stored listings carry this
// (category, skill) pair.
type SkillCount struct {
	Category string `json:"category"`
	Skill    string `json:"skill"`
	Count    int64  `json:"count"`
}

// SkillCounts explodes the category and skill arrays of every stored
// listing and groups the pairs, which is all the external treemap needs.
func (r *Repository) SkillCounts(ctx context.Context) ([]SkillCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT category, skill, COUNT(*)
		FROM job_offers,
		     unnest(categories) AS category,
		     unnest(desired_skills) AS skill
		GROUP BY category, skill
		ORDER BY COUNT(*) DESC, category, skill`)
	if err != nil {
		return nil, fmt.Errorf("failed to query skill counts: %w", err)
	}
	defer rows.Close()

	var counts []SkillCount
	for rows.Next() {
		var sc SkillCount
		if err := rows.Scan(&sc.Category, &sc.Skill, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan skill count row: %w", err)
		}
		counts = append(counts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skill counts: %w", err)
	}

	return counts, nil
}
