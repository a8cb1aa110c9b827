package store

import (
	"context"
	"time"

	"jobboard-engine/internal/domain"
	apperr "jobboard-engine/internal/errors"
)

type seedJob struct {
	fields domain.JobFields
	logo   string
}

const seedDescription = "A user-friendly interface lets you browse stunning photos and videos. " +
	"Filter destinations based on interests and travel style, and create personalized"

func sample(title, company, location string, min, max int64, logo string) seedJob {
	return seedJob{
		fields: domain.JobFields{
			Title:       title,
			CompanyName: company,
			Location:    location,
			JobType:     "Full-time",
			SalaryMin:   min,
			SalaryMax:   max,
			Experience:  domain.DefaultExperience,
			WorkMode:    domain.DefaultWorkMode,
			Description: seedDescription,
			IsPublished: true,
		},
		logo: logo,
	}
}

// Sample postings carry their own glyphs; Swiggy's is not in the built-in table.
var sampleJobs = []seedJob{
	sample("Full Stack Developer", "Amazon", "Bangalore", 800000, 1200000, "🅰️"),
	sample("Node Js Developer", "Tesla", "Mumbai", 1000000, 1500000, "🏎️"),
	sample("UX/UI Designer", "Google", "Delhi", 600000, 1000000, "🌟"),
	sample("Full Stack Developer", "Microsoft", "Hyderabad", 900000, 1300000, "Ⓜ️"),
	sample("UX/UI Designer", "Apple", "Pune", 700000, 1100000, "🍎"),
	sample("Node Js Developer", "Meta", "Bangalore", 1100000, 1600000, "📘"),
	sample("Full Stack Developer", "Netflix", "Mumbai", 950000, 1400000, "🎬"),
	sample("UX/UI Designer", "Swiggy", "Delhi", 650000, 950000, "🍔"),
}

// SampleJobCount is the number of rows SeedIfEmpty inserts into an empty store.
var SampleJobCount = len(sampleJobs)

// SeedIfEmpty inserts the sample postings when the jobs table has no rows.
// The existence check and inserts share one transaction; a non-empty store is
// a no-op reported as 0 rows added.
func (d *DB) SeedIfEmpty(ctx context.Context) (added int, err error) {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperr.Internal("seed: begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM jobs LIMIT 1);`).Scan(&exists)
	if err != nil {
		return 0, apperr.Internal("seed: check existing", err)
	}
	if exists == 1 {
		return 0, nil
	}

	createdAt := d.now().Truncate(time.Microsecond).Format(timeLayout)
	for _, s := range sampleJobs {
		f := s.fields
		if _, err := tx.ExecContext(ctx, `
INSERT INTO jobs (title, company_name, location, job_type, salary_min, salary_max,
  experience, work_mode, description, application_deadline, created_at, is_published, company_logo)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?, ?, ?);`,
			f.Title, f.CompanyName, f.Location, f.JobType, f.SalaryMin, f.SalaryMax,
			f.Experience, f.WorkMode, f.Description, createdAt, f.IsPublished, s.logo,
		); err != nil {
			return 0, apperr.Internal("seed: insert "+f.CompanyName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, apperr.Internal("seed: commit", err)
	}
	return len(sampleJobs), nil
}
