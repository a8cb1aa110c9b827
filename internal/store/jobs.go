package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobboard-engine/internal/domain"
	apperr "jobboard-engine/internal/errors"
)

// Fixed-width so that ORDER BY on the TEXT column is chronological.
const timeLayout = "2006-01-02 15:04:05.000000"

const jobColumns = `id, title, company_name, location, job_type, salary_min, salary_max,
  experience, work_mode, description, application_deadline, created_at, is_published, company_logo`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(s rowScanner) (domain.Job, error) {
	var (
		j           domain.Job
		deadline    sql.NullString
		createdAtTx string
	)
	if err := s.Scan(
		&j.ID,
		&j.Title,
		&j.CompanyName,
		&j.Location,
		&j.JobType,
		&j.SalaryMin,
		&j.SalaryMax,
		&j.Experience,
		&j.WorkMode,
		&j.Description,
		&deadline,
		&createdAtTx,
		&j.IsPublished,
		&j.CompanyLogo,
	); err != nil {
		return domain.Job{}, err
	}

	createdAt, err := time.ParseInLocation(timeLayout, createdAtTx, time.UTC)
	if err != nil {
		return domain.Job{}, fmt.Errorf("job %d: bad created_at %q: %w", j.ID, createdAtTx, err)
	}
	j.CreatedAt = createdAt

	if deadline.Valid && deadline.String != "" {
		d, err := domain.ParseDate(deadline.String)
		if err != nil {
			return domain.Job{}, fmt.Errorf("job %d: %w", j.ID, err)
		}
		j.ApplicationDeadline = &d
	}
	return j, nil
}

func deadlineArg(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// CreateJob inserts f with the given logo and a server-assigned created_at.
func (d *DB) CreateJob(ctx context.Context, f domain.JobFields, logo string) (domain.Job, error) {
	createdAt := d.now().Truncate(time.Microsecond)

	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO jobs (title, company_name, location, job_type, salary_min, salary_max,
  experience, work_mode, description, application_deadline, created_at, is_published, company_logo)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		f.Title, f.CompanyName, f.Location, f.JobType, f.SalaryMin, f.SalaryMax,
		f.Experience, f.WorkMode, f.Description, deadlineArg(f.ApplicationDeadline),
		createdAt.Format(timeLayout), f.IsPublished, logo,
	)
	if err != nil {
		return domain.Job{}, apperr.Internal("insert job", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Job{}, apperr.Internal("insert job: last insert id", err)
	}
	return d.GetJob(ctx, id)
}

func (d *DB) GetJob(ctx context.Context, id int64) (domain.Job, error) {
	row := d.Pool.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?;`, id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Job{}, apperr.NotFound(fmt.Sprintf("job %d not found", id), nil)
	}
	if err != nil {
		return domain.Job{}, apperr.Internal("get job", err)
	}
	return j, nil
}

// ListJobs returns every published job matching f, newest first.
func (d *DB) ListJobs(ctx context.Context, f JobFilter) ([]domain.Job, error) {
	where, args := f.Where()
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE ` + where + ` ORDER BY created_at DESC, id DESC;`

	rows, err := d.Pool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Internal("list jobs", err)
	}
	defer rows.Close()

	out := []domain.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, apperr.Internal("list jobs: scan", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("list jobs", err)
	}
	return out, nil
}

// UpdateJob replaces every client-controlled field. id, created_at and
// company_logo are left as they were.
func (d *DB) UpdateJob(ctx context.Context, id int64, f domain.JobFields) (domain.Job, error) {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return domain.Job{}, apperr.Internal("update job: begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
UPDATE jobs SET
  title = ?, company_name = ?, location = ?, job_type = ?, salary_min = ?, salary_max = ?,
  experience = ?, work_mode = ?, description = ?, application_deadline = ?, is_published = ?
WHERE id = ?;`,
		f.Title, f.CompanyName, f.Location, f.JobType, f.SalaryMin, f.SalaryMax,
		f.Experience, f.WorkMode, f.Description, deadlineArg(f.ApplicationDeadline), f.IsPublished,
		id,
	)
	if err != nil {
		return domain.Job{}, apperr.Internal("update job", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Job{}, apperr.Internal("update job: rows affected", err)
	}
	if n == 0 {
		return domain.Job{}, apperr.NotFound(fmt.Sprintf("job %d not found", id), nil)
	}

	j, err := scanJob(tx.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?;`, id))
	if err != nil {
		return domain.Job{}, apperr.Internal("update job: reload", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Job{}, apperr.Internal("update job: commit", err)
	}
	return j, nil
}

func (d *DB) DeleteJob(ctx context.Context, id int64) error {
	res, err := d.Pool.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?;`, id)
	if err != nil {
		return apperr.Internal("delete job", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Internal("delete job: rows affected", err)
	}
	if n == 0 {
		return apperr.NotFound(fmt.Sprintf("job %d not found", id), nil)
	}
	return nil
}

func (d *DB) CountJobs(ctx context.Context) (int, error) {
	var n int
	if err := d.Pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs;`).Scan(&n); err != nil {
		return 0, apperr.Internal("count jobs", err)
	}
	return n, nil
}

// Fields that DistinctValues may be asked for. Whitelisted because the name
// is interpolated into SQL.
const (
	FieldLocation = "location"
	FieldJobType  = "job_type"
)

var distinctFields = map[string]bool{
	FieldLocation: true,
	FieldJobType:  true,
}

// DistinctValues lists the distinct non-empty values of field across all
// jobs, published or not, in ascending order.
func (d *DB) DistinctValues(ctx context.Context, field string) ([]string, error) {
	if !distinctFields[field] {
		return nil, apperr.InvalidInput(fmt.Sprintf("unsupported field %q", field), nil)
	}

	query := fmt.Sprintf(`
SELECT DISTINCT %[1]s
FROM jobs
WHERE %[1]s IS NOT NULL AND %[1]s != ''
ORDER BY %[1]s;`, field)

	rows, err := d.Pool.QueryContext(ctx, query)
	if err != nil {
		return nil, apperr.Internal("distinct "+field, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, apperr.Internal("distinct "+field+": scan", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("distinct "+field, err)
	}
	return out, nil
}
