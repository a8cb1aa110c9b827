package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"jobboard-engine/internal/domain"
	apperr "jobboard-engine/internal/errors"
	"jobboard-engine/internal/store"
)

// JobRequest is the body of POST /jobs/ and PUT /jobs/{id}. Pointers tell a
// missing field apart from a zero value.
type JobRequest struct {
	Title               *string      `json:"title"`
	CompanyName         *string      `json:"company_name"`
	Location            *string      `json:"location"`
	JobType             *string      `json:"job_type"`
	SalaryMin           *int64       `json:"salary_min"`
	SalaryMax           *int64       `json:"salary_max"`
	Experience          *string      `json:"experience"`
	WorkMode            *string      `json:"work_mode"`
	Description         *string      `json:"description"`
	ApplicationDeadline *domain.Date `json:"application_deadline"`
	IsPublished         *bool        `json:"is_published"`

	// Accepted for compatibility, never stored: the logo comes from the icon table.
	CompanyLogo *string `json:"company_logo"`
}

// Fields checks required fields and fills defaults.
func (r JobRequest) Fields() (domain.JobFields, error) {
	var missing []string
	need := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	need("title", r.Title != nil)
	need("company_name", r.CompanyName != nil)
	need("location", r.Location != nil)
	need("job_type", r.JobType != nil)
	need("salary_min", r.SalaryMin != nil)
	need("salary_max", r.SalaryMax != nil)
	need("description", r.Description != nil)
	if len(missing) > 0 {
		return domain.JobFields{}, apperr.InvalidInput("missing required field(s): "+strings.Join(missing, ", "), nil)
	}

	f := domain.JobFields{
		Title:               *r.Title,
		CompanyName:         *r.CompanyName,
		Location:            *r.Location,
		JobType:             *r.JobType,
		SalaryMin:           *r.SalaryMin,
		SalaryMax:           *r.SalaryMax,
		Experience:          domain.DefaultExperience,
		WorkMode:            domain.DefaultWorkMode,
		Description:         *r.Description,
		ApplicationDeadline: r.ApplicationDeadline,
		IsPublished:         true,
	}
	if r.Experience != nil {
		f.Experience = *r.Experience
	}
	if r.WorkMode != nil {
		f.WorkMode = *r.WorkMode
	}
	if r.IsPublished != nil {
		f.IsPublished = *r.IsPublished
	}
	return f, nil
}

// filterFromQuery reads the optional listing criteria. Salary values must be
// integers when given.
func filterFromQuery(q url.Values) (store.JobFilter, error) {
	f := store.JobFilter{
		Search:   q.Get("search"),
		Location: q.Get("location"),
		JobType:  q.Get("job_type"),
	}

	var err error
	if f.SalaryMin, err = optionalInt(q, "salary_min"); err != nil {
		return store.JobFilter{}, err
	}
	if f.SalaryMax, err = optionalInt(q, "salary_max"); err != nil {
		return store.JobFilter{}, err
	}
	return f, nil
}

func optionalInt(q url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperr.InvalidInput(key+" must be an integer", err)
	}
	if v > store.MaxSalaryThreshold || v < -store.MaxSalaryThreshold {
		return nil, apperr.InvalidInput(fmt.Sprintf("%s must be between %d and %d", key, -store.MaxSalaryThreshold, store.MaxSalaryThreshold), nil)
	}
	return &v, nil
}
