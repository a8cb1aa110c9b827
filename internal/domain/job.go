package domain

import "time"

const (
	DefaultExperience = "1-3 yr Exp"
	DefaultWorkMode   = "Onsite"
)

// JobFields is the client-controlled part of a Job. Create and update both
// take the full set.
type JobFields struct {
	Title               string
	CompanyName         string
	Location            string
	JobType             string
	SalaryMin           int64
	SalaryMax           int64
	Experience          string
	WorkMode            string // Onsite/Remote/Hybrid by convention
	Description         string
	ApplicationDeadline *Date
	IsPublished         bool
}

type Job struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	CompanyName         string    `json:"company_name"`
	Location            string    `json:"location"`
	JobType             string    `json:"job_type"`
	SalaryMin           int64     `json:"salary_min"`
	SalaryMax           int64     `json:"salary_max"`
	Experience          string    `json:"experience"`
	WorkMode            string    `json:"work_mode"`
	Description         string    `json:"description"`
	ApplicationDeadline *Date     `json:"application_deadline"`
	CreatedAt           time.Time `json:"created_at"`
	IsPublished         bool      `json:"is_published"`
	CompanyLogo         string    `json:"company_logo"`

	// Computed on every read, never stored.
	TimePosted string `json:"time_posted"`
}

func (j Job) Fields() JobFields {
	return JobFields{
		Title:               j.Title,
		CompanyName:         j.CompanyName,
		Location:            j.Location,
		JobType:             j.JobType,
		SalaryMin:           j.SalaryMin,
		SalaryMax:           j.SalaryMax,
		Experience:          j.Experience,
		WorkMode:            j.WorkMode,
		Description:         j.Description,
		ApplicationDeadline: j.ApplicationDeadline,
		IsPublished:         j.IsPublished,
	}
}

// WithTimePosted returns a copy of j decorated for a response rendered at now.
func (j Job) WithTimePosted(now time.Time) Job {
	j.TimePosted = TimePosted(j.CreatedAt, now)
	return j
}
