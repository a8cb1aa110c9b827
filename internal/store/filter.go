package store

import (
	"math"
	"strings"
)

// Placeholder values the UI sends for "no selection".
const (
	LocationPlaceholder = "Preferred Location"
	JobTypePlaceholder  = "Job type"
)

// Salary thresholds arrive in thousands of the stored unit.
const salaryScale = 1000

// MaxSalaryThreshold bounds the magnitude of a salary criterion so that
// scaling it cannot overflow int64.
const MaxSalaryThreshold int64 = math.MaxInt64 / salaryScale

// JobFilter holds the optional listing criteria. Zero values impose no
// constraint; a zero salary threshold counts as absent.
type JobFilter struct {
	Search    string
	Location  string
	JobType   string
	SalaryMin *int64
	SalaryMax *int64
}

// Where compiles f into a SQL condition and its positional args. The
// published-only constraint is always present.
func (f JobFilter) Where() (string, []any) {
	conds := []string{"is_published = 1"}
	var args []any

	if f.Search != "" {
		conds = append(conds, `title LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(f.Search)+"%")
	}
	if f.Location != "" && f.Location != LocationPlaceholder {
		conds = append(conds, "location = ?")
		args = append(args, f.Location)
	}
	if f.JobType != "" && f.JobType != JobTypePlaceholder {
		conds = append(conds, "job_type = ?")
		args = append(args, f.JobType)
	}
	if f.SalaryMin != nil && *f.SalaryMin != 0 {
		conds = append(conds, "salary_max >= ?")
		args = append(args, scaleSalary(*f.SalaryMin))
	}
	if f.SalaryMax != nil && *f.SalaryMax != 0 {
		conds = append(conds, "salary_min <= ?")
		args = append(args, scaleSalary(*f.SalaryMax))
	}

	return strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// scaleSalary saturates at the int64 limits instead of wrapping.
func scaleSalary(v int64) int64 {
	switch {
	case v > MaxSalaryThreshold:
		return math.MaxInt64
	case v < -MaxSalaryThreshold:
		return math.MinInt64
	}
	return v * salaryScale
}
