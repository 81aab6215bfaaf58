package student

import (
	"time"

	"github.com/uptrace/bun"
)

// Grade is the categorical tier a record's average score maps to.
type Grade string

const (
	GradeExcellent    Grade = "Excellent"
	GradeGood         Grade = "Good"
	GradeAverage      Grade = "Average"
	GradeBelowAverage Grade = "Below Average"
)

// Score bounds for every subject.
const (
	ScoreMin = 0.0
	ScoreMax = 10.0
)

// Record is one student entity. Identity is assigned by the store and never
// changes afterwards; RecordCode is the unique external key. Score fields are
// pointers so that "no score recorded" is distinguishable from a zero score.
type Record struct {
	bun.BaseModel `bun:"table:student_records,alias:sr"`

	ID         int64      `bun:"id,pk,autoincrement" json:"id"`
	RecordCode string     `bun:"record_code,notnull,unique" json:"record_code"`
	FirstName  string     `bun:"first_name,notnull" json:"first_name"`
	LastName   string     `bun:"last_name,notnull" json:"last_name"`
	Email      string     `bun:"email,nullzero" json:"email,omitempty"`
	BirthDate  *time.Time `bun:"birth_date,nullzero" json:"birth_date,omitempty"`
	Hometown   string     `bun:"hometown,nullzero" json:"hometown,omitempty"`

	MathScore       *float64 `bun:"math_score" json:"math_score,omitempty"`
	LiteratureScore *float64 `bun:"literature_score" json:"literature_score,omitempty"`
	EnglishScore    *float64 `bun:"english_score" json:"english_score,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// FullName returns the first and last names joined with a single space.
func (r *Record) FullName() string {
	return r.FirstName + " " + r.LastName
}

// scores returns the subject scores that are actually present.
func (r *Record) scores() []float64 {
	var out []float64
	for _, s := range []*float64{r.MathScore, r.LiteratureScore, r.EnglishScore} {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// AverageScore computes the mean of the present subject scores. The second
// return value is false when no score is recorded at all.
func (r *Record) AverageScore() (float64, bool) {
	scores := r.scores()
	if len(scores) == 0 {
		return 0, false
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores)), true
}

// HasCompleteScores reports whether all three subject scores are present.
func (r *Record) HasCompleteScores() bool {
	return r.MathScore != nil && r.LiteratureScore != nil && r.EnglishScore != nil
}

// Grade maps the average score to its tier. The second return value is false
// when the record has no scores and therefore no grade.
func (r *Record) Grade() (Grade, bool) {
	avg, ok := r.AverageScore()
	if !ok {
		return "", false
	}
	return gradeFor(avg), true
}

func gradeFor(avg float64) Grade {
	switch {
	case avg >= 8.5:
		return GradeExcellent
	case avg >= 7.0:
		return GradeGood
	case avg >= 5.5:
		return GradeAverage
	default:
		return GradeBelowAverage
	}
}

// Clone returns a deep copy so cached or stored records can be handed out
// without aliasing the caller's pointers.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	cp.BirthDate = cloneTimePtr(r.BirthDate)
	cp.MathScore = cloneFloatPtr(r.MathScore)
	cp.LiteratureScore = cloneFloatPtr(r.LiteratureScore)
	cp.EnglishScore = cloneFloatPtr(r.EnglishScore)
	return &cp
}

func cloneFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTimePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
