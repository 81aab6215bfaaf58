package student

import "context"

// Pagination bounds, matching the limits the listing layer enforces.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Sort columns accepted by ListParams.SortBy. An unknown value falls back to
// the default ordering (newest created first).
const (
	SortByID         = "id"
	SortByRecordCode = "record_code"
	SortByFirstName  = "first_name"
	SortByLastName   = "last_name"
	SortByEmail      = "email"
	SortByHometown   = "hometown"
	SortByBirthDate  = "birth_date"
	SortByCreatedAt  = "created_at"
	SortByUpdatedAt  = "updated_at"
)

// ListParams describes one listing query. All filters are optional and
// compose with logical AND. MinAverage/MaxAverage are inclusive bounds on
// the derived average score; records without any score never match when
// either bound is set.
type ListParams struct {
	Search     string   `json:"search,omitempty"`
	Hometown   string   `json:"hometown,omitempty"`
	MinAverage *float64 `json:"min_average,omitempty"`
	MaxAverage *float64 `json:"max_average,omitempty"`

	SortBy   string `json:"sort_by,omitempty"`
	SortDesc bool   `json:"sort_desc,omitempty"`

	Page     int `json:"page,omitempty"`
	PageSize int `json:"page_size,omitempty"`
}

// normalized returns a copy with page and page size clamped to their bounds.
// The normalized form is also what cache keys are derived from, so two
// queries that behave identically share a cache entry.
func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Normalized exposes the clamped parameter tuple; cache decorators use it so
// equivalent queries serialize to the same key.
func (p ListParams) Normalized() ListParams { return p.normalized() }

// ListResult is one page of records plus the pagination arithmetic computed
// over the filtered-but-unpaginated set.
type ListResult struct {
	Items      []*Record `json:"items"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
	HasNext    bool      `json:"has_next"`
	HasPrev    bool      `json:"has_prev"`
}

// Clone deep-copies the result. Cached results are shared between callers,
// so every hit hands out an independent copy.
func (r *ListResult) Clone() *ListResult {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Items = make([]*Record, len(r.Items))
	for i, rec := range r.Items {
		cp.Items[i] = rec.Clone()
	}
	return &cp
}

// SubjectAverages holds the per-subject means over records where that
// subject score is present.
type SubjectAverages struct {
	Math       float64 `json:"math"`
	Literature float64 `json:"literature"`
	English    float64 `json:"english"`
}

// Analytics is a point-in-time aggregate snapshot, computed fresh on every
// call.
type Analytics struct {
	TotalRecords         int             `json:"total_records"`
	WithCompleteScores   int             `json:"with_complete_scores"`
	WithIncompleteScores int             `json:"with_incomplete_scores"`
	SubjectAverages      SubjectAverages `json:"subject_averages"`
	OverallAverage       float64         `json:"overall_average"`
	GradeDistribution    map[Grade]int   `json:"grade_distribution"`
	HometownDistribution map[string]int  `json:"hometown_distribution"`
	ScoreDistribution    map[string]int  `json:"score_distribution"`
}

// Score distribution bucket labels, lowest to highest.
var scoreBuckets = []string{"0-4", "4-5.5", "5.5-7", "7-8.5", "8.5-10"}

func scoreBucketFor(avg float64) string {
	switch {
	case avg < 4:
		return scoreBuckets[0]
	case avg < 5.5:
		return scoreBuckets[1]
	case avg < 7:
		return scoreBuckets[2]
	case avg < 8.5:
		return scoreBuckets[3]
	default:
		return scoreBuckets[4]
	}
}

// BulkCreateResult reports the outcome of a best-effort CreateMany call.
type BulkCreateResult struct {
	Created []*Record `json:"created"`
	Errors  []string  `json:"errors,omitempty"`
}

// Store is the authoritative owner of the record collection. Implementations
// must be safe for concurrent readers; conflicting writes are serialized by
// the backing storage.
type Store interface {
	Create(ctx context.Context, in CreateInput) (*Record, error)
	CreateMany(ctx context.Context, ins []CreateInput) (*BulkCreateResult, error)
	Get(ctx context.Context, id int64) (*Record, error)
	GetByCode(ctx context.Context, code string) (*Record, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*Record, error)
	Delete(ctx context.Context, id int64) error
	Analytics(ctx context.Context) (*Analytics, error)
}
