package student

import (
	"math"
	"sort"
	"strings"
)

// matchesSearch reports whether the record matches the case-insensitive
// substring filter across code, names and email.
func matchesSearch(r *Record, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, hay := range []string{r.RecordCode, r.FirstName, r.LastName, r.Email} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// matchesAverage applies the inclusive average-score bounds. Records without
// any score never match when a bound is set.
func matchesAverage(r *Record, min, max *float64) bool {
	if min == nil && max == nil {
		return true
	}
	avg, ok := r.AverageScore()
	if !ok {
		return false
	}
	if min != nil && avg < *min {
		return false
	}
	if max != nil && avg > *max {
		return false
	}
	return true
}

// filterRecords applies all supplied filters with AND composition.
func filterRecords(records []*Record, p ListParams) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if !matchesSearch(r, p.Search) {
			continue
		}
		if p.Hometown != "" && !strings.EqualFold(r.Hometown, p.Hometown) {
			continue
		}
		if !matchesAverage(r, p.MinAverage, p.MaxAverage) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// sortRecords orders records by the requested column with a stable
// id-ascending tie break. An unknown column falls back to the default
// ordering, newest created first.
func sortRecords(records []*Record, sortBy string, desc bool) {
	less := lessFunc(sortBy)
	if less == nil {
		sortBy, desc = SortByCreatedAt, true
		less = lessFunc(sortBy)
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if desc {
			a, b = b, a
		}
		switch {
		case less(a, b):
			return true
		case less(b, a):
			return false
		default:
			// Tie break is id ascending regardless of direction.
			return records[i].ID < records[j].ID
		}
	})
}

func lessFunc(sortBy string) func(a, b *Record) bool {
	switch sortBy {
	case SortByID:
		return func(a, b *Record) bool { return a.ID < b.ID }
	case SortByRecordCode:
		return func(a, b *Record) bool { return a.RecordCode < b.RecordCode }
	case SortByFirstName:
		return func(a, b *Record) bool { return a.FirstName < b.FirstName }
	case SortByLastName:
		return func(a, b *Record) bool { return a.LastName < b.LastName }
	case SortByEmail:
		return func(a, b *Record) bool { return a.Email < b.Email }
	case SortByHometown:
		return func(a, b *Record) bool { return a.Hometown < b.Hometown }
	case SortByBirthDate:
		return func(a, b *Record) bool {
			switch {
			case a.BirthDate == nil:
				return b.BirthDate != nil
			case b.BirthDate == nil:
				return false
			default:
				return a.BirthDate.Before(*b.BirthDate)
			}
		}
	case SortByCreatedAt:
		return func(a, b *Record) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortByUpdatedAt:
		return func(a, b *Record) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return nil
	}
}

// paginate slices one page out of the filtered set and fills in the
// pagination arithmetic. Pages past the end yield an empty item set with the
// totals intact.
func paginate(filtered []*Record, p ListParams) *ListResult {
	total := len(filtered)
	totalPages := int(math.Ceil(float64(total) / float64(p.PageSize)))

	start := (p.Page - 1) * p.PageSize
	end := start + p.PageSize
	var items []*Record
	if start < total {
		if end > total {
			end = total
		}
		items = make([]*Record, 0, end-start)
		for _, r := range filtered[start:end] {
			items = append(items, r.Clone())
		}
	} else {
		items = []*Record{}
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1 && total > 0,
	}
}

// listRecords runs the full listing pipeline over an unfiltered snapshot.
// Both store implementations share it so query semantics cannot drift.
func listRecords(records []*Record, params ListParams) *ListResult {
	p := params.normalized()
	filtered := filterRecords(records, p)
	sortRecords(filtered, p.SortBy, p.SortDesc)
	return paginate(filtered, p)
}

// computeAnalytics aggregates a snapshot of all records. Subject means run
// over the records where that subject is present; the overall average and
// grade histogram cover records with at least one score; the hometown
// histogram covers everything.
func computeAnalytics(records []*Record) *Analytics {
	a := &Analytics{
		TotalRecords:         len(records),
		GradeDistribution:    make(map[Grade]int),
		HometownDistribution: make(map[string]int),
		ScoreDistribution:    make(map[string]int),
	}
	for _, b := range scoreBuckets {
		a.ScoreDistribution[b] = 0
	}

	var (
		mathSum, litSum, engSum float64
		mathN, litN, engN       int
		avgSum                  float64
		avgN                    int
	)

	for _, r := range records {
		if r.Hometown != "" {
			a.HometownDistribution[r.Hometown]++
		}
		if r.HasCompleteScores() {
			a.WithCompleteScores++
		}
		if r.MathScore != nil {
			mathSum += *r.MathScore
			mathN++
		}
		if r.LiteratureScore != nil {
			litSum += *r.LiteratureScore
			litN++
		}
		if r.EnglishScore != nil {
			engSum += *r.EnglishScore
			engN++
		}
		avg, ok := r.AverageScore()
		if !ok {
			continue
		}
		avgSum += avg
		avgN++
		a.GradeDistribution[gradeFor(avg)]++
		a.ScoreDistribution[scoreBucketFor(avg)]++
	}

	a.WithIncompleteScores = a.TotalRecords - a.WithCompleteScores
	if mathN > 0 {
		a.SubjectAverages.Math = mathSum / float64(mathN)
	}
	if litN > 0 {
		a.SubjectAverages.Literature = litSum / float64(litN)
	}
	if engN > 0 {
		a.SubjectAverages.English = engSum / float64(engN)
	}
	if avgN > 0 {
		a.OverallAverage = avgSum / float64(avgN)
	}
	return a
}
