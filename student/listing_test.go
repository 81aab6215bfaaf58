package student

import (
	"fmt"
	"testing"
	"time"
)

func makeRecords(n int) []*Record {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]*Record, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, &Record{
			ID:         int64(i),
			RecordCode: fmt.Sprintf("STU%03d", i),
			FirstName:  fmt.Sprintf("First%d", i),
			LastName:   fmt.Sprintf("Last%d", i),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
	}
	return records
}

func TestListRecords_PaginationArithmetic(t *testing.T) {
	records := makeRecords(23)

	res := listRecords(records, ListParams{Page: 1, PageSize: 10, SortBy: SortByID})
	if res.Total != 23 {
		t.Errorf("expected total 23, got %d", res.Total)
	}
	if res.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", res.TotalPages)
	}
	if len(res.Items) != 10 {
		t.Errorf("expected 10 items on page 1, got %d", len(res.Items))
	}
	if !res.HasNext || res.HasPrev {
		t.Errorf("expected HasNext=true HasPrev=false, got %v/%v", res.HasNext, res.HasPrev)
	}

	res = listRecords(records, ListParams{Page: 3, PageSize: 10, SortBy: SortByID})
	if len(res.Items) != 3 {
		t.Errorf("expected 3 items on the last page, got %d", len(res.Items))
	}

	// A page past the end keeps the totals and returns no items.
	res = listRecords(records, ListParams{Page: 4, PageSize: 10, SortBy: SortByID})
	if len(res.Items) != 0 {
		t.Errorf("expected empty page 4, got %d items", len(res.Items))
	}
	if res.Total != 23 || res.TotalPages != 3 {
		t.Errorf("expected total=23 total_pages=3 on empty page, got %d/%d", res.Total, res.TotalPages)
	}
}

func TestListRecords_PageSizeClamped(t *testing.T) {
	records := makeRecords(5)

	res := listRecords(records, ListParams{Page: 1, PageSize: 1000})
	if res.PageSize != MaxPageSize {
		t.Errorf("expected page size clamped to %d, got %d", MaxPageSize, res.PageSize)
	}

	res = listRecords(records, ListParams{Page: 0, PageSize: -3})
	if res.Page != 1 {
		t.Errorf("expected page clamped to 1, got %d", res.Page)
	}
	if res.PageSize != DefaultPageSize {
		t.Errorf("expected default page size %d, got %d", DefaultPageSize, res.PageSize)
	}
}

func TestListRecords_FilterComposition(t *testing.T) {
	a := &Record{ID: 1, RecordCode: "STUAAA", FirstName: "A", Hometown: "X", MathScore: floatPtr(9)}
	b := &Record{ID: 2, RecordCode: "STUBBB", FirstName: "B", Hometown: "X", MathScore: floatPtr(4)}
	c := &Record{ID: 3, RecordCode: "STUCCC", FirstName: "C", Hometown: "Y", MathScore: floatPtr(9)}

	res := listRecords([]*Record{a, b, c}, ListParams{
		Hometown:   "X",
		MinAverage: floatPtr(5),
	})
	if res.Total != 1 {
		t.Fatalf("expected exactly one match, got %d", res.Total)
	}
	if res.Items[0].ID != a.ID {
		t.Errorf("expected record %d, got %d", a.ID, res.Items[0].ID)
	}
}

func TestListRecords_AverageBoundsInclusive(t *testing.T) {
	records := []*Record{
		{ID: 1, MathScore: floatPtr(5)},
		{ID: 2, MathScore: floatPtr(7)},
		{ID: 3, MathScore: floatPtr(9)},
		{ID: 4}, // no scores, never matches a bounded query
	}

	res := listRecords(records, ListParams{MinAverage: floatPtr(5), MaxAverage: floatPtr(7), SortBy: SortByID})
	if res.Total != 2 {
		t.Fatalf("expected 2 matches for [5,7], got %d", res.Total)
	}
	if res.Items[0].ID != 1 || res.Items[1].ID != 2 {
		t.Errorf("expected records 1 and 2, got %d and %d", res.Items[0].ID, res.Items[1].ID)
	}
}

func TestListRecords_SearchAcrossFields(t *testing.T) {
	records := []*Record{
		{ID: 1, RecordCode: "STU001", FirstName: "An", LastName: "Nguyen", Email: "an@example.com"},
		{ID: 2, RecordCode: "STU002", FirstName: "Binh", LastName: "Tran", Email: "binh@example.com"},
	}

	tests := []struct {
		search string
		wantID int64
	}{
		{"stu001", 1},   // code, case-insensitive
		{"nguy", 1},     // last name substring
		{"BINH", 2},     // first name, case-insensitive
		{"binh@exa", 2}, // email substring
	}
	for _, tt := range tests {
		res := listRecords(records, ListParams{Search: tt.search})
		if res.Total != 1 || res.Items[0].ID != tt.wantID {
			t.Errorf("search %q: expected only record %d, got total=%d", tt.search, tt.wantID, res.Total)
		}
	}
}

func TestSortRecords_StableTieBreak(t *testing.T) {
	// Same hometown sorts fall back to id ascending in both directions.
	records := []*Record{
		{ID: 3, Hometown: "X"},
		{ID: 1, Hometown: "X"},
		{ID: 2, Hometown: "X"},
	}

	sortRecords(records, SortByHometown, false)
	for i, want := range []int64{1, 2, 3} {
		if records[i].ID != want {
			t.Fatalf("asc position %d: expected id %d, got %d", i, want, records[i].ID)
		}
	}

	sortRecords(records, SortByHometown, true)
	for i, want := range []int64{1, 2, 3} {
		if records[i].ID != want {
			t.Fatalf("desc position %d: expected id %d, got %d", i, want, records[i].ID)
		}
	}
}

func TestSortRecords_UnknownColumnFallsBack(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []*Record{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(time.Hour)},
	}

	sortRecords(records, "no_such_column", false)
	// Default ordering is newest created first.
	if records[0].ID != 2 {
		t.Errorf("expected newest record first, got id %d", records[0].ID)
	}
}

func TestComputeAnalytics(t *testing.T) {
	records := []*Record{
		{ID: 1, Hometown: "X", MathScore: floatPtr(9), LiteratureScore: floatPtr(9), EnglishScore: floatPtr(9)},
		{ID: 2, Hometown: "X", MathScore: floatPtr(5)},
		{ID: 3, Hometown: "Y"}, // no scores: excluded from means and grades
	}

	a := computeAnalytics(records)

	if a.TotalRecords != 3 {
		t.Errorf("expected 3 records, got %d", a.TotalRecords)
	}
	if a.WithCompleteScores != 1 || a.WithIncompleteScores != 2 {
		t.Errorf("expected complete/incomplete = 1/2, got %d/%d", a.WithCompleteScores, a.WithIncompleteScores)
	}
	if a.SubjectAverages.Math != 7 {
		t.Errorf("expected math mean 7 over present scores, got %v", a.SubjectAverages.Math)
	}
	if a.SubjectAverages.Literature != 9 || a.SubjectAverages.English != 9 {
		t.Errorf("expected literature/english means 9/9, got %v/%v", a.SubjectAverages.Literature, a.SubjectAverages.English)
	}
	if a.OverallAverage != 7 { // mean of averages (9 and 5)
		t.Errorf("expected overall average 7, got %v", a.OverallAverage)
	}
	if a.GradeDistribution[GradeExcellent] != 1 || a.GradeDistribution[GradeBelowAverage] != 1 {
		t.Errorf("unexpected grade distribution: %v", a.GradeDistribution)
	}
	if got := a.GradeDistribution[GradeGood] + a.GradeDistribution[GradeAverage]; got != 0 {
		t.Errorf("expected no good/average grades, got %d", got)
	}
	if a.HometownDistribution["X"] != 2 || a.HometownDistribution["Y"] != 1 {
		t.Errorf("unexpected hometown distribution: %v", a.HometownDistribution)
	}
	if a.ScoreDistribution["8.5-10"] != 1 || a.ScoreDistribution["4-5.5"] != 1 {
		t.Errorf("unexpected score distribution: %v", a.ScoreDistribution)
	}
}

func TestComputeAnalytics_Empty(t *testing.T) {
	a := computeAnalytics(nil)
	if a.TotalRecords != 0 || a.OverallAverage != 0 {
		t.Errorf("expected zeroed analytics, got %+v", a)
	}
	if len(a.ScoreDistribution) != 5 {
		t.Errorf("expected all score buckets present, got %v", a.ScoreDistribution)
	}
}
