// Package testsupport holds the fixture helpers shared by package tests.
package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-student-records/student"
)

// LoadFixture reads raw fixture bytes relative to the test package.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}
	return data
}

// LoadFixtureJSON reads and unmarshals a JSON fixture.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	if err := json.Unmarshal(LoadFixture(t, path), dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath resolves a filename inside the package's testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// LoadCreateInputs reads a fixture of record creation inputs.
func LoadCreateInputs(t *testing.T, path string) []student.CreateInput {
	t.Helper()

	var inputs []student.CreateInput
	LoadFixtureJSON(t, path, &inputs)
	return inputs
}

// SeedStore creates every fixture input in the store, failing the test on
// the first rejected input. Returns the stored records in creation order.
func SeedStore(t *testing.T, store student.Store, inputs []student.CreateInput) []*student.Record {
	t.Helper()

	records := make([]*student.Record, 0, len(inputs))
	for _, in := range inputs {
		rec, err := store.Create(context.Background(), in)
		if err != nil {
			t.Fatalf("failed to seed record %s: %v", in.RecordCode, err)
		}
		records = append(records, rec)
	}
	return records
}

// FloatPtr returns a pointer to v, for optional score fields in tests.
func FloatPtr(v float64) *float64 { return &v }

// StringPtr returns a pointer to v, for partial update fields in tests.
func StringPtr(v string) *string { return &v }
