package student

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
)

var _ Store = (*MemStore)(nil)

// MemStore is an in-memory Store used by tests and the runnable example.
// Records live in a sharded concurrent map; a write mutex serializes the
// multi-key invariants (code uniqueness, id assignment) that a single map
// operation cannot express.
type MemStore struct {
	mu      sync.Mutex // guards writes and id assignment
	nextID  int64
	records *xsync.MapOf[int64, *Record]
	opts    storeOptions
}

// NewMemStore returns an empty in-memory store.
func NewMemStore(opts ...Option) *MemStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &MemStore{
		nextID:  1,
		records: xsync.NewMapOf[int64, *Record](),
		opts:    o,
	}
}

func (s *MemStore) Create(ctx context.Context, in CreateInput) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, newUnavailable("create", err)
	}

	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.codeTaken(in.RecordCode, 0) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, in.RecordCode)
	}

	rec := in.record()
	rec.ID = s.nextID
	s.nextID++
	now := s.opts.now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.records.Store(rec.ID, rec)

	s.opts.log.Debug("record created",
		zap.Int64("id", rec.ID),
		zap.String("record_code", rec.RecordCode))
	return rec.Clone(), nil
}

func (s *MemStore) CreateMany(ctx context.Context, ins []CreateInput) (*BulkCreateResult, error) {
	res := &BulkCreateResult{}
	for i, in := range ins {
		rec, err := s.Create(ctx, in)
		if err != nil {
			var unavailable *StoreUnavailableError
			if errors.As(err, &unavailable) {
				return res, err
			}
			res.Errors = append(res.Errors, fmt.Sprintf("input %d (%s): %v", i, in.RecordCode, err))
			continue
		}
		res.Created = append(res.Created, rec)
	}
	return res, nil
}

func (s *MemStore) Get(ctx context.Context, id int64) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, newUnavailable("get", err)
	}
	rec, ok := s.records.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return rec.Clone(), nil
}

func (s *MemStore) GetByCode(ctx context.Context, code string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, newUnavailable("get_by_code", err)
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	var found *Record
	s.records.Range(func(_ int64, rec *Record) bool {
		if rec.RecordCode == code {
			found = rec
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w: code %s", ErrNotFound, code)
	}
	return found.Clone(), nil
}

func (s *MemStore) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, newUnavailable("list", err)
	}
	return listRecords(s.snapshot(), params), nil
}

func (s *MemStore) Update(ctx context.Context, id int64, in UpdateInput) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, newUnavailable("update", err)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	if in.changesCode(rec.RecordCode) && s.codeTaken(strings.ToUpper(strings.TrimSpace(*in.RecordCode)), id) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, *in.RecordCode)
	}

	updated := rec.Clone()
	in.apply(updated)
	updated.UpdatedAt = advance(rec.UpdatedAt, s.opts.now())
	s.records.Store(id, updated)

	s.opts.log.Debug("record updated", zap.Int64("id", id))
	return updated.Clone(), nil
}

func (s *MemStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return newUnavailable("delete", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records.Load(id); !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	s.records.Delete(id)

	s.opts.log.Debug("record deleted", zap.Int64("id", id))
	return nil
}

func (s *MemStore) Analytics(ctx context.Context) (*Analytics, error) {
	if err := ctx.Err(); err != nil {
		return nil, newUnavailable("analytics", err)
	}
	return computeAnalytics(s.snapshot()), nil
}

// snapshot copies the live set into a slice ordered by id so listing and
// analytics operate on a stable view.
func (s *MemStore) snapshot() []*Record {
	var out []*Record
	s.records.Range(func(_ int64, rec *Record) bool {
		out = append(out, rec)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemStore) codeTaken(code string, excludeID int64) bool {
	taken := false
	s.records.Range(func(id int64, rec *Record) bool {
		if id != excludeID && rec.RecordCode == code {
			taken = true
			return false
		}
		return true
	})
	return taken
}

// Len reports the current record count.
func (s *MemStore) Len() int {
	return s.records.Size()
}
