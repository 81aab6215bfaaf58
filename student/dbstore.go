package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Interface assertion so the persistent store stays a drop-in Store.
var _ Store = (*DBStore)(nil)

// DBStore is the persistent Store implementation on top of bun. The database
// serializes conflicting writes; the store holds no mutable state of its own
// beyond the connection handle.
type DBStore struct {
	db   *bun.DB
	opts storeOptions
}

// NewDBStore wraps an open bun handle. Call Init once to create the schema.
func NewDBStore(db *bun.DB, opts ...Option) *DBStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &DBStore{db: db, opts: o}
}

// Init creates the records table if it does not exist yet.
func (s *DBStore) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx); err != nil {
		return newUnavailable("init", err)
	}
	return nil
}

// Create validates the input, enforces record code uniqueness and inserts a
// new record with store-assigned identity and timestamps.
func (s *DBStore) Create(ctx context.Context, in CreateInput) (*Record, error) {
	defer s.logOp("create", time.Now())

	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.codeExists(ctx, in.RecordCode, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, in.RecordCode)
	}

	rec := in.record()
	now := s.opts.now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if _, err := s.db.NewInsert().Model(rec).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, in.RecordCode)
		}
		return nil, newUnavailable("create", err)
	}

	s.opts.log.Debug("record created",
		zap.Int64("id", rec.ID),
		zap.String("record_code", rec.RecordCode))
	return rec.Clone(), nil
}

// CreateMany inserts records best-effort: inputs that fail validation or
// collide on record code are reported in the result without aborting the
// rest of the batch.
func (s *DBStore) CreateMany(ctx context.Context, ins []CreateInput) (*BulkCreateResult, error) {
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

// Get returns the record with the given id or ErrNotFound.
func (s *DBStore) Get(ctx context.Context, id int64) (*Record, error) {
	rec := new(Record)
	err := s.db.NewSelect().Model(rec).Where("sr.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, newUnavailable("get", err)
	}
	return rec, nil
}

// GetByCode returns the record with the given unique code or ErrNotFound.
func (s *DBStore) GetByCode(ctx context.Context, code string) (*Record, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	rec := new(Record)
	err := s.db.NewSelect().Model(rec).Where("sr.record_code = ?", code).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: code %s", ErrNotFound, code)
		}
		return nil, newUnavailable("get_by_code", err)
	}
	return rec, nil
}

// List runs a filtered, sorted, paginated query. All filtering happens in
// the shared listing pipeline rather than SQL: the sqlite LOWER function
// folds only ASCII, so a SQL prefilter would drop rows the pipeline's
// Unicode-aware matching accepts and the two backends would diverge.
func (s *DBStore) List(ctx context.Context, params ListParams) (*ListResult, error) {
	defer s.logOp("list", time.Now())

	var records []*Record
	if err := s.db.NewSelect().Model(&records).Scan(ctx); err != nil {
		return nil, newUnavailable("list", err)
	}
	return listRecords(records, params), nil
}

// Update applies the supplied fields to an existing record, re-validating
// score bounds and code uniqueness, and strictly advances UpdatedAt.
func (s *DBStore) Update(ctx context.Context, id int64, in UpdateInput) (*Record, error) {
	defer s.logOp("update", time.Now())

	if err := in.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.changesCode(rec.RecordCode) {
		taken, err := s.codeExists(ctx, strings.ToUpper(strings.TrimSpace(*in.RecordCode)), id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, *in.RecordCode)
		}
	}

	in.apply(rec)
	rec.UpdatedAt = advance(rec.UpdatedAt, s.opts.now())

	if _, err := s.db.NewUpdate().Model(rec).WherePK().Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, rec.RecordCode)
		}
		return nil, newUnavailable("update", err)
	}

	s.opts.log.Debug("record updated", zap.Int64("id", rec.ID))
	return rec.Clone(), nil
}

// Delete removes a record permanently. Deleting an absent id is ErrNotFound.
func (s *DBStore) Delete(ctx context.Context, id int64) error {
	defer s.logOp("delete", time.Now())

	res, err := s.db.NewDelete().Model((*Record)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return newUnavailable("delete", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return newUnavailable("delete", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	s.opts.log.Debug("record deleted", zap.Int64("id", id))
	return nil
}

// Analytics aggregates over the full collection, computed fresh on every
// call.
func (s *DBStore) Analytics(ctx context.Context) (*Analytics, error) {
	defer s.logOp("analytics", time.Now())

	var records []*Record
	if err := s.db.NewSelect().Model(&records).Scan(ctx); err != nil {
		return nil, newUnavailable("analytics", err)
	}
	return computeAnalytics(records), nil
}

func (s *DBStore) codeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	q := s.db.NewSelect().Model((*Record)(nil)).Where("sr.record_code = ?", code)
	if excludeID != 0 {
		q = q.Where("sr.id != ?", excludeID)
	}
	exists, err := q.Exists(ctx)
	if err != nil {
		return false, newUnavailable("code_exists", err)
	}
	return exists, nil
}

func (s *DBStore) logOp(op string, start time.Time) {
	s.opts.log.Debug("store operation",
		zap.String("op", op),
		zap.Duration("duration", time.Since(start)))
}

// advance moves UpdatedAt strictly forward even when the clock has not
// ticked between two mutations.
func advance(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}

// isUniqueViolation recognizes unique constraint failures from both
// supported drivers, used as a backstop for racing inserts that pass the
// pre-insert existence check.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
