package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"rateanalysis/internal/model"
	"rateanalysis/internal/repository"
	"rateanalysis/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("record not found")
)

// DefaultPageSize is applied when a page query carries no usable size.
const DefaultPageSize = 20

// Service is the persistence facade consumed by the HTTP resources. Absent records
// are reported as a nil pointer with a nil error.
type Service[D any] interface {
	// Save inserts the record when it has no id, otherwise replaces the stored row.
	Save(ctx context.Context, rec *D) (*D, error)

	// PartialUpdate merges the non-nil fields of rec into the stored row.
	// Returns nil when the row cannot be found at merge time.
	PartialUpdate(ctx context.Context, rec *D) (*D, error)

	// FindAll returns every record.
	FindAll(ctx context.Context) ([]D, error)

	// FindPage returns one page of records.
	FindPage(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[D], error)

	// FindOne returns the record or nil.
	FindOne(ctx context.Context, id int64) (*D, error)

	// Delete removes the record. Deleting a missing record succeeds.
	Delete(ctx context.Context, id int64) error

	// ExistsByID reports whether the record exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// crudService implements Service on top of a repository. When archive is set, records
// are copied to object storage as JSON before they are deleted.
type crudService[D any, P model.Entity[D]] struct {
	name    string
	repo    repository.Repository[D]
	archive storage.Storage
}

// NewRaParametersService constructs the RaParameters service. archive may be nil.
func NewRaParametersService(repo repository.Repository[model.RaParameters], archive storage.Storage) Service[model.RaParameters] {
	return &crudService[model.RaParameters, *model.RaParameters]{name: "ra-parameters", repo: repo, archive: archive}
}

// NewWorkEstimateLeadService constructs the WorkEstimateLead service. archive may be nil.
func NewWorkEstimateLeadService(repo repository.Repository[model.WorkEstimateLead], archive storage.Storage) Service[model.WorkEstimateLead] {
	return &crudService[model.WorkEstimateLead, *model.WorkEstimateLead]{name: "work-estimate-leads", repo: repo, archive: archive}
}

func (s *crudService[D, P]) Save(ctx context.Context, rec *D) (*D, error) {
	id := P(rec).GetID()
	if id == nil {
		return s.repo.Create(ctx, rec)
	}
	saved, err := s.repo.Update(ctx, *id, rec)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return saved, nil
}

func (s *crudService[D, P]) PartialUpdate(ctx context.Context, rec *D) (*D, error) {
	id := P(rec).GetID()
	if id == nil {
		return nil, ErrIDRequired
	}

	existing, err := s.repo.FindByID(ctx, *id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	P(existing).Merge(rec)

	// The row may vanish between the read and the write; report it as absent.
	updated, err := s.repo.Update(ctx, *id, existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return updated, nil
}

func (s *crudService[D, P]) FindAll(ctx context.Context) ([]D, error) {
	return s.repo.FindAll(ctx)
}

func (s *crudService[D, P]) FindPage(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[D], error) {
	if pq.Size <= 0 {
		pq.Size = DefaultPageSize
	}
	if pq.Page < 0 {
		pq.Page = 0
	}
	return s.repo.List(ctx, pq)
}

func (s *crudService[D, P]) FindOne(ctx context.Context, id int64) (*D, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (s *crudService[D, P]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.repo.ExistsByID(ctx, id)
}

// Delete archives the current row (when archiving is enabled), then deletes it.
// If the delete fails the archived snapshot is removed again.
func (s *crudService[D, P]) Delete(ctx context.Context, id int64) error {
	if s.archive == nil {
		return s.repo.Delete(ctx, id)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}

	key, err := s.archiveRecord(ctx, id, existing)
	if err != nil {
		return fmt.Errorf("archive record: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if delErr := s.archive.Delete(ctx, key); delErr != nil {
			return fmt.Errorf("db delete failed: %v; archive rollback failed: %v", err, delErr)
		}
		return fmt.Errorf("db delete failed: %w", err)
	}
	return nil
}

func (s *crudService[D, P]) archiveRecord(ctx context.Context, id int64, rec *D) (string, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%d/%s.json", s.name, id, uuid.NewString())
	info, err := s.archive.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
		Metadata: map[string]string{
			"entity":    s.name,
			"record-id": strconv.FormatInt(id, 10),
		},
	})
	if err != nil {
		return "", err
	}
	return info.Key, nil
}
