package database

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/siherrmann/sheetReconciler/model"

	"github.com/google/uuid"
	"github.com/siherrmann/queuer/helper"
)

// ResultDBHandlerFunctions defines the interface for result store operations.
type ResultDBHandlerFunctions interface {
	InsertResult(result *model.Result) (*model.Result, error)
	SelectResult(rid uuid.UUID) (*model.Result, error)
	DeleteResult(rid uuid.UUID) error
	SelectAllResults() ([]*model.Result, error)
	DeleteExpired(now time.Time) (int, error)
}

// ResultDBHandler implements ResultDBHandlerFunctions and keeps results in memory.
// Results expire after ttl, a ttl of zero keeps them until deleted.
type ResultDBHandler struct {
	mu      sync.RWMutex
	results map[uuid.UUID]*model.Result
	lastID  int
	ttl     time.Duration
	logger  *slog.Logger
}

// NewResultDBHandler creates a new instance of ResultDBHandler.
func NewResultDBHandler(logger *slog.Logger, ttl time.Duration) (*ResultDBHandler, error) {
	if logger == nil {
		return nil, helper.NewError("logger validation", fmt.Errorf("logger is nil"))
	}
	if ttl < 0 {
		return nil, helper.NewError("ttl validation", fmt.Errorf("ttl must not be negative, got %s", ttl))
	}

	return &ResultDBHandler{
		results: map[uuid.UUID]*model.Result{},
		ttl:     ttl,
		logger:  logger,
	}, nil
}

// InsertResult stores a new result and returns it with its handle and creation time set.
func (r *ResultDBHandler) InsertResult(result *model.Result) (*model.Result, error) {
	if result == nil || result.Table == nil {
		return nil, helper.NewError("insert result", fmt.Errorf("result has no table"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	newResult := &model.Result{
		ID:        r.lastID,
		RID:       uuid.New(),
		Kind:      result.Kind,
		Name:      result.Name,
		Table:     result.Table,
		CreatedAt: time.Now().UTC(),
	}
	r.results[newResult.RID] = newResult

	r.logger.Info("Stored result", slog.String("rid", newResult.RID.String()), slog.String("kind", string(newResult.Kind)), slog.Int("rows", newResult.Table.Len()))

	return newResult, nil
}

// SelectResult retrieves a result by its handle. Expired results are not returned.
func (r *ResultDBHandler) SelectResult(rid uuid.UUID) (*model.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result, ok := r.results[rid]
	if !ok || r.expired(result, time.Now()) {
		return nil, helper.NewError("result not found", fmt.Errorf("no result with rid %s", rid))
	}

	return result, nil
}

// DeleteResult removes a result by its handle.
func (r *ResultDBHandler) DeleteResult(rid uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.results[rid]; !ok {
		return helper.NewError("result not found", fmt.Errorf("no result with rid %s", rid))
	}
	delete(r.results, rid)

	r.logger.Info("Deleted result", slog.String("rid", rid.String()))

	return nil
}

// SelectAllResults returns all live results, newest first.
func (r *ResultDBHandler) SelectAllResults() ([]*model.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := time.Now()
	results := []*model.Result{}
	for _, result := range r.results {
		if r.expired(result, now) {
			continue
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ID > results[j].ID
	})

	return results, nil
}

// DeleteExpired removes all results older than the ttl and returns how many were removed.
func (r *ResultDBHandler) DeleteExpired(now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for rid, result := range r.results {
		if r.expired(result, now) {
			delete(r.results, rid)
			deleted++
		}
	}

	if deleted > 0 {
		r.logger.Info("Deleted expired results", slog.Int("count", deleted))
	}

	return deleted, nil
}

func (r *ResultDBHandler) expired(result *model.Result, now time.Time) bool {
	return r.ttl > 0 && now.Sub(result.CreatedAt) > r.ttl
}
