package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"moments/internal/models/db_models"
)

// MemoryActivityRepository keeps activities in process memory. It backs the
// "memory" storage driver and mirrors the relational repository's contract.
type MemoryActivityRepository struct {
	mu     sync.RWMutex
	nextID uint
	rows   map[uint]db_models.Activity
	now    func() time.Time
}

func NewMemoryActivityRepository() *MemoryActivityRepository {
	return &MemoryActivityRepository{
		nextID: 1,
		rows:   make(map[uint]db_models.Activity),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryActivityRepository) CreateActivity(ctx context.Context, activity *db_models.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	activity.ID = r.nextID
	r.nextID++
	activity.CreatedAt = now
	activity.UpdatedAt = now
	r.rows[activity.ID] = copyActivity(*activity)
	return nil
}

func (r *MemoryActivityRepository) ListActivities(ctx context.Context) ([]db_models.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]db_models.Activity, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, copyActivity(row))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MemoryActivityRepository) GetActivityByID(ctx context.Context, id uint) (*db_models.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := copyActivity(row)
	return &out, nil
}

func (r *MemoryActivityRepository) UpdateActivity(ctx context.Context, activity *db_models.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rows[activity.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	activity.CreatedAt = existing.CreatedAt
	activity.UpdatedAt = r.now()
	r.rows[activity.ID] = copyActivity(*activity)
	return nil
}

func (r *MemoryActivityRepository) DeleteActivity(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

func copyActivity(a db_models.Activity) db_models.Activity {
	a.Labels = append(datatypes.JSON(nil), a.Labels...)
	return a
}
