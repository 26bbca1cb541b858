package repository

import (
	"context"

	"gorm.io/gorm"

	"NodeDashboard/internal/model"
	"NodeDashboard/internal/repository/query"
)

// RunRepository 渲染审计记录
type RunRepository struct {
	q *query.Query
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{q: query.Use(db)}
}

func (r *RunRepository) Create(ctx context.Context, run *model.RenderRun) error {
	return r.q.RenderRun.WithContext(ctx).Create(run)
}

// ListRecent 最近的渲染记录，新的在前，配置了只读副本时走副本
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]*model.RenderRun, error) {
	return r.q.RenderRun.WithContext(ctx).ReadDB().ListRecent(limit)
}
