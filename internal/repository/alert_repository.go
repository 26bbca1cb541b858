package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"NodeDashboard/internal/model"
	"NodeDashboard/internal/repository/query"
)

// AlertRepository 对账告警记录
type AlertRepository struct {
	q *query.Query
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{q: query.Use(db)}
}

// Save 写入告警，同一消息或同一 (日期, 渲染) 重复写入时忽略，返回是否新增
func (r *AlertRepository) Save(ctx context.Context, alert *model.ReconciliationAlert) (bool, error) {
	result := r.q.ReconciliationAlert.WithContext(ctx).
		UnderlyingDB().
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(alert)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByDate 某日的全部告警，新的在前
func (r *AlertRepository) ListByDate(ctx context.Context, date string) ([]*model.ReconciliationAlert, error) {
	return r.q.ReconciliationAlert.WithContext(ctx).ListByDate(date)
}
