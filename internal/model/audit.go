package model

import (
	"time"

	"gorm.io/gorm"
)

type BaseModel struct {
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	ID        int64          `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
}

// 渲染状态
const (
	RenderStatusSuccess = "success"
	RenderStatusPartial = "partial" // 外部报表失败，其余分区正常
	RenderStatusFailed  = "failed"
)

// RenderRun 每次看板渲染的审计记录
type RenderRun struct {
	StartedAt      time.Time `gorm:"not null;index" json:"started_at"`
	Trigger        string    `gorm:"type:varchar(16);not null" json:"trigger"`
	Status         string    `gorm:"type:varchar(16);not null" json:"status"`
	Error          string    `gorm:"type:text" json:"error,omitempty"`
	AnalyticsError string    `gorm:"type:text" json:"analytics_error,omitempty"`
	BaseModel
	DurationMillis     int64 `gorm:"not null" json:"duration_ms"`
	SubmissionDocs     int   `json:"submission_docs"`
	ReferralDocs       int   `json:"referral_docs"`
	FaucetDocs         int   `json:"faucet_docs"`
	AirdropDocs        int   `json:"airdrop_docs"`
	ReconciliationDays int   `json:"reconciliation_days"`
	AlertsPublished    int   `json:"alerts_published"`
}

func (RenderRun) TableName() string {
	return "render_runs"
}

// ReconciliationAlert 落库的对账告警，(date, run_id) 唯一
type ReconciliationAlert struct {
	Date           string `gorm:"type:varchar(10);not null;uniqueIndex:idx_alert_date_run" json:"date"`
	MessageID      string `gorm:"type:varchar(36);not null;uniqueIndex" json:"message_id"`
	MissingWallets string `gorm:"type:text" json:"missing_wallets"` // 逗号分隔
	BaseModel
	RunID               int64   `gorm:"not null;uniqueIndex:idx_alert_date_run" json:"run_id,string"`
	TotalSubmitted      int     `json:"total_submitted"`
	TotalMissing        int     `json:"total_missing"`
	MissingRatioPercent float64 `json:"missing_ratio_percent"`
	Threshold           float64 `json:"threshold"`
}

func (ReconciliationAlert) TableName() string {
	return "reconciliation_alerts"
}

// ReconciliationAlertMessage 缺失比例超过阈值时发送到队列的消息
type ReconciliationAlertMessage struct {
	MessageID           string    `json:"message_id"`
	Date                string    `json:"date"`
	MissingWallets      []string  `json:"missing_wallets"`
	PublishedAt         time.Time `json:"published_at"`
	RunID               int64     `json:"run_id,string"`
	TotalSubmitted      int       `json:"total_submitted"`
	TotalMissing        int       `json:"total_missing"`
	MissingRatioPercent float64   `json:"missing_ratio_percent"`
	Threshold           float64   `json:"threshold"`
}
