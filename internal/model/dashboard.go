package model

import "time"

// 渲染触发方式
const (
	TriggerLoad     = "load"
	TriggerRefresh  = "refresh"
	TriggerSchedule = "schedule"
)

// 看板分区名称，同时作为 /v1/dashboard/sections/:section 的路径参数
const (
	SectionTaskScores              = "task-scores"
	SectionReferrals               = "referrals"
	SectionReferralCounts          = "referral-counts"
	SectionFaucetValidations       = "faucet-validations"
	SectionFaucetValidationsRecent = "faucet-validations-recent"
	SectionAirdropChoices          = "airdrop-choices"
	SectionReconciliation          = "reconciliation"
	SectionAnalytics               = "analytics"
)

// Sections 全部分区，顺序即看板展示顺序
var Sections = []string{
	SectionReconciliation,
	SectionTaskScores,
	SectionReferrals,
	SectionReferralCounts,
	SectionFaucetValidations,
	SectionFaucetValidationsRecent,
	SectionAirdropChoices,
	SectionAnalytics,
}

// Dashboard 一次完整渲染的结果，渲染结束后即丢弃
type Dashboard struct {
	RenderedAt              time.Time             `json:"rendered_at"`
	Reconciliation          []ReconciliationRow   `json:"reconciliation"`
	TaskScores              []ScoreByDate         `json:"task_scores"`
	Referrals               []ReferralRow         `json:"referrals"`
	ReferralCounts          []CountByDate         `json:"referral_counts"`
	FaucetValidations       []ValidationCounts    `json:"faucet_validations"`
	FaucetValidationsRecent []ValidationCounts    `json:"faucet_validations_recent"`
	AirdropChoices          []AirdropChoiceCounts `json:"airdrop_choices"`
	Analytics               []AnalyticsRow        `json:"analytics"`
	AnalyticsError          string                `json:"analytics_error,omitempty"`
	Trigger                 string                `json:"trigger"`
	RunID                   int64                 `json:"run_id,string"`
}

// EmptySections 返回没有数据可渲染的分区
func (d *Dashboard) EmptySections() []string {
	lengths := map[string]int{
		SectionReconciliation:          len(d.Reconciliation),
		SectionTaskScores:              len(d.TaskScores),
		SectionReferrals:               len(d.Referrals),
		SectionReferralCounts:          len(d.ReferralCounts),
		SectionFaucetValidations:       len(d.FaucetValidations),
		SectionFaucetValidationsRecent: len(d.FaucetValidationsRecent),
		SectionAirdropChoices:          len(d.AirdropChoices),
		SectionAnalytics:               len(d.Analytics),
	}

	empty := make([]string, 0)
	for _, section := range Sections {
		if lengths[section] == 0 {
			empty = append(empty, section)
		}
	}
	return empty
}
