// Package aggregate 按日期汇总各数据源，所有输出按日期升序
package aggregate

import (
	"sort"

	"NodeDashboard/internal/model"
)

// ExpandSubmissions 每条记录按 submissions 展开为 (钱包, 日期, 得分) 行
func ExpandSubmissions(records []model.SubmissionRecord) []model.SubmissionRow {
	rows := make([]model.SubmissionRow, 0, len(records))
	for _, record := range records {
		for _, date := range sortedKeys(record.Submissions) {
			rows = append(rows, model.SubmissionRow{
				WalletKey: record.WalletKey,
				Date:      date,
				CreatedAt: record.CreatedAt,
				UpdatedAt: record.UpdatedAt,
				Score:     record.Submissions[date].Score,
			})
		}
	}
	return rows
}

// TaskScores 按日期累加得分
func TaskScores(records []model.SubmissionRecord) []model.ScoreByDate {
	totals := make(map[string]float64)
	for _, row := range ExpandSubmissions(records) {
		totals[row.Date] += row.Score
	}

	out := make([]model.ScoreByDate, 0, len(totals))
	for _, date := range sortedKeys(totals) {
		out = append(out, model.ScoreByDate{Date: date, TotalScore: totals[date]})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
