package aggregate

import (
	"NodeDashboard/internal/model"
)

// ExpandReferrals 每个非空被推荐用户一行，记录保持源顺序，记录内日期升序
func ExpandReferrals(records []model.ReferralRecord) []model.ReferralRow {
	rows := make([]model.ReferralRow, 0, len(records))
	for _, record := range records {
		for _, date := range sortedKeys(record.Referrals) {
			for _, user := range record.Referrals[date] {
				if user == "" {
					continue
				}
				rows = append(rows, model.ReferralRow{
					WalletAddress:  record.WalletAddress,
					Email:          record.Email,
					ReferralCode:   record.ReferralCode,
					ReferralDate:   date,
					ReferredUser:   user,
					CreatedAt:      record.CreatedAt,
					UpdatedAt:      record.UpdatedAt,
					TotalReferrals: record.TotalReferrals,
				})
			}
		}
	}
	return rows
}

// ReferralCounts 推荐图表使用的按日计数
func ReferralCounts(rows []model.ReferralRow) []model.CountByDate {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.ReferralDate]++
	}

	out := make([]model.CountByDate, 0, len(counts))
	for _, date := range sortedKeys(counts) {
		out = append(out, model.CountByDate{Date: date, Count: counts[date]})
	}
	return out
}
