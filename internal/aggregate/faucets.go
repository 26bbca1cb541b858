package aggregate

import (
	"time"

	"NodeDashboard/internal/model"
	"NodeDashboard/internal/normalize"
)

// FaucetValidations 以每日新增用户为左表，连接邮箱、推特、Discord 的领取数，缺失补 0
func FaucetValidations(records []model.FaucetRecord) []model.ValidationCounts {
	byDate := make(map[string]*model.ValidationCounts)
	for _, record := range records {
		date := dateBucket(record.CreatedAt)

		counts, exists := byDate[date]
		if !exists {
			counts = &model.ValidationCounts{Date: date}
			byDate[date] = counts
		}

		counts.NewUsers++
		if record.EmailValidation.Claimed() {
			counts.EmailClaimed++
		}
		if record.TwitterValidation.Claimed() {
			counts.TwitterClaimed++
		}
		if record.DiscordValidation.Claimed() {
			counts.DiscordClaimed++
		}
	}

	out := make([]model.ValidationCounts, 0, len(byDate))
	for _, date := range sortedKeys(byDate) {
		out = append(out, *byDate[date])
	}
	return out
}

// dateBucket 无法解析的创建时间按原值分桶，空值归入 N/A
func dateBucket(createdAt string) string {
	if date, ok := normalize.ParseDateKey(createdAt); ok {
		return date
	}
	if createdAt == "" {
		return model.Missing
	}
	return createdAt
}

// RecentValidations 保留最近 days 天内的行，不含今天
func RecentValidations(rows []model.ValidationCounts, now time.Time, days int) []model.ValidationCounts {
	today := now.UTC().Format(normalize.DateLayout)
	from := now.UTC().AddDate(0, 0, -days).Format(normalize.DateLayout)

	out := make([]model.ValidationCounts, 0, len(rows))
	for _, row := range rows {
		if _, ok := normalize.ParseDateKey(row.Date); !ok {
			continue
		}
		if row.Date >= from && row.Date < today {
			out = append(out, row)
		}
	}
	return out
}
