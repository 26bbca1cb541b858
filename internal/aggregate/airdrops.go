package aggregate

import (
	"NodeDashboard/internal/model"
)

// AirdropChoices 按 (日期, 是否保留) 计数后透视为 swapped / kept 两列
func AirdropChoices(records []model.AirdropChoiceRecord) []model.AirdropChoiceCounts {
	byDate := make(map[string]*model.AirdropChoiceCounts)
	for _, record := range records {
		date := dateBucket(record.CreatedAt)

		counts, exists := byDate[date]
		if !exists {
			counts = &model.AirdropChoiceCounts{Date: date}
			byDate[date] = counts
		}

		if record.KeepOwnAirdrop {
			counts.Kept++
		} else {
			counts.Swapped++
		}
	}

	out := make([]model.AirdropChoiceCounts, 0, len(byDate))
	for _, date := range sortedKeys(byDate) {
		out = append(out, *byDate[date])
	}
	return out
}
