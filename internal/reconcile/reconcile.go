// Package reconcile 找出提交了任务却未在水龙头注册的钱包
package reconcile

import (
	"math"
	"sort"

	"NodeDashboard/internal/model"
)

// WalletSet 钱包集合
type WalletSet map[string]struct{}

func (s WalletSet) Add(wallet string) {
	s[wallet] = struct{}{}
}

func (s WalletSet) Contains(wallet string) bool {
	_, ok := s[wallet]
	return ok
}

// Sorted 升序返回集合元素
func (s WalletSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for wallet := range s {
		out = append(out, wallet)
	}
	sort.Strings(out)
	return out
}

// RegisteredWallets 全部水龙头记录的钱包地址，不按日期划分
func RegisteredWallets(records []model.FaucetRecord) WalletSet {
	set := make(WalletSet, len(records))
	for _, record := range records {
		if record.WalletAddress == "" || record.WalletAddress == model.Missing {
			continue
		}
		set.Add(record.WalletAddress)
	}
	return set
}

// SubmittedWalletsByDate 每个提交日期对应的钱包集合，占位钱包 N/A 不参与对账
func SubmittedWalletsByDate(records []model.SubmissionRecord) map[string]WalletSet {
	byDate := make(map[string]WalletSet)
	for _, record := range records {
		if record.WalletKey == "" || record.WalletKey == model.Missing {
			continue
		}
		for date := range record.Submissions {
			set, ok := byDate[date]
			if !ok {
				set = make(WalletSet)
				byDate[date] = set
			}
			set.Add(record.WalletKey)
		}
	}
	return byDate
}

// Reconcile 每个有提交的日期输出一行，缺失 = 当日提交 - 全局注册
func Reconcile(submitted map[string]WalletSet, registered WalletSet) []model.ReconciliationRow {
	dates := make([]string, 0, len(submitted))
	for date, wallets := range submitted {
		if len(wallets) == 0 {
			continue
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)

	rows := make([]model.ReconciliationRow, 0, len(dates))
	for _, date := range dates {
		wallets := submitted[date]

		missing := make(WalletSet)
		for wallet := range wallets {
			if !registered.Contains(wallet) {
				missing.Add(wallet)
			}
		}

		rows = append(rows, model.ReconciliationRow{
			Date:                  date,
			MissingWallets:        missing.Sorted(),
			TotalSubmittedWallets: len(wallets),
			TotalMissing:          len(missing),
			MissingRatioPercent:   MissingRatio(len(missing), len(wallets)),
		})
	}
	return rows
}

// Run 从整理后的记录直接得到对账结果
func Run(submissions []model.SubmissionRecord, faucets []model.FaucetRecord) []model.ReconciliationRow {
	return Reconcile(SubmittedWalletsByDate(submissions), RegisteredWallets(faucets))
}

// MissingRatio 缺失占比的百分数，保留两位小数，total 为 0 时返回 0
func MissingRatio(missing, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(missing)/float64(total)*100*100) / 100
}

// Exceeding 缺失比例达到阈值的行，阈值不大于 0 时不告警
func Exceeding(rows []model.ReconciliationRow, thresholdPercent float64) []model.ReconciliationRow {
	out := make([]model.ReconciliationRow, 0)
	if thresholdPercent <= 0 {
		return out
	}
	for _, row := range rows {
		if row.TotalMissing > 0 && row.MissingRatioPercent >= thresholdPercent {
			out = append(out, row)
		}
	}
	return out
}
