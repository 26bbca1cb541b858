package reconcile

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NodeDashboard/internal/model"
)

func submission(wallet string, dates ...string) model.SubmissionRecord {
	record := model.SubmissionRecord{WalletKey: wallet, Submissions: make(map[string]model.SubmissionEntry)}
	for _, date := range dates {
		record.Submissions[date] = model.SubmissionEntry{Score: 1}
	}
	return record
}

func faucet(wallet string) model.FaucetRecord {
	return model.FaucetRecord{WalletAddress: wallet}
}

func TestReconcileWorkedExample(t *testing.T) {
	rows := Run(
		[]model.SubmissionRecord{submission("A", "2024-01-01"), submission("B", "2024-01-01")},
		[]model.FaucetRecord{faucet("A")},
	)

	assert.Equal(t, []model.ReconciliationRow{{
		Date:                  "2024-01-01",
		MissingWallets:        []string{"B"},
		TotalSubmittedWallets: 2,
		TotalMissing:          1,
		MissingRatioPercent:   50.00,
	}}, rows)
}

func TestWalletCountsOncePerDate(t *testing.T) {
	rows := Run(
		[]model.SubmissionRecord{submission("A", "2024-01-01"), submission("A", "2024-01-01", "2024-01-02")},
		nil,
	)

	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].TotalSubmittedWallets)
	assert.Equal(t, []string{"A"}, rows[0].MissingWallets)
	assert.Equal(t, 100.0, rows[0].MissingRatioPercent)
	assert.Equal(t, "2024-01-02", rows[1].Date)
}

func TestRegisteredSetIsGlobal(t *testing.T) {
	// 注册日期与提交日期无关
	rows := Run(
		[]model.SubmissionRecord{submission("A", "2023-01-01")},
		[]model.FaucetRecord{{WalletAddress: "A", CreatedAt: "2024-06-01"}},
	)

	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].MissingWallets)
	assert.Equal(t, 0.0, rows[0].MissingRatioPercent)
}

func TestSentinelWalletExcluded(t *testing.T) {
	rows := Run(
		[]model.SubmissionRecord{submission(model.Missing, "2024-01-01"), submission("A", "2024-01-01")},
		[]model.FaucetRecord{faucet(model.Missing), faucet("A")},
	)

	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].TotalSubmittedWallets)
	assert.Empty(t, rows[0].MissingWallets)

	assert.False(t, RegisteredWallets([]model.FaucetRecord{faucet(model.Missing)}).Contains(model.Missing))
}

func TestZeroSubmissionDatesNeverEmitted(t *testing.T) {
	submitted := map[string]WalletSet{
		"2024-01-01": {},
		"2024-01-02": {"A": {}},
	}

	rows := Reconcile(submitted, WalletSet{})

	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-02", rows[0].Date)
	assert.Empty(t, Run(nil, nil))
	assert.Empty(t, Run([]model.SubmissionRecord{submission("A")}, nil))
}

func TestMissingRatio(t *testing.T) {
	assert.Equal(t, 0.0, MissingRatio(0, 0))
	assert.Equal(t, 0.0, MissingRatio(0, 3))
	assert.Equal(t, 33.33, MissingRatio(1, 3))
	assert.Equal(t, 66.67, MissingRatio(2, 3))
	assert.Equal(t, 100.0, MissingRatio(7, 7))
}

func TestReconcileProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}

	var subs []model.SubmissionRecord
	var faucets []model.FaucetRecord
	for i := 0; i < 200; i++ {
		wallet := fmt.Sprintf("w%d", rng.Intn(60))
		subs = append(subs, submission(wallet, dates[rng.Intn(len(dates))]))
		if rng.Intn(2) == 0 {
			faucets = append(faucets, faucet(wallet))
		}
	}

	submitted := SubmittedWalletsByDate(subs)
	registered := RegisteredWallets(faucets)
	rows := Reconcile(submitted, registered)

	require.Len(t, rows, len(submitted))
	for i, row := range rows {
		if i > 0 {
			assert.Less(t, rows[i-1].Date, row.Date)
		}

		wallets := submitted[row.Date]
		union := make(WalletSet)
		for _, wallet := range row.MissingWallets {
			assert.False(t, registered.Contains(wallet), "missing wallet %s is registered", wallet)
			assert.True(t, wallets.Contains(wallet))
			union.Add(wallet)
		}
		for wallet := range wallets {
			if registered.Contains(wallet) {
				union.Add(wallet)
			}
		}
		assert.Equal(t, wallets, union)

		assert.GreaterOrEqual(t, row.MissingRatioPercent, 0.0)
		assert.LessOrEqual(t, row.MissingRatioPercent, 100.0)
		assert.Equal(t, len(row.MissingWallets) == 0, row.MissingRatioPercent == 0)
		assert.Equal(t, len(row.MissingWallets), row.TotalMissing)
	}
}

func TestExceeding(t *testing.T) {
	rows := []model.ReconciliationRow{
		{Date: "2024-01-01", TotalMissing: 1, MissingRatioPercent: 10},
		{Date: "2024-01-02", TotalMissing: 2, MissingRatioPercent: 20},
		{Date: "2024-01-03", TotalMissing: 5, MissingRatioPercent: 50},
	}

	over := Exceeding(rows, 20)
	require.Len(t, over, 2)
	assert.Equal(t, "2024-01-02", over[0].Date)

	assert.Empty(t, Exceeding(rows, 0))
}
