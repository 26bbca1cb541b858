package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NodeDashboard/internal/model"
)

func submissions(wallet string, scores map[string]float64) model.SubmissionRecord {
	record := model.SubmissionRecord{
		WalletKey:   wallet,
		CreatedAt:   model.Missing,
		UpdatedAt:   model.Missing,
		Submissions: make(map[string]model.SubmissionEntry),
	}
	for date, score := range scores {
		record.Submissions[date] = model.SubmissionEntry{Score: score}
	}
	return record
}

func TestTaskScoresWorkedExample(t *testing.T) {
	records := []model.SubmissionRecord{
		submissions("A", map[string]float64{"2024-01-01": 5}),
		submissions("B", map[string]float64{"2024-01-01": 3}),
	}

	assert.Equal(t, []model.ScoreByDate{{Date: "2024-01-01", TotalScore: 8}}, TaskScores(records))
}

func TestTaskScoresSumInvariant(t *testing.T) {
	records := []model.SubmissionRecord{
		submissions("A", map[string]float64{"2024-01-03": 1.5, "2024-01-01": 2}),
		submissions("B", map[string]float64{"2024-01-02": 4, "2024-01-03": 0.5}),
		submissions("C", map[string]float64{"2024-01-01": 10}),
		submissions("D", nil),
	}

	var sourceTotal float64
	for _, record := range records {
		for _, entry := range record.Submissions {
			sourceTotal += entry.Score
		}
	}

	scores := TaskScores(records)

	var aggregated float64
	for _, row := range scores {
		aggregated += row.TotalScore
	}
	assert.InDelta(t, sourceTotal, aggregated, 1e-9)

	require.Len(t, scores, 3)
	assert.Equal(t, "2024-01-01", scores[0].Date)
	assert.Equal(t, 12.0, scores[0].TotalScore)
	assert.Equal(t, "2024-01-02", scores[1].Date)
	assert.Equal(t, "2024-01-03", scores[2].Date)
	assert.Equal(t, 2.0, scores[2].TotalScore)
}

func TestExpandSubmissions(t *testing.T) {
	rows := ExpandSubmissions([]model.SubmissionRecord{
		submissions("A", map[string]float64{"2024-01-02": 1, "2024-01-01": 2}),
	})

	require.Len(t, rows, 2)
	assert.Equal(t, model.SubmissionRow{WalletKey: "A", Date: "2024-01-01", CreatedAt: model.Missing, UpdatedAt: model.Missing, Score: 2}, rows[0])
	assert.Equal(t, "2024-01-02", rows[1].Date)
}

func TestEmptyInputsYieldEmptyTables(t *testing.T) {
	assert.NotNil(t, TaskScores(nil))
	assert.Empty(t, TaskScores(nil))
	assert.NotNil(t, ExpandReferrals(nil))
	assert.NotNil(t, ReferralCounts(nil))
	assert.NotNil(t, FaucetValidations(nil))
	assert.NotNil(t, AirdropChoices(nil))
	assert.NotNil(t, RecentValidations(nil, time.Now(), 30))
}

func TestExpandReferralsDropsEmptyUsers(t *testing.T) {
	records := []model.ReferralRecord{
		{
			WalletAddress:  "0x1",
			Email:          "a@example.com",
			ReferralCode:   "CODE1",
			TotalReferrals: 3,
			Referrals: map[string][]string{
				"2024-01-02": {"u3"},
				"2024-01-01": {"u1", "", "u2"},
				"2024-01-03": nil,
			},
		},
		{WalletAddress: "0x2", Referrals: map[string][]string{}},
	}

	rows := ExpandReferrals(records)

	require.Len(t, rows, 3)
	assert.Equal(t, "u1", rows[0].ReferredUser)
	assert.Equal(t, "2024-01-01", rows[0].ReferralDate)
	assert.Equal(t, "u2", rows[1].ReferredUser)
	assert.Equal(t, "u3", rows[2].ReferredUser)
	assert.Equal(t, "2024-01-02", rows[2].ReferralDate)
	assert.Equal(t, int64(3), rows[2].TotalReferrals)
	assert.Equal(t, "CODE1", rows[2].ReferralCode)

	assert.Equal(t, []model.CountByDate{
		{Date: "2024-01-01", Count: 2},
		{Date: "2024-01-02", Count: 1},
	}, ReferralCounts(rows))
}

func TestFaucetValidationsLeftJoin(t *testing.T) {
	records := []model.FaucetRecord{
		{WalletAddress: "a", CreatedAt: "2024-01-01", EmailValidation: model.ValidationClaimed, TwitterValidation: model.ValidationClaimed},
		{WalletAddress: "b", CreatedAt: "2024-01-01", EmailValidation: "PENDING", DiscordValidation: model.ValidationClaimed},
		{WalletAddress: "c", CreatedAt: "2024-01-02T10:00:00Z", EmailValidation: model.Missing},
		{WalletAddress: "d", CreatedAt: model.Missing, EmailValidation: model.ValidationClaimed},
	}

	rows := FaucetValidations(records)

	assert.Equal(t, []model.ValidationCounts{
		{Date: "2024-01-01", NewUsers: 2, EmailClaimed: 1, TwitterClaimed: 1, DiscordClaimed: 1},
		{Date: "2024-01-02", NewUsers: 1},
		{Date: model.Missing, NewUsers: 1, EmailClaimed: 1},
	}, rows)

	total := 0
	for _, row := range rows {
		total += row.NewUsers
	}
	assert.Equal(t, len(records), total)
}

func TestRecentValidationsExcludesToday(t *testing.T) {
	now := time.Date(2024, 3, 31, 15, 0, 0, 0, time.UTC)
	rows := []model.ValidationCounts{
		{Date: "2024-02-29", NewUsers: 1},
		{Date: "2024-03-01", NewUsers: 2},
		{Date: "2024-03-30", NewUsers: 3},
		{Date: "2024-03-31", NewUsers: 4},
		{Date: model.Missing, NewUsers: 5},
	}

	recent := RecentValidations(rows, now, 30)

	require.Len(t, recent, 2)
	assert.Equal(t, "2024-03-01", recent[0].Date)
	assert.Equal(t, "2024-03-30", recent[1].Date)
}

func TestAirdropChoicesPivot(t *testing.T) {
	records := []model.AirdropChoiceRecord{
		{CreatedAt: "2024-01-01", KeepOwnAirdrop: true},
		{CreatedAt: "2024-01-01", KeepOwnAirdrop: true},
		{CreatedAt: "2024-01-01", KeepOwnAirdrop: false},
	}

	assert.Equal(t, []model.AirdropChoiceCounts{{Date: "2024-01-01", Swapped: 1, Kept: 2}}, AirdropChoices(records))
}

func TestAirdropChoicesZeroFill(t *testing.T) {
	records := []model.AirdropChoiceRecord{
		{CreatedAt: "2024-01-02", KeepOwnAirdrop: false},
		{CreatedAt: "2024-01-01", KeepOwnAirdrop: true},
		{CreatedAt: model.Missing, KeepOwnAirdrop: true},
	}

	assert.Equal(t, []model.AirdropChoiceCounts{
		{Date: "2024-01-01", Swapped: 0, Kept: 1},
		{Date: "2024-01-02", Swapped: 1, Kept: 0},
		{Date: model.Missing, Swapped: 0, Kept: 1},
	}, AirdropChoices(records))
}
