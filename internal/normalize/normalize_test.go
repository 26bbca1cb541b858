package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"NodeDashboard/internal/model"
)

func TestFlattenFillsDefaults(t *testing.T) {
	doc := Document{
		"walletAddress": "0xabc",
		"discordId":     nil,
		"createdAt":     time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC),
		"extra":         "ignored",
	}

	row := Flatten(doc, Defaults{
		"walletAddress": model.Missing,
		"discordId":     model.Missing,
		"createdAt":     model.Missing,
		"isKeep":        false,
	})

	assert.Equal(t, Row{
		"walletAddress": "0xabc",
		"discordId":     model.Missing,
		"createdAt":     "2024-03-05",
		"isKeep":        false,
	}, row)
}

func TestDateKey(t *testing.T) {
	eastern := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2024, 1, 1, 22, 0, 0, 0, eastern)

	cases := []struct {
		name  string
		value interface{}
		want  string
		ok    bool
	}{
		{"time", time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC), "2024-01-01", true},
		{"time converted to utc", local, "2024-01-02", true},
		{"pointer", &local, "2024-01-02", true},
		{"bson datetime", primitive.NewDateTimeFromTime(time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)), "2024-02-29", true},
		{"bson timestamp", primitive.Timestamp{T: uint32(time.Date(2023, 12, 31, 8, 0, 0, 0, time.UTC).Unix())}, "2023-12-31", true},
		{"string passes through", "2024-01-01", "", false},
		{"number", 42, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DateKey(tc.value)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSameDayTimestampsCollapse(t *testing.T) {
	morning, _ := DateKey(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	night, _ := DateKey(time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, morning, night)
}

func TestParseDateKey(t *testing.T) {
	got, ok := ParseDateKey("2024-01-01T23:30:00-02:00")
	require.True(t, ok)
	assert.Equal(t, "2024-01-02", got)

	got, ok = ParseDateKey("2024-01-01 10:00:00")
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", got)

	_, ok = ParseDateKey(model.Missing)
	assert.False(t, ok)

	_, ok = ParseDateKey("yesterday")
	assert.False(t, ok)
}

func TestSubmission(t *testing.T) {
	doc := Document{
		"pubKey":    "wallet-1",
		"createdAt": primitive.NewDateTimeFromTime(time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC)),
		"submissions": primitive.M{
			"2024-01-01": primitive.M{"score": int32(5)},
			"2024-01-02": primitive.M{"score": 2.5},
			"2024-01-03": primitive.M{},
		},
	}

	record := Submission(doc)

	assert.Equal(t, "wallet-1", record.WalletKey)
	assert.Equal(t, "2024-01-01", record.CreatedAt)
	assert.Equal(t, model.Missing, record.UpdatedAt)
	assert.Equal(t, map[string]model.SubmissionEntry{
		"2024-01-01": {Score: 5},
		"2024-01-02": {Score: 2.5},
		"2024-01-03": {Score: 0},
	}, record.Submissions)
}

func TestSubmissionWithoutFields(t *testing.T) {
	record := Submission(Document{})

	assert.Equal(t, model.Missing, record.WalletKey)
	assert.NotNil(t, record.Submissions)
	assert.Empty(t, record.Submissions)
}

func TestReferral(t *testing.T) {
	doc := Document{
		"walletAddress":  "0xref",
		"totalReferrals": int32(3),
		"referrals": primitive.M{
			"2024-01-01": primitive.A{"u1", "", nil},
			"2024-01-02": nil,
		},
	}

	record := Referral(doc)

	assert.Equal(t, "0xref", record.WalletAddress)
	assert.Equal(t, model.Missing, record.Email)
	assert.Equal(t, model.Missing, record.ReferralCode)
	assert.Equal(t, int64(3), record.TotalReferrals)
	assert.Equal(t, []string{"u1", "", ""}, record.Referrals["2024-01-01"])
	assert.Nil(t, record.Referrals["2024-01-02"])
}

func TestReferralTotalDefaultsToZero(t *testing.T) {
	record := Referral(Document{"totalReferrals": "not a number"})
	assert.Equal(t, int64(0), record.TotalReferrals)
}

func TestFaucet(t *testing.T) {
	doc := Document{
		"walletAddress":   "0xfaucet",
		"emailValidation": "CLAIMED",
		"createdAt":       time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
	}

	record := Faucet(doc)

	assert.Equal(t, "0xfaucet", record.WalletAddress)
	assert.True(t, record.EmailValidation.Claimed())
	assert.False(t, record.TwitterValidation.Claimed())
	assert.Equal(t, model.ValidationState(model.Missing), record.DiscordValidation)
	assert.Equal(t, model.Missing, record.GithubID)
	assert.Equal(t, "2024-04-01", record.CreatedAt)
}

func TestAirdropChoice(t *testing.T) {
	kept := AirdropChoice(Document{
		"createdAt":       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		"isKeepMyAirdrop": true,
	})
	assert.Equal(t, "2024-06-01", kept.CreatedAt)
	assert.True(t, kept.KeepOwnAirdrop)

	missing := AirdropChoice(Document{})
	assert.Equal(t, model.Missing, missing.CreatedAt)
	assert.False(t, missing.KeepOwnAirdrop)
}

func TestCoercion(t *testing.T) {
	f, ok := Float("1.5")
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	i, ok := Int(7.9)
	assert.True(t, ok)
	assert.Equal(t, int64(7), i)

	assert.Equal(t, "12", String(int64(12), model.Missing))
	assert.Equal(t, model.Missing, String([]int{1}, model.Missing))
	assert.True(t, Bool("true", false))
}
