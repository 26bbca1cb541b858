package model

// Missing 源记录缺失字段时使用的占位值
const Missing = "N/A"

// ValidationState 水龙头各渠道的验证状态
type ValidationState string

// ValidationClaimed 表示已完成验证并领取
const ValidationClaimed ValidationState = "CLAIMED"

// Claimed 是否已领取
func (s ValidationState) Claimed() bool {
	return s == ValidationClaimed
}

// SubmissionEntry 某一天的任务提交
type SubmissionEntry struct {
	Score float64 `json:"score" bson:"score"`
}

// SubmissionRecord 每个节点一条，submissions 的键为 YYYY-MM-DD
type SubmissionRecord struct {
	Submissions map[string]SubmissionEntry `json:"submissions" bson:"submissions"`
	WalletKey   string                     `json:"pub_key" bson:"pubKey"`
	CreatedAt   string                     `json:"created_at" bson:"createdAt"`
	UpdatedAt   string                     `json:"updated_at" bson:"updatedAt"`
}

// ReferralRecord 推荐人及其按日期记录的被推荐用户
type ReferralRecord struct {
	Referrals      map[string][]string `json:"referrals" bson:"referrals"`
	WalletAddress  string              `json:"wallet_address" bson:"walletAddress"`
	Email          string              `json:"email" bson:"email"`
	ReferralCode   string              `json:"referral_code" bson:"referralCode"`
	CreatedAt      string              `json:"created_at" bson:"createdAt"`
	UpdatedAt      string              `json:"updated_at" bson:"updatedAt"`
	TotalReferrals int64               `json:"total_referrals" bson:"totalReferrals"`
}

// FaucetRecord 水龙头注册记录
type FaucetRecord struct {
	WalletAddress     string          `json:"wallet_address" bson:"walletAddress"`
	DiscordID         string          `json:"discord_id" bson:"discordId"`
	EmailAddress      string          `json:"email_address" bson:"emailAddress"`
	TwitterID         string          `json:"twitter_id" bson:"twitterId"`
	GithubID          string          `json:"github_id" bson:"githubId"`
	DiscordValidation ValidationState `json:"discord_validation" bson:"discordValidation"`
	EmailValidation   ValidationState `json:"email_validation" bson:"emailValidation"`
	PhoneValidation   ValidationState `json:"phone_validation" bson:"phoneValidation"`
	TwitterValidation ValidationState `json:"twitter_validation" bson:"twitterValidation"`
	GithubValidation  ValidationState `json:"github_validation" bson:"githubValidation"`
	Referral          string          `json:"referral" bson:"referral"`
	CreatedAt         string          `json:"created_at" bson:"createdAt"`
	UpdatedAt         string          `json:"updated_at" bson:"updatedAt"`
}

// AirdropChoiceRecord 空投兑换选择，KeepOwnAirdrop 为 false 表示换成了原生代币
type AirdropChoiceRecord struct {
	CreatedAt      string `json:"created_at" bson:"createdAt"`
	KeepOwnAirdrop bool   `json:"keep_own_airdrop" bson:"isKeepMyAirdrop"`
}
