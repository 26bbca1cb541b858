package model

// 聚合输出的表格行，均按日期升序排列

// SubmissionRow 展开后的单条提交
type SubmissionRow struct {
	WalletKey string  `json:"pub_key"`
	Date      string  `json:"date"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	Score     float64 `json:"score"`
}

// ScoreByDate 每日任务得分汇总
type ScoreByDate struct {
	Date       string  `json:"date"`
	TotalScore float64 `json:"total_score"`
}

// ReferralRow 展开后的单条推荐
type ReferralRow struct {
	WalletAddress  string `json:"wallet_address"`
	Email          string `json:"email"`
	ReferralCode   string `json:"referral_code"`
	ReferralDate   string `json:"referral_date"`
	ReferredUser   string `json:"referred_user"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	TotalReferrals int64  `json:"total_referrals"`
}

// CountByDate 按日期计数
type CountByDate struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ValidationCounts 每日新增水龙头用户及各渠道领取数
type ValidationCounts struct {
	Date           string `json:"date"`
	NewUsers       int    `json:"new_users"`
	EmailClaimed   int    `json:"email_claimed"`
	TwitterClaimed int    `json:"twitter_claimed"`
	DiscordClaimed int    `json:"discord_claimed"`
}

// AirdropChoiceCounts 每日空投选择透视
type AirdropChoiceCounts struct {
	Date    string `json:"date"`
	Swapped int    `json:"swapped"`
	Kept    int    `json:"kept"`
}

// ReconciliationRow 某日提交了任务但未在水龙头注册的钱包
type ReconciliationRow struct {
	Date                  string   `json:"date"`
	MissingWallets        []string `json:"missing_wallets"`
	TotalSubmittedWallets int      `json:"total_submitted_wallets"`
	TotalMissing          int      `json:"total_missing"`
	MissingRatioPercent   float64  `json:"missing_ratio_percent"`
}

// AnalyticsRow 外部分析报表的一行
type AnalyticsRow struct {
	Date        string `json:"date"`
	ActiveUsers int64  `json:"active_users"`
	Sessions    int64  `json:"sessions"`
}
