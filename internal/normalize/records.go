package normalize

import (
	"NodeDashboard/internal/model"
)

// 各数据源的默认值表
var (
	SubmissionDefaults = Defaults{
		"pubKey":      model.Missing,
		"createdAt":   model.Missing,
		"updatedAt":   model.Missing,
		"submissions": nil,
	}

	ReferralDefaults = Defaults{
		"walletAddress":  model.Missing,
		"email":          model.Missing,
		"referralCode":   model.Missing,
		"totalReferrals": int64(0),
		"createdAt":      model.Missing,
		"updatedAt":      model.Missing,
		"referrals":      nil,
	}

	FaucetDefaults = Defaults{
		"walletAddress":     model.Missing,
		"discordId":         model.Missing,
		"emailAddress":      model.Missing,
		"twitterId":         model.Missing,
		"githubId":          model.Missing,
		"discordValidation": model.Missing,
		"emailValidation":   model.Missing,
		"phoneValidation":   model.Missing,
		"twitterValidation": model.Missing,
		"githubValidation":  model.Missing,
		"referral":          model.Missing,
		"createdAt":         model.Missing,
		"updatedAt":         model.Missing,
	}

	AirdropDefaults = Defaults{
		"createdAt":       model.Missing,
		"isKeepMyAirdrop": false,
	}
)

// Submission 整理任务提交记录，submissions 中无法识别的日期条目被丢弃
func Submission(doc Document) model.SubmissionRecord {
	row := Flatten(doc, SubmissionDefaults)

	record := model.SubmissionRecord{
		WalletKey:   String(row["pubKey"], model.Missing),
		CreatedAt:   String(row["createdAt"], model.Missing),
		UpdatedAt:   String(row["updatedAt"], model.Missing),
		Submissions: make(map[string]model.SubmissionEntry),
	}

	byDate, ok := asMap(row["submissions"])
	if !ok {
		return record
	}
	for date, raw := range byDate {
		entry := model.SubmissionEntry{}
		if fields, ok := asMap(raw); ok {
			if score, ok := Float(fields["score"]); ok {
				entry.Score = score
			}
		}
		record.Submissions[date] = entry
	}
	return record
}

// Referral 整理推荐记录，空的被推荐用户在聚合时才过滤
func Referral(doc Document) model.ReferralRecord {
	row := Flatten(doc, ReferralDefaults)

	record := model.ReferralRecord{
		WalletAddress: String(row["walletAddress"], model.Missing),
		Email:         String(row["email"], model.Missing),
		ReferralCode:  String(row["referralCode"], model.Missing),
		CreatedAt:     String(row["createdAt"], model.Missing),
		UpdatedAt:     String(row["updatedAt"], model.Missing),
		Referrals:     make(map[string][]string),
	}
	if total, ok := Int(row["totalReferrals"]); ok {
		record.TotalReferrals = total
	}

	byDate, ok := asMap(row["referrals"])
	if !ok {
		return record
	}
	for date, raw := range byDate {
		users, ok := asSlice(raw)
		if !ok {
			record.Referrals[date] = nil
			continue
		}
		list := make([]string, 0, len(users))
		for _, user := range users {
			list = append(list, String(user, ""))
		}
		record.Referrals[date] = list
	}
	return record
}

// Faucet 整理水龙头注册记录
func Faucet(doc Document) model.FaucetRecord {
	row := Flatten(doc, FaucetDefaults)

	return model.FaucetRecord{
		WalletAddress:     String(row["walletAddress"], model.Missing),
		DiscordID:         String(row["discordId"], model.Missing),
		EmailAddress:      String(row["emailAddress"], model.Missing),
		TwitterID:         String(row["twitterId"], model.Missing),
		GithubID:          String(row["githubId"], model.Missing),
		DiscordValidation: model.ValidationState(String(row["discordValidation"], model.Missing)),
		EmailValidation:   model.ValidationState(String(row["emailValidation"], model.Missing)),
		PhoneValidation:   model.ValidationState(String(row["phoneValidation"], model.Missing)),
		TwitterValidation: model.ValidationState(String(row["twitterValidation"], model.Missing)),
		GithubValidation:  model.ValidationState(String(row["githubValidation"], model.Missing)),
		Referral:          String(row["referral"], model.Missing),
		CreatedAt:         String(row["createdAt"], model.Missing),
		UpdatedAt:         String(row["updatedAt"], model.Missing),
	}
}

// AirdropChoice 整理空投选择记录
func AirdropChoice(doc Document) model.AirdropChoiceRecord {
	row := Flatten(doc, AirdropDefaults)

	return model.AirdropChoiceRecord{
		CreatedAt:      String(row["createdAt"], model.Missing),
		KeepOwnAirdrop: Bool(row["isKeepMyAirdrop"], false),
	}
}

// Submissions 批量整理
func Submissions(docs []Document) []model.SubmissionRecord {
	out := make([]model.SubmissionRecord, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Submission(doc))
	}
	return out
}

func Referrals(docs []Document) []model.ReferralRecord {
	out := make([]model.ReferralRecord, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Referral(doc))
	}
	return out
}

func Faucets(docs []Document) []model.FaucetRecord {
	out := make([]model.FaucetRecord, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Faucet(doc))
	}
	return out
}

func AirdropChoices(docs []Document) []model.AirdropChoiceRecord {
	out := make([]model.AirdropChoiceRecord, 0, len(docs))
	for _, doc := range docs {
		out = append(out, AirdropChoice(doc))
	}
	return out
}
