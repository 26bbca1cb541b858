package service

import (
	"context"

	"NodeDashboard/internal/aggregate"
	"NodeDashboard/internal/model"
	"NodeDashboard/internal/normalize"
	"NodeDashboard/internal/reconcile"
	"NodeDashboard/internal/repository"
	"NodeDashboard/pkg/errors"
)

// Section 单独计算一个分区，只读取该分区需要的集合
func (s *DashboardService) Section(ctx context.Context, name string) (interface{}, error) {
	switch name {
	case model.SectionTaskScores:
		records, err := s.submissions(ctx)
		if err != nil {
			return nil, err
		}
		return aggregate.TaskScores(records), nil

	case model.SectionReferrals, model.SectionReferralCounts:
		docs, err := s.find(ctx, repository.SourceReferrals)
		if err != nil {
			return nil, err
		}
		rows := aggregate.ExpandReferrals(normalize.Referrals(docs))
		if name == model.SectionReferralCounts {
			return aggregate.ReferralCounts(rows), nil
		}
		return rows, nil

	case model.SectionFaucetValidations, model.SectionFaucetValidationsRecent:
		docs, err := s.find(ctx, repository.SourceFaucets)
		if err != nil {
			return nil, err
		}
		rows := aggregate.FaucetValidations(normalize.Faucets(docs))
		if name == model.SectionFaucetValidationsRecent {
			return aggregate.RecentValidations(rows, s.now(), s.windowDays), nil
		}
		return rows, nil

	case model.SectionAirdropChoices:
		docs, err := s.find(ctx, repository.SourceAirdrops)
		if err != nil {
			return nil, err
		}
		return aggregate.AirdropChoices(normalize.AirdropChoices(docs)), nil

	case model.SectionReconciliation:
		return s.reconciliation(ctx)

	case model.SectionAnalytics:
		if s.analytics == nil {
			return nil, errors.AnalyticsUnavailable.Wrap(errAnalyticsNotConfigured)
		}
		rows, err := s.analytics.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return rows, nil

	default:
		return nil, errors.SectionNotFound
	}
}

func (s *DashboardService) submissions(ctx context.Context, fields ...string) ([]model.SubmissionRecord, error) {
	docs, err := s.find(ctx, repository.SourceSubmissions, fields...)
	if err != nil {
		return nil, err
	}
	return normalize.Submissions(docs), nil
}

// reconciliation 只投影需要的字段：提交的钱包与日期、水龙头的钱包地址
func (s *DashboardService) reconciliation(ctx context.Context) ([]model.ReconciliationRow, error) {
	subs, err := s.submissions(ctx, "pubKey", "submissions")
	if err != nil {
		return nil, err
	}

	docs, err := s.find(ctx, repository.SourceFaucets, "walletAddress")
	if err != nil {
		return nil, err
	}

	return reconcile.Run(subs, normalize.Faucets(docs)), nil
}
