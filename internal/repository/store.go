package repository

import (
	"context"

	"NodeDashboard/internal/normalize"
)

// Source 看板读取的文档集合
type Source string

const (
	SourceSubmissions Source = "submissions"
	SourceReferrals   Source = "referrals"
	SourceFaucets     Source = "faucets"
	SourceAirdrops    Source = "airdrops"
)

// Sources 渲染时的读取顺序
var Sources = []Source{SourceSubmissions, SourceReferrals, SourceFaucets, SourceAirdrops}

// DocumentStore 返回集合中的全部文档，fields 非空时只取这些字段
type DocumentStore interface {
	Find(ctx context.Context, source Source, fields ...string) ([]normalize.Document, error)
}
