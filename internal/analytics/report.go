// Package analytics 拉取外部网站分析报表（GA4），输出 (日期, 活跃用户, 会话) 行
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"NodeDashboard/internal/model"
	"NodeDashboard/internal/normalize"
)

// 报表维度与指标
const (
	DimensionDate     = "date"
	MetricActiveUsers = "activeUsers"
	MetricSessions    = "sessions"

	gaDateLayout = "20060102"
)

// ReportRequest 报表请求
type ReportRequest struct {
	PropertyID string
	StartDate  string
	EndDate    string
	Dimensions []string
	Metrics    []string
}

// DefaultRequest 看板使用的固定报表：截至昨天的最近 7 天
func DefaultRequest(propertyID string) ReportRequest {
	return ReportRequest{
		PropertyID: propertyID,
		StartDate:  "7daysAgo",
		EndDate:    "yesterday",
		Dimensions: []string{DimensionDate},
		Metrics:    []string{MetricActiveUsers, MetricSessions},
	}
}

// Report 与具体 SDK 无关的报表结果
type Report struct {
	DimensionHeaders []string
	MetricHeaders    []string
	Rows             []ReportRow
}

type ReportRow struct {
	Dimensions []string
	Metrics    []string
}

// Runner 执行一次报表查询
type Runner interface {
	RunReport(ctx context.Context, req ReportRequest) (*Report, error)
}

// MapRows 把报表转为按日期升序的行，GA 的 YYYYMMDD 改写为 YYYY-MM-DD
func MapRows(report *Report) ([]model.AnalyticsRow, error) {
	rows := make([]model.AnalyticsRow, 0)
	if report == nil {
		return rows, nil
	}

	dateIdx := indexOf(report.DimensionHeaders, DimensionDate, 0)
	usersIdx := indexOf(report.MetricHeaders, MetricActiveUsers, 0)
	sessionsIdx := indexOf(report.MetricHeaders, MetricSessions, 1)

	for i, row := range report.Rows {
		if dateIdx >= len(row.Dimensions) || usersIdx >= len(row.Metrics) || sessionsIdx >= len(row.Metrics) {
			return nil, fmt.Errorf("report row %d: unexpected shape", i)
		}

		date, err := time.Parse(gaDateLayout, row.Dimensions[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("report row %d: invalid date %q: %w", i, row.Dimensions[dateIdx], err)
		}
		users, err := strconv.ParseInt(row.Metrics[usersIdx], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("report row %d: invalid %s: %w", i, MetricActiveUsers, err)
		}
		sessions, err := strconv.ParseInt(row.Metrics[sessionsIdx], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("report row %d: invalid %s: %w", i, MetricSessions, err)
		}

		rows = append(rows, model.AnalyticsRow{
			Date:        date.Format(normalize.DateLayout),
			ActiveUsers: users,
			Sessions:    sessions,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})
	return rows, nil
}

func indexOf(headers []string, name string, fallback int) int {
	for i, header := range headers {
		if header == name {
			return i
		}
	}
	return fallback
}
