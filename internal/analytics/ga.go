package analytics

import (
	"context"
	"fmt"

	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"
)

// GARunner 基于 Google Analytics Data API 的报表查询
type GARunner struct {
	svc *analyticsdata.Service
}

// NewGARunner 使用服务账号凭据文件创建只读客户端
func NewGARunner(ctx context.Context, credentialsFile string) (*GARunner, error) {
	svc, err := analyticsdata.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(analyticsdata.AnalyticsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics data client: %w", err)
	}
	return &GARunner{svc: svc}, nil
}

func (r *GARunner) RunReport(ctx context.Context, req ReportRequest) (*Report, error) {
	gaReq := &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{{
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		}},
	}
	for _, name := range req.Dimensions {
		gaReq.Dimensions = append(gaReq.Dimensions, &analyticsdata.Dimension{Name: name})
	}
	for _, name := range req.Metrics {
		gaReq.Metrics = append(gaReq.Metrics, &analyticsdata.Metric{Name: name})
	}

	resp, err := r.svc.Properties.RunReport("properties/"+req.PropertyID, gaReq).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("run report for property %s: %w", req.PropertyID, err)
	}

	report := &Report{
		DimensionHeaders: make([]string, 0, len(resp.DimensionHeaders)),
		MetricHeaders:    make([]string, 0, len(resp.MetricHeaders)),
		Rows:             make([]ReportRow, 0, len(resp.Rows)),
	}
	for _, header := range resp.DimensionHeaders {
		report.DimensionHeaders = append(report.DimensionHeaders, header.Name)
	}
	for _, header := range resp.MetricHeaders {
		report.MetricHeaders = append(report.MetricHeaders, header.Name)
	}
	for _, row := range resp.Rows {
		out := ReportRow{
			Dimensions: make([]string, 0, len(row.DimensionValues)),
			Metrics:    make([]string, 0, len(row.MetricValues)),
		}
		for _, value := range row.DimensionValues {
			out.Dimensions = append(out.Dimensions, value.Value)
		}
		for _, value := range row.MetricValues {
			out.Metrics = append(out.Metrics, value.Value)
		}
		report.Rows = append(report.Rows, out)
	}

	return report, nil
}
