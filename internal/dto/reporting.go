package dto

import (
	"github.com/shopspring/decimal"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// SummaryResponse is the JSON form of domain.WorkSummary.
type SummaryResponse struct {
	TotalRecords         int                     `json:"totalRecords"`
	TotalQuantity        int64                   `json:"totalQuantity"`
	BusiestWeekday       *string                 `json:"busiestWeekday,omitempty"`
	TopContributor       *domain.ContributorStat `json:"topContributor,omitempty"`
	MostFrequentProject  *string                 `json:"mostFrequentProject,omitempty"`
	CategoryDistribution []domain.LabelCount     `json:"categoryDistribution"`
	MonthlyCounts        []domain.LabelCount     `json:"monthlyCounts"`
	RevenueMonth         *string                 `json:"revenueMonth,omitempty"`
	PeriodRevenue        decimal.Decimal         `json:"periodRevenue"`
	CurrentMonthCount    int                     `json:"currentMonthCount"`
}

// AggregateResponse is one page of the work aggregator.
type AggregateResponse struct {
	Records       []WorkRecordResponse `json:"records"`
	NextPageToken string               `json:"nextPageToken,omitempty"`
	Summary       SummaryResponse      `json:"summary"`
}

// DashboardResponse is the manager overview.
type DashboardResponse struct {
	Summary             SummaryResponse `json:"summary"`
	TotalProjects       int             `json:"totalProjects"`
	TotalTeamMembers    int             `json:"totalTeamMembers"`
	TotalInvoicedAmount decimal.Decimal `json:"totalInvoicedAmount"`
}

// PrincipalReportResponse summarises the activity of one principal.
type PrincipalReportResponse struct {
	Principal            PrincipalResponse    `json:"principal"`
	CreatedByUsername    *string              `json:"createdByUsername,omitempty"`
	TotalWorkEntries     int                  `json:"totalWorkEntries"`
	TotalQuantity        int64                `json:"totalQuantity"`
	ProjectsCreatedCount int                  `json:"projectsCreatedCount"`
	ProjectsManagedCount int                  `json:"projectsManagedCount"`
	ProjectStatistics    []domain.ProjectStat `json:"projectStatistics"`
	RecentWorkEntries    []WorkRecordResponse `json:"recentWorkEntries"`
}

func ToSummaryResponse(s *domain.WorkSummary) SummaryResponse {
	res := SummaryResponse{
		TotalRecords:         s.TotalRecords,
		TotalQuantity:        s.TotalQuantity,
		TopContributor:       s.TopContributor,
		MostFrequentProject:  s.MostFrequentProject,
		CategoryDistribution: s.CategoryDistribution,
		MonthlyCounts:        s.MonthlyCounts,
		PeriodRevenue:        s.PeriodRevenue,
		CurrentMonthCount:    s.CurrentMonthCount,
	}
	if s.BusiestWeekday != nil {
		name := s.BusiestWeekday.String()
		res.BusiestWeekday = &name
	}
	if s.RevenuePeriod != nil {
		month := s.RevenuePeriod.String()
		res.RevenueMonth = &month
	}
	return res
}

func ToAggregateResponse(a *domain.WorkAggregate) AggregateResponse {
	return AggregateResponse{
		Records:       ToListWorkRecordDetailResponse(a.Records),
		NextPageToken: a.NextPageToken,
		Summary:       ToSummaryResponse(&a.Summary),
	}
}

func ToDashboardResponse(d *domain.Dashboard) DashboardResponse {
	return DashboardResponse{
		Summary:             ToSummaryResponse(&d.Summary),
		TotalProjects:       d.TotalProjects,
		TotalTeamMembers:    d.TotalTeamMembers,
		TotalInvoicedAmount: d.TotalInvoicedAmount,
	}
}

func ToPrincipalReportResponse(r *domain.PrincipalReport) PrincipalReportResponse {
	return PrincipalReportResponse{
		Principal:            ToPrincipalResponse(&r.Principal),
		CreatedByUsername:    r.CreatedByUsername,
		TotalWorkEntries:     r.TotalWorkEntries,
		TotalQuantity:        r.TotalQuantity,
		ProjectsCreatedCount: r.ProjectsCreatedCount,
		ProjectsManagedCount: r.ProjectsManagedCount,
		ProjectStatistics:    r.ProjectStatistics,
		RecentWorkEntries:    ToListWorkRecordDetailResponse(r.RecentWorkEntries),
	}
}
