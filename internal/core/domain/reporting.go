package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedLabel groups records without a category.
const UncategorizedLabel = "Uncategorized"

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Contains reports whether t falls in the month.
func (ym YearMonth) Contains(t time.Time) bool {
	return t.Year() == ym.Year && t.Month() == ym.Month
}

// ISOWeekday maps Monday..Sunday to 1..7.
func ISOWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

// ContributorStat is a principal with its summed quantity.
type ContributorStat struct {
	PrincipalID   string `json:"principalID"`
	Username      string `json:"username"`
	TotalQuantity int64  `json:"totalQuantity"`
}

// LabelCount is a labelled record count.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// WorkSummary is computed over a filtered, scoped record set.
type WorkSummary struct {
	TotalRecords         int              `json:"totalRecords"`
	TotalQuantity        int64            `json:"totalQuantity"`
	BusiestWeekday       *time.Weekday    `json:"busiestWeekday,omitempty"`
	TopContributor       *ContributorStat `json:"topContributor,omitempty"`
	MostFrequentProject  *string          `json:"mostFrequentProject,omitempty"`
	CategoryDistribution []LabelCount     `json:"categoryDistribution"`
	MonthlyCounts        []LabelCount     `json:"monthlyCounts"`
	RevenuePeriod        *YearMonth       `json:"-"`
	PeriodRevenue        decimal.Decimal  `json:"periodRevenue"`
	CurrentMonthCount    int              `json:"currentMonthCount"`
}

// SummarizeWorkRecords computes the summary statistics of records. The result
// does not depend on the order of records.
func SummarizeWorkRecords(records []WorkRecordDetail, now time.Time, revenue *YearMonth) WorkSummary {
	summary := WorkSummary{
		TotalRecords:         len(records),
		CategoryDistribution: []LabelCount{},
		MonthlyCounts:        []LabelCount{},
		RevenuePeriod:        revenue,
		PeriodRevenue:        decimal.Zero,
	}
	if len(records) == 0 {
		return summary
	}

	var weekdayCounts [8]int
	quantities := map[string]int64{}
	usernames := map[string]string{}
	projectCounts := map[string]int{}
	categoryCounts := map[string]int{}
	monthCounts := map[string]int{}
	current := YearMonth{Year: now.Year(), Month: now.Month()}

	for _, r := range records {
		summary.TotalQuantity += int64(r.Quantity)
		weekdayCounts[ISOWeekday(r.Date)]++
		if r.UserID != nil {
			quantities[*r.UserID] += int64(r.Quantity)
			if r.Username != nil {
				usernames[*r.UserID] = *r.Username
			}
		}
		projectCounts[r.ProjectName]++
		label := UncategorizedLabel
		if r.CategoryName != nil {
			label = *r.CategoryName
		}
		categoryCounts[label]++
		monthCounts[YearMonth{Year: r.Date.Year(), Month: r.Date.Month()}.String()]++
		if revenue != nil && revenue.Contains(r.Date) {
			summary.PeriodRevenue = summary.PeriodRevenue.Add(r.Amount())
		}
		if current.Contains(r.Date) {
			summary.CurrentMonthCount++
		}
	}

	best := 0
	for iso := 1; iso <= 7; iso++ {
		if weekdayCounts[iso] > weekdayCounts[best] {
			best = iso
		}
	}
	if best != 0 {
		wd := time.Weekday(best % 7)
		summary.BusiestWeekday = &wd
	}

	for id, qty := range quantities {
		top := summary.TopContributor
		if top == nil || qty > top.TotalQuantity || (qty == top.TotalQuantity && id < top.PrincipalID) {
			summary.TopContributor = &ContributorStat{PrincipalID: id, Username: usernames[id], TotalQuantity: qty}
		}
	}

	var frequent string
	frequentCount := 0
	for name, count := range projectCounts {
		if count > frequentCount || (count == frequentCount && name < frequent) {
			frequent, frequentCount = name, count
		}
	}
	summary.MostFrequentProject = &frequent

	summary.CategoryDistribution = sortedCounts(categoryCounts, func(a, b LabelCount) bool {
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Label < b.Label
	})
	summary.MonthlyCounts = sortedCounts(monthCounts, func(a, b LabelCount) bool {
		return a.Label < b.Label
	})
	return summary
}

func sortedCounts(counts map[string]int, less func(a, b LabelCount) bool) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// ProjectStat is a per-project activity line of a principal report.
type ProjectStat struct {
	ProjectID     string `json:"projectID"`
	ProjectName   string `json:"projectName"`
	TotalEntries  int    `json:"totalEntries"`
	TotalQuantity int64  `json:"totalQuantity"`
}

// PrincipalReport summarises the activity of one principal.
type PrincipalReport struct {
	Principal            Principal          `json:"principal"`
	CreatedByUsername    *string            `json:"createdByUsername,omitempty"`
	TotalWorkEntries     int                `json:"totalWorkEntries"`
	TotalQuantity        int64              `json:"totalQuantity"`
	ProjectsCreatedCount int                `json:"projectsCreatedCount"`
	ProjectsManagedCount int                `json:"projectsManagedCount"`
	ProjectStatistics    []ProjectStat      `json:"projectStatistics"`
	RecentWorkEntries    []WorkRecordDetail `json:"recentWorkEntries"`
}

// Dashboard is the manager overview over a filtered, scoped record set.
type Dashboard struct {
	Summary             WorkSummary     `json:"summary"`
	TotalProjects       int             `json:"totalProjects"`
	TotalTeamMembers    int             `json:"totalTeamMembers"`
	TotalInvoicedAmount decimal.Decimal `json:"totalInvoicedAmount"`
}

// WorkAggregate is one page of scoped, filtered records plus the summary of the whole set.
type WorkAggregate struct {
	Records       []WorkRecordDetail `json:"records"`
	NextPageToken string             `json:"nextPageToken,omitempty"`
	Summary       WorkSummary        `json:"summary"`
}
