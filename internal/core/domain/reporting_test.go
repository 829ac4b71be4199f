package domain_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

func record(id, user, project, category string, rate string, qty int, date time.Time) domain.WorkRecordDetail {
	d := domain.WorkRecordDetail{
		WorkRecord: domain.WorkRecord{
			RecordID:   id,
			ProjectID:  "pid-" + project,
			FolderName: "folder-" + id,
			Quantity:   qty,
			Date:       date,
		},
		ProjectName: project,
	}
	if user != "" {
		d.UserID = stringPtr(user)
		d.Username = stringPtr("name-" + user)
	}
	if category != "" {
		r := decimal.RequireFromString(rate)
		d.CategoryID = stringPtr("cid-" + category)
		d.CategoryName = stringPtr(category)
		d.CategoryRate = &r
	}
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestSummarizeWorkRecords_Empty(t *testing.T) {
	s := domain.SummarizeWorkRecords(nil, day(2024, 1, 1), nil)
	assert.Zero(t, s.TotalRecords)
	assert.Nil(t, s.BusiestWeekday)
	assert.Nil(t, s.TopContributor)
	assert.Nil(t, s.MostFrequentProject)
	assert.Empty(t, s.CategoryDistribution)
	assert.True(t, s.PeriodRevenue.IsZero())
}

func TestSummarizeWorkRecords_Statistics(t *testing.T) {
	records := []domain.WorkRecordDetail{
		record("r1", "u1", "Alpha", "Edit", "2.50", 10, day(2024, 1, 1)),  // Monday
		record("r2", "u2", "Alpha", "Edit", "2.50", 5, day(2024, 1, 2)),   // Tuesday
		record("r3", "u2", "Beta", "", "", 5, day(2024, 2, 6)),            // Tuesday
		record("r4", "u3", "Beta", "Retouch", "0.10", 3, day(2024, 2, 5)), // Monday
		record("r5", "", "Beta", "", "", 0, day(2024, 2, 7)),              // open slot, Wednesday
	}

	revenue := domain.YearMonth{Year: 2024, Month: time.January}
	s := domain.SummarizeWorkRecords(records, day(2024, 2, 20), &revenue)

	assert.Equal(t, 5, s.TotalRecords)
	assert.EqualValues(t, 23, s.TotalQuantity)

	require.NotNil(t, s.BusiestWeekday)
	assert.Equal(t, time.Monday, *s.BusiestWeekday, "Monday and Tuesday tie, lowest ISO weekday wins")

	require.NotNil(t, s.TopContributor)
	assert.Equal(t, "u1", s.TopContributor.PrincipalID, "u1 and u2 tie on 10, lexically smaller id wins")
	assert.Equal(t, "name-u1", s.TopContributor.Username)

	require.NotNil(t, s.MostFrequentProject)
	assert.Equal(t, "Beta", *s.MostFrequentProject)

	assert.Equal(t, []domain.LabelCount{
		{Label: "Edit", Count: 2},
		{Label: "Uncategorized", Count: 2},
		{Label: "Retouch", Count: 1},
	}, s.CategoryDistribution)
	assert.Equal(t, []domain.LabelCount{{Label: "2024-01", Count: 2}, {Label: "2024-02", Count: 3}}, s.MonthlyCounts)
	assert.True(t, decimal.RequireFromString("37.50").Equal(s.PeriodRevenue), "got %s", s.PeriodRevenue)
	assert.Equal(t, 3, s.CurrentMonthCount)
}

func TestSummarizeWorkRecords_FixedPointRevenue(t *testing.T) {
	records := []domain.WorkRecordDetail{
		record("r1", "u1", "Alpha", "Tiny", "0.10", 3, day(2024, 3, 4)),
		record("r2", "u1", "Alpha", "Tiny", "0.10", 3, day(2024, 3, 5)),
		record("r3", "u1", "Alpha", "Tiny", "0.10", 3, day(2024, 3, 6)),
	}
	revenue := domain.YearMonth{Year: 2024, Month: time.March}
	s := domain.SummarizeWorkRecords(records, day(2024, 3, 31), &revenue)
	assert.Equal(t, "0.9", s.PeriodRevenue.String())
}

func TestSummarizeWorkRecords_OrderIndependent(t *testing.T) {
	var records []domain.WorkRecordDetail
	users := []string{"u1", "u2", "u3", ""}
	cats := []string{"Edit", "Retouch", ""}
	for i := 0; i < 40; i++ {
		records = append(records, record(
			string(rune('a'+i%26))+string(rune('a'+i/26)),
			users[i%len(users)],
			[]string{"Alpha", "Beta"}[i%2],
			cats[i%len(cats)],
			"1.25",
			i%7,
			day(2024, time.Month(1+i%3), 1+i%27),
		))
	}
	now := day(2024, 2, 15)
	revenue := domain.YearMonth{Year: 2024, Month: time.February}
	want := domain.SummarizeWorkRecords(records, now, &revenue)

	shuffled := append([]domain.WorkRecordDetail(nil), records...)
	rnd := rand.New(rand.NewSource(7))
	rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	got := domain.SummarizeWorkRecords(shuffled, now, &revenue)

	assert.Equal(t, want.TotalQuantity, got.TotalQuantity)
	assert.Equal(t, want.BusiestWeekday, got.BusiestWeekday)
	assert.Equal(t, want.TopContributor, got.TopContributor)
	assert.Equal(t, want.MostFrequentProject, got.MostFrequentProject)
	assert.Equal(t, want.CategoryDistribution, got.CategoryDistribution)
	assert.Equal(t, want.MonthlyCounts, got.MonthlyCounts)
	assert.True(t, want.PeriodRevenue.Equal(got.PeriodRevenue))
}

func TestWorkFilter_OrderIndependent(t *testing.T) {
	records := []domain.WorkRecordDetail{
		record("r1", "u1", "Alpha", "Edit", "1", 1, day(2024, 1, 1)),
		record("r2", "u1", "Beta", "Edit", "1", 1, day(2024, 1, 10)),
		record("r3", "u2", "Alpha", "Retouch", "1", 1, day(2024, 1, 20)),
		record("r4", "u2", "Alpha", "", "", 1, day(2024, 2, 1)),
	}
	from, to := day(2024, 1, 5), day(2024, 1, 20)
	byProject := domain.WorkFilter{ProjectID: stringPtr("pid-Alpha")}
	byDate := domain.WorkFilter{From: &from, To: &to}

	apply := func(in []domain.WorkRecordDetail, f domain.WorkFilter) []domain.WorkRecordDetail {
		var out []domain.WorkRecordDetail
		for _, r := range in {
			if f.Matches(r) {
				out = append(out, r)
			}
		}
		return out
	}

	projectThenDate := apply(apply(records, byProject), byDate)
	dateThenProject := apply(apply(records, byDate), byProject)
	assert.Equal(t, projectThenDate, dateThenProject)
	require.Len(t, projectThenDate, 1)
	assert.Equal(t, "r3", projectThenDate[0].RecordID, "the end date is inclusive for the whole day")
}

func TestWorkFilter_Query(t *testing.T) {
	r := record("r1", "u1", "Alpha", "Color Edit", "1", 1, day(2024, 1, 1))
	assert.True(t, domain.WorkFilter{Query: "FOLDER-R"}.Matches(r))
	assert.True(t, domain.WorkFilter{Query: "color"}.Matches(r))
	assert.False(t, domain.WorkFilter{Query: "retouch"}.Matches(r))
	assert.True(t, domain.WorkFilter{ProjectName: stringPtr("alpha")}.Matches(r))
}

func TestWorkFilter_ProjectNameSubstring(t *testing.T) {
	r := record("r1", "u1", "Atlas Retouch", "Edit", "1", 1, day(2024, 1, 1))
	assert.True(t, domain.WorkFilter{ProjectName: stringPtr("retouch")}.Matches(r))
	assert.True(t, domain.WorkFilter{ProjectName: stringPtr("LAS RE")}.Matches(r))
	assert.False(t, domain.WorkFilter{ProjectName: stringPtr("Atlas Color")}.Matches(r))
}

func TestParseYearMonth(t *testing.T) {
	ym, err := domain.ParseYearMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, domain.YearMonth{Year: 2024, Month: time.March}, ym)
	assert.Equal(t, "2024-03", ym.String())

	_, err = domain.ParseYearMonth("2024/03")
	assert.Error(t, err)
}
