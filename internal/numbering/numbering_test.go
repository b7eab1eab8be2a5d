package numbering

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	lastID  uint
	counts  map[uint]int64 // keyed by project, 0 for any
	queries []CountQuery
	err     error
}

func (f *fakeCounter) LastInvoiceID(context.Context) (uint, error) {
	return f.lastID, f.err
}

func (f *fakeCounter) CountInvoices(_ context.Context, q CountQuery) (int64, error) {
	f.queries = append(f.queries, q)
	return f.counts[q.ProjectID], f.err
}

var fixed = time.Date(2024, time.March, 7, 15, 30, 0, 0, time.UTC)

func newGen(c Counter) *Generator {
	return NewGenerator(c, WithClock(func() time.Time { return fixed }), WithLanguage("en"))
}

func TestApplyDefaultFormat(t *testing.T) {
	got, err := newGen(&fakeCounter{lastID: 4}).Apply(context.Background(), DefaultFormat, 0)
	require.NoError(t, err)
	assert.Equal(t, "#INV/20240307-05", got)
}

func TestApplyAllTokens(t *testing.T) {
	c := &fakeCounter{lastID: 119, counts: map[uint]int64{0: 8, 3: 1}}
	got, err := newGen(c).Apply(context.Background(),
		"%%YEARLY_ID%%, %%MONTHLY_ID%%, %%DAILY_ID%%, %%ID%%, %%YEAR%%, %%MONTH%%, %%DAY%%", 3)
	require.NoError(t, err)
	assert.Equal(t, "0009, 009, 09, 120, 2024, 03, 07", got)

	got, err = newGen(c).Apply(context.Background(), "{{monthly_project_id}}/{{yearly_project_id}}", 3)
	require.NoError(t, err)
	assert.Equal(t, "002/0002", got)
}

func TestApplyMonthNames(t *testing.T) {
	got, err := newGen(&fakeCounter{}).Apply(context.Background(), "{{month_name}}-{{month_short_name}}-{{year}}", 0)
	require.NoError(t, err)
	assert.Equal(t, "March-Mar-2024", got)
}

func TestApplyRepeatedTokenSameValue(t *testing.T) {
	c := &fakeCounter{lastID: 1}
	got, err := newGen(c).Apply(context.Background(), "%%ID%%-{{id}}", 0)
	require.NoError(t, err)
	assert.Equal(t, "02-02", got)
}

func TestApplyOrderIndependent(t *testing.T) {
	c := &fakeCounter{lastID: 9}
	a, err := newGen(c).Apply(context.Background(), "%%DAY%%%%ID%%", 0)
	require.NoError(t, err)
	b, err := newGen(c).Apply(context.Background(), "%%ID%%%%DAY%%", 0)
	require.NoError(t, err)
	assert.Equal(t, "0710", a)
	assert.Equal(t, "1007", b)
}

func TestApplyCountRanges(t *testing.T) {
	c := &fakeCounter{counts: map[uint]int64{}}
	_, err := newGen(c).Apply(context.Background(), "%%DAILY_ID%%%%MONTHLY_PROJECT_ID%%", 5)
	require.NoError(t, err)
	require.Len(t, c.queries, 2)

	assert.Equal(t, CountQuery{
		From: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
	}, c.queries[0])
	assert.Equal(t, CountQuery{
		From:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		ProjectID: 5,
	}, c.queries[1])
}

func TestApplyNoTokensNoQueries(t *testing.T) {
	c := &fakeCounter{err: errors.New("boom")}
	got, err := newGen(c).Apply(context.Background(), "FIXED-1", 0)
	require.NoError(t, err)
	assert.Equal(t, "FIXED-1", got)
}

func TestApplyCounterError(t *testing.T) {
	boom := errors.New("boom")
	_, err := newGen(&fakeCounter{err: boom}).Apply(context.Background(), "%%ID%%", 0)
	assert.ErrorIs(t, err, boom)
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
	}{
		{PeriodToday, date(2024, 3, 7), date(2024, 3, 8)},
		{PeriodYesterday, date(2024, 3, 6), date(2024, 3, 7)},
		{PeriodThisWeek, date(2024, 3, 4), date(2024, 3, 11)},
		{PeriodLastWeek, date(2024, 2, 26), date(2024, 3, 4)},
		{PeriodThisMonth, date(2024, 3, 1), date(2024, 4, 1)},
		{PeriodLastMonth, date(2024, 2, 1), date(2024, 3, 1)},
		{PeriodThisYear, date(2024, 1, 1), date(2025, 1, 1)},
		{PeriodLastYear, date(2023, 1, 1), date(2024, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := ParsePeriod(tt.name, fixed)
			require.True(t, ok)
			assert.Equal(t, tt.from, r.From)
			assert.Equal(t, tt.to, r.To)
		})
	}
	_, ok := ParsePeriod("fortnight", fixed)
	assert.False(t, ok)
}

func TestRangeContains(t *testing.T) {
	r := Day(fixed)
	assert.True(t, r.Contains(date(2024, 3, 7)))
	assert.False(t, r.Contains(date(2024, 3, 8)))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
