package filter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

func rec(fields map[string]string) types.Record {
	return types.Record{Fields: fields}
}

func recWithDate(mr string, date time.Time) types.Record {
	return types.Record{
		Fields:         map[string]string{types.ColMR: mr},
		POReleasedDate: &date,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApply_ZeroCriteriaKeepsEverything(t *testing.T) {
	records := []types.Record{
		rec(map[string]string{types.ColMR: "MR-1"}),
		rec(map[string]string{types.ColMR: "MR-2"}),
	}

	got := Apply(records, types.Criteria{})
	assert.Equal(t, records, got)
}

func TestApply_SubstringIsCaseInsensitive(t *testing.T) {
	records := []types.Record{
		rec(map[string]string{types.ColMR: "MR-ALPHA-01"}),
		rec(map[string]string{types.ColMR: "MR-beta-02"}),
	}

	got := Apply(records, types.Criteria{MR: "alpha"})
	require.Len(t, got, 1)
	assert.Equal(t, "MR-ALPHA-01", got[0].Field(types.ColMR))
}

func TestApply_AbsentFieldNeverMatches(t *testing.T) {
	records := []types.Record{
		rec(map[string]string{types.ColMR: ""}),
		rec(map[string]string{}),
		rec(map[string]string{types.ColMR: "MR-7"}),
	}

	got := Apply(records, types.Criteria{MR: "MR"})
	require.Len(t, got, 1)
	assert.Equal(t, "MR-7", got[0].Field(types.ColMR))
}

func TestApply_OptionsCombineWithAnd(t *testing.T) {
	records := []types.Record{
		rec(map[string]string{types.ColMR: "MR-1", types.ColNetworkName: "North Ring"}),
		rec(map[string]string{types.ColMR: "MR-1", types.ColNetworkName: "South Ring"}),
		rec(map[string]string{types.ColMR: "MR-2", types.ColNetworkName: "North Ring"}),
	}

	got := Apply(records, types.Criteria{MR: "MR-1", NetworkName: "north"})
	require.Len(t, got, 1)
	assert.Equal(t, "North Ring", got[0].Field(types.ColNetworkName))
}

// Keywords combine with OR across the Short Text column: one hit keeps the
// row.
func TestApply_KeywordsMatchAnyOne(t *testing.T) {
	records := []types.Record{
		rec(map[string]string{types.ColShortText: "Remote Antenna Unit"}),
		rec(map[string]string{types.ColShortText: "Power Cable"}),
		rec(map[string]string{types.ColShortText: "Mounting Bracket"}),
	}

	got := Apply(records, types.Criteria{ShortTextKeywords: "antenna cable"})
	require.Len(t, got, 2)
	assert.Equal(t, "Remote Antenna Unit", got[0].Field(types.ColShortText))
	assert.Equal(t, "Power Cable", got[1].Field(types.ColShortText))
}

func TestApply_DateRangeInclusive(t *testing.T) {
	records := []types.Record{
		recWithDate("before", day(2023, 12, 31)),
		recWithDate("on-from", day(2024, 1, 1)),
		recWithDate("inside", day(2024, 3, 15)),
		recWithDate("on-to", day(2024, 6, 30)),
		recWithDate("after", day(2024, 7, 1)),
	}

	from := day(2024, 1, 1)
	to := day(2024, 6, 30)
	got := Apply(records, types.Criteria{DateFrom: &from, DateTo: &to})

	require.Len(t, got, 3)
	assert.Equal(t, "on-from", got[0].Field(types.ColMR))
	assert.Equal(t, "inside", got[1].Field(types.ColMR))
	assert.Equal(t, "on-to", got[2].Field(types.ColMR))
}

func TestApply_AbsentDateExcludedOnceRangeActive(t *testing.T) {
	noDate := rec(map[string]string{types.ColMR: "undated"})
	dated := recWithDate("dated", day(2024, 3, 15))
	records := []types.Record{noDate, dated}

	// Without bounds, undated rows survive.
	assert.Len(t, Apply(records, types.Criteria{}), 2)

	// Either bound alone excludes them.
	from := day(2024, 1, 1)
	got := Apply(records, types.Criteria{DateFrom: &from})
	require.Len(t, got, 1)
	assert.Equal(t, "dated", got[0].Field(types.ColMR))

	to := day(2024, 12, 31)
	got = Apply(records, types.Criteria{DateTo: &to})
	require.Len(t, got, 1)
	assert.Equal(t, "dated", got[0].Field(types.ColMR))
}

func TestApply_PreservesOrderAndIsIdempotent(t *testing.T) {
	records := []types.Record{
		rec(map[string]string{types.ColMR: "MR-3"}),
		rec(map[string]string{types.ColMR: "skip"}),
		rec(map[string]string{types.ColMR: "MR-1"}),
		rec(map[string]string{types.ColMR: "MR-2"}),
	}
	criteria := types.Criteria{MR: "MR-"}

	once := Apply(records, criteria)
	require.Len(t, once, 3)
	assert.Equal(t, "MR-3", once[0].Field(types.ColMR))
	assert.Equal(t, "MR-1", once[1].Field(types.ColMR))
	assert.Equal(t, "MR-2", once[2].Field(types.ColMR))

	twice := Apply(once, criteria)
	assert.Equal(t, once, twice)
}

func TestMatchKeywords(t *testing.T) {
	keywords := Keywords("antenna CABLE bracket")
	require.Len(t, keywords, 3)

	matched := MatchKeywords("Remote Antenna Unit with power cable", keywords)
	assert.Equal(t, []string{"antenna", "CABLE"}, matched)

	assert.Nil(t, MatchKeywords("", keywords))
	assert.Nil(t, MatchKeywords("anything", nil))
}

func TestLoadCriteriaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "criteria.yaml")
	doc := `mr: "MR-10"
network_name: "north"
short_text_keywords: "antenna cable"
date_from: "2024-01-01"
date_to: "2024-06-30"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	c, err := LoadCriteriaFile(path)
	require.NoError(t, err)

	assert.Equal(t, "MR-10", c.MR)
	assert.Equal(t, "north", c.NetworkName)
	assert.Equal(t, "antenna cable", c.ShortTextKeywords)
	require.NotNil(t, c.DateFrom)
	require.NotNil(t, c.DateTo)
	assert.Equal(t, day(2024, 1, 1), *c.DateFrom)
	assert.Equal(t, day(2024, 6, 30), *c.DateTo)
}

func TestLoadCriteriaFile_BadDateIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "criteria.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`date_from: "not a date"`), 0644))

	_, err := LoadCriteriaFile(path)
	assert.Error(t, err)
}
