package calendario

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famigliapp/internal/storage"
)

// 2026-03-02: понедельник, 2026-03-08: воскресенье
var roster = []storage.Employee{
	{Name: "Anna", Attributes: []string{"senior"}},
	{Name: "Luca", Attributes: []string{"driver"}},
	{Name: "Marco", Attributes: []string{"driver"}},
	{Name: "Sofia"},
}

func shifts(date string, names ...string) []storage.Shift {
	out := make([]storage.Shift, 0, len(names))
	for _, n := range names {
		out = append(out, storage.Shift{Date: storage.Date(date), Employee: n})
	}
	return out
}

func rulesOf(v []storage.Violation) []string {
	out := make([]string, 0, len(v))
	for _, x := range v {
		out = append(out, string(x.Date)+" "+x.Rule)
	}
	return out
}

func TestValidate_EmptyRulesNoViolations(t *testing.T) {
	v := Validate(storage.ShiftRules{}, roster, shifts("2026-03-02", "Anna"), nil, "2026-03-02", "2026-03-08")
	assert.Empty(t, v)
	assert.NotNil(t, v)
}

func TestValidate_UnknownEmployee(t *testing.T) {
	v := Validate(storage.ShiftRules{}, roster, shifts("2026-03-02", "Anna", "Zio"), nil, "2026-03-02", "2026-03-02")

	require.Len(t, v, 1)
	assert.Equal(t, RuleUnknownEmployee, v[0].Rule)
	assert.Equal(t, []string{"Zio"}, v[0].Employees)
}

func TestValidate_MinStaff(t *testing.T) {
	rules := storage.ShiftRules{MinStaffPerDay: 2, ClosedWeekdays: []time.Weekday{time.Sunday}}

	var all []storage.Shift
	all = append(all, shifts("2026-03-07", "Anna", "Anna")...) // дубликат считается один раз
	all = append(all, shifts("2026-03-06", "Anna", "Luca")...)

	v := Validate(rules, roster, all, nil, "2026-03-06", "2026-03-08")

	// воскресенье 08 закрыто
	assert.Equal(t, []string{"2026-03-07 min_staff"}, rulesOf(v))
	assert.Equal(t, []string{"Anna"}, v[0].Employees)
}

func TestValidate_MaxConsecutiveReportedOncePerRun(t *testing.T) {
	rules := storage.ShiftRules{MaxConsecutiveDays: 2}

	var all []storage.Shift
	for _, d := range []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-07", "2026-03-08", "2026-03-09"} {
		all = append(all, shifts(d, "Anna")...)
	}

	v := Validate(rules, roster, all, nil, "2026-03-02", "2026-03-09")

	assert.Equal(t, []string{"2026-03-04 max_consecutive", "2026-03-09 max_consecutive"}, rulesOf(v))
	assert.Equal(t, []string{"Anna"}, v[0].Employees)
}

func TestValidate_MaxConsecutiveCountsOnlyInsideRange(t *testing.T) {
	rules := storage.ShiftRules{MaxConsecutiveDays: 2}

	var all []storage.Shift
	for _, d := range []string{"2026-03-01", "2026-03-02", "2026-03-03"} {
		all = append(all, shifts(d, "Anna")...)
	}

	v := Validate(rules, roster, all, nil, "2026-03-02", "2026-03-03")
	assert.Empty(t, v)
}

func TestValidate_Pairs(t *testing.T) {
	rules := storage.ShiftRules{
		ForbiddenPairs: [][]string{{"Marco", "Luca"}},
		RequiredPairs:  [][]string{{"Anna", "Sofia"}},
	}

	var all []storage.Shift
	all = append(all, shifts("2026-03-02", "Marco", "Luca", "Anna", "Sofia")...)
	all = append(all, shifts("2026-03-03", "Sofia")...)

	v := Validate(rules, roster, all, nil, "2026-03-02", "2026-03-03")

	require.Equal(t, []string{"2026-03-02 forbidden_pair", "2026-03-03 required_pair"}, rulesOf(v))
	assert.Equal(t, []string{"Luca", "Marco"}, v[0].Employees)
	assert.Equal(t, "Sofia works without Anna", v[1].Message)
}

func TestValidate_AttributeQuota(t *testing.T) {
	rules := storage.ShiftRules{
		ClosedWeekdays: []time.Weekday{time.Sunday},
		AttributeQuotas: map[string]storage.AttributeQuota{
			"senior": {Min: 1},
			"driver": {Max: 1},
		},
	}

	var all []storage.Shift
	all = append(all, shifts("2026-03-02", "Anna", "Luca")...)
	all = append(all, shifts("2026-03-03", "Anna", "Luca", "Marco")...)
	all = append(all, shifts("2026-03-04", "Sofia")...)
	all = append(all, shifts("2026-03-08", "Luca", "Marco")...) // воскресенье

	v := Validate(rules, roster, all, nil, "2026-03-02", "2026-03-08")

	got := rulesOf(v)
	assert.Contains(t, got, "2026-03-03 attribute_quota")
	assert.Contains(t, got, "2026-03-04 attribute_quota")
	assert.NotContains(t, got, "2026-03-02 attribute_quota")
	assert.NotContains(t, got, "2026-03-08 attribute_quota")
	// дни без назначений тоже открыты: 05, 06, 07 без senior
	assert.Contains(t, got, "2026-03-05 attribute_quota")
}

func TestValidate_EventStaffingMultiDay(t *testing.T) {
	end := storage.Date("2026-03-03")
	rules := storage.ShiftRules{
		EventStaffing: map[string]storage.EventStaffing{
			"mercato": {MinStaff: 2, Attribute: "driver", AttributeMin: 1},
		},
	}
	events := []storage.Event{
		{Title: "Mercato", Date: "2026-03-02", EndDate: &end, Category: "mercato"},
		{Title: "Cena", Date: "2026-03-02", Category: "famiglia"},
	}

	var all []storage.Shift
	all = append(all, shifts("2026-03-02", "Anna", "Luca")...)
	all = append(all, shifts("2026-03-03", "Anna")...)
	all = append(all, shifts("2026-03-04", "Anna")...)

	v := Validate(rules, roster, all, events, "2026-03-02", "2026-03-04")

	assert.Equal(t, []string{"2026-03-03 event_staffing", "2026-03-03 event_staffing"}, rulesOf(v))
}

func TestValidate_SortedAndInsideRange(t *testing.T) {
	rules := storage.ShiftRules{MinStaffPerDay: 1, ForbiddenPairs: [][]string{{"Marco", "Luca"}}}

	var all []storage.Shift
	all = append(all, shifts("2026-03-03", "Marco", "Luca", "Zio")...)
	all = append(all, shifts("2026-03-10", "Marco", "Luca")...) // вне периода

	v := Validate(rules, roster, all, nil, "2026-03-02", "2026-03-03")

	assert.Equal(t, []string{
		"2026-03-02 min_staff",
		"2026-03-03 forbidden_pair",
		"2026-03-03 unknown_employee",
	}, rulesOf(v))
}

func TestBuildDays_InvertedRange(t *testing.T) {
	assert.Nil(t, BuildDays(storage.ShiftRules{}, roster, nil, nil, "2026-03-05", "2026-03-01"))
}
