package calendario

import (
	"fmt"
	"slices"
	"strings"

	"famigliapp/internal/storage"
)

const (
	RuleUnknownEmployee = "unknown_employee"
	RuleMaxConsecutive  = "max_consecutive"
	RuleMinStaff        = "min_staff"
	RuleForbiddenPair   = "forbidden_pair"
	RuleRequiredPair    = "required_pair"
	RuleAttributeQuota  = "attribute_quota"
	RuleEventStaffing   = "event_staffing"
)

// Day: признаки одного дня периода, по которым проверяются правила.
type Day struct {
	Date storage.Date
	// Open: день не входит в closed_weekdays
	Open bool
	// Staff: различные сотрудники, назначенные на день, по алфавиту
	Staff   []string
	Unknown []string
	// AttrStaff: сотрудники с данным атрибутом
	AttrStaff map[string][]string
	Events    []storage.Event
}

func (d Day) works(name string) bool {
	_, found := slices.BinarySearch(d.Staff, name)
	return found
}

// BuildDays раскладывает назначения и события по дням [from, to].
// Назначения вне периода игнорируются; повторное назначение одного человека на день учитывается один раз.
func BuildDays(rules storage.ShiftRules, employees []storage.Employee, shifts []storage.Shift, events []storage.Event, from, to storage.Date) []Day {
	if to.Before(from) {
		return nil
	}

	roster := make(map[string]storage.Employee, len(employees))
	for _, e := range employees {
		roster[e.Name] = e
	}

	byDate := make(map[storage.Date][]string)
	for _, sh := range shifts {
		if sh.Date.Between(from, to) && !slices.Contains(byDate[sh.Date], sh.Employee) {
			byDate[sh.Date] = append(byDate[sh.Date], sh.Employee)
		}
	}

	var days []Day
	for date := from; !date.After(to); date = date.AddDays(1) {
		day := Day{
			Date:      date,
			Open:      !slices.Contains(rules.ClosedWeekdays, date.Time().Weekday()),
			Staff:     slices.Sorted(slices.Values(byDate[date])),
			AttrStaff: make(map[string][]string),
		}

		for _, name := range day.Staff {
			emp, ok := roster[name]
			if !ok {
				day.Unknown = append(day.Unknown, name)
				continue
			}
			for _, attr := range emp.Attributes {
				day.AttrStaff[attr] = append(day.AttrStaff[attr], name)
			}
		}

		for _, ev := range events {
			if ev.Covers(date) {
				day.Events = append(day.Events, ev)
			}
		}

		days = append(days, day)
	}
	return days
}

// dayRule проверяет один день независимо от остальных.
type dayRule func(rules storage.ShiftRules, day Day) []storage.Violation

var dayRules = []dayRule{
	checkUnknownEmployees,
	checkMinStaff,
	checkForbiddenPairs,
	checkRequiredPairs,
	checkAttributeQuotas,
	checkEventStaffing,
}

// Validate проверяет расписание за [from, to] и возвращает нарушения,
// отсортированные по дате, правилу и сотрудникам.
func Validate(rules storage.ShiftRules, employees []storage.Employee, shifts []storage.Shift, events []storage.Event, from, to storage.Date) []storage.Violation {
	days := BuildDays(rules, employees, shifts, events, from, to)

	violations := make([]storage.Violation, 0)
	for _, day := range days {
		for _, rule := range dayRules {
			violations = append(violations, rule(rules, day)...)
		}
	}
	violations = append(violations, checkMaxConsecutive(rules, days)...)

	SortViolations(violations)
	return violations
}

func SortViolations(violations []storage.Violation) {
	slices.SortStableFunc(violations, func(a, b storage.Violation) int {
		if c := strings.Compare(string(a.Date), string(b.Date)); c != 0 {
			return c
		}
		if c := strings.Compare(a.Rule, b.Rule); c != 0 {
			return c
		}
		if c := slices.Compare(a.Employees, b.Employees); c != 0 {
			return c
		}
		return strings.Compare(a.Message, b.Message)
	})
}

func checkUnknownEmployees(_ storage.ShiftRules, day Day) []storage.Violation {
	var out []storage.Violation
	for _, name := range day.Unknown {
		out = append(out, storage.Violation{
			Date:      day.Date,
			Rule:      RuleUnknownEmployee,
			Employees: []string{name},
			Message:   fmt.Sprintf("%s is not in the employee list", name),
		})
	}
	return out
}

func checkMinStaff(rules storage.ShiftRules, day Day) []storage.Violation {
	if rules.MinStaffPerDay <= 0 || !day.Open || len(day.Staff) >= rules.MinStaffPerDay {
		return nil
	}
	return []storage.Violation{{
		Date:      day.Date,
		Rule:      RuleMinStaff,
		Employees: day.Staff,
		Message:   fmt.Sprintf("%d staff assigned, at least %d required", len(day.Staff), rules.MinStaffPerDay),
	}}
}

func checkForbiddenPairs(rules storage.ShiftRules, day Day) []storage.Violation {
	var out []storage.Violation
	for _, pair := range rules.ForbiddenPairs {
		if len(pair) != 2 {
			continue
		}
		if day.works(pair[0]) && day.works(pair[1]) {
			out = append(out, storage.Violation{
				Date:      day.Date,
				Rule:      RuleForbiddenPair,
				Employees: sortedPair(pair),
				Message:   fmt.Sprintf("%s and %s must not work on the same day", pair[0], pair[1]),
			})
		}
	}
	return out
}

func checkRequiredPairs(rules storage.ShiftRules, day Day) []storage.Violation {
	var out []storage.Violation
	for _, pair := range rules.RequiredPairs {
		if len(pair) != 2 {
			continue
		}
		a, b := day.works(pair[0]), day.works(pair[1])
		if a == b {
			continue
		}
		present, missing := pair[0], pair[1]
		if b {
			present, missing = pair[1], pair[0]
		}
		out = append(out, storage.Violation{
			Date:      day.Date,
			Rule:      RuleRequiredPair,
			Employees: sortedPair(pair),
			Message:   fmt.Sprintf("%s works without %s", present, missing),
		})
	}
	return out
}

func checkAttributeQuotas(rules storage.ShiftRules, day Day) []storage.Violation {
	if !day.Open {
		return nil
	}

	var out []storage.Violation
	for attr, quota := range rules.AttributeQuotas {
		staff := day.AttrStaff[attr]
		switch {
		case len(staff) < quota.Min:
			out = append(out, storage.Violation{
				Date:      day.Date,
				Rule:      RuleAttributeQuota,
				Employees: staff,
				Message:   fmt.Sprintf("%d staff with %q, at least %d required", len(staff), attr, quota.Min),
			})
		case quota.Max > 0 && len(staff) > quota.Max:
			out = append(out, storage.Violation{
				Date:      day.Date,
				Rule:      RuleAttributeQuota,
				Employees: staff,
				Message:   fmt.Sprintf("%d staff with %q, at most %d allowed", len(staff), attr, quota.Max),
			})
		}
	}
	return out
}

func checkEventStaffing(rules storage.ShiftRules, day Day) []storage.Violation {
	var out []storage.Violation
	for _, ev := range day.Events {
		req, ok := rules.EventStaffing[ev.Category]
		if !ok {
			continue
		}
		if len(day.Staff) < req.MinStaff {
			out = append(out, storage.Violation{
				Date:      day.Date,
				Rule:      RuleEventStaffing,
				Employees: day.Staff,
				Message:   fmt.Sprintf("event %q needs %d staff, %d assigned", ev.Title, req.MinStaff, len(day.Staff)),
			})
		}
		if req.Attribute != "" && len(day.AttrStaff[req.Attribute]) < req.AttributeMin {
			out = append(out, storage.Violation{
				Date:      day.Date,
				Rule:      RuleEventStaffing,
				Employees: day.AttrStaff[req.Attribute],
				Message: fmt.Sprintf("event %q needs %d staff with %q, %d assigned",
					ev.Title, req.AttributeMin, req.Attribute, len(day.AttrStaff[req.Attribute])),
			})
		}
	}
	return out
}

// checkMaxConsecutive сообщает о каждой серии один раз: в первый день сверх лимита.
func checkMaxConsecutive(rules storage.ShiftRules, days []Day) []storage.Violation {
	limit := rules.MaxConsecutiveDays
	if limit <= 0 {
		return nil
	}

	var out []storage.Violation
	run := make(map[string]int)
	for _, day := range days {
		for name := range run {
			if !day.works(name) {
				delete(run, name)
			}
		}
		for _, name := range day.Staff {
			run[name]++
			if run[name] == limit+1 {
				out = append(out, storage.Violation{
					Date:      day.Date,
					Rule:      RuleMaxConsecutive,
					Employees: []string{name},
					Message:   fmt.Sprintf("%s works %d consecutive days, at most %d allowed", name, limit+1, limit),
				})
			}
		}
	}
	return out
}

func sortedPair(pair []string) []string {
	return slices.Sorted(slices.Values(pair))
}
