package storage

import "time"

type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Date             Date      `json:"date"`
	EndDate          *Date     `json:"end_date,omitempty"`
	Category         string    `json:"category"`
	Participants     []string  `json:"participants"`
	Description      string    `json:"description"`
	NotifyDaysBefore *int      `json:"notify_days_before,omitempty"`
	Author           string    `json:"author"`
	CreatedAt        time.Time `json:"created_at"`
}

// LastDay: последний день события (для многодневных: end_date).
func (e Event) LastDay() Date {
	if e.EndDate != nil && e.EndDate.After(e.Date) {
		return *e.EndDate
	}
	return e.Date
}

// Covers сообщает, проходит ли событие в указанный день.
func (e Event) Covers(d Date) bool {
	return d.Between(e.Date, e.LastDay())
}

type EventForm struct {
	Title            string   `json:"title" validate:"required,notblank,max=200"`
	Date             Date     `json:"date" validate:"required,date"`
	EndDate          *Date    `json:"end_date" validate:"omitempty,date"`
	Category         string   `json:"category" validate:"max=50"`
	Participants     []string `json:"participants"`
	Description      string   `json:"description" validate:"max=5000"`
	NotifyDaysBefore *int     `json:"notify_days_before" validate:"omitempty,min=0,max=60"`
}

type Employee struct {
	Name       string   `json:"name" yaml:"name" validate:"required,notblank"`
	Attributes []string `json:"attributes" yaml:"attributes"`
}

type Shift struct {
	Date     Date   `json:"date" validate:"required,date"`
	Employee string `json:"employee" validate:"required,notblank"`
}

type AttributeQuota struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"` // 0: без ограничения
}

type EventStaffing struct {
	MinStaff     int    `json:"min_staff" yaml:"min_staff"`
	Attribute    string `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	AttributeMin int    `json:"attribute_min,omitempty" yaml:"attribute_min,omitempty"`
}

type ShiftRules struct {
	MaxConsecutiveDays int                       `json:"max_consecutive_days" yaml:"max_consecutive_days" validate:"min=0"`
	MinStaffPerDay     int                       `json:"min_staff_per_day" yaml:"min_staff_per_day" validate:"min=0"`
	ClosedWeekdays     []time.Weekday            `json:"closed_weekdays" yaml:"closed_weekdays" validate:"dive,weekday"`
	ForbiddenPairs     [][]string                `json:"forbidden_pairs" yaml:"forbidden_pairs" validate:"dive,len=2,dive,required"`
	RequiredPairs      [][]string                `json:"required_pairs" yaml:"required_pairs" validate:"dive,len=2,dive,required"`
	AttributeQuotas    map[string]AttributeQuota `json:"attribute_quotas" yaml:"attribute_quotas"`
	EventStaffing      map[string]EventStaffing  `json:"event_staffing" yaml:"event_staffing"`
}

type Violation struct {
	Date      Date     `json:"date"`
	Rule      string   `json:"rule"`
	Employees []string `json:"employees,omitempty"`
	Message   string   `json:"message"`
}

type ShiftsUpdate struct {
	From   Date    `json:"from" validate:"required,date"`
	To     Date    `json:"to" validate:"required,date"`
	Shifts []Shift `json:"shifts" validate:"dive"`
}
