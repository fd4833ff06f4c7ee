package storage

import "time"

const (
	PollActive    = "active"
	PollCompleted = "completed"
)

type Poll struct {
	ID        string         `json:"id"`
	Question  string         `json:"question"`
	Options   []string       `json:"options"`
	Votes     map[string]int `json:"votes"`
	Status    string         `json:"status"`
	Deadline  *Date          `json:"deadline,omitempty"`
	Author    string         `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
	ClosedAt  *time.Time     `json:"closed_at,omitempty"`
}

// Results: количество голосов по каждому варианту.
func (p Poll) Results() []int {
	res := make([]int, len(p.Options))
	for _, idx := range p.Votes {
		if idx >= 0 && idx < len(res) {
			res[idx]++
		}
	}
	return res
}

func (p Poll) Expired(today Date) bool {
	return p.Deadline != nil && p.Deadline.Before(today)
}

type PollForm struct {
	Question string   `json:"question" validate:"required,notblank,max=300"`
	Options  []string `json:"options" validate:"min=2,max=10,unique,dive,required,notblank,max=200"`
	Deadline *Date    `json:"deadline" validate:"omitempty,date"`
}
