package storage

import "time"

const (
	QuestOpen      = "open"
	QuestAccepted  = "accepted"
	QuestCompleted = "completed"
)

type Quest struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Reward      int        `json:"reward"`
	Author      string     `json:"author"`
	Status      string     `json:"status"`
	Assignee    string     `json:"assignee,omitempty"`
	DueOn       *Date      `json:"due_on,omitempty"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type QuestForm struct {
	Title  string `json:"title" validate:"required,notblank,max=200"`
	Body   string `json:"body" validate:"max=5000"`
	Reward int    `json:"reward" validate:"min=0,max=1000"`
	DueOn  *Date  `json:"due_on" validate:"omitempty,date"`
}
