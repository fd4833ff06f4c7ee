package storage

import "time"

type Resoconto struct {
	ID        string     `json:"id"`
	Author    string     `json:"author"`
	Date      Date       `json:"date"`
	Body      string     `json:"body"`
	Feedback  []Feedback `json:"feedback"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Feedback struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type ResocontoForm struct {
	Date Date   `json:"date" validate:"required,date"`
	Body string `json:"body" validate:"required,notblank,max=10000"`
}

type ResocontoFilter struct {
	Author string
	From   Date
	To     Date
}
