package storage

import "time"

type Corso struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	StartsOn  Date      `json:"starts_on"`
	EndsOn    *Date     `json:"ends_on,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CorsoForm struct {
	Title    string `json:"title" validate:"required,notblank,max=200"`
	Body     string `json:"body" validate:"max=10000"`
	StartsOn Date   `json:"starts_on" validate:"required,date"`
	EndsOn   *Date  `json:"ends_on" validate:"omitempty,date"`
}
