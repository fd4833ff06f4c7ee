package storage

import "time"

type Bravissimo struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Target    string    `json:"target"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type NewBravissimo struct {
	Target string `json:"target" validate:"required,notblank"`
	Text   string `json:"text" validate:"required,notblank,max=1000"`
}
