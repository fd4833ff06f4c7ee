package storage

import "time"

type Kouza struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	HeldOn       Date      `json:"held_on"`
	DeadlineDays int       `json:"deadline_days"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"created_at"`
}

// Deadline: последний день, когда ещё принимается отзыв.
func (k Kouza) Deadline() Date {
	return k.HeldOn.AddDays(k.DeadlineDays)
}

// Open сообщает, принимается ли отзыв в день today.
func (k Kouza) Open(today Date) bool {
	return today.Between(k.HeldOn, k.Deadline())
}

type KouzaFeedback struct {
	ID          string    `json:"id"`
	KouzaID     string    `json:"kouza_id"`
	Author      string    `json:"author"`
	Body        string    `json:"body"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type KouzaForm struct {
	Title        string `json:"title" validate:"required,notblank,max=200"`
	HeldOn       Date   `json:"held_on" validate:"required,date"`
	DeadlineDays *int   `json:"deadline_days" validate:"omitempty,min=0,max=90"`
}

type KouzaFeedbackForm struct {
	Body string `json:"body" validate:"required,notblank,max=5000"`
}
