package storage

import "time"

type Points struct {
	Username string `json:"username"`
	A        int    `json:"a"`
	O        int    `json:"o"`
	U        int    `json:"u"`
}

func (p Points) Total() int {
	return p.A + p.O + p.U
}

type PointsHistory struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	DeltaA   int       `json:"delta_a"`
	DeltaO   int       `json:"delta_o"`
	DeltaU   int       `json:"delta_u"`
	Reason   string    `json:"reason"`
	By       string    `json:"by"`
	At       time.Time `json:"at"`
}

type PointsDelta struct {
	DeltaA int    `json:"delta_a"`
	DeltaO int    `json:"delta_o"`
	DeltaU int    `json:"delta_u"`
	Reason string `json:"reason" validate:"required,notblank,max=300"`
}

type RankedPoints struct {
	Rank int `json:"rank"`
	Points
	Total int `json:"total"`
}
