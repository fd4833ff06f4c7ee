package storage

import "context"

// Backend хранит коллекции целиком: JSON-массив записей (или один документ, как правила смен).
type Backend interface {
	Load(ctx context.Context, collection string, dst any) error
	Save(ctx context.Context, collection string, v any) error
}

const (
	CollectionUsers         = "users"
	CollectionBravissimo    = "bravissimo"
	CollectionCorso         = "corso"
	CollectionEvents        = "calendario_events"
	CollectionEmployees     = "calendario_employees"
	CollectionShifts        = "calendario_shifts"
	CollectionShiftRules    = "calendario_rules"
	CollectionResoconto     = "resoconto"
	CollectionKouza         = "kouza"
	CollectionKouzaFeedback = "kouza_feedback"
	CollectionQuests        = "quests"
	CollectionPolls         = "polls"
	CollectionPoints        = "points"
	CollectionPointsHistory = "points_history"
)
