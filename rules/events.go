package rules

// EventKind names something that happened in a game.
type EventKind string

// Events emitted by the engine.
const (
	EventReset        EventKind = "reset"
	EventTick         EventKind = "tick"
	EventFoodEaten    EventKind = "food-eaten"
	EventBonusSpawned EventKind = "bonus-spawned"
	EventBonusEaten   EventKind = "bonus-eaten"
	EventBonusExpired EventKind = "bonus-expired"
	EventSpeedUp      EventKind = "speed-up"
	EventGameOver     EventKind = "game-over"
	EventHighScore    EventKind = "high-score"
)

// Event is passed to listeners registered with WithListener.
type Event struct {
	Kind   EventKind
	GameID string
	Turn   int64
	Score  int
	Death  *Death
}
