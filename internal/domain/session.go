package domain

import "fmt"

// State is the lifecycle state of a session.
type State string

const (
	StateNotStarted        State = "notStarted"
	StateSelectingCategory State = "selectingCategory"
	StatePlaying           State = "playing"
	StateRoundEnd          State = "roundEnd"
	StateGameOver          State = "gameOver"
)

// Mode tags a session as single or multi participant.
type Mode string

const (
	ModeSingle      Mode = "single"
	ModeMultiplayer Mode = "multiplayer"
)

// ParseMode maps the wire representation to a Mode.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeSingle, ModeMultiplayer:
		return Mode(raw), nil
	case "":
		return ModeSingle, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
}

// NoAnswer is the selection recorded when the round timer expires.
const NoAnswer = -1

// Snapshot is an immutable view of a session, handed to presentation layers.
type Snapshot struct {
	Revision      uint64            `json:"revision"`
	State         State             `json:"state"`
	Mode          Mode              `json:"mode"`
	Question      *Question         `json:"question,omitempty"`
	Selected      *int              `json:"selected,omitempty"`
	Score         int               `json:"score"`
	Streak        int               `json:"streak"`
	HighestStreak int               `json:"highestStreak"`
	TimeRemaining int               `json:"timeRemaining"`
	Position      int               `json:"position"`
	Total         int               `json:"total"`
	Progress      float64           `json:"progress"`
	Round         int               `json:"round"`
	Category      *Category         `json:"category,omitempty"`
	JoinCode      string            `json:"joinCode,omitempty"`
	ParticipantID string            `json:"participantId,omitempty"`
	Players       []Player          `json:"players,omitempty"`
	Statistics    StatisticsSummary `json:"statistics"`
}
