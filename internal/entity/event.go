package entity

type EventKind string

const (
	EventSelectTile       EventKind = "select_tile"
	EventTileRejected     EventKind = "tile_rejected"
	EventTileOccupied     EventKind = "tile_occupied"
	EventComputerThinking EventKind = "computer_thinking"
	EventWin              EventKind = "win"
	EventDraw             EventKind = "draw"
)

const (
	RejectOccupied   = "occupied"
	RejectOutOfRange = "out_of_range"
)

// Event is a semantic notification raised by the game controller.
// Formatting and localisation belong to the presentation layer.
type Event struct {
	Kind   EventKind  `json:"kind"`
	Mark   Cell       `json:"mark,omitempty"`
	Cell   int        `json:"cell"`
	Player PlayerKind `json:"player,omitempty"`
	Reason string     `json:"reason,omitempty"`
}
