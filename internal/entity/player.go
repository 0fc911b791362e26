package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

type PlayerKind string

const (
	HumanPlayer    PlayerKind = "human"
	ComputerPlayer PlayerKind = "computer"
)

const (
	// DifficultyRandom makes the computer pick a uniformly random empty cell.
	DifficultyRandom = 0
	// DifficultyPerfect searches every remaining ply of a 3x3 game.
	DifficultyPerfect = BoardSize
)

// Player is either a human or a computer with a search difficulty.
// Difficulty is ignored for humans.
type Player struct {
	Kind       PlayerKind `json:"kind"`
	Difficulty int        `json:"difficulty,omitempty"`
	Mark       Cell       `json:"mark,omitempty"`
}

func NewHuman() Player {
	return Player{Kind: HumanPlayer}
}

func NewComputer(difficulty int) Player {
	return Player{Kind: ComputerPlayer, Difficulty: difficulty}
}

func (that Player) IsHuman() bool {
	return that.Kind == HumanPlayer
}

func (that Player) IsComputer() bool {
	return that.Kind == ComputerPlayer
}

func (that Player) Validate() error {
	switch that.Kind {
	case HumanPlayer:
		return nil
	case ComputerPlayer:
		if that.Difficulty < 0 {
			return fmt.Errorf("%w: negative difficulty %d", apperror.ErrInvalidPlayer, that.Difficulty)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", apperror.ErrInvalidPlayer, that.Kind)
	}
}
