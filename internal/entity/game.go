package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

type OutcomeKind string

const (
	OutcomeOngoing OutcomeKind = "ongoing"
	OutcomeWin     OutcomeKind = "win"
	OutcomeDraw    OutcomeKind = "draw"
)

// Outcome is the result of a position. Winner is set only for OutcomeWin.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner Cell        `json:"winner,omitempty"`
}

func Ongoing() Outcome {
	return Outcome{Kind: OutcomeOngoing}
}

func Draw() Outcome {
	return Outcome{Kind: OutcomeDraw}
}

func Win(mark Cell) Outcome {
	return Outcome{Kind: OutcomeWin, Winner: mark}
}

func (that Outcome) IsOngoing() bool {
	return that.Kind == OutcomeOngoing
}

func (that Outcome) IsDecided() bool {
	return that.Kind == OutcomeWin || that.Kind == OutcomeDraw
}

// WinCombos lists rows, then columns, then diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Evaluate reports the outcome of board. player's lines are checked before
// opponent's, so a board where both have three in a row reports player.
func Evaluate(board *Board, player, opponent Cell) Outcome {
	if HasWon(board, player) {
		return Win(player)
	}

	if HasWon(board, opponent) {
		return Win(opponent)
	}

	if board.IsFull() {
		return Draw()
	}

	return Ongoing()
}

// HasWon reports whether mark holds any full win line.
func HasWon(board *Board, mark Cell) bool {
	if !mark.IsMark() {
		return false
	}

	for _, combo := range WinCombos {
		if board.cells[combo[0]] == mark && board.cells[combo[1]] == mark && board.cells[combo[2]] == mark {
			return true
		}
	}

	return false
}

type SessionState string

const (
	StateIdle         SessionState = "idle"
	StateAwaitingMove SessionState = "awaiting_move"
	StateEvaluating   SessionState = "evaluating"
	StateFinished     SessionState = "finished"
)

// Session is the state owned by a game controller for one game.
// Players[0] holds the starting mark.
type Session struct {
	ID      string       `json:"id"`
	Board   *Board       `json:"board"`
	Players [2]Player    `json:"players"`
	State   SessionState `json:"state"`
	Outcome Outcome      `json:"outcome"`
	Turn    int          `json:"turn"`
}

func (that *Session) IsFinished() bool {
	return that.State == StateFinished
}

func (that *Session) IsAwaitingMove() bool {
	return that.State == StateAwaitingMove
}

// PlayerFor returns the player bound to mark.
func (that *Session) PlayerFor(mark Cell) (Player, error) {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player, nil
		}
	}

	return Player{}, fmt.Errorf("%w: no player holds mark %q", apperror.ErrInvalidPlayer, mark)
}

// ActivePlayer returns the player whose mark is to move.
func (that *Session) ActivePlayer() (Player, error) {
	if that.Board == nil {
		return Player{}, apperror.ErrGameIsNotStarted
	}

	return that.PlayerFor(that.Board.ActiveMark())
}

// ConfirmAwaitingMove returns the InvalidState error matching the session state.
func (that *Session) ConfirmAwaitingMove() error {
	switch that.State {
	case StateAwaitingMove:
		return nil
	case StateFinished:
		return apperror.ErrGameFinished
	case StateIdle, "":
		return apperror.ErrGameIsNotStarted
	default:
		return fmt.Errorf("%w: session is %s", apperror.ErrInvalidState, that.State)
	}
}
