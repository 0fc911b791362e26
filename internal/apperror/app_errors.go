package apperror

import (
	"errors"
	"fmt"
)

// error classes, checked with errors.Is.
var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrInvalidState = errors.New("invalid state")
	ErrPrecondition = errors.New("precondition violation")
)

var (
	ErrInvalidCell  = fmt.Errorf("%w: invalid cell index", ErrInvalidMove)
	ErrCellOccupied = fmt.Errorf("%w: cell is already occupied", ErrInvalidMove)

	ErrGameIsNotStarted = fmt.Errorf("%w: game is not started", ErrInvalidState)
	ErrGameFinished     = fmt.Errorf("%w: game is already finished", ErrInvalidState)
	ErrNotHumanTurn     = fmt.Errorf("%w: active player is not human", ErrInvalidState)
	ErrNotComputerTurn  = fmt.Errorf("%w: active player is not a computer", ErrInvalidState)

	ErrNoAvailableMoves = fmt.Errorf("%w: no available moves", ErrPrecondition)
	ErrSameMarks        = fmt.Errorf("%w: player and opponent share a mark", ErrPrecondition)
	ErrGameDecided      = fmt.Errorf("%w: game is already decided", ErrPrecondition)
	ErrInvalidPlayer    = fmt.Errorf("%w: invalid player", ErrPrecondition)
)
