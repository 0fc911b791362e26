package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Cell is the content of one board square.
type Cell string

const (
	EmptyCell Cell = ""
	PlayerX   Cell = "X"
	PlayerO   Cell = "O"
)

// BoardSize is the number of cells on the 3x3 board.
const BoardSize = 9

var ErrInvalidMark = errors.New("invalid mark")

// IsMark reports whether c is one of the two player marks.
func (c Cell) IsMark() bool {
	return c == PlayerX || c == PlayerO
}

// Opponent returns the other mark. EmptyCell has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// Board is the 3x3 grid stored row-major, plus the cached number of empty
// cells and the marks whose turn it is and is not.
//
// Board is only changed through Place and Undo, which keep emptyCount equal
// to the number of empty cells.
type Board struct {
	cells      [BoardSize]Cell
	emptyCount int
	active     Cell
	inactive   Cell
}

// NewBoard returns an empty board with start to move.
func NewBoard(start Cell) (*Board, error) {
	if !start.IsMark() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMark, start)
	}

	return &Board{
		emptyCount: BoardSize,
		active:     start,
		inactive:   start.Opponent(),
	}, nil
}

// BoardFromCells builds a board from raw cell contents. Mark counts are not
// checked, so positions unreachable in play can be set up for analysis.
func BoardFromCells(cells [BoardSize]Cell, active Cell) (*Board, error) {
	board, err := NewBoard(active)
	if err != nil {
		return nil, err
	}

	for i, cell := range cells {
		if cell == EmptyCell {
			continue
		}

		if !cell.IsMark() {
			return nil, fmt.Errorf("%w: %q at cell %d", ErrInvalidMark, cell, i)
		}

		board.cells[i] = cell
		board.emptyCount--
	}

	return board, nil
}

func (that *Board) Cell(i int) Cell {
	return that.cells[i]
}

func (that *Board) Cells() [BoardSize]Cell {
	return that.cells
}

func (that *Board) EmptyCount() int {
	return that.emptyCount
}

func (that *Board) ActiveMark() Cell {
	return that.active
}

func (that *Board) InactiveMark() Cell {
	return that.inactive
}

func (that *Board) IsFull() bool {
	return that.emptyCount == 0
}

// EmptyCells returns the indices of empty cells in ascending order.
func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, that.emptyCount)
	for i, cell := range that.cells {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// Place puts mark on an empty cell. The board is left untouched on error.
func (that *Board) Place(cell int, mark Cell) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !mark.IsMark() {
		return fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}

	if that.cells[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.cells[cell] = mark
	that.emptyCount--

	return nil
}

// Undo clears a cell filled by Place. Clearing an empty cell is a no-op.
func (that *Board) Undo(cell int) {
	if that.cells[cell] == EmptyCell {
		return
	}

	that.cells[cell] = EmptyCell
	that.emptyCount++
}

// SwapTurn exchanges the active and inactive marks.
func (that *Board) SwapTurn() {
	that.active, that.inactive = that.inactive, that.active
}

func (that *Board) Clone() *Board {
	clone := *that
	return &clone
}

type boardJSON struct {
	Cells  [BoardSize]Cell `json:"cells"`
	Active Cell            `json:"active"`
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{Cells: that.cells, Active: that.active})
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	board, err := BoardFromCells(raw.Cells, raw.Active)
	if err != nil {
		return fmt.Errorf("failed to restore board: %w", err)
	}

	*that = *board

	return nil
}
