package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

func mustBoard(t *testing.T, cells [BoardSize]Cell, active Cell) *Board {
	t.Helper()

	board, err := BoardFromCells(cells, active)
	require.NoError(t, err)

	return board
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		cells    [BoardSize]Cell
		expected Outcome
	}{
		{
			name: "row win for player",
			cells: [BoardSize]Cell{
				PlayerX, PlayerX, PlayerX,
				EmptyCell, PlayerO, EmptyCell,
				EmptyCell, PlayerO, EmptyCell,
			},
			expected: Win(PlayerX),
		},
		{
			name: "column win for opponent",
			cells: [BoardSize]Cell{
				PlayerX, PlayerO, EmptyCell,
				EmptyCell, PlayerO, PlayerX,
				PlayerX, PlayerO, EmptyCell,
			},
			expected: Win(PlayerO),
		},
		{
			name: "anti-diagonal win",
			cells: [BoardSize]Cell{
				PlayerO, PlayerO, PlayerX,
				EmptyCell, PlayerX, EmptyCell,
				PlayerX, EmptyCell, EmptyCell,
			},
			expected: Win(PlayerX),
		},
		{
			name: "full board draw",
			cells: [BoardSize]Cell{
				PlayerX, PlayerO, PlayerX,
				PlayerX, PlayerO, PlayerO,
				PlayerO, PlayerX, PlayerX,
			},
			expected: Draw(),
		},
		{
			name: "ongoing game",
			cells: [BoardSize]Cell{
				PlayerX, PlayerO, EmptyCell,
				EmptyCell, PlayerX, EmptyCell,
				EmptyCell, EmptyCell, PlayerO,
			},
			expected: Ongoing(),
		},
		{
			name: "win on the last cell is not a draw",
			cells: [BoardSize]Cell{
				PlayerX, PlayerO, PlayerX,
				PlayerO, PlayerX, PlayerO,
				PlayerO, PlayerX, PlayerX,
			},
			expected: Win(PlayerX),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a board
			board := mustBoard(t, tt.cells, PlayerX)

			// When: it is evaluated for X against O
			outcome := Evaluate(board, PlayerX, PlayerO)

			// Then: the expected outcome is reported
			assert.Equal(t, tt.expected, outcome)
		})
	}
}

func TestEvaluate_BothMarksWinning(t *testing.T) {
	// Given: an unreachable board where both marks hold a row
	board := mustBoard(t, [BoardSize]Cell{
		PlayerX, PlayerX, PlayerX,
		PlayerO, PlayerO, PlayerO,
		EmptyCell, EmptyCell, EmptyCell,
	}, PlayerX)

	// Then: the mark asked about first is reported
	assert.Equal(t, Win(PlayerX), Evaluate(board, PlayerX, PlayerO))
	assert.Equal(t, Win(PlayerO), Evaluate(board, PlayerO, PlayerX))
}

func TestEvaluate_DoesNotMutate(t *testing.T) {
	board := mustBoard(t, [BoardSize]Cell{PlayerX, PlayerO, PlayerX}, PlayerO)
	before := *board

	_ = Evaluate(board, PlayerO, PlayerX)

	assert.Equal(t, before, *board)
}

func TestSession_ConfirmAwaitingMove(t *testing.T) {
	t.Run("Returns nil when awaiting a move", func(t *testing.T) {
		session := &Session{State: StateAwaitingMove}

		assert.NoError(t, session.ConfirmAwaitingMove())
	})

	t.Run("Returns ErrGameFinished when finished", func(t *testing.T) {
		session := &Session{State: StateFinished}

		err := session.ConfirmAwaitingMove()

		assert.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("Returns ErrGameIsNotStarted when idle", func(t *testing.T) {
		session := &Session{State: StateIdle}

		assert.ErrorIs(t, session.ConfirmAwaitingMove(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrInvalidState while evaluating", func(t *testing.T) {
		session := &Session{State: StateEvaluating}

		err := session.ConfirmAwaitingMove()

		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
		assert.Contains(t, err.Error(), "evaluating")
	})
}

func TestSession_ActivePlayer(t *testing.T) {
	// Given: a session where O is to move
	board, err := NewBoard(PlayerO)
	require.NoError(t, err)

	session := &Session{
		Board: board,
		Players: [2]Player{
			{Kind: ComputerPlayer, Difficulty: 3, Mark: PlayerO},
			{Kind: HumanPlayer, Mark: PlayerX},
		},
	}

	// When: the active player is looked up
	player, err := session.ActivePlayer()
	require.NoError(t, err)

	// Then: the computer holding O is returned
	assert.True(t, player.IsComputer())
	assert.Equal(t, 3, player.Difficulty)
}

func TestPlayer_Validate(t *testing.T) {
	assert.NoError(t, NewHuman().Validate())
	assert.NoError(t, NewComputer(DifficultyPerfect).Validate())
	assert.ErrorIs(t, NewComputer(-1).Validate(), apperror.ErrInvalidPlayer)
	assert.ErrorIs(t, Player{Kind: "alien"}.Validate(), apperror.ErrPrecondition)
}
