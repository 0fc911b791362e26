package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/notification"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

func newTestConsole(t *testing.T, input string) (*Console, *bytes.Buffer, *usecase.GameManager) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	queue := notification.NewQueue(notification.DefaultCapacity)

	controller, err := tictactoe.NewGameController(service.NewBotService(rand.New(rand.NewSource(7))), queue, entity.PlayerX)
	require.NoError(t, err)

	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository(), controller)

	out := &bytes.Buffer{}
	conf := config.Game{
		Difficulty: config.Difficulty{Easy: 0, Medium: 2, Hard: entity.DifficultyPerfect},
	}

	return New(logger, strings.NewReader(input), out, manager, queue, conf), out, manager
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		line string
		cmd  command
		cell int
	}{
		{line: "1", cmd: commandCell, cell: 0},
		{line: "9", cmd: commandCell, cell: 8},
		{line: " 5 ", cmd: commandCell, cell: 4},
		{line: "q", cmd: commandCell, cell: 0},
		{line: "S", cmd: commandCell, cell: 4},
		{line: "c", cmd: commandCell, cell: 8},
		{line: "h", cmd: commandHint},
		{line: "0", cmd: commandMenu},
		{line: "esc", cmd: commandMenu},
		{line: "", cmd: commandConfirm},
		{line: "10", cmd: commandNone},
		{line: "k", cmd: commandNone},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, cell := parseInput(tt.line)
			assert.Equal(t, tt.cmd, cmd)
			assert.Equal(t, tt.cell, cell)
		})
	}
}

func TestFormatEvent(t *testing.T) {
	assert.Equal(t, "Player O, select a tile.", formatEvent(entity.Event{Kind: entity.EventSelectTile, Mark: entity.PlayerO}))
	assert.Equal(t, "There is no such tile.", formatEvent(entity.Event{Kind: entity.EventTileRejected, Reason: entity.RejectOutOfRange}))
	assert.Equal(t, "This tile cannot be selected.", formatEvent(entity.Event{Kind: entity.EventTileRejected, Reason: entity.RejectOccupied}))
	assert.Equal(t, "Player X (human) occupied tile 5.",
		formatEvent(entity.Event{Kind: entity.EventTileOccupied, Mark: entity.PlayerX, Player: entity.HumanPlayer, Cell: 4}))
	assert.Equal(t, "Player X wins!", formatEvent(entity.Event{Kind: entity.EventWin, Mark: entity.PlayerX}))
	assert.Equal(t, "It's a draw.", formatEvent(entity.Event{Kind: entity.EventDraw}))
}

func TestConsole_HumanVsHuman(t *testing.T) {
	// Given: X takes the top row while O plays the middle one
	input := "1\n1\n4\n2\n5\n3\n\n0\n"
	cons, out, manager := newTestConsole(t, input)

	// When
	err := cons.Run(context.Background())

	// Then
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Player X wins!")
	assert.Nil(t, manager.Current())
	assert.Equal(t, SceneExit, cons.scene)
}

func TestConsole_RejectedTileKeepsTurn(t *testing.T) {
	// Given: X plays 1, O tries 1 again and then an unknown key
	input := "1\n1\n1\nk\n"
	cons, out, manager := newTestConsole(t, input)

	// When: input ends mid-game
	err := cons.Run(context.Background())

	// Then: the session is kept for a later resume
	require.NoError(t, err)
	assert.Contains(t, out.String(), "This tile cannot be selected.")

	game := manager.Current()
	require.NotNil(t, game)
	assert.Equal(t, entity.PlayerO, game.Board.ActiveMark())
	assert.Equal(t, 2, game.Turn)
}

func TestConsole_ComputerVsComputer(t *testing.T) {
	// Given: two perfect computers
	input := "3\n3\n3\n\n0\n"
	cons, out, _ := newTestConsole(t, input)

	// When
	err := cons.Run(context.Background())

	// Then
	require.NoError(t, err)
	assert.Contains(t, out.String(), "It's a draw.")
}

func TestConsole_HintToggle(t *testing.T) {
	cons, out, _ := newTestConsole(t, "1\nh\n")

	require.NoError(t, cons.Run(context.Background()))

	assert.True(t, cons.hint)
	assert.Contains(t, out.String(), "7 | 8 | 9")
}

func TestConsole_Resume(t *testing.T) {
	// Given: a game interrupted after one move
	first, _, manager := newTestConsole(t, "1\n5\n")
	require.NoError(t, first.Run(context.Background()))

	gameID := manager.Current().ID
	input := "4\n" + gameID + "\n"

	// When: a console on the same manager resumes it by id
	cons := New(slog.New(slog.NewTextHandler(io.Discard, nil)), strings.NewReader(input), &bytes.Buffer{},
		manager, notification.NewQueue(1), config.Game{})
	require.NoError(t, cons.Run(context.Background()))

	// Then
	assert.Equal(t, SceneGame, cons.scene)
	assert.Equal(t, entity.PlayerX, manager.Current().Board.Cell(4))
}

func TestConsole_CanceledContext(t *testing.T) {
	cons, _, _ := newTestConsole(t, "1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, cons.Run(ctx))
}
