package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

// Scene is the screen the console is showing.
type Scene int

const (
	SceneMenu Scene = iota
	SceneGame
	SceneExit
)

type gameUseCase interface {
	StartGame(ctx context.Context, player1, player2 entity.Player) (*entity.Session, error)
	MakeTurn(ctx context.Context, cell int) (*entity.Session, error)
	PlayComputerTurn(ctx context.Context) (*entity.Session, error)
	Resume(ctx context.Context, gameID string) (*entity.Session, error)
	EndGame(ctx context.Context)
	Current() *entity.Session
	ActivePlayer() (entity.Player, error)
}

type eventSource interface {
	Peek() []entity.Event
}

// Console is the terminal front end: it reads one command per line and
// redraws the board after every step.
type Console struct {
	logger *slog.Logger

	in  *bufio.Scanner
	out *termenv.Output

	game       gameUseCase
	events     eventSource
	presets    config.Difficulty
	thinkDelay time.Duration

	scene Scene
	hint  bool
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, game gameUseCase, events eventSource, conf config.Game) *Console {
	return &Console{
		logger:     logger.With("component", "console"),
		in:         bufio.NewScanner(in),
		out:        termenv.NewOutput(out),
		game:       game,
		events:     events,
		presets:    conf.Difficulty,
		thinkDelay: conf.ThinkDelay,
		scene:      SceneMenu,
	}
}

// Run dispatches scenes until the player quits or input ends.
func (that *Console) Run(ctx context.Context) error {
	that.out.HideCursor()
	defer that.out.ShowCursor()

	for {
		// an interrupted session keeps its snapshot so it can be resumed
		if ctx.Err() != nil {
			return nil
		}

		var err error

		switch that.scene {
		case SceneMenu:
			err = that.runMenu(ctx)
		case SceneGame:
			err = that.runGame(ctx)
		case SceneExit:
			that.out.ClearScreen()
			return nil
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

func (that *Console) readLine() (string, error) {
	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}

	return that.in.Text(), nil
}

func (that *Console) prompt(text string) (string, error) {
	fmt.Fprint(that.out, text)
	return that.readLine()
}

func (that *Console) runMenu(ctx context.Context) error {
	that.out.ClearScreen()
	fmt.Fprintln(that.out, "Tic-Tac-Toe")
	fmt.Fprintln(that.out)
	fmt.Fprintln(that.out, "1) Human vs Human")
	fmt.Fprintln(that.out, "2) Human vs Computer")
	fmt.Fprintln(that.out, "3) Computer vs Computer")
	fmt.Fprintln(that.out, "4) Resume game")
	fmt.Fprintln(that.out, "0) Quit")

	choice, err := that.prompt("> ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return that.start(ctx, entity.NewHuman(), entity.NewHuman())
	case "2":
		computer, err := that.chooseComputer("Computer")
		if err != nil {
			return err
		}

		order, err := that.prompt("Play first? 1) yes 2) no > ")
		if err != nil {
			return err
		}

		if order == "2" {
			return that.start(ctx, computer, entity.NewHuman())
		}
		return that.start(ctx, entity.NewHuman(), computer)
	case "3":
		first, err := that.chooseComputer("First computer")
		if err != nil {
			return err
		}

		second, err := that.chooseComputer("Second computer")
		if err != nil {
			return err
		}
		return that.start(ctx, first, second)
	case "4":
		gameID, err := that.prompt("Game id > ")
		if err != nil {
			return err
		}

		if _, err = that.game.Resume(ctx, gameID); err != nil {
			that.logger.Warn("could not resume game", "gameID", gameID, "error", err)
			return nil
		}

		that.scene = SceneGame
	case "0", "q":
		that.scene = SceneExit
	}

	return nil
}

func (that *Console) chooseComputer(label string) (entity.Player, error) {
	choice, err := that.prompt(label + " difficulty: 1) easy 2) medium 3) hard > ")
	if err != nil {
		return entity.Player{}, err
	}

	switch choice {
	case "1":
		return entity.NewComputer(that.presets.Easy), nil
	case "2":
		return entity.NewComputer(that.presets.Medium), nil
	default:
		return entity.NewComputer(that.presets.Hard), nil
	}
}

func (that *Console) start(ctx context.Context, player1, player2 entity.Player) error {
	game, err := that.game.StartGame(ctx, player1, player2)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.logger.Debug("session started", "gameID", game.ID)
	that.scene = SceneGame

	return nil
}

func (that *Console) runGame(ctx context.Context) error {
	game := that.game.Current()
	if game == nil {
		that.scene = SceneMenu
		return nil
	}

	that.renderSession(game)

	if game.IsFinished() {
		if _, err := that.prompt("\nPress enter to return to the menu . . ."); err != nil {
			return err
		}

		that.game.EndGame(ctx)
		that.scene = SceneMenu

		return nil
	}

	player, err := that.game.ActivePlayer()
	if err != nil {
		return fmt.Errorf("failed to get active player: %w", err)
	}

	if player.IsComputer() {
		time.Sleep(that.thinkDelay)

		if _, err = that.game.PlayComputerTurn(ctx); err != nil {
			return fmt.Errorf("computer turn failed: %w", err)
		}

		return nil
	}

	line, err := that.prompt("\nTile (1-9, h: hint, 0: menu) > ")
	if err != nil {
		return err
	}

	switch cmd, cell := parseInput(line); cmd {
	case commandCell:
		if _, err = that.game.MakeTurn(ctx, cell); err != nil && !usecase.IsRecoverable(err) {
			return fmt.Errorf("turn failed: %w", err)
		}
	case commandHint:
		that.hint = !that.hint
	case commandMenu:
		that.game.EndGame(ctx)
		that.scene = SceneMenu
	case commandNone, commandConfirm:
	}

	return nil
}
