package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
)

var ErrCorruptSession = errors.New("corrupt session")

// Notifier receives the semantic events of a session.
type Notifier interface {
	Notify(event entity.Event)
	Clear()
}

type moveSelector interface {
	SelectMove(board *entity.Board, player, opponent entity.Cell, difficulty int) (service.Move, error)
}

type nopNotifier struct{}

func (nopNotifier) Notify(entity.Event) {}
func (nopNotifier) Clear()              {}

// GameController runs one session at a time through
// AwaitingMove -> Evaluating -> AwaitingMove | Finished.
// It is not safe for concurrent use.
type GameController struct {
	session  *entity.Session
	bot      moveSelector
	notifier Notifier
	start    entity.Cell
}

func NewGameController(bot moveSelector, notifier Notifier, start entity.Cell) (*GameController, error) {
	if !start.IsMark() {
		return nil, fmt.Errorf("%w: starting mark %q", entity.ErrInvalidMark, start)
	}

	if notifier == nil {
		notifier = nopNotifier{}
	}

	return &GameController{
		bot:      bot,
		notifier: notifier,
		start:    start,
	}, nil
}

// StartSession resets the board and binds player1 to the starting mark and
// player2 to the other one. Any running session is discarded.
func (that *GameController) StartSession(id string, player1, player2 entity.Player) error {
	for _, player := range []entity.Player{player1, player2} {
		if err := player.Validate(); err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
	}

	board, err := entity.NewBoard(that.start)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}

	player1.Mark = board.ActiveMark()
	player2.Mark = board.InactiveMark()

	that.notifier.Clear()
	that.session = &entity.Session{
		ID:      id,
		Board:   board,
		Players: [2]entity.Player{player1, player2},
		State:   entity.StateAwaitingMove,
		Outcome: entity.Ongoing(),
		Turn:    1,
	}

	if player1.IsHuman() {
		that.notifier.Notify(entity.Event{Kind: entity.EventSelectTile, Mark: player1.Mark, Player: player1.Kind})
	}

	return nil
}

// Restore adopts a previously saved session.
func (that *GameController) Restore(session *entity.Session) error {
	if err := validateSession(session); err != nil {
		return err
	}

	that.notifier.Clear()
	that.session = session

	return nil
}

// SubmitMove places the active human's mark on cell. A rejected move leaves
// the session untouched and the same player to move.
func (that *GameController) SubmitMove(cell int) error {
	player, err := that.activePlayer()
	if err != nil {
		return err
	}

	if !player.IsHuman() {
		return apperror.ErrNotHumanTurn
	}

	if err = that.applyMove(player, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	return nil
}

// RequestComputerMove lets the active computer player search and play.
func (that *GameController) RequestComputerMove() (service.Move, error) {
	player, err := that.activePlayer()
	if err != nil {
		return service.Move{Cell: service.NoCell}, err
	}

	if !player.IsComputer() {
		return service.Move{Cell: service.NoCell}, apperror.ErrNotComputerTurn
	}

	that.notifier.Notify(entity.Event{Kind: entity.EventComputerThinking, Mark: player.Mark, Player: player.Kind})

	board := that.session.Board
	move, err := that.bot.SelectMove(board, board.ActiveMark(), board.InactiveMark(), player.Difficulty)
	if err != nil {
		return move, fmt.Errorf("failed to select move: %w", err)
	}

	if err = that.applyMove(player, move.Cell); err != nil {
		return move, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return move, nil
}

// EndSession drops the current session. It is valid in any state.
func (that *GameController) EndSession() {
	that.session = nil
	that.notifier.Clear()
}

// Session returns a copy of the current session, or nil when idle.
func (that *GameController) Session() *entity.Session {
	if that.session == nil {
		return nil
	}

	snapshot := *that.session
	snapshot.Board = that.session.Board.Clone()

	return &snapshot
}

func (that *GameController) State() entity.SessionState {
	if that.session == nil {
		return entity.StateIdle
	}

	return that.session.State
}

// ActivePlayer returns the player to move.
func (that *GameController) ActivePlayer() (entity.Player, error) {
	return that.activePlayer()
}

func (that *GameController) activePlayer() (entity.Player, error) {
	if that.session == nil {
		return entity.Player{}, apperror.ErrGameIsNotStarted
	}

	if err := that.session.ConfirmAwaitingMove(); err != nil {
		return entity.Player{}, err
	}

	return that.session.ActivePlayer()
}

func (that *GameController) applyMove(player entity.Player, cell int) error {
	board := that.session.Board

	if err := board.Place(cell, board.ActiveMark()); err != nil {
		reason := entity.RejectOccupied
		if errors.Is(err, apperror.ErrInvalidCell) {
			reason = entity.RejectOutOfRange
		}

		that.notifier.Notify(entity.Event{Kind: entity.EventTileRejected, Mark: player.Mark, Cell: cell, Player: player.Kind, Reason: reason})

		return err
	}

	if player.IsHuman() {
		that.notifier.Clear()
	}

	that.notifier.Notify(entity.Event{Kind: entity.EventTileOccupied, Mark: player.Mark, Cell: cell, Player: player.Kind})

	that.session.State = entity.StateEvaluating
	that.evaluate()

	return nil
}

// evaluate finishes the session or hands the turn to the other mark.
func (that *GameController) evaluate() {
	board := that.session.Board

	outcome := entity.Evaluate(board, board.ActiveMark(), board.InactiveMark())
	switch outcome.Kind {
	case entity.OutcomeWin:
		that.session.State = entity.StateFinished
		that.session.Outcome = outcome
		that.notifier.Notify(entity.Event{Kind: entity.EventWin, Mark: outcome.Winner})
	case entity.OutcomeDraw:
		that.session.State = entity.StateFinished
		that.session.Outcome = outcome
		that.notifier.Notify(entity.Event{Kind: entity.EventDraw})
	default:
		board.SwapTurn()
		that.session.Turn++
		that.session.State = entity.StateAwaitingMove

		if next, err := that.session.ActivePlayer(); err == nil && next.IsHuman() {
			that.notifier.Notify(entity.Event{Kind: entity.EventSelectTile, Mark: next.Mark, Player: next.Kind})
		}
	}
}

func validateSession(session *entity.Session) error {
	if session == nil || session.Board == nil {
		return fmt.Errorf("%w: missing board", ErrCorruptSession)
	}

	if session.Players[0].Mark == session.Players[1].Mark {
		return fmt.Errorf("%w: players share mark %q", ErrCorruptSession, session.Players[0].Mark)
	}

	for _, player := range session.Players {
		if err := player.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptSession, err)
		}

		if !player.Mark.IsMark() {
			return fmt.Errorf("%w: player without mark", ErrCorruptSession)
		}
	}

	outcome := entity.Evaluate(session.Board, session.Board.ActiveMark(), session.Board.InactiveMark())

	switch session.State {
	case entity.StateAwaitingMove:
		if outcome.IsDecided() {
			return fmt.Errorf("%w: decided board awaiting a move", ErrCorruptSession)
		}
	case entity.StateFinished:
		if !outcome.IsDecided() {
			return fmt.Errorf("%w: finished session on an open board", ErrCorruptSession)
		}
	default:
		return fmt.Errorf("%w: unexpected state %q", ErrCorruptSession, session.State)
	}

	return nil
}
