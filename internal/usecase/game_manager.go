package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameController interface {
	StartSession(id string, player1, player2 entity.Player) error
	Restore(session *entity.Session) error
	SubmitMove(cell int) error
	RequestComputerMove() (service.Move, error)
	EndSession()
	Session() *entity.Session
	ActivePlayer() (entity.Player, error)
}

// GameManager drives the game controller for the front end and keeps a
// snapshot of the running session in the repository. Finished and ended
// sessions are removed from the repository.
type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	controller gameController
	generateID func() string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, controller gameController) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		controller: controller,
		generateID: pkg.GenerateGameID,
	}
}

// StartGame ends any running session and starts a new one.
func (that *GameManager) StartGame(ctx context.Context, player1, player2 entity.Player) (*entity.Session, error) {
	log := that.logger.With("method", "StartGame")

	if current := that.controller.Session(); current != nil {
		that.EndGame(ctx)
	}

	gameID := that.generateID()
	if err := that.controller.StartSession(gameID, player1, player2); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	game := that.controller.Session()
	if err := that.updateGame(ctx, game); err != nil {
		return game, err
	}

	log.Info("game started", "gameID", gameID, "player1", player1.Kind, "player2", player2.Kind)

	return game, nil
}

// MakeTurn submits a human move. Invalid moves are returned as errors with
// the unchanged session.
func (that *GameManager) MakeTurn(ctx context.Context, cell int) (*entity.Session, error) {
	if err := that.controller.SubmitMove(cell); err != nil {
		return that.controller.Session(), fmt.Errorf("failed make turn: %w", err)
	}

	return that.afterMove(ctx, cell)
}

// PlayComputerTurn lets the active computer player move.
func (that *GameManager) PlayComputerTurn(ctx context.Context) (*entity.Session, error) {
	move, err := that.controller.RequestComputerMove()
	if err != nil {
		return that.controller.Session(), fmt.Errorf("bot failed to make turn: %w", err)
	}

	return that.afterMove(ctx, move.Cell)
}

// Resume restores a saved session by id.
func (that *GameManager) Resume(ctx context.Context, gameID string) (*entity.Session, error) {
	log := that.logger.With("method", "Resume", "gameID", gameID)

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if err = that.controller.Restore(game); err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	log.Info("game resumed", "turn", game.Turn)

	return that.controller.Session(), nil
}

// EndGame drops the running session. It is safe to call when idle.
func (that *GameManager) EndGame(ctx context.Context) {
	game := that.controller.Session()
	that.controller.EndSession()

	if game != nil {
		that.deleteGame(ctx, game.ID)
	}
}

// Current returns a copy of the running session, or nil.
func (that *GameManager) Current() *entity.Session {
	return that.controller.Session()
}

// ActivePlayer returns the player to move in the running session.
func (that *GameManager) ActivePlayer() (entity.Player, error) {
	return that.controller.ActivePlayer()
}

func (that *GameManager) afterMove(ctx context.Context, cell int) (*entity.Session, error) {
	log := that.logger.With("method", "afterMove")

	game := that.controller.Session()
	log.Debug("move accepted", "gameID", game.ID, "cell", cell, "turn", game.Turn)

	if game.IsFinished() {
		log.Info("game finished", "gameID", game.ID, "outcome", game.Outcome.Kind, "winner", game.Outcome.Winner)
		that.deleteGame(ctx, game.ID)

		return game, nil
	}

	if err := that.updateGame(ctx, game); err != nil {
		return game, err
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Session) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, gameID string) {
	log := that.logger.With("method", "deleteGame", "gameID", gameID)

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		log.Error("failed to delete game", "error", err)
		return
	}

	log.Debug("game deleted")
}

// IsRecoverable reports whether err leaves the session playable.
func IsRecoverable(err error) bool {
	return errors.Is(err, apperror.ErrInvalidMove) || errors.Is(err, apperror.ErrInvalidState)
}
