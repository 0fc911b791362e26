package service

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// NoCell is returned as Move.Cell when no cell was chosen.
const NoCell = -1

// Leaf scores, always from the point of view of the searching player.
const (
	ScoreLoss = -1
	ScoreDraw = 0
	ScoreWin  = 1
)

const (
	minScore = math.MinInt
	maxScore = math.MaxInt
)

// Move is a chosen cell with the score the search gave it.
type Move struct {
	Cell  int
	Score int
}

type BotService interface {
	SelectMove(board *entity.Board, player, opponent entity.Cell, difficulty int) (Move, error)
}

type botService struct {
	rnd *rand.Rand
}

// NewBotService returns the move selector used for computer players.
// rnd drives the easy difficulty; nil seeds one from the clock.
func NewBotService(rnd *rand.Rand) BotService {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // it's ok
	}

	return &botService{
		rnd: rnd,
	}
}

// SelectMove picks a cell for player. Difficulty 0 picks a random empty
// cell, anything higher runs minimax limited to that many plies. The board
// is searched in place and is unchanged when SelectMove returns.
func (that *botService) SelectMove(board *entity.Board, player, opponent entity.Cell, difficulty int) (Move, error) {
	if !player.IsMark() || !opponent.IsMark() {
		return Move{Cell: NoCell}, fmt.Errorf("%w: marks %q and %q", apperror.ErrInvalidPlayer, player, opponent)
	}

	if player == opponent {
		return Move{Cell: NoCell}, fmt.Errorf("%w: both are %q", apperror.ErrSameMarks, player)
	}

	if difficulty < 0 {
		return Move{Cell: NoCell}, fmt.Errorf("%w: negative difficulty %d", apperror.ErrInvalidPlayer, difficulty)
	}

	if board.IsFull() {
		return Move{Cell: NoCell}, apperror.ErrNoAvailableMoves
	}

	if outcome := entity.Evaluate(board, player, opponent); outcome.IsDecided() {
		return Move{Cell: NoCell, Score: score(outcome, player)}, fmt.Errorf("%w: %s", apperror.ErrGameDecided, outcome.Kind)
	}

	if difficulty == entity.DifficultyRandom {
		return that.randomMove(board), nil
	}

	return bestMove(board, player, opponent, min(difficulty, entity.DifficultyPerfect)), nil
}

func (that *botService) randomMove(board *entity.Board) Move {
	availableCells := board.EmptyCells()
	chosenCell := availableCells[that.rnd.Intn(len(availableCells))]

	return Move{Cell: chosenCell, Score: ScoreDraw}
}

// bestMove scans empty cells in index order and keeps the first cell with
// the highest score.
func bestMove(board *entity.Board, player, opponent entity.Cell, depth int) Move {
	best := Move{Cell: NoCell, Score: minScore}

	for cell := 0; cell < entity.BoardSize; cell++ {
		if board.Cell(cell) != entity.EmptyCell {
			continue
		}

		value := withMark(board, cell, player, func() int {
			return alphaBeta(board, player, opponent, depth-1, best.Score, maxScore, false)
		})

		if value > best.Score {
			best = Move{Cell: cell, Score: value}
		}
	}

	return best
}

// Minimax scores board with alpha-beta pruning. player is the maximizing
// side and every score is relative to it: ScoreWin when player wins,
// ScoreLoss when opponent wins. maximizing tells whose mark moves next.
// Positions still open when depth reaches zero score as ScoreDraw.
func Minimax(board *entity.Board, player, opponent entity.Cell, depth int, maximizing bool) int {
	return alphaBeta(board, player, opponent, depth, minScore, maxScore, maximizing)
}

func alphaBeta(board *entity.Board, player, opponent entity.Cell, depth, alpha, beta int, maximizing bool) int {
	outcome := entity.Evaluate(board, player, opponent)
	if outcome.IsDecided() || depth <= 0 {
		return score(outcome, player)
	}

	mover, best := opponent, maxScore
	if maximizing {
		mover, best = player, minScore
	}

	for cell := 0; cell < entity.BoardSize; cell++ {
		if board.Cell(cell) != entity.EmptyCell {
			continue
		}

		value := withMark(board, cell, mover, func() int {
			return alphaBeta(board, player, opponent, depth-1, alpha, beta, !maximizing)
		})

		if maximizing {
			best = max(best, value)
			alpha = max(alpha, best)
		} else {
			best = min(best, value)
			beta = min(beta, best)
		}

		if alpha >= beta {
			break
		}
	}

	return best
}

// withMark places mark on cell for the duration of fn.
func withMark(board *entity.Board, cell int, mark entity.Cell, fn func() int) int {
	if err := board.Place(cell, mark); err != nil {
		panic(fmt.Sprintf("search placed on a taken cell: %v", err))
	}
	defer board.Undo(cell)

	return fn()
}

func score(outcome entity.Outcome, player entity.Cell) int {
	switch {
	case outcome.Kind != entity.OutcomeWin:
		return ScoreDraw
	case outcome.Winner == player:
		return ScoreWin
	default:
		return ScoreLoss
	}
}
