package console

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	colorX = "9"
	colorO = "12"
)

func (that *Console) renderSession(game *entity.Session) {
	that.out.ClearScreen()

	fmt.Fprintf(that.out, "Game %s, turn %d\n\n", game.ID, game.Turn)

	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			cells = append(cells, that.renderCell(game.Board, row*3+col))
		}

		fmt.Fprintf(that.out, " %s\n", strings.Join(cells, " | "))
		if row < 2 {
			fmt.Fprintln(that.out, "---+---+---")
		}
	}

	fmt.Fprintln(that.out)

	for _, event := range that.events.Peek() {
		fmt.Fprintln(that.out, formatEvent(event))
	}
}

func (that *Console) renderCell(board *entity.Board, cell int) string {
	switch mark := board.Cell(cell); mark {
	case entity.PlayerX:
		return that.out.String(string(mark)).Foreground(that.out.Color(colorX)).Bold().String()
	case entity.PlayerO:
		return that.out.String(string(mark)).Foreground(that.out.Color(colorO)).Bold().String()
	default:
		if that.hint {
			return that.out.String(fmt.Sprint(cell + 1)).Faint().String()
		}
		return " "
	}
}

func formatEvent(event entity.Event) string {
	switch event.Kind {
	case entity.EventSelectTile:
		return fmt.Sprintf("Player %s, select a tile.", event.Mark)
	case entity.EventTileRejected:
		if event.Reason == entity.RejectOutOfRange {
			return "There is no such tile."
		}
		return "This tile cannot be selected."
	case entity.EventTileOccupied:
		return fmt.Sprintf("Player %s (%s) occupied tile %d.", event.Mark, event.Player, event.Cell+1)
	case entity.EventComputerThinking:
		return "The computer is thinking..."
	case entity.EventWin:
		return fmt.Sprintf("Player %s wins!", event.Mark)
	case entity.EventDraw:
		return "It's a draw."
	default:
		return string(event.Kind)
	}
}
