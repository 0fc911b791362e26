package console

import "strings"

type command int

const (
	commandNone command = iota
	commandCell
	commandHint
	commandMenu
	commandConfirm
)

// gridKeys maps the q/w/e, a/s/d, z/x/c block onto the board.
var gridKeys = map[string]int{
	"q": 0, "w": 1, "e": 2,
	"a": 3, "s": 4, "d": 5,
	"z": 6, "x": 7, "c": 8,
}

// parseInput turns one input line into a command. Cells are 1..9 on screen
// and 0..8 in the returned index.
func parseInput(line string) (command, int) {
	key := strings.ToLower(strings.TrimSpace(line))

	switch key {
	case "":
		return commandConfirm, 0
	case "0", "esc", "\x1b":
		return commandMenu, 0
	case "h":
		return commandHint, 0
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return commandCell, int(key[0] - '1')
	}

	if cell, ok := gridKeys[key]; ok {
		return commandCell, cell
	}

	return commandNone, 0
}
