package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const BoardSize = 9

// Board is a 3x3 grid stored row-major:
//
//	0 1 2
//	3 4 5
//	6 7 8
type Board [BoardSize]Player

// ParseBoard - reads a 9 character board such as "X.O......".
// '.', '-', '_' and ' ' denote empty cells.
func ParseBoard(raw string) (Board, error) {
	var board Board

	cells := []rune(raw)
	if len(cells) != BoardSize {
		return board, fmt.Errorf("%w: got %d", apperror.ErrInvalidBoard, len(cells))
	}

	for i, cell := range cells {
		switch cell {
		case 'X', 'x':
			board[i] = PlayerX
		case 'O', 'o':
			board[i] = PlayerO
		case '.', '-', '_', ' ':
			board[i] = NoPlayer
		default:
			return board, fmt.Errorf("%w: %q at %d", apperror.ErrInvalidCell, cell, i)
		}
	}

	return board, nil
}

// String - compact form, empty cells are rendered as '.'.
func (that Board) String() string {
	var sb strings.Builder
	for _, cell := range that {
		if cell == NoPlayer {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(string(cell))
	}
	return sb.String()
}

func (that Board) Count(player Player) int {
	count := 0
	for _, cell := range that {
		if cell == player {
			count++
		}
	}
	return count
}

func (that Board) IsFull() bool {
	return that.Count(NoPlayer) == 0
}

// MarshalJSON - empty cells are encoded as null.
func (that Board) MarshalJSON() ([]byte, error) {
	cells := make([]*Player, BoardSize)
	for i := range that {
		if that[i] != NoPlayer {
			cell := that[i]
			cells[i] = &cell
		}
	}
	return json.Marshal(cells)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells []*Player
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to decode board: %w", err)
	}

	if len(cells) != BoardSize {
		return fmt.Errorf("%w: got %d", apperror.ErrInvalidBoard, len(cells))
	}

	var board Board
	for i, cell := range cells {
		if cell != nil {
			board[i] = *cell
		}
	}

	*that = board

	return nil
}
