package tictactoe

import (
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// WinLines are checked in this order: row i then column i for each i,
// followed by the two diagonals. On a board with two complete lines of
// different players the first line found decides the winner.
var WinLines = [8][3]int{
	{0, 1, 2}, {0, 3, 6},
	{3, 4, 5}, {1, 4, 7},
	{6, 7, 8}, {2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// CheckWinner - returns the player owning a complete line, or entity.NoPlayer.
func CheckWinner(board entity.Board) entity.Player {
	for _, line := range WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != entity.NoPlayer && a == b && b == c {
			return a
		}
	}

	return entity.NoPlayer
}

// GameState is a position evaluated from the point of view of ComputerPlayer.
// It is a value: copies never share the board.
type GameState struct {
	Board          entity.Board
	NextPlayer     entity.Player
	Winner         entity.Player
	ComputerPlayer entity.Player
}

func NewGameState(board entity.Board, next, computer entity.Player) GameState {
	return GameState{
		Board:          board,
		NextPlayer:     next,
		Winner:         CheckWinner(board),
		ComputerPlayer: computer,
	}
}

// OpenSquares - empty squares in ascending index order.
func (that GameState) OpenSquares() []entity.Selection {
	moves := make([]entity.Selection, 0, entity.BoardSize)
	for i, cell := range that.Board {
		if cell == entity.NoPlayer {
			moves = append(moves, entity.NewSelection(i))
		}
	}
	return moves
}

// WithMove - returns a new state with NextPlayer's mark on square.
// The square must be empty; the receiver is left untouched.
func (that GameState) WithMove(square int) GameState {
	that.Board[square] = that.NextPlayer
	that.NextPlayer = that.NextPlayer.Opponent()
	that.Winner = CheckWinner(that.Board)

	return that
}

func (that GameState) HasWinner() bool {
	return that.Winner != entity.NoPlayer
}

func (that GameState) IsOver() bool {
	return that.HasWinner() || that.Board.IsFull()
}

// String - draws the board, empty squares as '.'.
func (that GameState) String() string {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := range cells {
			cell := that.Board[row*3+col]
			if cell == entity.NoPlayer {
				cells[col] = "."
			} else {
				cells[col] = string(cell)
			}
		}

		sb.WriteString(" " + strings.Join(cells, " | ") + " \n")
		if row != 2 {
			sb.WriteString("---|---|---\n")
		}
	}

	return sb.String()
}
