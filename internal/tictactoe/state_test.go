package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.NoPlayer
)

func TestCheckWinner(t *testing.T) {
	t.Run("Every line wins for both players", func(t *testing.T) {
		for _, player := range []entity.Player{x, o} {
			for _, line := range WinLines {
				// Given: a board with only this line filled by the player
				var board entity.Board
				for _, idx := range line {
					board[idx] = player
				}

				// When: checking the winner
				winner := CheckWinner(board)

				// Then: the player owning the line wins
				assert.Equal(t, player, winner, "line %v", line)
			}
		}
	})

	t.Run("No winner on an ongoing board", func(t *testing.T) {
		board := entity.Board{
			x, o, x,
			e, o, e,
			e, x, e,
		}

		assert.Equal(t, entity.NoPlayer, CheckWinner(board))
	})

	t.Run("No winner on a full tied board", func(t *testing.T) {
		board := entity.Board{
			x, o, x,
			x, o, o,
			o, x, x,
		}

		assert.Equal(t, entity.NoPlayer, CheckWinner(board))
	})

	t.Run("Mixed line is not a win", func(t *testing.T) {
		board := entity.Board{x, x, o}

		assert.Equal(t, entity.NoPlayer, CheckWinner(board))
	})

	t.Run("First complete line wins on an impossible board", func(t *testing.T) {
		// Given: column 0 is X and column 2 is O
		board := entity.Board{
			x, e, o,
			x, e, o,
			x, e, o,
		}

		// Then: column 0 is checked first
		assert.Equal(t, x, CheckWinner(board))

		// And: swapping the columns swaps the answer
		board = entity.Board{
			o, e, x,
			o, e, x,
			o, e, x,
		}
		assert.Equal(t, o, CheckWinner(board))
	})

	t.Run("Repeated checks agree", func(t *testing.T) {
		board := entity.Board{
			o, x, e,
			x, o, e,
			e, x, o,
		}

		first := CheckWinner(board)
		second := CheckWinner(board)

		assert.Equal(t, o, first)
		assert.Equal(t, first, second)
	})
}

func TestNewGameState(t *testing.T) {
	// Given: a board already won by O
	board := entity.Board{
		o, o, o,
		x, x, e,
		x, e, e,
	}

	// When: building the state
	state := NewGameState(board, x, x)

	// Then: the winner is computed on construction
	assert.Equal(t, o, state.Winner)
	assert.True(t, state.IsOver())
}

func TestGameState_OpenSquares(t *testing.T) {
	t.Run("Ascending empty squares", func(t *testing.T) {
		state := NewGameState(entity.Board{
			x, e, o,
			e, x, e,
			o, e, e,
		}, o, o)

		moves := state.OpenSquares()

		squares := make([]int, 0, len(moves))
		for _, m := range moves {
			squares = append(squares, m.Square)
		}
		assert.Equal(t, []int{1, 3, 5, 7, 8}, squares)
	})

	t.Run("Empty board has nine moves", func(t *testing.T) {
		state := NewGameState(entity.Board{}, x, x)

		assert.Len(t, state.OpenSquares(), entity.BoardSize)
	})

	t.Run("Full board has none", func(t *testing.T) {
		state := NewGameState(entity.Board{
			x, o, x,
			x, o, o,
			o, x, x,
		}, o, x)

		assert.Empty(t, state.OpenSquares())
	})
}

func TestGameState_WithMove(t *testing.T) {
	t.Run("Places the mark and flips the turn", func(t *testing.T) {
		// Given: an empty board with X to move
		parent := NewGameState(entity.Board{}, x, x)

		// When: X plays the centre
		child := parent.WithMove(4)

		// Then: the child has the mark and O is next
		assert.Equal(t, x, child.Board[4])
		assert.Equal(t, o, child.NextPlayer)
		assert.Equal(t, entity.NoPlayer, child.Winner)
		assert.Equal(t, x, child.ComputerPlayer)
	})

	t.Run("Parent is left untouched", func(t *testing.T) {
		// Given: a mid-game position
		parent := NewGameState(entity.Board{
			x, e, e,
			e, o, e,
			e, e, e,
		}, x, x)
		before := parent.Board

		// When: deriving children from it
		_ = parent.WithMove(1)
		_ = parent.WithMove(8)

		// Then: the parent board and turn are unchanged
		assert.Equal(t, before, parent.Board)
		assert.Equal(t, x, parent.NextPlayer)
	})

	t.Run("Winning move sets the winner", func(t *testing.T) {
		parent := NewGameState(entity.Board{
			x, x, e,
			o, o, e,
			e, e, e,
		}, x, x)

		child := parent.WithMove(2)

		require.True(t, child.HasWinner())
		assert.Equal(t, x, child.Winner)
	})
}

func TestGameState_String(t *testing.T) {
	state := NewGameState(entity.Board{
		x, e, o,
		e, x, e,
		e, e, o,
	}, x, x)

	expected := "" +
		" X | . | O \n" +
		"---|---|---\n" +
		" . | X | . \n" +
		"---|---|---\n" +
		" . | . | O \n"

	assert.Equal(t, expected, state.String())
}
