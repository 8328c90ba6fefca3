package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// Result is the outcome of a position for the computer player. Loss < Tie < Win.
type Result int

const (
	Loss Result = -1
	Tie  Result = 0
	Win  Result = 1
)

func (that Result) String() string {
	switch that {
	case Loss:
		return "loss"
	case Tie:
		return "tie"
	case Win:
		return "win"
	default:
		return "unknown"
	}
}

// Rand is the random source used for tie-breaking. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Minimax - best reachable outcome for state.ComputerPlayer when both sides play perfectly.
// The search is exhaustive; depth is bounded by the number of empty squares.
func Minimax(state GameState) Result {
	if state.HasWinner() {
		if state.Winner == state.ComputerPlayer {
			return Win
		}
		return Loss
	}

	maximize := state.NextPlayer == state.ComputerPlayer

	found := false
	var best Result

	for square, cell := range state.Board {
		if cell != entity.NoPlayer {
			continue
		}

		result := Minimax(state.WithMove(square))

		switch {
		case !found:
			best, found = result, true
		case maximize && result > best:
			best = result
		case !maximize && result < best:
			best = result
		}
	}

	// board is full and nobody won
	if !found {
		return Tie
	}

	return best
}

// BestMoves - all open squares that reach the best outcome for the computer player,
// in ascending index order. Empty when the board is full.
func BestMoves(state GameState) []entity.Selection {
	bestSoFar := Loss
	var winningMoves []entity.Selection

	for _, move := range state.OpenSquares() {
		result := Minimax(state.WithMove(move.Square))

		switch {
		case result > bestSoFar:
			bestSoFar = result
			winningMoves = []entity.Selection{move}
		case result == bestSoFar:
			winningMoves = append(winningMoves, move)
		}
	}

	return winningMoves
}

// Choose - picks one of moves uniformly. Returns false when moves is empty.
func Choose(moves []entity.Selection, rng Rand) (entity.Selection, bool) {
	if len(moves) == 0 {
		return entity.Selection{}, false
	}

	return moves[rng.IntN(len(moves))], true
}

// RandomMove - one of the best moves, chosen at random so games with the same
// opening do not repeat. Returns false when no square is open.
func RandomMove(state GameState, rng Rand) (entity.Selection, bool) {
	return Choose(BestMoves(state), rng)
}

// SelfPlay - lets the engine play both sides from state until the game is over.
// Each move is searched from the point of view of the player making it.
func SelfPlay(state GameState, rng Rand) GameState {
	for !state.IsOver() {
		state.ComputerPlayer = state.NextPlayer

		move, ok := RandomMove(state, rng)
		if !ok {
			break
		}

		state = state.WithMove(move.Square)
	}

	return state
}
