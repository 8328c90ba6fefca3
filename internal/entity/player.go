package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Player is the mark a player puts on the board. NoPlayer marks an empty cell.
type Player string

const (
	PlayerX  Player = "X"
	PlayerO  Player = "O"
	NoPlayer Player = ""
)

// ParsePlayer - converts "X" or "O" (any case) into a Player.
func ParsePlayer(mark string) (Player, error) {
	switch strings.ToUpper(strings.TrimSpace(mark)) {
	case string(PlayerX):
		return PlayerX, nil
	case string(PlayerO):
		return PlayerO, nil
	default:
		return NoPlayer, fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, mark)
	}
}

// Opponent - returns the other player. NoPlayer has no opponent.
func (that Player) Opponent() Player {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return NoPlayer
	}
}

func (that Player) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

func (that *Player) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var mark string
	if err := json.Unmarshal(data, &mark); err != nil {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidPlayer, data)
	}

	// wire marks are exact, unlike ParsePlayer
	switch player := Player(mark); player {
	case PlayerX, PlayerO:
		*that = player
		return nil
	default:
		return fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, mark)
	}
}
