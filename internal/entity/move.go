package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// MoveRequest is a position submitted by a caller that wants the engine to move.
// ComputerPlayer is optional and resolved by the service when empty.
type MoveRequest struct {
	Board          Board  `json:"board"`
	NextPlayer     Player `json:"next_player"`
	ComputerPlayer Player `json:"computer_player,omitempty"`
}

// Validate - checks the marks only; the position itself is trusted.
func (that *MoveRequest) Validate() error {
	if !that.NextPlayer.IsValid() {
		return fmt.Errorf("next_player: %w: %q", apperror.ErrInvalidPlayer, that.NextPlayer)
	}

	if that.ComputerPlayer != NoPlayer && !that.ComputerPlayer.IsValid() {
		return fmt.Errorf("computer_player: %w: %q", apperror.ErrInvalidPlayer, that.ComputerPlayer)
	}

	return nil
}

// UnmarshalJSON - board is required; a missing or null board is rejected.
func (that *MoveRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Board          *Board `json:"board"`
		NextPlayer     Player `json:"next_player"`
		ComputerPlayer Player `json:"computer_player"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Board == nil {
		return fmt.Errorf("board: %w: missing", apperror.ErrInvalidBoard)
	}

	*that = MoveRequest{
		Board:          *raw.Board,
		NextPlayer:     raw.NextPlayer,
		ComputerPlayer: raw.ComputerPlayer,
	}

	return nil
}
