package apperror

import "errors"

var (
	ErrInvalidPlayer = errors.New("invalid player mark")
	ErrInvalidBoard  = errors.New("board must have exactly 9 cells")
	ErrInvalidCell   = errors.New("invalid cell value")
	ErrCacheMiss     = errors.New("cache miss")
)
