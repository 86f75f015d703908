package chess

import "errors"

var (
	ErrInvalidSquare    = errors.New("chess: invalid square")
	ErrInvalidPlacement = errors.New("chess: invalid placement")
	ErrIllegalMove      = errors.New("chess: illegal move")
	ErrGameOver         = errors.New("chess: game is over")
	ErrInvalidFEN       = errors.New("chess: invalid placement string")
)
