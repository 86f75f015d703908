package game

import (
	"sync"
	"time"

	"chessai/internal/chess"
)

type Mode string

const (
	ModeHumanVsHuman    Mode = "hvh"
	ModeHumanVsComputer Mode = "hvc" // 电脑执黑
)

func (m Mode) valid() bool {
	return m == ModeHumanVsHuman || m == ModeHumanVsComputer
}

type GameState struct {
	ID        string
	Mode      Mode
	Board     *chess.Board
	CreatedAt time.Time
	UpdatedAt time.Time

	mu       sync.Mutex // 保护 Board；搜索期间一直持有
	recorded bool
}

// Status 是对外展示的对局状态
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
	StatusPromotion Status = "promotion"
)

// Snapshot is a copy of a game's observable state taken under its lock.
type Snapshot struct {
	ID               string
	Mode             Mode
	Placement        string
	CurrentPlayer    chess.Player
	Status           Status
	Check            bool
	Checkmate        bool
	Stalemate        bool
	PendingPromotion bool
	LegalMoves       []chess.Move
	LastMove         *chess.Move
	MoveCount        int
	Value            int
	Weight           int
	UpdatedAt        time.Time
}

func statusOf(b *chess.Board) Status {
	switch {
	case b.IsCheckmate():
		return StatusCheckmate
	case b.IsStalemate():
		return StatusStalemate
	case b.PendingPromotion():
		return StatusPromotion
	case b.IsCheck():
		return StatusCheck
	default:
		return StatusOngoing
	}
}

// snapshot 调用方必须持有 g.mu
func (g *GameState) snapshot() Snapshot {
	b := g.Board
	s := Snapshot{
		ID:               g.ID,
		Mode:             g.Mode,
		Placement:        b.Encode(),
		CurrentPlayer:    b.CurrentPlayer(),
		Status:           statusOf(b),
		Check:            b.IsCheck(),
		Checkmate:        b.IsCheckmate(),
		Stalemate:        b.IsStalemate(),
		PendingPromotion: b.PendingPromotion(),
		LegalMoves:       b.GetPossibleMoves(),
		MoveCount:        b.MoveCount(),
		Value:            b.Value(),
		Weight:           b.Weight(),
		UpdatedAt:        g.UpdatedAt,
	}
	if last, ok := b.LastMove(); ok {
		s.LastMove = &last
	}
	return s
}
