package game

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"chessai/internal/chess"
	"chessai/internal/engine"
	"chessai/internal/storage"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrInvalidMode  = errors.New("invalid game mode")
	ErrNotYourTurn  = errors.New("not this player's turn")
	ErrDepthTooDeep = errors.New("search depth exceeds limit")
)

// DefaultMaxDepth 是单次 AI 搜索允许的最大深度
const DefaultMaxDepth = 5

// ResultRecorder receives every finished game once.
type ResultRecorder interface {
	RecordResult(storage.GameResult) error
}

type Options struct {
	Depth    int            // AI 默认搜索深度
	MaxDepth int            // 请求深度上限；<=0 时取 DefaultMaxDepth
	Recorder ResultRecorder // 可以为 nil
}

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState

	engine   *engine.Engine
	maxDepth int
	recorder ResultRecorder
}

func NewManager(opts Options) *Manager {
	eng := engine.NewEngine(engine.SearchConfig{MaxDepth: opts.Depth})
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	// 默认深度本身必须可用
	if d := eng.Config().MaxDepth; d > maxDepth {
		maxDepth = d
	}
	return &Manager{
		games:    make(map[string]*GameState),
		engine:   eng,
		maxDepth: maxDepth,
		recorder: opts.Recorder,
	}
}

// MaxDepth returns the deepest search AIMove accepts.
func (m *Manager) MaxDepth() int { return m.maxDepth }

func (m *Manager) NewGame(mode Mode) (Snapshot, error) {
	return m.NewGameFrom(mode, "")
}

// NewGameFrom starts a game from a placement string; an empty string means
// the standard starting position.
func (m *Manager) NewGameFrom(mode Mode, placement string) (Snapshot, error) {
	if mode == "" {
		mode = ModeHumanVsComputer
	}
	if !mode.valid() {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	board := chess.NewBoard()
	if placement != "" {
		var err error
		if board, err = chess.NewBoardFromPlacement(placement); err != nil {
			return Snapshot{}, err
		}
	}

	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		Mode:      mode,
		Board:     board,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot(), nil
}

func (m *Manager) get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

// Len returns the number of live games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

func (m *Manager) State(id string) (Snapshot, error) {
	g, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot(), nil
}

// Play applies a human move. Only the squares (or, for a promotion, the
// square and the requested piece) have to match a legal move.
func (m *Manager) Play(id string, mv chess.Move) (Snapshot, error) {
	g, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Mode == ModeHumanVsComputer && g.Board.CurrentPlayer() == chess.Player2 && !g.Board.IsFinished() {
		return Snapshot{}, ErrNotYourTurn
	}
	if _, err := g.Board.Play(mv); err != nil {
		return Snapshot{}, err
	}
	g.UpdatedAt = time.Now()
	m.recordIfFinished(g)
	return g.snapshot(), nil
}

// Undo takes back one move. If that leaves a promotion waiting for its
// choice, the pawn move is taken back as well.
func (m *Manager) Undo(id string) (Snapshot, error) {
	g, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Board.UndoLastMove()
	if g.Board.PendingPromotion() {
		g.Board.UndoLastMove()
	}
	g.UpdatedAt = time.Now()
	return g.snapshot(), nil
}

// AIMove searches for the current player's best move and plays it. A pawn
// reaching the back rank is promoted by a second search. depth <= 0 uses
// the manager's default depth; anything above MaxDepth is rejected with
// ErrDepthTooDeep. In human-vs-computer games the engine only moves for
// player 2.
func (m *Manager) AIMove(id string, depth int) (Snapshot, engine.SearchResult, error) {
	if depth > m.maxDepth {
		return Snapshot{}, engine.SearchResult{}, fmt.Errorf("%w: %d > %d", ErrDepthTooDeep, depth, m.maxDepth)
	}
	g, err := m.get(id)
	if err != nil {
		return Snapshot{}, engine.SearchResult{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Board.IsFinished() {
		return Snapshot{}, engine.SearchResult{}, chess.ErrGameOver
	}
	if g.Mode == ModeHumanVsComputer && g.Board.CurrentPlayer() == chess.Player1 {
		return Snapshot{}, engine.SearchResult{}, ErrNotYourTurn
	}
	res := m.engine.SearchDepth(g.Board, depth)
	if !res.Found {
		return Snapshot{}, res, chess.ErrGameOver
	}
	g.Board.ApplyMove(res.BestMove)
	if g.Board.PendingPromotion() {
		promo := m.engine.SearchDepth(g.Board, depth)
		g.Board.ApplyMove(promo.BestMove)
		res.Nodes += promo.Nodes
		res.TimeUsed += promo.TimeUsed
	}
	g.UpdatedAt = time.Now()
	m.recordIfFinished(g)
	return g.snapshot(), res, nil
}

// recordIfFinished 调用方必须持有 g.mu
func (m *Manager) recordIfFinished(g *GameState) {
	if m.recorder == nil || g.recorded || !g.Board.IsFinished() {
		return
	}
	r := storage.GameResult{
		GameID:     g.ID,
		Mode:       string(g.Mode),
		Moves:      g.Board.MoveCount(),
		FinishedAt: g.UpdatedAt,
	}
	if g.Board.IsCheckmate() {
		r.Reason = "checkmate"
		r.Outcome = storage.OutcomeWhiteWins
		if g.Board.CurrentPlayer() == chess.Player1 {
			r.Outcome = storage.OutcomeBlackWins
		}
	} else {
		r.Reason = "stalemate"
		r.Outcome = storage.OutcomeDraw
	}
	if err := m.recorder.RecordResult(r); err != nil {
		log.Printf("record result for game %s: %v", g.ID, err)
		return
	}
	g.recorded = true
}
