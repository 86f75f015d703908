package httpserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"chessai/internal/chess"
	"chessai/internal/server/game"
	"chessai/internal/storage"
)

// StatsSource 提供历史对局统计；没有配置存储时为 nil
type StatsSource interface {
	Stats() (storage.Stats, error)
}

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games *game.Manager
	stats StatsSource
}

func NewHandler(games *game.Manager, stats StatsSource) *Handler {
	return &Handler{games: games, stats: stats}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var handle func(http.ResponseWriter, *http.Request)
	switch r.URL.Path {
	case "/api/new_game":
		handle = h.handleNewGame
	case "/api/state":
		handle = h.handleState
	case "/api/play":
		handle = h.handlePlay
	case "/api/undo":
		handle = h.handleUndo
	case "/api/ai_move":
		handle = h.handleAiMove
	case "/api/stats":
		handle = h.handleStats
	default:
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	handle(w, r)
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.games.NewGameFrom(game.Mode(req.Mode), req.Placement)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("new game %s (%s)", s.ID, s.Mode)
	writeJSON(w, stateToDTO(s))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.games.State(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stateToDTO(s))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !decode(w, r, &req) {
		return
	}
	mv, err := dtoToMove(req.Move)
	if err != nil {
		writeError(w, err)
		return
	}
	s, err := h.games.Play(req.GameID, mv)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stateToDTO(s))
}

func (h *Handler) handleUndo(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.games.Undo(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stateToDTO(s))
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if !decode(w, r, &req) {
		return
	}
	s, res, err := h.games.AIMove(req.GameID, req.MaxDepth)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("game %s: ai played %v depth=%d score=%d nodes=%d time=%v",
		s.ID, res.BestMove, res.Depth, res.Score, res.Nodes, res.TimeUsed)
	writeJSON(w, aiMoveToDTO(s, res))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{LiveGames: h.games.Len()}
	if h.stats != nil {
		st, err := h.stats.Stats()
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Games, resp.WhiteWins, resp.BlackWins, resp.Draws = st.Games, st.WhiteWins, st.BlackWins, st.Draws
	}
	writeJSON(w, resp)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, chess.ErrGameOver), errors.Is(err, game.ErrNotYourTurn):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, chess.ErrIllegalMove),
		errors.Is(err, chess.ErrInvalidSquare),
		errors.Is(err, chess.ErrInvalidFEN),
		errors.Is(err, chess.ErrInvalidPlacement),
		errors.Is(err, game.ErrInvalidMode),
		errors.Is(err, game.ErrDepthTooDeep):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Println("internal error:", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}
