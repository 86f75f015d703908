package httpserver

import (
	"fmt"
	"strings"

	"chessai/internal/chess"
	"chessai/internal/engine"
	"chessai/internal/server/game"
)

// 前端用的格子：row 0 是黑方底线
type SquareDTO struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// 前端用的招法结构。升变时 end 无意义，promotion 填 queen/knight/bishop/rook
type MoveDTO struct {
	Start     SquareDTO `json:"start"`
	End       SquareDTO `json:"end"`
	Kind      string    `json:"kind,omitempty"`
	Promotion string    `json:"promotion,omitempty"`
	Notation  string    `json:"notation,omitempty"`
}

// NewGame 请求；placement 为空时从标准开局开始
type NewGameRequest struct {
	Mode      string `json:"mode"` // "hvh" / "hvc"
	Placement string `json:"placement"`
}

// State / Undo 请求
type StateRequest struct {
	GameID string `json:"game_id"`
}

// Play 请求
type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

// AiMoveRequest 请求让 AI 为当前局面走一步
type AiMoveRequest struct {
	GameID   string `json:"game_id"`
	MaxDepth int    `json:"max_depth"`
}

// 所有对局接口都返回这个结构
type StateResponse struct {
	GameID           string    `json:"game_id"`
	Mode             string    `json:"mode"`
	Position         string    `json:"position"` // placement 字符串
	ToMove           int       `json:"to_move"`  // 1=白, 2=黑
	Status           string    `json:"status"`   // ongoing / check / checkmate / stalemate / promotion
	Check            bool      `json:"check"`
	Checkmate        bool      `json:"checkmate"`
	Stalemate        bool      `json:"stalemate"`
	PendingPromotion bool      `json:"pending_promotion"`
	LegalMoves       []MoveDTO `json:"legal_moves"`
	LastMove         *MoveDTO  `json:"last_move,omitempty"`
	MoveCount        int       `json:"move_count"`
	Value            int       `json:"value"`
	Weight           int       `json:"weight"`
}

type AiMoveResponse struct {
	StateResponse
	BestMove MoveDTO `json:"best_move"`
	Score    int     `json:"score"`
	Depth    int     `json:"depth"`
	Nodes    int64   `json:"nodes"`
	TimeMs   int64   `json:"time_ms"`
}

type StatsResponse struct {
	LiveGames int `json:"live_games"`
	Games     int `json:"games"`
	WhiteWins int `json:"white_wins"`
	BlackWins int `json:"black_wins"`
	Draws     int `json:"draws"`
}

var promotionNames = map[string]chess.PieceType{
	"queen":  chess.Queen,
	"knight": chess.Knight,
	"bishop": chess.Bishop,
	"rook":   chess.RookFromPromotion,
}

func promotionName(t chess.PieceType) string {
	for name, pt := range promotionNames {
		if pt == t {
			return name
		}
	}
	return ""
}

func squareToDTO(s chess.Square) SquareDTO { return SquareDTO{Row: s.Row, Col: s.Col} }

func dtoToSquare(s SquareDTO) chess.Square { return chess.Sq(s.Row, s.Col) }

// dtoToMove 只需要起点终点；招法类型由合法着法决定
func dtoToMove(m MoveDTO) (chess.Move, error) {
	start := dtoToSquare(m.Start)
	if !start.InBounds() {
		return chess.Move{}, fmt.Errorf("%w: start %v", chess.ErrInvalidSquare, m.Start)
	}
	if m.Promotion != "" {
		pt, ok := promotionNames[strings.ToLower(m.Promotion)]
		if !ok {
			return chess.Move{}, fmt.Errorf("%w: unknown promotion %q", chess.ErrIllegalMove, m.Promotion)
		}
		return chess.NewPromotion(start, pt), nil
	}
	end := dtoToSquare(m.End)
	if !end.InBounds() {
		return chess.Move{}, fmt.Errorf("%w: end %v", chess.ErrInvalidSquare, m.End)
	}
	return chess.NewMove(start, end), nil
}

func moveToDTO(m chess.Move) MoveDTO {
	d := MoveDTO{
		Start:    squareToDTO(m.Start),
		End:      squareToDTO(m.End),
		Kind:     m.Kind.String(),
		Notation: m.String(),
	}
	if m.Kind == chess.PawnPromote {
		d.End = d.Start
		d.Promotion = promotionName(m.Promotion())
	}
	return d
}

func movesToDTO(ms []chess.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func stateToDTO(s game.Snapshot) StateResponse {
	resp := StateResponse{
		GameID:           s.ID,
		Mode:             string(s.Mode),
		Position:         s.Placement,
		ToMove:           int(s.CurrentPlayer),
		Status:           string(s.Status),
		Check:            s.Check,
		Checkmate:        s.Checkmate,
		Stalemate:        s.Stalemate,
		PendingPromotion: s.PendingPromotion,
		LegalMoves:       movesToDTO(s.LegalMoves),
		MoveCount:        s.MoveCount,
		Value:            s.Value,
		Weight:           s.Weight,
	}
	if s.LastMove != nil {
		last := moveToDTO(*s.LastMove)
		resp.LastMove = &last
	}
	return resp
}

func aiMoveToDTO(s game.Snapshot, res engine.SearchResult) AiMoveResponse {
	return AiMoveResponse{
		StateResponse: stateToDTO(s),
		BestMove:      moveToDTO(res.BestMove),
		Score:         res.Score,
		Depth:         res.Depth,
		Nodes:         res.Nodes,
		TimeMs:        res.TimeUsed.Milliseconds(),
	}
}
