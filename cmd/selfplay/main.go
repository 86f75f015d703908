package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"chessai/internal/storage"
)

func main() {
	totalGames := flag.Int("games", 4, "number of games to play")
	whiteDepth := flag.Int("white-depth", 2, "search depth for the first configuration")
	blackDepth := flag.Int("black-depth", 3, "search depth for the second configuration")
	maxMoves := flag.Int("maxmoves", 300, "max plies per game before calling it a draw")
	opening := flag.Int("opening", 4, "random plies played before the engines take over")
	parallel := flag.Int("parallel", runtime.NumCPU(), "games played at once")
	dbDir := flag.String("db", "", "badger directory to record results in (empty = don't record)")
	timeout := flag.Duration("timeout", 0, "stop everything after this long (0 = no limit)")
	flag.Parse()

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	var store *storage.Storage
	if *dbDir != "" {
		var err error
		if store, err = storage.Open(*dbDir); err != nil {
			log.Fatalf("Failed to open result store: %v", err)
		}
		defer store.Close()
	}

	playerA := PlayerConfig{Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *whiteDepth), Depth: *whiteDepth}
	playerB := PlayerConfig{Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *blackDepth), Depth: *blackDepth}

	// 每盘棋一个 goroutine，一个棋盘
	results := make([]GameOutcome, *totalGames)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(*parallel)
	for i := 0; i < *totalGames; i++ {
		i := i
		white, black := playerA, playerB
		if i%2 == 1 {
			white, black = playerB, playerA
		}
		g.Go(func() error {
			start := time.Now()
			out, err := playGame(ctx, white, black, *maxMoves, *opening, int64(i))
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = out
			log.Printf("game %d: White [%s] vs Black [%s]: %s by %s after %d plies (%v)",
				i+1, white.Name, black.Name, out.Outcome, out.Reason, out.Plies, time.Since(start))
			if store != nil {
				return store.RecordResult(storage.GameResult{
					GameID:  uuid.NewString(),
					Mode:    "selfplay",
					Outcome: out.Outcome,
					Reason:  out.Reason,
					Moves:   out.Plies,
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("selfplay: %v", err)
	}

	aWins, bWins, draws := 0, 0, 0
	for i, out := range results {
		aIsWhite := i%2 == 0
		switch {
		case out.Outcome == storage.OutcomeDraw:
			draws++
		case (out.Outcome == storage.OutcomeWhiteWins) == aIsWhite:
			aWins++
		default:
			bWins++
		}
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", playerA.Name, aWins)
	fmt.Printf("%s: %d\n", playerB.Name, bWins)
	fmt.Printf("Draws: %d\n", draws)
	if store != nil {
		if st, err := store.Stats(); err == nil {
			fmt.Printf("Recorded so far: %d games (white %d, black %d, draws %d)\n", st.Games, st.WhiteWins, st.BlackWins, st.Draws)
		}
	}
}
