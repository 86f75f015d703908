package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"chessai/internal/chess"
)

func main() {
	placement := flag.String("fen", chess.StartPlacement, "placement string")
	depth := flag.Int("perft", 3, "perft depth")
	flag.Parse()

	b, err := chess.NewBoardFromPlacement(*placement)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(b)
	fmt.Println("FEN:", b.Encode())
	moves := b.GetPossibleMoves()
	fmt.Println("Legal moves:", len(moves), moves)
	fmt.Println("Value:", b.Value(), "Weight:", b.Weight())

	for d := 1; d <= *depth; d++ {
		start := time.Now()
		n := b.Perft(d)
		fmt.Printf("perft(%d) = %d  (%v)\n", d, n, time.Since(start))
	}
}
