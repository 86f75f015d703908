package main

import (
	"flag"
	"io"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"chessai/internal/server/game"
	httpserver "chessai/internal/server/http"
	"chessai/internal/storage"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞，不关心错误（某些服务器环境可能无图形界面）
}

func main() {
	addr := flag.String("addr", ":2888", "listen address")
	webDir := flag.String("web", "./web", "directory with index.html / js / svg")
	dbDir := flag.String("db", "", "badger directory for game results (empty = in memory)")
	depth := flag.Int("depth", 3, "default AI search depth")
	maxDepth := flag.Int("max-depth", game.DefaultMaxDepth, "deepest search a client may request")
	browser := flag.Bool("open", true, "open the default browser")
	flag.Parse()

	var store *storage.Storage
	var err error
	if *dbDir == "" {
		store, err = storage.OpenInMemory()
	} else {
		store, err = storage.Open(*dbDir)
	}
	if err != nil {
		log.Fatalf("Failed to open result store: %v", err)
	}

	mgr := game.NewManager(game.Options{Depth: *depth, MaxDepth: *maxDepth, Recorder: store})
	h := httpserver.NewHandler(mgr, store)

	log.Printf("listening on %s, serving static from %s, depth %d (max %d)", *addr, *webDir, *depth, mgr.MaxDepth())

	// 延迟 100ms 打开默认浏览器，否则可能服务器未启动完成
	if *browser {
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr + "/web/")
		}()
	}

	if err := serve(*addr, httpserver.NewRouter(h, *webDir), store); err != nil {
		log.Fatal(err)
	}
}

// serve 阻塞直到服务器退出，返回前关闭结果存储（log.Fatal 不会执行 defer）
func serve(addr string, handler http.Handler, store io.Closer) error {
	err := http.ListenAndServe(addr, handler)
	if cerr := store.Close(); cerr != nil {
		log.Printf("close result store: %v", cerr)
	}
	return err
}
