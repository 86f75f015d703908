package mobile

import (
	"log"
	"net/http"

	"chessai/internal/server/game"
	httpserver "chessai/internal/server/http"
	"chessai/internal/storage"
)

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// dbDir: directory for the result store, empty keeps results in memory
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, dbDir string, port string) {
	var store *storage.Storage
	var err error
	if dbDir == "" {
		store, err = storage.OpenInMemory()
	} else {
		store, err = storage.Open(dbDir)
	}
	if err != nil {
		log.Printf("Failed to open result store: %v", err)
		return
	}

	mgr := game.NewManager(game.Options{Recorder: store})
	h := httpserver.NewHandler(mgr, store)

	// Run in background so it doesn't block the Android UI thread
	go func() {
		defer store.Close()
		if err := http.ListenAndServe("127.0.0.1:"+port, httpserver.NewRouter(h, webDir)); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
