package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dart01/server/internal/api"
	"github.com/dart01/server/internal/config"
	"github.com/dart01/server/internal/game"
	"github.com/dart01/server/internal/lobby"
	"github.com/dart01/server/internal/websocket"
)

func main() {
	cfg := config.Load()

	hub := websocket.NewHub()
	go hub.Run()

	gameMgr := game.NewManager()
	lobbyMgr := lobby.NewManager()
	matchHandler := api.NewMatchHandler(gameMgr, lobbyMgr)

	deps := websocket.ServerDeps{
		Lobby: lobbyMgr,
		Games: gameMgr,
	}

	router := mux.NewRouter()

	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		websocket.ServeWs(hub, deps, w, r)
	})

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.Use(corsMiddleware(cfg.CORSOrigin))

	matchHandler.RegisterRoutes(router)

	log.Printf("dart01 server starting on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}

func corsMiddleware(origin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
