package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lab1702/skirmish-web/ai"
	"github.com/lab1702/skirmish-web/game"
	"github.com/lab1702/skirmish-web/server"
)

//go:embed static/*
var staticFiles embed.FS

func main() {
	port := flag.String("port", "8080", "Server port")
	configPath := flag.String("config", "", "Path to an AI tuning YAML file")
	botsPerTeam := flag.Int("bots", 3, "Bots spawned per team at startup")
	flag.Parse()

	cfg := ai.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = ai.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Loading AI config: %v", err)
		}
	}

	log.Printf("Starting Skirmish Web Server on port %s", *port)

	gameServer := server.NewServer(cfg)
	go gameServer.Run()

	classes := []game.ShipClass{game.ClassInterceptor, game.ClassCorvette, game.ClassGunship}
	for i := 0; i < *botsPerTeam; i++ {
		gameServer.AddBot(game.TeamRed, classes[i%len(classes)])
		gameServer.AddBot(game.TeamBlue, classes[i%len(classes)])
	}

	// Serve static files from the static subdirectory
	fsys, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatal(err)
	}
	http.Handle("/", http.FileServer(http.FS(fsys)))

	// WebSocket endpoint
	http.HandleFunc("/ws", gameServer.HandleWebSocket)

	// Team stats endpoint
	http.HandleFunc("/api/teams", gameServer.HandleStats)

	// Health check endpoint
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:         ":" + *port,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Server running at http://localhost:%s", *port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Printf("Shutting down server (signal: %v)...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	gameServer.Shutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	os.Exit(0)
}
