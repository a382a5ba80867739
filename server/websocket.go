package server

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lab1702/skirmish-web/ai"
	"github.com/lab1702/skirmish-web/game"
)

// Message types
const (
	MsgTypeJoin     = "join"
	MsgTypeSpectate = "spectate"
	MsgTypeQuit     = "quit"
	MsgTypeJoined   = "joined"
	MsgTypeState    = "state"
	MsgTypeInfo     = "info"
	MsgTypeError    = "error"
)

// isValidOrigin checks the Origin header against the request host. Requests
// with no Origin header (same-origin or non-browser clients) are allowed.
func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	CheckOrigin:       isValidOrigin,
	EnableCompression: true,
}

// ClientMessage is a message received from a client
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ServerMessage is a message sent to clients
type ServerMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Client represents a connected websocket client
type Client struct {
	ID     int
	ShipID int // -1 while spectating
	conn   *websocket.Conn
	send   chan ServerMessage
	server *Server
}

// Server owns the arena state and all connected clients. One mutex guards
// the game state; the simulation tick and the websocket handlers take it
// around every access so the per-ship agents never need their own locking.
type Server struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan ServerMessage
	done       chan struct{}
	stopOnce   sync.Once

	state  *game.GameState
	agents [game.MaxShips]*ai.Agent
	cfg    *ai.Config
	rng    *rand.Rand

	nextClientID   int
	nextBoltID     int
	nextMissileID  int
	nextAsteroidID int
}

// NewServer creates a game server with a seeded arena
func NewServer(cfg *ai.Config) *Server {
	s := &Server{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan ServerMessage, 64),
		done:       make(chan struct{}),
		state:      game.NewGameState(),
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.spawnAsteroids(8)
	return s
}

// Run is the server's main loop, handling client lifecycle and broadcasts
func (s *Server) Run() {
	go s.gameLoop()

	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.clients[client] = true
			s.mu.Unlock()
			log.Printf("Client %d connected", client.ID)

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
				if client.ShipID >= 0 {
					s.releaseShip(client.ShipID)
				}
			}
			s.mu.Unlock()
			log.Printf("Client %d disconnected", client.ID)

		case message := <-s.broadcast:
			s.mu.RLock()
			for client := range s.clients {
				select {
				case client.send <- message:
				default:
					// Slow client, drop the frame rather than block the loop
				}
			}
			s.mu.RUnlock()

		case <-s.done:
			return
		}
	}
}

// Shutdown stops the game loop and the run loop
func (s *Server) Shutdown() {
	s.stopOnce.Do(func() { close(s.done) })
}

// gameLoop advances the simulation at the fixed tick rate
func (s *Server) gameLoop() {
	ticker := time.NewTicker(game.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			s.updateGame()
			s.mu.Unlock()
			s.sendGameState()
		case <-s.done:
			return
		}
	}
}

// updateGame runs one full simulation tick. Agents decide sequentially, then
// physics, projectiles and asteroids advance, then respawn timers run.
func (s *Server) updateGame() {
	s.state.Tick++
	now := float64(s.state.Tick) / game.TickRate
	dt := 1.0 / game.TickRate

	s.updateAgents(now, dt)

	for _, sh := range s.state.Ships {
		s.updateShipPhysics(sh, dt)
		s.updateShipSystems(sh, dt)
	}

	s.updateBolts(dt)
	s.updateMissiles(dt)
	s.updateAsteroids(dt)
	s.updateRespawns()
}

// sendGameState broadcasts a state snapshot to every client
func (s *Server) sendGameState() {
	s.mu.RLock()

	ships := make([]*game.Ship, 0, len(s.state.Ships))
	for _, sh := range s.state.Ships {
		if sh.Status != game.StatusFree {
			ships = append(ships, sh)
		}
	}
	asteroids := make([]*game.Asteroid, 0, len(s.state.Asteroids))
	for _, a := range s.state.Asteroids {
		if a.Alive {
			asteroids = append(asteroids, a)
		}
	}
	bolts := make([]*game.LaserBolt, 0, len(s.state.Bolts))
	for _, b := range s.state.Bolts {
		if b.Alive {
			bolts = append(bolts, b)
		}
	}
	missiles := make([]*game.Missile, 0, len(s.state.Missiles))
	for _, m := range s.state.Missiles {
		if m.Alive {
			missiles = append(missiles, m)
		}
	}

	update := struct {
		Tick      uint64            `json:"tick"`
		Ships     []*game.Ship      `json:"ships"`
		Asteroids []*game.Asteroid  `json:"asteroids"`
		Bolts     []*game.LaserBolt `json:"bolts"`
		Missiles  []*game.Missile   `json:"missiles"`
	}{
		Tick:      s.state.Tick,
		Ships:     ships,
		Asteroids: asteroids,
		Bolts:     bolts,
		Missiles:  missiles,
	}

	s.mu.RUnlock()

	s.broadcast <- ServerMessage{Type: MsgTypeState, Data: update}
}

// HandleStats returns current team populations
func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")

	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int{"red": 0, "blue": 0}
	total := 0
	for _, sh := range s.state.Ships {
		if sh.Status == game.StatusFree {
			continue
		}
		total++
		switch sh.Team {
		case game.TeamRed:
			counts["red"]++
		case game.TeamBlue:
			counts["blue"]++
		}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": total,
		"teams": counts,
	})
}

// HandleWebSocket upgrades an HTTP request to a websocket client
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	s.mu.Lock()
	clientID := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	client := &Client{
		ID:     clientID,
		ShipID: -1,
		conn:   conn,
		send:   make(chan ServerMessage, 256),
		server: s,
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump handles incoming messages from the client
func (c *Client) readPump() {
	defer func() {
		c.server.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var msg ClientMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.handleMessage(msg)
	}
}

// writePump sends messages to the client
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes a message from the client
func (c *Client) handleMessage(msg ClientMessage) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in handleMessage for client %d, type %s: %v", c.ID, msg.Type, r)
		}
	}()

	switch msg.Type {
	case MsgTypeJoin:
		c.handleJoin(msg.Data)
	case MsgTypeSpectate:
		// Spectators just receive the state broadcast; nothing to set up
	case MsgTypeQuit:
		c.handleQuit()
	default:
		log.Printf("Unknown message type: %s", msg.Type)
	}
}
