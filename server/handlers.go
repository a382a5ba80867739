package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/lab1702/skirmish-web/ai"
	"github.com/lab1702/skirmish-web/game"
)

// Team spawn points, mirrored across the arena center
var teamSpawn = map[int]game.Vec2{
	game.TeamRed:  {X: 40, Y: game.ArenaHeight / 2},
	game.TeamBlue: {X: game.ArenaWidth - 40, Y: game.ArenaHeight / 2},
}

// handleJoin sponsors a new ship for the client. Every ship in the arena is
// flown by its own agent; the client names it, picks its side and watches.
func (c *Client) handleJoin(data json.RawMessage) {
	var req struct {
		Name  string `json:"name"`
		Team  int    `json:"team"`
		Class int    `json:"class"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		c.send <- ServerMessage{Type: MsgTypeError, Data: map[string]string{"text": "bad join request"}}
		return
	}
	if req.Team != game.TeamRed && req.Team != game.TeamBlue {
		c.send <- ServerMessage{Type: MsgTypeError, Data: map[string]string{"text": "pick a team"}}
		return
	}
	class := game.ShipClass(req.Class)
	if _, ok := game.ClassData[class]; !ok {
		class = game.ClassCorvette
	}
	if req.Name == "" {
		req.Name = fmt.Sprintf("Ship-%d", c.ID)
	}

	s := c.server
	s.mu.Lock()
	if c.ShipID >= 0 {
		s.mu.Unlock()
		c.send <- ServerMessage{Type: MsgTypeError, Data: map[string]string{"text": "already joined"}}
		return
	}
	id, err := s.spawnShip(req.Name, req.Team, class, false)
	s.mu.Unlock()

	if err != nil {
		c.send <- ServerMessage{Type: MsgTypeError, Data: map[string]string{"text": err.Error()}}
		return
	}
	c.ShipID = id

	c.send <- ServerMessage{Type: MsgTypeJoined, Data: map[string]int{"id": id}}
	s.broadcast <- ServerMessage{
		Type: MsgTypeInfo,
		Data: map[string]interface{}{"text": fmt.Sprintf("%s has entered the arena", req.Name), "ship": id},
	}
}

// handleQuit releases the client's ship but keeps the connection open
func (c *Client) handleQuit() {
	s := c.server
	s.mu.Lock()
	if c.ShipID >= 0 {
		s.releaseShip(c.ShipID)
		c.ShipID = -1
	}
	s.mu.Unlock()
}

// spawnShip claims a free slot, places the ship at its team spawn and wires
// up a fresh agent. Caller holds s.mu.
func (s *Server) spawnShip(name string, team int, class game.ShipClass, isBot bool) (int, error) {
	slot := -1
	for i, sh := range s.state.Ships {
		if sh.Status == game.StatusFree {
			slot = i
			break
		}
	}
	if slot == -1 {
		return -1, fmt.Errorf("arena is full")
	}

	sh := s.state.Ships[slot]
	stats := game.ClassData[class]
	*sh = game.Ship{
		ID:       slot,
		Name:     name,
		Team:     team,
		Class:    class,
		Status:   game.StatusAlive,
		IsBot:    isBot,
		Hull:     stats.MaxHull,
		Shield:   stats.MaxShield,
		Missiles: stats.MissileAmmo,
	}
	s.placeAtSpawn(sh)

	agent, err := ai.NewAgent(s.cfg, rand.New(rand.NewSource(s.rng.Int63())))
	if err != nil {
		sh.Status = game.StatusFree
		return -1, err
	}
	s.agents[slot] = agent

	return slot, nil
}

// placeAtSpawn positions a ship near its team spawn point with a random
// offset and heading. Caller holds s.mu.
func (s *Server) placeAtSpawn(sh *game.Ship) {
	spawn := teamSpawn[sh.Team]
	offset := game.RandomUnit(s.rng).Scale(s.rng.Float64() * 15)
	sh.Pos = spawn.Add(offset)
	sh.Pos.X = game.Clamp(sh.Pos.X, game.WallMargin, game.ArenaWidth-game.WallMargin)
	sh.Pos.Y = game.Clamp(sh.Pos.Y, game.WallMargin, game.ArenaHeight-game.WallMargin)
	sh.Vel = game.Vec2{}
	sh.Heading = s.rng.Float64()*2*math.Pi - math.Pi
	sh.HeadingDes = sh.Heading
}

// releaseShip frees a slot and drops its agent. Caller holds s.mu.
func (s *Server) releaseShip(id int) {
	if id < 0 || id >= len(s.state.Ships) {
		return
	}
	sh := s.state.Ships[id]
	if sh.Status == game.StatusFree {
		return
	}
	name := sh.Name
	*sh = game.Ship{ID: id, Status: game.StatusFree}
	s.agents[id] = nil
	log.Printf("Ship %d (%s) released", id, name)
}
