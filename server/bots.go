package server

import (
	"fmt"
	"log"

	"github.com/lab1702/skirmish-web/game"
)

// botNames for generating random bot callsigns
var botNames = []string{
	"Vulture", "Kestrel", "Harrier", "Osprey", "Shrike", "Condor",
	"Falcon", "Goshawk", "Merlin", "Buzzard", "Kite", "Raptor",
	"Talon", "Gyrfalcon", "Peregrine", "Sparrowhawk",
}

// AddBot spawns an AI-flown ship on the given team
func (s *Server) AddBot(team int, class game.ShipClass) {
	s.mu.Lock()
	name := fmt.Sprintf("[BOT] %s", botNames[s.rng.Intn(len(botNames))])
	id, err := s.spawnShip(name, team, class, true)
	s.mu.Unlock()

	if err != nil {
		log.Printf("AddBot: %v", err)
		return
	}
	s.broadcast <- ServerMessage{
		Type: MsgTypeInfo,
		Data: map[string]interface{}{"text": fmt.Sprintf("%s has entered the arena", name), "ship": id},
	}
}

// updateAgents runs one decision tick for every living ship, sequentially.
// Each agent gets a fresh context, decides, and writes its actuation
// commands back onto the ship; physics applies them afterwards. Caller
// holds s.mu.
func (s *Server) updateAgents(now, dt float64) {
	for i, sh := range s.state.Ships {
		agent := s.agents[i]
		if agent == nil || sh.Status != game.StatusAlive {
			continue
		}

		ctx := s.buildContext(sh)
		ctrl := agent.Update(ctx, now, dt, s.obstaclesFor(sh))

		sh.Thrust = ctrl.Thrust
		sh.Strafe = ctrl.Strafe
		sh.HeadingDes = game.NormalizeAngleSigned(game.Rad(ctrl.HeadingDeg))

		s.fireWeapons(sh, agent, ctx)
	}
}
