package server

import (
	"context"
	"time"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/sandbox"
)

type request struct {
	fn    func(*sandbox.Sandbox) ServerMessage
	reply chan ServerMessage
}

// Session is the single goroutine that owns a sandbox. Every read or write
// of engine state goes through Do.
type Session struct {
	sb       *sandbox.Sandbox
	hub      *Hub
	requests chan request
	tick     time.Duration
	every    int
}

// NewSession creates a session that steps sb every tick and, while clients
// are connected, broadcasts the scene on every `every`-th tick.
func NewSession(sb *sandbox.Sandbox, hub *Hub, tick time.Duration, every int) *Session {
	if every < 1 {
		every = 1
	}
	return &Session{
		sb:       sb,
		hub:      hub,
		requests: make(chan request),
		tick:     tick,
		every:    every,
	}
}

// Run serves requests and steps the frame loop until ctx is done.
func (s *Session) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	frames := 0
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-s.requests:
			req.reply <- req.fn(s.sb)
		case <-ticker.C:
			s.sb.Step(s.tick)
			frames++
			// Traffic animates continuously, so clients always need fresh
			// frames while anyone is watching.
			if frames%s.every == 0 && s.hub.Count() > 0 {
				s.hub.Broadcast(ServerMessage{Type: MsgScene, Scene: s.sb.Export()})
			}
		}
	}
}

// Do runs fn on the session goroutine and returns its reply.
func (s *Session) Do(ctx context.Context, fn func(*sandbox.Sandbox) ServerMessage) (ServerMessage, error) {
	req := request{fn: fn, reply: make(chan ServerMessage, 1)}
	select {
	case s.requests <- req:
	case <-ctx.Done():
		return ServerMessage{}, ctx.Err()
	}
	select {
	case msg := <-req.reply:
		return msg, nil
	case <-ctx.Done():
		return ServerMessage{}, ctx.Err()
	}
}

// Apply runs a client event on the session goroutine.
func (s *Session) Apply(ctx context.Context, msg ClientMessage) (ServerMessage, error) {
	return s.Do(ctx, func(sb *sandbox.Sandbox) ServerMessage {
		return apply(sb, msg)
	})
}
