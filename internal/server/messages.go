package server

import (
	"fmt"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/grid"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/interaction"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/sandbox"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/validation"
)

// Client message types.
const (
	MsgPointerDown = "pointer_down"
	MsgPointerMove = "pointer_move"
	MsgPointerUp   = "pointer_up"
	MsgKey         = "key"
	MsgTool        = "tool"
	MsgStyle       = "style"
	MsgFloors      = "floors"
	MsgDeleteMode  = "delete_mode"
	MsgScene       = "scene"
)

// Server message types.
const (
	MsgResult     = "result"
	MsgError      = "error"
	MsgValidation = "validation"
)

// ClientMessage is an input event sent by a browser.
type ClientMessage struct {
	Type   string     `json:"type"`
	Ray    *scene.Ray `json:"ray,omitempty"`
	Key    string     `json:"key,omitempty"`
	Tool   string     `json:"tool,omitempty"`
	Style  string     `json:"style,omitempty"`
	Floors int        `json:"floors,omitempty"`
}

// ToolState mirrors the toolbar.
type ToolState struct {
	Tool       string `json:"tool"`
	Style      string `json:"style"`
	Floors     int    `json:"floors"`
	DeleteMode bool   `json:"delete_mode"`
}

// ServerMessage is sent to clients in reply to an event or as a periodic
// scene broadcast.
type ServerMessage struct {
	Type          string             `json:"type"`
	Action        string             `json:"action,omitempty"`
	NodeID        string             `json:"node_id,omitempty"`
	Cell          *grid.Cell         `json:"cell,omitempty"`
	Intersections int                `json:"intersections,omitempty"`
	Error         string             `json:"error,omitempty"`
	Tools         *ToolState         `json:"tools,omitempty"`
	Scene         *scene.Document    `json:"scene,omitempty"`
	Report        *validation.Report `json:"report,omitempty"`
}

func toolState(sb *sandbox.Sandbox) *ToolState {
	r := sb.Router
	return &ToolState{
		Tool:       string(r.Tool()),
		Style:      string(r.Style()),
		Floors:     r.Floors(),
		DeleteMode: r.DeleteMode(),
	}
}

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: MsgError, Error: err.Error()}
}

func resultMessage(res interaction.Result) ServerMessage {
	msg := ServerMessage{
		Type:          MsgResult,
		Action:        string(res.Action),
		Intersections: len(res.Intersections),
	}
	if res.Node != nil {
		msg.NodeID = res.Node.ID
	}
	if res.Action == interaction.ActionPlaced || res.Action == interaction.ActionRejected {
		cell := res.Cell
		msg.Cell = &cell
	}
	if res.Err != nil {
		msg.Error = res.Err.Error()
	}
	return msg
}

// apply runs one client event against the sandbox. It must only be called
// from the session goroutine.
func apply(sb *sandbox.Sandbox, msg ClientMessage) ServerMessage {
	r := sb.Router
	switch msg.Type {
	case MsgPointerDown, MsgPointerMove:
		if msg.Ray == nil {
			return errorMessage(fmt.Errorf("%s: missing ray", msg.Type))
		}
		if msg.Type == MsgPointerDown {
			return resultMessage(r.PointerDown(*msg.Ray))
		}
		return resultMessage(r.PointerMove(*msg.Ray))

	case MsgPointerUp:
		return resultMessage(r.PointerUp())

	case MsgKey:
		r.KeyDown(msg.Key)

	case MsgTool:
		if err := r.SetTool(msg.Tool); err != nil {
			return errorMessage(err)
		}

	case MsgStyle:
		if err := r.SetStyle(msg.Style); err != nil {
			return errorMessage(err)
		}

	case MsgFloors:
		if err := r.SetFloors(msg.Floors); err != nil {
			return errorMessage(err)
		}

	case MsgDeleteMode:
		r.ToggleDeleteMode()

	case MsgScene:
		return ServerMessage{Type: MsgScene, Scene: sb.Export()}

	default:
		return errorMessage(fmt.Errorf("unknown message type %q", msg.Type))
	}
	return ServerMessage{Type: MsgResult, Action: string(interaction.ActionNone), Tools: toolState(sb)}
}
