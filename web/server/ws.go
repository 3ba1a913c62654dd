package server

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/volmarch/go-volume-raymarcher/pkg/renderer"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// wsControl is an interactive control message from the client. Every message
// restarts the render with the merged settings.
type wsControl struct {
	Scene     string  `json:"scene"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	MaxPasses int     `json:"maxPasses"`
	Threshold float64 `json:"threshold"`
}

// wsFrame is a progressive pass frame pushed to the client
type wsFrame struct {
	Type        string `json:"type"` // "pass" or "error"
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	Stride      int    `json:"stride"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	IsComplete  bool   `json:"isComplete"`
	Message     string `json:"message,omitempty"`
}

// handleWebSocket serves interactive rendering: the client tweaks scene and
// threshold over the socket and receives progressive passes as they finish.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	// Single writer lock: render goroutines and the control loop both write
	var writeMu sync.Mutex
	writeJSON := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	// One in-flight render per connection
	var renderMu sync.Mutex
	var cancelRender context.CancelFunc

	startRender := func(req *RenderRequest) {
		renderMu.Lock()
		if cancelRender != nil {
			cancelRender()
		}
		ctx, cancel := context.WithCancel(r.Context())
		cancelRender = cancel
		renderMu.Unlock()

		go s.streamWebSocketRender(ctx, req, writeJSON)
	}

	// Kick off a default render immediately
	startRender(&RenderRequest{Scene: "sphere", Width: 400, Height: 225, MaxPasses: 4})

	// Control loop: each message restarts the render
	for {
		var msg wsControl
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("WebSocket read error:", err)
			}
			break
		}

		req := &RenderRequest{
			Scene:     msg.Scene,
			Width:     msg.Width,
			Height:    msg.Height,
			MaxPasses: msg.MaxPasses,
			Threshold: msg.Threshold,
		}
		if req.Scene == "" {
			req.Scene = "sphere"
		}
		if req.Width <= 0 {
			req.Width = 400
		}
		if req.Height <= 0 {
			req.Height = 225
		}
		if req.MaxPasses <= 0 {
			req.MaxPasses = 4
		}
		startRender(req)
	}

	renderMu.Lock()
	if cancelRender != nil {
		cancelRender()
	}
	renderMu.Unlock()
}

// streamWebSocketRender runs one progressive render and pushes pass frames
func (s *Server) streamWebSocketRender(ctx context.Context, req *RenderRequest, writeJSON func(interface{}) error) {
	pipeline, err := s.setupRenderingPipeline(req, nil)
	if err != nil {
		writeJSON(wsFrame{Type: "error", Message: err.Error()})
		return
	}

	passChan, _, errChan := pipeline.Renderer.RenderProgressive(ctx, renderer.RenderOptions{})

	for passResult := range passChan {
		imageData, err := s.imageToBase64PNG(passResult.Image)
		if err != nil {
			log.Printf("Error encoding pass image: %v", err)
			continue
		}

		frame := wsFrame{
			Type:        "pass",
			PassNumber:  passResult.PassNumber,
			TotalPasses: req.MaxPasses,
			Stride:      passResult.Stride,
			ImageData:   imageData,
			IsComplete:  passResult.IsLast,
		}
		if err := writeJSON(frame); err != nil {
			return
		}
	}

	if err := <-errChan; err != nil && ctx.Err() == nil {
		writeJSON(wsFrame{Type: "error", Message: err.Error()})
	}
}
