package server

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestParseRenderRequest_Defaults(t *testing.T) {
	s := NewServer(8080)
	r := httptest.NewRequest("GET", "/api/render", nil)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Scene != "sphere" {
		t.Errorf("Expected default scene 'sphere', got %q", req.Scene)
	}
	if req.Width != 400 || req.Height != 225 {
		t.Errorf("Expected default 400x225, got %dx%d", req.Width, req.Height)
	}
	if req.MaxPasses != 4 {
		t.Errorf("Expected default 4 passes, got %d", req.MaxPasses)
	}
	if req.Threshold != 0 {
		t.Errorf("Expected default threshold 0, got %f", req.Threshold)
	}
}

func TestParseRenderRequest_Validation(t *testing.T) {
	s := NewServer(8080)
	tests := []struct {
		name        string
		query       string
		expectError bool
	}{
		{"valid", "scene=cloud&width=640&height=360&maxPasses=3&threshold=0.3", false},
		{"width too small", "width=10", true},
		{"width too large", "width=9999", true},
		{"bad width", "width=abc", true},
		{"passes too many", "maxPasses=100", true},
		{"negative threshold", "threshold=-1", true},
		{"bad threshold", "threshold=x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/render?"+tt.query, nil)
			_, err := s.parseRenderRequest(r)
			if tt.expectError && err == nil {
				t.Errorf("Expected error for query %q", tt.query)
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error for query %q: %v", tt.query, err)
			}
		})
	}
}

func TestParseIntParam(t *testing.T) {
	values := url.Values{"n": []string{"42"}}
	if got, err := parseIntParam(values, "n", 7, 1, 100); err != nil || got != 42 {
		t.Errorf("Expected 42, got %d (err %v)", got, err)
	}
	if got, err := parseIntParam(values, "missing", 7, 1, 100); err != nil || got != 7 {
		t.Errorf("Expected default 7, got %d (err %v)", got, err)
	}
	if _, err := parseIntParam(url.Values{"n": []string{"200"}}, "n", 7, 1, 100); err == nil {
		t.Error("Expected range error")
	}
}

func TestCreateScene_UnknownScene(t *testing.T) {
	s := NewServer(8080)
	req := &RenderRequest{Scene: "nope", Width: 400, Height: 225}
	if _, err := s.createScene(req, nil); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestCreateScene_AppliesOverrides(t *testing.T) {
	s := NewServer(8080)
	req := &RenderRequest{Scene: "sphere", Width: 200, Height: 100, Threshold: 0.8}

	sceneObj, err := s.createScene(req, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sceneObj.Camera.Width() != 200 || sceneObj.Camera.Height() != 100 {
		t.Errorf("Expected 200x100 camera, got %dx%d",
			sceneObj.Camera.Width(), sceneObj.Camera.Height())
	}
	if sceneObj.Threshold != 0.8 {
		t.Errorf("Expected threshold 0.8, got %f", sceneObj.Threshold)
	}
}

func TestHandleHealth(t *testing.T) {
	s := NewServer(8080)
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/health", nil)

	s.handleHealth(w, r)

	if w.Code != 200 {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestHandleScenes(t *testing.T) {
	s := NewServer(8080)
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/scenes", nil)

	s.handleScenes(w, r)

	if w.Code != 200 {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var response struct {
		Groups []struct {
			Name   string `json:"name"`
			Scenes []struct {
				ID string `json:"id"`
			} `json:"scenes"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(response.Groups) == 0 {
		t.Fatal("Expected at least one scene group")
	}
	found := false
	for _, g := range response.Groups {
		for _, sc := range g.Scenes {
			if sc.ID == "sphere" {
				found = true
			}
		}
	}
	if !found {
		t.Error("Expected sphere scene in the listing")
	}
}
