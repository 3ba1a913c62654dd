package scene

import (
	"fmt"
	"sort"
)

// SceneInfo represents an available scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type builtinScene struct {
	info        SceneInfo
	constructor func(opts ...Options) (*Scene, error)
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "sphere",
			Name:        "sphere",
			DisplayName: "Sphere",
			Description: "Solid sphere field in a cubic volume",
			Group:       "Analytic",
		},
		constructor: NewSphereScene,
	},
	{
		info: SceneInfo{
			ID:          "shell",
			Name:        "shell",
			DisplayName: "Hollow Shell",
			Description: "Spherical shell in an anisotropic volume",
			Group:       "Analytic",
		},
		constructor: NewShellScene,
	},
	{
		info: SceneInfo{
			ID:          "cloud",
			Name:        "cloud",
			DisplayName: "Metaball Cloud",
			Description: "Blobby metaball cluster baked into a 64^3 grid",
			Group:       "Grid",
		},
		constructor: NewCloudScene,
	},
}

// CreateScene builds a scene by ID, returning an error for unknown IDs
func CreateScene(id string, opts ...Options) (*Scene, error) {
	for _, s := range builtinScenes {
		if s.info.ID == id {
			return s.constructor(opts...)
		}
	}
	return nil, fmt.Errorf("unknown scene: %q", id)
}

// SceneIDs returns the sorted IDs of all built-in scenes
func SceneIDs() []string {
	ids := make([]string, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		ids = append(ids, s.info.ID)
	}
	sort.Strings(ids)
	return ids
}

// ListScenes groups the built-in scenes for the scene picker API
func ListScenes() ScenesResponse {
	groupOrder := []string{}
	grouped := map[string][]SceneInfo{}
	for _, s := range builtinScenes {
		if _, seen := grouped[s.info.Group]; !seen {
			groupOrder = append(groupOrder, s.info.Group)
		}
		grouped[s.info.Group] = append(grouped[s.info.Group], s.info)
	}

	response := ScenesResponse{}
	for _, name := range groupOrder {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   name,
			Scenes: grouped[name],
		})
	}
	return response
}
