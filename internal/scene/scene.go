// scene holds the demo worlds shipped with jazz-demo. Scenes register
// themselves in init functions so the command can list them without
// hardcoding each one.
package scene

import (
	"image"
	"image/color"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/silbinarywolf/toy-jazz/internal/renderer"
	"github.com/silbinarywolf/toy-jazz/internal/world"
)

// Kind selects how a scene is opened
type Kind int

const (
	// Static scenes are shown with Display
	Static Kind = iota
	// Animated scenes are shown with Animate and get no events
	Animated
	// Interactive scenes are shown with Play
	Interactive
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Animated:
		return "animation"
	case Interactive:
		return "interactive"
	}
	return "unknown"
}

// Env is what a scene is built with
type Env struct {
	// NewImage turns an image into one the toolkit can draw
	NewImage func(img image.Image) renderer.Image
	// Width and Height are the world size the scene should fill
	Width, Height int
}

// Solid returns a 1x1 image of clr, draw it scaled to get a rectangle
func (env Env) Solid(clr color.Color) renderer.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, clr)
	return env.NewImage(img)
}

// Scene is a registered demo
type Scene struct {
	ID    string
	Title string
	Kind  Kind
	Build func(env Env) world.World
}

var (
	mu     sync.RWMutex
	scenes = make(map[string]Scene)
)

// Register adds a scene. Panics if the ID is already taken.
func Register(scene Scene) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := scenes[scene.ID]; exists {
		panic("scene: " + scene.ID + " already registered")
	}
	scenes[scene.ID] = scene
}

// List returns every scene sorted by ID.
func List() []Scene {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Scene, 0, len(scenes))
	for _, scene := range scenes {
		result = append(result, scene)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns the scene registered as id.
func Get(id string) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	scene, ok := scenes[id]
	if !ok {
		return Scene{}, errors.Errorf("unknown scene %q", id)
	}
	return scene, nil
}
