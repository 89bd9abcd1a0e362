package platter

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS draws the FPS/TPS readout in the top-left corner.
	ShowFPS bool
	// Update, when set, runs every frame after the scene's own Update.
	Update func() error
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene *Scene
	cfg   RunConfig
	fps   fpsWidget
}

func (g *gameShell) Update() error {
	g.scene.Update()
	if g.cfg.ShowFPS {
		g.fps.update(1.0 / float64(ebiten.TPS()))
	}
	if g.cfg.Update != nil {
		return g.cfg.Update()
	}
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.cfg.ShowFPS {
		g.fps.draw(screen)
	}
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives scene until the window closes or
// cfg.Update returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = int(scene.viewport.Width), int(scene.viewport.Height)
	}
	if cfg.Title == "" {
		cfg.Title = "platter"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if err := ebiten.RunGame(&gameShell{scene: scene, cfg: cfg}); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
