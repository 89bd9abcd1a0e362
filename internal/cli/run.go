package cli

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/platter"
)

type runOpts struct {
	layout      string
	script      string
	screenshots string
	fps         bool
	debug       bool
	exit        bool
}

func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window on a page layout",
		Long: `Open a window on a page layout. Without --layout the built-in demo page is shown.
With --script, the recorded pointer actions are replayed on top of live input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPage(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", "", "page layout (TOML)")
	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "input script to replay (JSON)")
	cmd.Flags().StringVar(&opts.screenshots, "screenshots", "screenshots", "directory for script screenshots")
	cmd.Flags().BoolVar(&opts.fps, "fps", false, "show FPS and TPS")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "check drag invariants every frame")
	cmd.Flags().BoolVar(&opts.exit, "exit", false, "close the window once the script has finished")
	return cmd
}

func (c *CLI) runPage(cmd *cobra.Command, opts runOpts) error {
	l, err := loadLayout(opts.layout)
	if err != nil {
		return err
	}
	runner, err := loadScript(opts.script)
	if err != nil {
		return err
	}

	p := buildScene(l, c.Logger)
	s := p.scene
	s.ScreenshotDir = opts.screenshots
	if opts.debug {
		s.SetDebugMode(true)
	}
	if runner != nil {
		s.SetScriptRunner(runner)
	}
	c.Logger.Info("opening page", "sections", len(l.Sections), "discs", len(p.discs))

	ctx := cmd.Context()
	title := l.Title
	if title == "" {
		title = "platter"
	}
	return platter.Run(s, platter.RunConfig{
		Title:   title,
		Width:   int(l.Width),
		Height:  int(l.Height),
		ShowFPS: opts.fps,
		Update: func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if opts.exit && runner != nil && runner.Done() && s.Drag().Settling() == 0 {
				return ebiten.Termination
			}
			return nil
		},
	})
}
