package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phanxgames/platter"
)

// frameMs is the simulated frame interval.
const frameMs = 16

type checkOpts struct {
	layout string
	script string
	frames int
}

func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a layout and simulate a script without a window",
		Long: `Validate a layout and, with --script, replay it headlessly on a 16 ms clock.
Prints where every disc ended up once the script has finished and all coasts have settled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.check(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", "", "page layout (TOML)")
	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "input script to replay (JSON)")
	cmd.Flags().IntVar(&opts.frames, "frames", 1200, "maximum frames to simulate")
	return cmd
}

// simResult is the outcome of a headless simulation.
type simResult struct {
	frames  int
	settled bool
}

func (c *CLI) check(out io.Writer, opts checkOpts) error {
	prog := newProgress(c.Logger)
	l, err := loadLayout(opts.layout)
	if err != nil {
		return err
	}
	runner, err := loadScript(opts.script)
	if err != nil {
		return err
	}

	p := buildScene(l, c.Logger)
	clock := &platter.ManualClock{}
	p.scene.SetClock(clock)
	p.scene.SetHeadless(true)
	p.scene.SetArbiter(platter.NewZArbiter(platter.BaseZIndex))

	res := simulate(p.scene, runner, clock, opts.frames)
	if !res.settled {
		c.Logger.Warn("simulation did not settle", "frames", res.frames)
	}
	prog.done(fmt.Sprintf("Simulated %d frames", res.frames))

	return writeDiscTable(out, p)
}

// simulate steps s until the script is done and nothing is dragging,
// coasting or animating, or until maxFrames have run.
func simulate(s *platter.Scene, runner *platter.ScriptRunner, clock *platter.ManualClock, maxFrames int) simResult {
	if runner != nil {
		s.SetScriptRunner(runner)
	}
	for i := 1; i <= maxFrames; i++ {
		clock.Advance(frameMs)
		s.Update()
		if (runner == nil || runner.Done()) && s.PendingInput() == 0 && s.Drag().Active() == nil && s.Frames().Pending() == 0 && !s.Animating() {
			return simResult{frames: i, settled: true}
		}
	}
	return simResult{frames: maxFrames}
}

func writeDiscTable(out io.Writer, p *page) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DISC\tLEFT\tTOP\tZ\tPHASE")
	for _, d := range p.discs {
		pos := d.LayoutPosition()
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%d\t%s\n", d.Name, pos.X, pos.Y, d.ZIndex, p.scene.Drag().Phase(d))
	}
	return tw.Flush()
}
