package main

import (
	"time"

	"github.com/cwbudde/algo-convolve/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Render every job listed in a YAML manifest",
		Long: `Render a list of jobs concurrently. The manifest looks like

  jobs:
    - dry: voice.wav
      ir: hall.wav
      out: out/voice-hall.wav

Relative paths are resolved against the manifest's directory. The first
failing job stops jobs that have not started yet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.sync()

			m, err := render.LoadManifest(args[0])
			if err != nil {
				return err
			}

			start := time.Now()
			reports, err := render.New(a.cfg, a.log).Batch(cmd.Context(), m.Jobs, a.cfg.Workers)
			done := 0
			for _, rep := range reports {
				if rep == nil {
					continue
				}
				done++
				if werr := render.WriteSummary(a.out, rep); werr != nil && err == nil {
					err = werr
				}
			}

			p := message.NewPrinter(language.English)
			p.Fprintf(a.out, "%d of %d jobs rendered, total ", done, len(m.Jobs))
			p.Fprintln(a.out, render.FormatElapsed(time.Since(start)))
			return err
		},
	}
}
