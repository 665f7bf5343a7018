package render

import (
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/algo-convolve/dsp/core"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatElapsed renders d as "Elapsed [mm:ss]: M:SS.sss".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := (d - time.Duration(minutes)*time.Minute).Seconds()
	return fmt.Sprintf("Elapsed [mm:ss]: %d:%06.3f", minutes, seconds)
}

// WriteSummary prints a human readable summary of rep to w, with digit
// grouping for sample counts.
func WriteSummary(w io.Writer, rep *Report) error {
	p := message.NewPrinter(language.English)

	if _, err := p.Fprintf(w, "%s: %d dry + %d ir samples -> %d samples at %d Hz (%s",
		rep.Job.Out, rep.DryFrames, rep.IRFrames, rep.OutFrames, rep.SampleRate, rep.Method); err != nil {
		return err
	}
	if rep.FFTLen > 0 {
		if _, err := p.Fprintf(w, ", fft %d x %d segments", rep.FFTLen, rep.Segments); err != nil {
			return err
		}
	}
	if _, err := p.Fprintf(w, ")\n"); err != nil {
		return err
	}

	if rep.Silent {
		if _, err := p.Fprintf(w, "  silent result, not normalized\n"); err != nil {
			return err
		}
	} else {
		if _, err := p.Fprintf(w, "  peak %.3f dBFS before normalization, rms %.1f dBFS\n",
			core.LinearToDB(rep.Peak), core.LinearToDB(rep.RMS)); err != nil {
			return err
		}
	}
	if rep.IR.RT60 > 0 {
		if _, err := p.Fprintf(w, "  ir rt60 %.2f s, predelay %.1f ms\n",
			rep.IR.RT60, rep.IR.Predelay*1000); err != nil {
			return err
		}
	}
	if rep.Clipped > 0 {
		if _, err := p.Fprintf(w, "  %d samples clipped\n", rep.Clipped); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, FormatElapsed(rep.Elapsed))
	return err
}
