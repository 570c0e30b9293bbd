package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/internal/host"
	"github.com/cwbudde/algo-fdn/internal/wavio"
	"github.com/cwbudde/algo-fdn/measure/tail"
)

func printReport(w io.Writer, mode host.EngineMode, cond host.Conditioned, s wavio.Stereo) error {
	m, err := tail.NewAnalyzer(float64(s.SampleRate)).Analyze(s.Left, s.Right)
	if err != nil && !errors.Is(err, tail.ErrNoDecay) {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Mode\t%s\n", mode)
	fmt.Fprintf(tw, "Size\t%.3f\n", cond.Params.Size)
	fmt.Fprintf(tw, "Warp\t%.3f\n", cond.Params.Warp)
	fmt.Fprintf(tw, "Decay\t%.3f\n", cond.Params.Decay)
	fmt.Fprintf(tw, "Dry\t%.3f\n", cond.Dry)
	fmt.Fprintf(tw, "Onset\t%d samples (%.1f ms)\n", m.Onset, m.OnsetSeconds*1000)
	fmt.Fprintf(tw, "Peak\t%.2f dBFS at %d\n", core.LinearToDB(m.Peak), m.PeakIndex)
	fmt.Fprintf(tw, "EDT\t%s\n", seconds(m.EDT))
	fmt.Fprintf(tw, "T20\t%s\n", seconds(m.T20))
	fmt.Fprintf(tw, "T30\t%s\n", seconds(m.T30))
	fmt.Fprintf(tw, "RT60\t%s\n", seconds(m.RT60))
	fmt.Fprintf(tw, "L/R correlation\t%.3f\n", m.Correlation)
	fmt.Fprintf(tw, "Spectral centroid\t%.0f Hz\n", m.CentroidHz)
	fmt.Fprintf(tw, "Dominant frequency\t%.0f Hz\n", m.DominantHz)

	return tw.Flush()
}

func seconds(v float64) string {
	if v <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.3f s", v)
}
