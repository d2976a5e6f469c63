package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/reverie-spectrum/spectrum"
)

var noColor bool

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Fetch the dataset once and print each dreamer's octant and zone",
	Args:  cobra.NoArgs,
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colour swatches")
}

func runClassify(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logrus.New()
	if f := setupLogging(log, cfg.Log.Dir, cfg.Log.Debug); f != nil {
		defer f.Close()
	}

	src, err := newSource(cfg, log)
	if err != nil {
		return err
	}
	snap, err := src.Fetch(cmd.Context())
	if err != nil {
		return err
	}

	eng := spectrum.New(spectrum.WithLogger(log.WithField("component", "engine")))
	eng.Ingest(snap.Points, snap.Zones)

	out, color := classifyOutput(cmd.OutOrStdout())
	return writeClassification(out, eng, color)
}

// classifyOutput wraps stdout for ANSI colour when it is a terminal
func classifyOutput(w io.Writer) (io.Writer, bool) {
	f, ok := w.(*os.File)
	if noColor || !ok {
		return w, false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return w, false
	}
	return colorable.NewColorable(f), true
}

func writeClassification(w io.Writer, eng *spectrum.Engine, color bool) error {
	zones := eng.Zones()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tX\tY\tZ\tCLASS\tZONE\t")
	for _, p := range eng.Points() {
		zone := "-"
		if p.Zone >= 0 && p.Zone < len(zones) {
			zone = zones[p.Zone].Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%.1f\t%s\t%s\t%s\n",
			p.ID, p.Label,
			p.Current.X(), p.Current.Y(), p.Current.Z(),
			p.Class.Name, zone, swatch(spectrum.ClassColor(p.Class, p.Current), color))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d dreamers, %d zones\n", len(eng.Points()), len(zones))
	return err
}

// swatch is a truecolor dot, empty without colour
func swatch(c spectrum.RGB, color bool) string {
	if !color {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm●\x1b[0m", c.R, c.G, c.B)
}
