package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/midline/internal/sessionfile"
	"github.com/philipparndt/midline/pkg/analysis"
	"github.com/philipparndt/midline/pkg/geometry"
	"github.com/philipparndt/midline/pkg/landmark"
)

var centralFlags = map[landmark.ID]*string{
	landmark.UpperLeftCentral:  new(string),
	landmark.UpperRightCentral: new(string),
	landmark.LowerLeftCentral:  new(string),
	landmark.LowerRightCentral: new(string),
}

var measureCmd = &cobra.Command{
	Use:   "measure [session.json]",
	Short: "Compute the midline deviation",
	Long: `Compute the upper and lower central incisor angles and their difference.
Points are read from a session file, or given directly as x,y pairs with
--upper-left-central, --upper-right-central, --lower-left-central and
--lower-right-central.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	for _, id := range landmark.Required() {
		flag := strings.ReplaceAll(id.Key(), "_", "-")
		measureCmd.Flags().StringVar(centralFlags[id], flag, "", "x,y of the "+id.Name())
	}
	measureCmd.MarkFlagsRequiredTogether(
		"upper-left-central", "upper-right-central",
		"lower-left-central", "lower-right-central",
	)
}

// parsePoint parses "x,y"
func parsePoint(s string) (geometry.Vector2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Vector2{}, fmt.Errorf("invalid point %q, expected x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Vector2{}, fmt.Errorf("invalid x in %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Vector2{}, fmt.Errorf("invalid y in %q: %w", s, err)
	}
	return geometry.NewVector2(x, y), nil
}

func runMeasure(cmd *cobra.Command, args []string) error {
	var points map[landmark.ID]geometry.Vector2

	if len(args) == 1 {
		s, err := sessionfile.Open(args[0], sessionfile.SurfaceData{
			Width:  cfg.Surface.Width,
			Height: cfg.Surface.Height,
		}, logger)
		if err != nil {
			return err
		}
		points = make(map[landmark.ID]geometry.Vector2)
		for id, m := range s.Markers() {
			points[id] = m.Point()
		}
	} else {
		points = make(map[landmark.ID]geometry.Vector2)
		for id, value := range centralFlags {
			if *value == "" {
				continue
			}
			p, err := parsePoint(*value)
			if err != nil {
				return err
			}
			points[id] = p
		}
	}

	m, err := analysis.Compute(points)
	if err != nil {
		return err
	}
	printMeasurement(cmd.OutOrStdout(), m)
	return nil
}

func printMeasurement(w io.Writer, m analysis.Measurement) {
	fmt.Fprintln(w, "Midline Measurement")
	fmt.Fprintln(w, "===================")
	for _, line := range m.ReportLines() {
		fmt.Fprintln(w, line)
	}

	if m.Significant() {
		fmt.Fprintf(w, "\nDeviation exceeds %.1f° and is significant\n", analysis.SignificantDeviation)
	} else {
		fmt.Fprintf(w, "\nDeviation is within %.1f°\n", analysis.SignificantDeviation)
	}
	if m.WrapsAround() {
		fmt.Fprintln(w, "Warning: the central lines point in opposite directions; check the landmark order")
	}
}
