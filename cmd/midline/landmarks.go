package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/philipparndt/midline/pkg/landmark"
)

var landmarksCmd = &cobra.Command{
	Use:   "landmarks",
	Short: "List the landmarks in placement order",
	Args:  cobra.NoArgs,
	RunE:  runLandmarks,
}

func init() {
	rootCmd.AddCommand(landmarksCmd)
}

func runLandmarks(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tLABEL\tCOLOR\tNAME")
	for i, id := range landmark.Sequence() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, id.Key(), id.Abbrev(), id.Color(), id.Name())
	}
	return w.Flush()
}
