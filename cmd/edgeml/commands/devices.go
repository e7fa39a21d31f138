package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robodu/edgeml/internal/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio input devices",
	Long: `List the audio input devices PortAudio reports, with the kind inferred
from each name. Loopback devices are never picked for listening.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		devs, err := audio.ListDevices()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tCHANNELS\tRATE")
		for _, d := range devs {
			kind := string(d.Kind)
			if kind == "" {
				kind = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%.0f\n", d.Name, kind, d.InputChannels, d.DefaultSampleRate)
		}
		return w.Flush()
	},
}
