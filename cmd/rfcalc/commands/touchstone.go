package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/RMahshie/rfdesk/pkg/touchstone"
)

func touchstoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "touchstone FILE",
		Short: "Parse a .s1p or .s2p file and print its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := touchstone.Read(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			summary := touchstone.Summarize(doc)

			return emit(cmd.OutOrStdout(), summary, func(w io.Writer) {
				fmt.Fprintf(w, "%d-port, %d points, %d rows skipped\n", summary.Ports, summary.Points, doc.Skipped)
				if summary.Points == 0 {
					return
				}
				fmt.Fprintf(w, "Span: %.3f to %.3f MHz\n", summary.StartMHz, summary.StopMHz)
				if p := summary.BestMatch; p != nil {
					fmt.Fprintf(w, "Best match:  VSWR %.3f at %.3f MHz\n", p.Match.VSWR, p.FrequencyMHz)
				}
				if p := summary.WorstMatch; p != nil {
					fmt.Fprintf(w, "Worst match: VSWR %.3f at %.3f MHz\n", p.Match.VSWR, p.FrequencyMHz)
				}
				if summary.Unmatched > 0 {
					fmt.Fprintf(w, "Unmatched:   %d points with |S11| >= 1\n", summary.Unmatched)
				}
				if summary.MinInsertionLossDB != nil && summary.MaxInsertionLossDB != nil {
					fmt.Fprintf(w, "Insertion loss: %.2f to %.2f dB\n", *summary.MinInsertionLossDB, *summary.MaxInsertionLossDB)
				}
			})
		},
	}
	return cmd
}
