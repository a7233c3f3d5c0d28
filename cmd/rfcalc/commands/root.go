package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

var asJSON bool

// Execute runs the root command against os.Args
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the rfcalc command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rfcalc",
		Short:         "RF engineering calculators",
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print results as JSON")

	root.AddCommand(vswrCmd(), attenCmd(), impedanceCmd(), powerCmd(), touchstoneCmd())
	return root
}

func parseValue(arg string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", arg)
	}
	return v, nil
}

// emit prints v as indented JSON when --json is set, otherwise runs text
func emit(w io.Writer, v any, text func(io.Writer)) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}
