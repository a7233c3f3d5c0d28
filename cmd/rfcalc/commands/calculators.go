package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/RMahshie/rfdesk/pkg/rf"
)

func vswrCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "vswr VALUE",
		Short: "Match metrics from a VSWR, reflection coefficient or return loss",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseValue(args[0])
			if err != nil {
				return err
			}
			m, err := rf.MatchFrom(rf.MatchQuantity(from), v)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), m, func(w io.Writer) {
				fmt.Fprintf(w, "VSWR:              %.4f\n", m.VSWR)
				fmt.Fprintf(w, "Reflection |Γ|:    %.4f\n", m.Reflection)
				if m.PerfectMatch {
					fmt.Fprintln(w, "Return loss:       perfect match")
				} else {
					fmt.Fprintf(w, "Return loss:       %.2f dB\n", m.ReturnLossDB)
				}
				fmt.Fprintf(w, "Mismatch loss:     %.4f dB\n", m.MismatchLossDB)
				fmt.Fprintf(w, "Power transmitted: %.2f %%\n", m.PowerTransmittedPct)
				fmt.Fprintf(w, "Power reflected:   %.2f %%\n", m.PowerReflectedPct)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", string(rf.FromVSWR), "quantity VALUE holds: vswr, reflection or return_loss")
	return cmd
}

func attenCmd() *cobra.Command {
	var topology string
	var z0 float64
	cmd := &cobra.Command{
		Use:   "atten DB",
		Short: "Resistor values of a matched Pi or Tee pad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := parseValue(args[0])
			if err != nil {
				return err
			}
			pad, err := rf.DesignAttenuator(rf.Topology(topology), z0, db)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), pad, func(w io.Writer) {
				fmt.Fprintf(w, "%s pad, %g dB in %g Ω\n", pad.Topology, pad.AttenuationDB, pad.Z0)
				fmt.Fprintf(w, "R1: %.2f Ω\n", pad.R1)
				fmt.Fprintf(w, "R2: %.2f Ω\n", pad.R2)
				fmt.Fprintf(w, "R3: %.2f Ω\n", pad.R3)
			})
		},
	}
	cmd.Flags().StringVar(&topology, "topology", string(rf.Pi), "pad topology: pi or tee")
	cmd.Flags().Float64Var(&z0, "z0", 50, "characteristic impedance in ohms")
	return cmd
}

type impedanceResult struct {
	Input     rf.Immittance `json:"input"`
	Output    rf.Immittance `json:"output"`
	Component *rf.Component `json:"component,omitempty"`
}

func impedanceCmd() *cobra.Command {
	var parallel bool
	var r, x, freqMHz float64
	cmd := &cobra.Command{
		Use:   "impedance",
		Short: "Series/parallel R/X conversion and component sizing",
		Example: "  rfcalc impedance --r 50 --x 50 --freq-mhz 100\n" +
			"  rfcalc impedance --parallel --r 100 --x=-100",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from := rf.Series
			if parallel {
				from = rf.Parallel
			}
			out, err := rf.Convert(from, r, x)
			if err != nil {
				return err
			}
			res := impedanceResult{
				Input:  rf.Immittance{Form: from, Resistance: r, Reactance: x, Q: out.Q},
				Output: out,
			}
			if cmd.Flags().Changed("freq-mhz") && out.Reactance != 0 {
				c, err := rf.ComponentFromReactance(out.Reactance, freqMHz*1e6)
				if err != nil {
					return err
				}
				res.Component = &c
			}
			return emit(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "%s: R = %.4f Ω, X = %.4f Ω\n", out.Form, out.Resistance, out.Reactance)
				fmt.Fprintf(w, "Q: %.4f\n", out.Q)
				if res.Component != nil {
					fmt.Fprintf(w, "%s: %s\n", res.Component.Kind, res.Component.Display)
				}
			})
		},
	}
	cmd.Flags().BoolVar(&parallel, "parallel", false, "input is a parallel pair, convert to series")
	cmd.Flags().Float64Var(&r, "r", 0, "resistance in ohms")
	cmd.Flags().Float64Var(&x, "x", 0, "reactance in ohms, negative for capacitive")
	cmd.Flags().Float64Var(&freqMHz, "freq-mhz", 0, "frequency used to size the reactive component")
	_ = cmd.MarkFlagRequired("r")
	return cmd
}

func powerCmd() *cobra.Command {
	var from string
	var z0 float64
	cmd := &cobra.Command{
		Use:   "power VALUE",
		Short: "dBm, watts and RMS volts across a system impedance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseValue(args[0])
			if err != nil {
				return err
			}
			level, err := rf.ConvertPower(rf.PowerQuantity(from), v, z0)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), level, func(w io.Writer) {
				fmt.Fprintf(w, "dBm:   %.2f\n", level.DBm)
				fmt.Fprintf(w, "Power: %s\n", rf.FormatSI(level.Watts, "W"))
				fmt.Fprintf(w, "Vrms:  %s\n", rf.FormatSI(level.Vrms, "V"))
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", string(rf.FromDBm), "quantity VALUE holds: dbm, watts or vrms")
	cmd.Flags().Float64Var(&z0, "z0", 50, "system impedance in ohms")
	return cmd
}
