// Command dwave-factor factors a 16-bit integer by sampling a multiplication
// circuit. Without --p it prompts interactively, re-prompting until the input
// is an integer in range.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/Leosirius2597/dwave-factor/circuit"
	"github.com/Leosirius2597/dwave-factor/factor"
	"github.com/Leosirius2597/dwave-factor/logger"
	"github.com/Leosirius2597/dwave-factor/report"
	"github.com/Leosirius2597/dwave-factor/sampler"
	"github.com/Leosirius2597/dwave-factor/sampler/anneal"
	"github.com/Leosirius2597/dwave-factor/sampler/client"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dwave-factor",
	Short: "factors an integer by sampling a multiplication circuit",
	RunE:  cmdFactor,
}

var (
	fP       int64
	fReads   int
	fSeed    int64
	fSolver  string
	fChart   string
	fVerbose bool
)

func init() {
	rootCmd.Flags().Int64Var(&fP, "p", -1, "integer to factor; omit to be prompted")
	rootCmd.Flags().IntVar(&fReads, "reads", sampler.DefaultNumReads, "number of samples to request")
	rootCmd.Flags().Int64Var(&fSeed, "seed", 0, "seed for the local sampler; 0 picks one")
	rootCmd.Flags().StringVar(&fSolver, "solver", "", "remote solver URL; empty runs the local annealer")
	rootCmd.Flags().StringVar(&fChart, "chart", "", "write an HTML occurrence chart to this path")
	rootCmd.Flags().BoolVar(&fVerbose, "verbose", false, "enable debug logging")
}

func cmdFactor(cmd *cobra.Command, _ []string) error {
	if !fVerbose {
		logger.Set(logger.Logger().Level(zerolog.InfoLevel))
	}

	var oracle sampler.Oracle
	if fSolver != "" {
		oracle = client.New(fSolver)
	} else {
		oracle = anneal.New(anneal.WithSeed(fSeed))
	}
	req := sampler.Request{NumReads: fReads}

	interactive := fP < 0
	in := bufio.NewScanner(os.Stdin)
	for {
		P := uint64(fP)
		if interactive {
			var ok bool
			if P, ok = promptP(in); !ok {
				return errors.New("no input")
			}
		}

		rs, err := factor.Run(cmd.Context(), P, oracle, req)
		var vErr circuit.ValidationError
		if errors.As(err, &vErr) && interactive {
			fmt.Println(vErr.Error() + ", try again")
			continue
		}
		if err != nil {
			return err
		}

		if err := report.Write(os.Stdout, rs); err != nil {
			return err
		}
		if fChart != "" {
			f, err := os.Create(fChart)
			if err != nil {
				return err
			}
			if err := report.WriteChart(f, rs); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
		}
		return nil
	}
}

// promptP reads integers from stdin until one lies in [0, 65535]; the upper
// pipeline still rejects 0 and 1, which loops back here.
func promptP(in *bufio.Scanner) (uint64, bool) {
	for {
		fmt.Printf("Input a number to factor (0 <= P <= %d): ", factor.MaxP)
		if !in.Scan() {
			return 0, false
		}
		P, err := strconv.ParseUint(in.Text(), 10, 64)
		if err != nil {
			fmt.Println("not an integer, try again")
			continue
		}
		if P > factor.MaxP {
			fmt.Printf("P = %d outside [0, %d], try again\n", P, factor.MaxP)
			continue
		}
		return P, true
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
