//go:build !lambda

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type cliFlags struct {
	configPath string
	jsonOut    bool
	verbose    bool
	workers    int
	beam       int
	resultCap  int
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// loadConfig applies the config file, then explicit flags on top.
func (f *cliFlags) loadConfig(cmd *cobra.Command) (Config, error) {
	cfg, err := LoadConfig(f.configPath)
	if err != nil {
		return Config{}, err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = f.workers
	}
	if cmd.Flags().Changed("beam") {
		cfg.BeamWidth = f.beam
	}
	if cmd.Flags().Changed("cap") {
		cfg.ResultCap = f.resultCap
	}
	return cfg, cfg.Validate()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd() *cobra.Command {
	f := &cliFlags{}
	root := &cobra.Command{
		Use:           "shrapnel-optimizer",
		Short:         "Search four-quadrant shrapnel spring geometries for a target force and centroid",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "search tuning file (yaml, json or toml)")
	root.PersistentFlags().BoolVar(&f.jsonOut, "json", false, "output results as JSON")
	root.PersistentFlags().BoolVar(&f.verbose, "verbose", false, "print detailed search progress to stderr")

	search := &cobra.Command{
		Use:   "search <request.json>",
		Short: "Run the staged search and print ranked combinations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(cmd)
			if err != nil {
				return err
			}
			req, err := LoadRequest(args[0])
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), f.verbose)
			report, err := Search(req.Assembly, req.Target, cfg, log)
			if err != nil {
				return err
			}
			if f.jsonOut {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprint(cmd.OutOrStdout(), FormatReport(report, req.Target, cfg))
			if f.verbose {
				fmt.Fprint(cmd.ErrOrStderr(), FormatStages(report))
			}
			return nil
		},
	}
	search.Flags().IntVar(&f.workers, "workers", 0, "goroutines per stage (0 = GOMAXPROCS)")
	search.Flags().IntVar(&f.beam, "beam", 0, "seeds carried between stages")
	search.Flags().IntVar(&f.resultCap, "cap", 0, "feasible results per stage before stopping (0 = max(10, 3N))")

	eval := &cobra.Command{
		Use:   "eval <request.json>",
		Short: "Evaluate the input assembly against the target bands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(cmd)
			if err != nil {
				return err
			}
			req, err := LoadRequest(args[0])
			if err != nil {
				return err
			}
			e, err := Evaluate(req.Assembly, req.Target, cfg)
			if err != nil {
				return err
			}
			if f.jsonOut {
				return writeJSON(cmd.OutOrStdout(), e)
			}
			fmt.Fprint(cmd.OutOrStdout(), FormatEvaluation(e))
			return nil
		},
	}

	spring := &cobra.Command{
		Use:   "spring <request.json>",
		Short: "Grid-search compression spring combinations for a chip load",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := LoadSpringRequest(args[0])
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), f.verbose)
			designs, err := SpringSearch(in)
			if err != nil {
				return err
			}
			log.Infof("[spring] designs=%d", len(designs))
			if f.jsonOut {
				return writeJSON(cmd.OutOrStdout(), designs)
			}
			fmt.Fprint(cmd.OutOrStdout(), FormatSprings(designs))
			return nil
		},
	}

	root.AddCommand(search, eval, spring)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
