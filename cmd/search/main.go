package main

import (
	"fmt"
	"os"

	"github.com/gasparian/frechet-search-go/app"
	"github.com/gasparian/frechet-search-go/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var (
		inputPath  string
		queryPath  string
		outPath    string
		configPath string
		algorithm  string
		assignment string
		topN       int
		radius     float64
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Approximate nearest-neighbor search over vectors or curves",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := config.Defaults()
			if configPath != "" {
				var err error
				params, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}
			params.Algorithm = config.Algorithm(algorithm)
			params.Assignment = config.Assignment(assignment)

			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()

			a, err := app.New(params, logger.Sugar())
			if err != nil {
				return err
			}
			return a.RunSearch(inputPath, queryPath, outPath, topN, radius)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "dataset file")
	cmd.Flags().StringVarP(&queryPath, "query", "q", "", "query file")
	cmd.Flags().StringVarP(&outPath, "output", "o", "out.txt", "report file")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "yaml params file")
	cmd.Flags().StringVar(&algorithm, "algorithm", string(config.AlgVector), "vector | frechet-discrete | frechet-continuous")
	cmd.Flags().StringVar(&assignment, "index", string(config.AssignLSH), "lsh | hypercube")
	cmd.Flags().IntVarP(&topN, "nearest", "N", 1, "neighbors per query")
	cmd.Flags().Float64VarP(&radius, "radius", "R", 0, "range search radius, 0 skips range search")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("query")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
