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
		outPath    string
		configPath string
		algorithm  string
		assignment string
		update     string
		k          int
		complete   bool
		silhouette bool
	)

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "k-means clustering with exact or index-accelerated assignment",
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
			params.Update = config.Update(update)
			if k > 0 {
				params.K = k
			}

			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()

			a, err := app.New(params, logger.Sugar())
			if err != nil {
				return err
			}
			return a.RunClustering(inputPath, outPath, complete, silhouette)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "dataset file")
	cmd.Flags().StringVarP(&outPath, "output", "o", "out.txt", "report file")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "yaml params file")
	cmd.Flags().StringVar(&algorithm, "algorithm", string(config.AlgVector), "vector | frechet-discrete | frechet-continuous")
	cmd.Flags().StringVar(&assignment, "assignment", string(config.AssignLloyd), "lloyd | lsh | hypercube | frechet")
	cmd.Flags().StringVar(&update, "update", string(config.UpdateMeanVector), "mean-vector | mean-frechet")
	cmd.Flags().IntVarP(&k, "clusters", "K", 0, "cluster count, overrides the config file")
	cmd.Flags().BoolVar(&complete, "complete", false, "list every cluster's members")
	cmd.Flags().BoolVar(&silhouette, "silhouette", false, "compute the silhouette metric")
	cmd.MarkFlagRequired("input")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
