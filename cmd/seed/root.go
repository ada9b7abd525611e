package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/config"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/database"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie/repository"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie/service"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/logger"
)

func newRootCommand() *cobra.Command {
	var fileFlag string
	var dryRun bool

	rootCmd := &cobra.Command{
		Use:           "seed",
		Short:         "Load movies from a JSON file into the catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fileFlag == "" {
				return fmt.Errorf("--file is required")
			}
			f, err := os.Open(fileFlag)
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer f.Close()

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger.Init(cfg.Log.Level)

			repo, closeRepo, err := openRepo(cmd.Context(), cfg, dryRun)
			if err != nil {
				return err
			}
			defer closeRepo()

			res, err := seedMovies(cmd.Context(), service.NewService(repo), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d movie(s), skipped %d\n", res.Created, len(res.Skipped))
			for _, s := range res.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "  #%d: %s\n", s.Index, s.Reason)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "JSON file holding an array of movies")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate against an in-memory store instead of MongoDB")

	return rootCmd
}

// openRepo returns the Mongo repository when MONGODB_URI is set, otherwise
// an in-memory one.
func openRepo(ctx context.Context, cfg *config.Config, dryRun bool) (repository.Repository, func(), error) {
	if dryRun || cfg.MongoDB.URI == "" {
		if !dryRun {
			logger.Warn("MONGODB_URI not set: seeding an in-memory store")
		}
		return repository.NewMemoryRepo(), func() {}, nil
	}
	client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 3, time.Second)
	if err != nil {
		return nil, nil, err
	}
	col := client.Database(cfg.MongoDB.Database).Collection("movies")
	return repository.NewMongoRepo(col), func() { _ = client.Disconnect(context.Background()) }, nil
}
