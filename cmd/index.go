package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mkraev/jobfit/internal/logger"
	"github.com/mkraev/jobfit/internal/store"
	"github.com/mkraev/jobfit/internal/vectorindex"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the resume vector index",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild the vector index from the resume corpus",
	Long: "Rebuild the vector index from the resume corpus. Required after changing " +
		"the embedding model or dimension, since a persisted index from a different " +
		"model is rejected.",
	Run: func(_ *cobra.Command, _ []string) {
		buildIndex()
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexBuildCmd)
}

func buildIndex() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	st, err := store.Open(config.storePath())
	if err != nil {
		logger.Fatal("opening the local store", zap.Error(err))
	}
	defer st.Close()

	units, err := buildCorpus(config, st, logger)
	if err != nil {
		logger.Fatal("building the resume corpus", zap.Error(err))
	}

	embedder, err := newEmbedder(ctx, config)
	if err != nil {
		logger.Fatal("creating the embedder", zap.Error(err))
	}

	index := vectorindex.New(embedder, logger)
	if err := index.Build(ctx, units); err != nil {
		logger.Fatal("building the vector index", zap.Error(err))
	}

	if err := index.Save(config.indexDir()); err != nil {
		logger.Fatal("persisting the vector index", zap.Error(err))
	}

	logger.Info("vector index rebuilt",
		zap.Int("units", index.Len()),
		zap.String("model", embedder.ModelName()),
		zap.Int("dimension", embedder.Dimension()),
	)
}
