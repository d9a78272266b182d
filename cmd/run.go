package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mkraev/jobfit/internal/filtering"
	"github.com/mkraev/jobfit/internal/job"
	"github.com/mkraev/jobfit/internal/logger"
	"github.com/mkraev/jobfit/internal/matchcache"
	"github.com/mkraev/jobfit/internal/scoring"
	"github.com/mkraev/jobfit/internal/store"
	"github.com/mkraev/jobfit/internal/tech"
)

const (
	PromptSaveShortlist   = "Save shortlist"
	PromptNo              = "No"
	PromptReportByCompany = "Report by company"
	PromptMatchesToFile   = "Dump matches to file"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptSaveShortlist, PromptNo, PromptReportByCompany, PromptMatchesToFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Score the postings file against the resume, filter and act on the results",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("force-rematch", "f", false, "recompute scores even for cached postings")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation, save the shortlist and exit")
	runCmd.Flags().StringP("jobs-file", "i", "", "JSON file with postings to score. Overrides the config.")

	viper.BindPFlag("jobs-file", runCmd.Flags().Lookup("jobs-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobfit", zap.String("version", version))

	if config.JobsFile == "" {
		logger.Fatal("a postings file is required under jobs-file to have anything to score")
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

	logger.Info("resume corpus ready", zap.Int("units", len(units)))

	embedder, err := newEmbedder(ctx, config)
	if err != nil {
		logger.Fatal("creating the embedder", zap.Error(err))
	}

	index, err := prepareIndex(ctx, embedder, units, config.indexDir(), logger)
	if err != nil {
		logger.Fatal("preparing the vector index", zap.Error(err))
	}

	postings, err := job.FromFile(config.JobsFile)
	if err != nil {
		logger.Fatal("loading postings", zap.Error(err))
	}

	logger.Info("postings loaded", zap.Int("count", postings.Len()), zap.String("file", config.JobsFile))

	saved, err := job.ShortlistFromFile(config.shortlistPath())
	if err != nil {
		logger.Fatal("loading the shortlist", zap.Error(err))
	}
	if saved.Len() > 0 {
		before := postings.Len()
		postings = postings.Exclude(job.PostingIDField, saved.IDs())
		logger.Info("excluded already shortlisted postings",
			zap.Int("excluded", before-postings.Len()),
			zap.Int("left", postings.Len()),
		)
	}

	if postings.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no postings to score"))
		return
	}

	logger.Debug("postings to score", zap.Strings("ids", postings.IDs()))

	scorer := scoring.NewScorer(index, tech.NewExtractor(), units, config.Scoring, logger)

	cache, err := matchcache.New(st, scorer, logger)
	if err != nil {
		logger.Fatal("loading the match cache", zap.Error(err))
	}

	forceRematch := cmd.Flag("force-rematch").Value.String() == "true"
	results, _ := cache.BatchAnalyze(ctx, postings, forceRematch)

	engine := filtering.NewEngine(config.filterConfig(), logger)

	matches := pairMatches(postings, results)
	filtered, _ := engine.Batch(matches)

	if len(filtered) == 0 {
		logger.Info("exiting", zap.String("reason", "no postings left after filters"))
		return
	}

	logMatches(logger, filtered)
	shortlist := decideShortlist(engine, filtered, logger)

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := saveShortlist(config, shortlist, logger); err != nil {
			logger.Fatal("saving shortlist", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, config, logger, filtered, shortlist); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, config *Config, logger *zap.Logger, matches []filtering.Match, shortlist []filtering.Match) error {
	switch action {
	case PromptSaveShortlist:
		return saveShortlist(config, shortlist, logger)
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByCompany:
		postings := &job.Postings{}
		for _, match := range matches {
			postings.Items = append(postings.Items, match.Posting)
		}
		pretty, _ := json.MarshalIndent(postings.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("postings count", postings.Len()))
		return nil
	case PromptMatchesToFile:
		filename, err := dumpMatches(matches)
		if err != nil {
			return fmt.Errorf("dump matches to file: %w", err)
		}
		logger.Info("dumping matches to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// pairMatches joins scoring results back to their postings, dropping
// results whose posting vanished from the input (should not happen).
func pairMatches(postings *job.Postings, results []*scoring.MatchResult) []filtering.Match {
	matches := make([]filtering.Match, 0, len(results))
	for _, result := range results {
		posting := postings.FindByID(result.JobID)
		if posting == nil {
			continue
		}
		matches = append(matches, filtering.Match{Posting: posting, Result: result})
	}
	return matches
}

func logMatches(logger *zap.Logger, matches []filtering.Match) {
	for _, match := range matches {
		logger.Info("posting passed filters",
			zap.String("job_id", match.Posting.ID),
			zap.String("title", match.Posting.Title),
			zap.String("company", match.Posting.Company),
			zap.Float64("fit_score", match.Result.FitScore),
			zap.Float64("coverage", match.Result.Coverage),
			zap.Float64("keyword_match", match.Result.KeywordMatch),
			zap.Int("missing_must_haves", match.Result.MissingMustHaves),
		)
	}
}

// decideShortlist runs the real-time decision per match and keeps the
// auto-save approved ones.
func decideShortlist(engine *filtering.Engine, matches []filtering.Match, logger *zap.Logger) []filtering.Match {
	var shortlist []filtering.Match
	for _, match := range matches {
		decision := engine.Decide(match.Posting, match.Result)
		if decision.Skip {
			logger.Debug("posting skipped by decision engine",
				zap.String("job_id", match.Posting.ID),
				zap.String("reason", decision.Message),
			)
			continue
		}
		if !decision.AutoSave {
			if decision.Message != "" {
				logger.Debug("posting not auto-saved",
					zap.String("job_id", match.Posting.ID),
					zap.String("reason", decision.Message),
				)
			}
			continue
		}
		shortlist = append(shortlist, match)
	}
	return shortlist
}

func saveShortlist(config *Config, matches []filtering.Match, logger *zap.Logger) error {
	if len(matches) == 0 {
		logger.Info("nothing to shortlist",
			zap.String("hint", "enable matcher.auto-save-enabled and check matcher.auto-save-threshold"),
		)
		return nil
	}

	path := config.shortlistPath()

	shortlist, err := job.ShortlistFromFile(path)
	if err != nil {
		return fmt.Errorf("loading shortlist: %w", err)
	}

	added := 0
	for _, match := range matches {
		if shortlist.Add(match.Posting, match.Result.FitScore) {
			added++
		}
	}

	if err := shortlist.ToFile(path); err != nil {
		return fmt.Errorf("writing shortlist: %w", err)
	}

	logger.Info("shortlist saved",
		zap.String("filename", path),
		zap.Int("added", added),
		zap.Int("total", shortlist.Len()),
	)
	return nil
}

func dumpMatches(matches []filtering.Match) (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	results := make([]*scoring.MatchResult, 0, len(matches))
	for _, match := range matches {
		results = append(results, match.Result)
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", err
	}
	return file.Name(), nil
}
