package cmd

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkraev/jobfit/internal/filtering"
	"github.com/mkraev/jobfit/internal/resume"
	"github.com/mkraev/jobfit/internal/scoring"
)

const (
	app = "jobfit"

	defaultDataDir = ".jobfit"
)

type Config struct {
	JobsFile string        `mapstructure:"jobs-file"`
	DataDir  string        `mapstructure:"data-dir"`
	SaveFile string        `mapstructure:"save-file"`
	Resume   *ResumeConfig `mapstructure:"resume"`

	Embedding *EmbeddingConfig `mapstructure:"embedding"`
	Scoring   scoring.Config   `mapstructure:"scoring"`

	PreferredLocations []string `mapstructure:"preferred-locations"`
	KeywordsToMatch    []string `mapstructure:"keywords-to-match"`
	CompaniesToAvoid   []string `mapstructure:"companies-to-avoid"`

	Matcher MatcherConfig `mapstructure:"matcher"`
}

type ResumeConfig struct {
	File   string                 `mapstructure:"file"`
	Skills []resume.SkillCategory `mapstructure:"skills"`
}

type EmbeddingConfig struct {
	Model      string `mapstructure:"model"`
	Dimension  int    `mapstructure:"dimension"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type MatcherConfig struct {
	MinMatchScore     float64 `mapstructure:"min-match-score"`
	AutoSaveEnabled   bool    `mapstructure:"auto-save-enabled"`
	AutoSaveThreshold float64 `mapstructure:"auto-save-threshold"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobfit scores job postings against your resume and decides which ones deserve action",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobfit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	setDefaults()

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

// setDefaults registers the documented defaults with viper so an explicit
// zero in the config file (a real "no penalty" setting) is not mistaken
// for an unset knob.
func setDefaults() {
	viper.SetDefault("data-dir", defaultDataDir)

	defaults := scoring.DefaultConfig()
	viper.SetDefault("scoring.similarity-threshold", defaults.SimilarityThreshold)
	viper.SetDefault("scoring.top-k", defaults.TopK)
	viper.SetDefault("scoring.penalty-per-missing-must-have", defaults.PenaltyPerMissingMustHave)
	viper.SetDefault("scoring.weights.keyword-match", defaults.Weights.Keyword)
	viper.SetDefault("scoring.weights.semantic-coverage", defaults.Weights.Coverage)
	viper.SetDefault("scoring.weights.semantic-strength", defaults.Weights.Strength)
	viper.SetDefault("scoring.weights.seniority-alignment", defaults.Weights.Seniority)
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if err := config.Scoring.Validate(); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}

	return config, nil
}

func (c *Config) storePath() string {
	return filepath.Join(c.DataDir, "matches.db")
}

func (c *Config) indexDir() string {
	return filepath.Join(c.DataDir, "index")
}

func (c *Config) shortlistPath() string {
	if c.SaveFile != "" {
		return c.SaveFile
	}
	return "shortlist.json"
}

func (c *Config) filterConfig() filtering.Config {
	return filtering.Config{
		MinMatchScore:      c.Matcher.MinMatchScore,
		AutoSaveEnabled:    c.Matcher.AutoSaveEnabled,
		AutoSaveThreshold:  c.Matcher.AutoSaveThreshold,
		PreferredLocations: c.PreferredLocations,
		KeywordsToMatch:    c.KeywordsToMatch,
		CompaniesToAvoid:   c.CompaniesToAvoid,
	}
}
