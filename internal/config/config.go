package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"study-quiz/internal/history"
	"study-quiz/internal/opentdb"
	"study-quiz/internal/quiz"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	ModeTUI   = "tui"
	ModePlain = "plain"

	envPrefix = "STUDYQUIZ"
)

// Config holds application configuration loaded from files, environment
// variables and command-line flags.
type Config struct {
	Env     string  `mapstructure:"env"` // local, prod
	OpenTDB OpenTDB `mapstructure:"opentdb"`
	Quiz    Quiz    `mapstructure:"quiz"`
	UI      UI      `mapstructure:"ui"`
	Log     Log     `mapstructure:"log"`
	History History `mapstructure:"history"`
}

type OpenTDB struct {
	BaseURL string        `mapstructure:"base_url"`
	Amount  int           `mapstructure:"amount"`
	Type    string        `mapstructure:"type"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Quiz struct {
	RoundSize        int    `mapstructure:"round_size"`
	PointsPerCorrect int    `mapstructure:"points_per_correct"`
	Shuffle          string `mapstructure:"shuffle"` // uniform or biased
}

type UI struct {
	Mode string `mapstructure:"mode"`
}

type Log struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

type History struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Show    bool   `mapstructure:"show"`
	Limit   int    `mapstructure:"limit"`
}

// Rules converts the quiz section into round rules.
func (q Quiz) Rules() quiz.Rules {
	return quiz.Rules{
		RoundSize:        q.RoundSize,
		PointsPerCorrect: q.PointsPerCorrect,
	}
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("study-quiz", pflag.ContinueOnError)
	flags.String("ui.mode", ModeTUI, "user interface: tui or plain")
	flags.String("quiz.shuffle", quiz.ShuffleUniform, "answer shuffle: uniform or biased")
	flags.String("log.path", "", "log file path (stderr when empty in plain mode)")
	flags.String("log.level", "info", "log level")
	flags.Bool("history.enabled", true, "record finished rounds")
	flags.String("history.path", history.DefaultPath, "round history database")
	flags.Bool("history.show", false, "print recent rounds and exit")
	flags.Duration("opentdb.timeout", 10*time.Second, "trivia API timeout")
	return flags
}

// Load reads configuration from an optional .env file, config/config.yaml,
// STUDYQUIZ_* environment variables and args, in increasing precedence.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("opentdb.base_url", opentdb.DefaultBaseURL)
	v.SetDefault("opentdb.amount", opentdb.DefaultAmount)
	v.SetDefault("opentdb.type", opentdb.TypeMultiple)
	v.SetDefault("quiz.round_size", quiz.DefaultRoundSize)
	v.SetDefault("quiz.points_per_correct", quiz.DefaultPointsPerCorrect)
	v.SetDefault("history.limit", 10)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.UI.Mode = strings.ToLower(strings.TrimSpace(c.UI.Mode))
	switch c.UI.Mode {
	case ModeTUI, ModePlain:
	default:
		return fmt.Errorf("%w: ui.mode %q", ErrInvalidConfig, c.UI.Mode)
	}

	c.Quiz.Shuffle = strings.ToLower(strings.TrimSpace(c.Quiz.Shuffle))
	switch c.Quiz.Shuffle {
	case quiz.ShuffleUniform, quiz.ShuffleBiased:
	default:
		return fmt.Errorf("%w: quiz.shuffle %q", ErrInvalidConfig, c.Quiz.Shuffle)
	}

	if c.OpenTDB.Amount <= 0 {
		return fmt.Errorf("%w: opentdb.amount must be positive", ErrInvalidConfig)
	}
	if c.Quiz.RoundSize <= 0 || c.Quiz.RoundSize > c.OpenTDB.Amount {
		return fmt.Errorf("%w: quiz.round_size must be between 1 and opentdb.amount", ErrInvalidConfig)
	}
	if c.Quiz.PointsPerCorrect <= 0 {
		return fmt.Errorf("%w: quiz.points_per_correct must be positive", ErrInvalidConfig)
	}
	if c.OpenTDB.Timeout <= 0 {
		return fmt.Errorf("%w: opentdb.timeout must be positive", ErrInvalidConfig)
	}

	// The terminal UI owns stdout and stderr.
	if c.UI.Mode == ModeTUI && strings.TrimSpace(c.Log.Path) == "" {
		c.Log.Path = "study-quiz.log"
	}
	return nil
}
