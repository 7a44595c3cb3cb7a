// Package cli implements the campaign-agent CLI commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dekleptocracy/campaign-agent/internal/config"
	"github.com/dekleptocracy/campaign-agent/internal/events"
	"github.com/dekleptocracy/campaign-agent/internal/llm"
	"github.com/dekleptocracy/campaign-agent/internal/llm/anthropic"
	"github.com/dekleptocracy/campaign-agent/internal/llm/gemini"
	"github.com/dekleptocracy/campaign-agent/internal/llm/openai"
	"github.com/dekleptocracy/campaign-agent/internal/logging"
	"github.com/dekleptocracy/campaign-agent/internal/pipeline"
	"github.com/dekleptocracy/campaign-agent/internal/store"
)

// Version is set at build time.
var Version = "dev"

var errNoKeyForStdio = fmt.Errorf("%w: set api_key or the provider's API key variable", config.ErrNoCredential)

// errNoGenerator is returned by the generator of commands that never call the model.
var errNoGenerator = errors.New("command does not use a generator")

var (
	configFile string
	verbose    bool

	cfg    *config.Config
	logger = zap.NewNop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "campaign-agent",
	Short: "Research lobbying multinationals and draft advocacy campaigns",
	Long: `campaign-agent asks a generative model for multinational companies that lobby
in the US, researches their record and drafts a bilingual social media campaign.
Companies already researched are remembered and left out of later lists.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(config.LoadOptions{File: configFile, Flags: cmd.Flags()})
		if err != nil {
			return err
		}
		if verbose {
			c.Log.Level = "debug"
		}
		l, err := logging.New(c.Log.Level, c.Log.Development)
		if err != nil {
			return err
		}
		cfg, logger = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "Config file (default: ./campaign-agent.yaml or ~/.config/campaign-agent/campaign-agent.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	pf.String("provider", "", "Generation provider: gemini, openai or anthropic")
	pf.String("model", "", "Model name (default depends on provider)")
	pf.String("store", "", "Memory backend: file, sqlite or postgres")
	pf.StringP("memory-file", "m", "", "Memory file or SQLite database path")
	pf.String("dsn", "", "Postgres connection string")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.StringSlice("brokers", nil, "Kafka seed brokers for pipeline events")
}

func openStore() (store.Store, error) {
	return store.Open(store.Options{
		Driver: cfg.Store.Driver,
		Path:   cfg.Store.Path,
		DSN:    cfg.Store.DSN,
	})
}

// newGenerator builds the configured provider client, prompting for a key on
// the command's stdin when none is configured.
func newGenerator(ctx context.Context, cmd *cobra.Command) (llm.Generator, error) {
	if err := cfg.ResolveAPIKey(cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, err)
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		m, err := gemini.NewModel(ctx, cfg.APIKey, func(o *gemini.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.Temperature = float32(cfg.Temperature)
			o.BaseURL = cfg.BaseURL
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.ProviderOpenAI:
		return openai.NewModel(func(o *openai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.Temperature = cfg.Temperature
			o.APIKey = cfg.APIKey
			o.BaseURL = cfg.BaseURL
		}), nil
	case config.ProviderAnthropic:
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.Temperature = cfg.Temperature
			o.APIKey = cfg.APIKey
			o.BaseURL = cfg.BaseURL
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// newPublisher is a variable so tests can record events.
var newPublisher = func() (events.Publisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return events.Discard, func() {}, nil
	}
	p, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("publishing events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", p.Topic()))
	return p, func() { _ = p.Close() }, nil
}

// app is everything a pipeline command needs; close releases it.
type app struct {
	pipeline *pipeline.Pipeline
	close    func()
}

func newApp(cmd *cobra.Command) (*app, error) {
	gen, err := newGenerator(cmd.Context(), cmd)
	if err != nil {
		return nil, err
	}
	return buildApp(gen)
}

// newMemoryApp is newApp for commands that only touch memory; it needs no key.
func newMemoryApp() (*app, error) {
	return buildApp(llm.GeneratorFunc(func(context.Context, string) (string, error) {
		return "", errNoGenerator
	}))
}

func buildApp(gen llm.Generator) (*app, error) {
	s, err := openStore()
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	pub, closePub, err := newPublisher()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("create publisher: %w", err)
	}

	p := pipeline.New(s, gen, pub, logger, pipeline.Options{
		CandidateCount: cfg.Pipeline.CandidateCount,
		Organization:   cfg.Pipeline.Organization,
		DonationURL:    cfg.Pipeline.DonationURL,
		PublishTimeout: cfg.Kafka.PublishTimeout,
	})
	return &app{
		pipeline: p,
		close: func() {
			closePub()
			s.Close()
		},
	}, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
