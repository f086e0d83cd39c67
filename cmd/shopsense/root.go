package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsense/internal/config"
	logpkg "github.com/kailas-cloud/shopsense/internal/logger"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath  string
	env         string
	catalogPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "shopsense",
		Short: "Product search, recommendations and a shopping assistant over a catalog",
		Long: `shopsense ranks catalog products against free-text queries with TF-IDF,
blends content, history and popularity signals into recommendations, and answers
chat-style shopping requests. Run "serve" for the HTTP API or query a catalog offline.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default config/<env>.yaml)")
	cmd.PersistentFlags().StringVar(&opts.env, "env", "", "environment name (default $ENV or local)")
	cmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "catalog file, overrides catalog.path")

	cmd.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newChatCmd(opts),
		newRecommendCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) environment() string {
	if o.env != "" {
		return o.env
	}
	return config.GetEnv()
}

// load resolves the configuration. Offline commands fall back to defaults
// when no config file was requested and none exists for the environment.
func (o *rootOptions) load(offline bool) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	switch {
	case o.configPath != "":
		cfg, err = config.LoadFile(o.configPath)
	case offline:
		cfg, err = config.Load(o.environment())
		if err != nil {
			cfg, err = config.Default(), nil
		}
	default:
		cfg, err = config.Load(o.environment())
	}
	if err != nil {
		return config.Config{}, err
	}
	if o.catalogPath != "" {
		cfg.Catalog.Path = o.catalogPath
	}
	return cfg, nil
}

func newCLILogger(level string) *zap.Logger {
	l, err := logpkg.NewLogger("cli", level)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
