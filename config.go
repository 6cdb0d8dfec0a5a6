package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind         string
	port         int
	db           string
	callbackURL  string
	jwtSecret    string
	tokenTTL     time.Duration
	frame        time.Duration
	playTimeout  time.Duration
	logLevel     string
	clientOrigin string
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.frame < 10*time.Millisecond {
		return errors.New("--frame must be at least 10ms")
	}
	if c.playTimeout < time.Second {
		return errors.New("--play-timeout must be at least 1s")
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MINIGAMES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "minigames",
		Short:         "Game server for the anagram, bugsequence, colors, double and memo mini-games.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: MINIGAMES_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 5175, "port to listen on (env: MINIGAMES_PORT)")
	fs.StringVar(&cfg.db, "db", "./data/minigames.db", "path to the results database (env: MINIGAMES_DB)")
	fs.StringVar(&cfg.callbackURL, "callback-url", "", "page that receives the results hand-off (env: MINIGAMES_CALLBACK_URL)")
	fs.StringVar(&cfg.jwtSecret, "jwt-secret", "dev_secret_change_me", "secret used to sign play tokens (env: MINIGAMES_JWT_SECRET)")
	fs.DurationVar(&cfg.tokenTTL, "token-ttl", 2*time.Hour, "lifetime of a play token (env: MINIGAMES_TOKEN_TTL)")
	fs.DurationVar(&cfg.frame, "frame", 100*time.Millisecond, "game clock tick interval (env: MINIGAMES_FRAME)")
	fs.DurationVar(&cfg.playTimeout, "play-timeout", 10*time.Minute, "time before idle plays are dropped (env: MINIGAMES_PLAY_TIMEOUT)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "zerolog level: debug, info, warn, error (env: MINIGAMES_LOG_LEVEL)")
	fs.StringVar(&cfg.clientOrigin, "client-origin", "http://localhost:5173", "origin allowed by CORS (env: MINIGAMES_CLIENT_ORIGIN)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}
