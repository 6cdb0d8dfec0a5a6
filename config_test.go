package main

import (
	"testing"
	"time"
)

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("MINIGAMES_PORT", "9000")
	t.Setenv("MINIGAMES_PLAY_TIMEOUT", "90s")
	t.Setenv("MINIGAMES_CALLBACK_URL", "https://host.example/back")

	cfg := &Config{}
	newCmd(cfg)
	if cfg.port != 9000 || cfg.playTimeout != 90*time.Second || cfg.callbackURL != "https://host.example/back" {
		t.Errorf("config %+v", cfg)
	}
	if cfg.frame != 100*time.Millisecond || cfg.logLevel != "info" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestFlagsBeatEnv(t *testing.T) {
	t.Setenv("MINIGAMES_PORT", "9000")
	cfg := &Config{}
	cmd := newCmd(cfg)
	if err := cmd.Flags().Parse([]string{"--port", "7000"}); err != nil {
		t.Fatal(err)
	}
	if cfg.port != 7000 {
		t.Errorf("port %d", cfg.port)
	}
}

func TestValidate(t *testing.T) {
	base := Config{port: 8080, frame: 100 * time.Millisecond, playTimeout: time.Minute}
	if err := base.validate(); err != nil {
		t.Fatal(err)
	}
	bad := []func(c *Config){
		func(c *Config) { c.port = 0 },
		func(c *Config) { c.port = 70000 },
		func(c *Config) { c.frame = time.Millisecond },
		func(c *Config) { c.playTimeout = 0 },
	}
	for i, mut := range bad {
		c := base
		mut(&c)
		if err := c.validate(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
