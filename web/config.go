package web

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/npillmayer/arbor/sandbox"
)

// Config carries the settings of the web application.
type Config struct {
	Port      string
	Env       string
	CacheSize int
	Limits    sandbox.Limits
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:      ":8080",
		Env:       "local",
		CacheSize: 128,
		Limits:    sandbox.DefaultLimits(),
	}
}

// Load reads the configuration from flags and the environment (a .env
// file is honored if present). Environment variables win over flags.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	port := flag.String("port", cfg.Port, "server port")
	flag.Parse()
	cfg.Port = *port

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			cfg.Port = envPort
		} else {
			cfg.Port = ":" + envPort
		}
	}
	if env := strings.TrimSpace(os.Getenv("ARBOR_ENV")); env != "" {
		cfg.Env = env
	}
	if n, ok := envInt("ARBOR_PARSE_CACHE"); ok && n > 0 {
		cfg.CacheSize = n
	}
	if n, ok := envInt("ARBOR_EXEC_TIMEOUT"); ok && n > 0 {
		cfg.Limits.Timeout = time.Duration(n) * time.Second
	}
	if n, ok := envInt("ARBOR_EXEC_MAXOUT"); ok && n > 0 {
		cfg.Limits.MaxOutputBytes = n
	}
	return cfg, nil
}

func envInt(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
