package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

type extractConfig struct {
	Locales        []string     `yaml:"locales"`
	SourceLocale   string       `yaml:"sourceLocale"`
	CatalogDir     string       `yaml:"catalogDir"`
	Concurrency    int          `yaml:"concurrency"`
	FollowDefaults bool         `yaml:"followDefaults"`
	Go             goConfig     `yaml:"go"`
	Markup         markupConfig `yaml:"markup"`
	Log            logConfig    `yaml:"log"`

	configPath string
	overwrite  bool
	clean      bool
	diff       bool
	metrics    string
}

type goConfig struct {
	Dir      string   `yaml:"dir"`
	Patterns []string `yaml:"patterns"`
	Tests    bool     `yaml:"tests"`
}

type markupConfig struct {
	Root  string   `yaml:"root"`
	Globs []string `yaml:"globs"`
}

type logConfig struct {
	Level string `yaml:"level"`
}

func defaultConfig() extractConfig {
	return extractConfig{
		CatalogDir: "locales",
		Log:        logConfig{Level: "info"},
	}
}

// listFlag collects repeated or comma separated values.
type listFlag struct {
	items []string
}

func (f *listFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *listFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.items = append(f.items, part)
	}
	return nil
}

// parseFlags reads the config file named by -config and lets flags override
// it. Positional arguments replace the configured Go package patterns.
func parseFlags(args []string) (extractConfig, error) {
	cfg := defaultConfig()

	fs := flag.NewFlagSet("i18n-extract", flag.ContinueOnError)
	var (
		locales   listFlag
		globs     listFlag
		source    string
		catalog   string
		logLevel  string
		follow    bool
		limit     int
		goTests   bool
		goDir     string
		rootLabel string
	)
	fs.StringVar(&cfg.configPath, "config", "i18n.yaml", "path to the extraction config file")
	fs.Var(&locales, "locale", "locale to maintain a catalog for. Repeat flag to add more.")
	fs.StringVar(&source, "source", "", "source locale whose translations are seeded from defaults")
	fs.StringVar(&catalog, "out", "", "catalog directory")
	fs.Var(&globs, "markup", "template glob to extract. Repeat flag to add more.")
	fs.StringVar(&rootLabel, "markup-root", "", "message element name in templates")
	fs.StringVar(&goDir, "dir", "", "directory Go packages are loaded from")
	fs.BoolVar(&goTests, "tests", false, "include Go test files")
	fs.IntVar(&limit, "concurrency", 0, "number of units extracted at once")
	fs.BoolVar(&cfg.overwrite, "overwrite", false, "reset source locale translations to the current defaults")
	fs.BoolVar(&follow, "follow-defaults", false, "let untouched source translations follow changed defaults")
	fs.BoolVar(&cfg.clean, "clean", false, "drop obsolete messages")
	fs.BoolVar(&cfg.diff, "diff", false, "print a JSON merge patch per changed locale")
	fs.StringVar(&cfg.metrics, "metrics", "", "write Prometheus metrics to this textfile")
	fs.StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return extractConfig{}, err
	}

	if err := cfg.readYAML(cfg.configPath); err != nil {
		return extractConfig{}, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if len(locales.items) > 0 {
		cfg.Locales = locales.items
	}
	if len(globs.items) > 0 {
		cfg.Markup.Globs = globs.items
	}
	if source != "" {
		cfg.SourceLocale = source
	}
	if catalog != "" {
		cfg.CatalogDir = catalog
	}
	if rootLabel != "" {
		cfg.Markup.Root = rootLabel
	}
	if goDir != "" {
		cfg.Go.Dir = goDir
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if set["tests"] {
		cfg.Go.Tests = goTests
	}
	if set["follow-defaults"] {
		cfg.FollowDefaults = follow
	}
	if set["concurrency"] {
		cfg.Concurrency = limit
	}
	if rest := fs.Args(); len(rest) > 0 {
		cfg.Go.Patterns = rest
	}

	return cfg, cfg.validate()
}

func (c *extractConfig) validate() error {
	if len(c.Locales) == 0 {
		return errors.New("at least one locale is required")
	}
	if c.SourceLocale == "" {
		c.SourceLocale = c.Locales[0]
	}

	found := false
	for _, locale := range c.Locales {
		if locale == c.SourceLocale {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("source locale %q is not one of the locales %v", c.SourceLocale, c.Locales)
	}
	if c.CatalogDir == "" {
		return errors.New("catalog directory is required")
	}
	return nil
}

// readYAML loads path into c. A missing file leaves the defaults in place.
func (c *extractConfig) readYAML(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Debug().Str("path", path).Msg("Config file not found, using flags only")
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}
	return nil
}
