// Package config layers defaults, a YAML file, GLOSST_* environment
// variables and command-line flags into one Settings value.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oukeidos/glosst/internal/glossary"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "GLOSST"
	fileName  = ".glosst"
)

type Settings struct {
	Backend   string `mapstructure:"backend"`
	Source    string `mapstructure:"source"`
	Target    string `mapstructure:"target"`
	BatchSize int    `mapstructure:"batch_size"`
	Glossary  string `mapstructure:"glossary"`

	Cloud   Cloud   `mapstructure:"cloud"`
	Local   Local   `mapstructure:"local"`
	Gemini  Gemini  `mapstructure:"gemini"`
	Breaker Breaker `mapstructure:"breaker"`

	Glossaries []glossary.Entry `mapstructure:"glossaries"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type Cloud struct {
	ProjectID        string        `mapstructure:"project_id"`
	Location         string        `mapstructure:"location"`
	GlossaryLocation string        `mapstructure:"glossary_location"`
	CredentialsFile  string        `mapstructure:"credentials_file"`
	Endpoint         string        `mapstructure:"endpoint"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type Local struct {
	Command []string `mapstructure:"command"`
}

type Gemini struct {
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Breaker struct {
	Failures int           `mapstructure:"failures"`
	Cooldown time.Duration `mapstructure:"cooldown"`
}

var defaults = map[string]any{
	"backend":                 "cloud",
	"source":                  "zh-CN",
	"target":                  "ko",
	"batch_size":              200,
	"glossary":                "",
	"cloud.project_id":        "longtukoreatranslator",
	"cloud.location":          "us-central1",
	"cloud.glossary_location": "us-central1",
	"cloud.credentials_file":  "",
	"cloud.endpoint":          "",
	"cloud.timeout":           "0s",
	"local.command":           []string{},
	"gemini.model":            "gemini-3-flash-preview",
	"gemini.timeout":          "120s",
	"breaker.failures":        3,
	"breaker.cooldown":        "30s",
}

// FlagKeys maps config keys to the flag names that override them.
var FlagKeys = map[string]string{
	"backend":                "backend",
	"source":                 "source",
	"target":                 "target",
	"batch_size":             "batch-size",
	"glossary":               "glossary",
	"cloud.project_id":       "project",
	"cloud.credentials_file": "credentials",
	"local.command":          "local-command",
	"gemini.model":           "model",
	"breaker.failures":       "max-failures",
}

// Load reads settings. An explicit cfgFile must exist; otherwise
// $HOME/.glosst.yaml and ./.glosst.yaml are tried. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(fileName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	s.File = v.ConfigFileUsed()
	return s, nil
}

// Catalog builds the glossary catalog, using the built-in one when the
// settings list none.
func (s Settings) Catalog() (glossary.Catalog, error) {
	if len(s.Glossaries) == 0 {
		return glossary.Default(), nil
	}
	c, err := glossary.NewCatalog(s.Glossaries)
	if err != nil {
		return glossary.Catalog{}, fmt.Errorf("glossaries: %w", err)
	}
	return c, nil
}
