// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	// FileName of the main configuration inside the config directory.
	FileName = "main.toml"

	// EnvJSON holds a JSON document merged over the file configuration.
	EnvJSON = "NSUPDATE_INTERACTIVE_CONFIG_JSON"
)

// ReadConfig from config file. A missing file leaves the defaults in place.
func ReadConfig(path string) (Config, error) {
	var (
		c             = Default()
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	file := filepath.Join(path, FileName)

	if _, err = os.Stat(file); err == nil {
		if _, err = toml.DecodeFile(file, &c); err != nil {
			return Config{}, errors.Wrap(err, "failed to read main config file")
		}
	} else if !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "failed to stat main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read json config from env")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// Validate checks c after flags have been merged into it.
func Validate(c *Config) error {
	return validate(c)
}

func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	if c.Backend == BackendPowerDNS && c.PowerDNS.URL == "" {
		return errors.Wrap(ErrPowerDNSURLEmpty, invalidErrMessage)
	}

	if !c.Journal.Enabled {
		return nil
	}

	switch c.Journal.Engine {
	case "", "sqlite":
		if c.Journal.Path == "" {
			return errors.Wrap(ErrJournalPathEmpty, invalidErrMessage)
		}
	default:
		if c.DB.Host == "" {
			return errors.Wrap(ErrJournalHostEmpty, invalidErrMessage)
		}
	}

	return nil
}
