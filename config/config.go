// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/ava-labs/upgradevm/consts"
	"github.com/ava-labs/upgradevm/pebble"
	"github.com/ava-labs/upgradevm/server"
	"github.com/ava-labs/upgradevm/trace"
)

const (
	DefaultHTTPAddress = "127.0.0.1:9650"
	DefaultEndpoint    = "http://" + DefaultHTTPAddress
)

// Config is the node configuration. Keys match the json tags whether they
// come from a config file, UPGRADEVM_* environment variables, or flags.
type Config struct {
	HTTPAddress     string            `json:"httpAddress"`
	HTTP            server.HTTPConfig `json:"http"`
	AllowedOrigins  []string          `json:"allowedOrigins"`
	AllowedHosts    []string          `json:"allowedHosts"`
	MaxRequestSize  int64             `json:"maxRequestSize"`
	ShutdownTimeout time.Duration     `json:"shutdownTimeout"`

	DataDir string        `json:"dataDir"`
	Storage pebble.Config `json:"storage"`

	LogLevel      string `json:"logLevel"`
	LogDir        string `json:"logDir"`
	LogMaxSize    int    `json:"logMaxSize"` // MiB
	LogMaxBackups int    `json:"logMaxBackups"`
	LogMaxAge     int    `json:"logMaxAge"` // days

	Trace trace.Config `json:"trace"`
}

func NewConfig() Config {
	return Config{
		HTTPAddress:     DefaultHTTPAddress,
		HTTP:            server.NewDefaultHTTPConfig(),
		AllowedOrigins:  []string{"*"},
		AllowedHosts:    []string{"localhost"},
		MaxRequestSize:  consts.NetworkSizeLimit,
		ShutdownTimeout: 10 * time.Second,
		DataDir:         ".upgradevm",
		Storage:         pebble.NewDefaultConfig(),
		LogLevel:        logging.Info.String(),
		LogMaxSize:      8,
		LogMaxBackups:   7,
		LogMaxAge:       7,
		Trace: trace.Config{
			Enabled:         false,
			TraceSampleRate: 0.1,
			AppName:         "upgradevm",
			Agent:           "upgradevm",
		},
	}
}

// Load overlays every value set in [v] on top of [NewConfig].
func Load(v *viper.Viper) (Config, error) {
	c := NewConfig()
	if err := v.Unmarshal(&c, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
	}); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := c.Verify(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Verify() error {
	if _, err := c.GetLogLevel(); err != nil {
		return err
	}
	if c.DataDir == "" {
		return ErrMissingDataDir
	}
	if c.MaxRequestSize <= 0 || c.MaxRequestSize > 64*units.MiB {
		return fmt.Errorf("%w: %d", ErrInvalidRequestSize, c.MaxRequestSize)
	}
	return nil
}

func (c Config) GetLogLevel() (logging.Level, error) {
	return logging.ToLevel(c.LogLevel)
}
