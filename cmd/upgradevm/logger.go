// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/upgradevm/config"
	"github.com/ava-labs/upgradevm/utils"
)

const loggerName = "upgradevm"

// newLogger writes colored output to stderr and, when a log directory is
// configured, JSON lines to a rotated file.
func newLogger(cfg config.Config) (logging.Logger, error) {
	level, err := cfg.GetLogLevel()
	if err != nil {
		return nil, err
	}
	cores := []logging.WrappedCore{
		logging.NewWrappedCore(level, os.Stderr, logging.Colors.ConsoleEncoder()),
	}
	if cfg.LogDir != "" {
		dir, err := utils.InitSubDirectory(cfg.LogDir, loggerName)
		if err != nil {
			return nil, err
		}
		rw := &lumberjack.Logger{
			Filename:   filepath.Join(dir, loggerName+".log"),
			MaxSize:    cfg.LogMaxSize,    // megabytes
			MaxAge:     cfg.LogMaxAge,     // days
			MaxBackups: cfg.LogMaxBackups, // files
			Compress:   true,
		}
		cores = append(cores, logging.NewWrappedCore(level, rw, logging.JSON.FileEncoder()))
	}
	return logging.NewLogger("", cores...), nil
}
