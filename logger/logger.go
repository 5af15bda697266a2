// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package logger

import (
	"go.uber.org/zap"
)

var myLogger *zap.SugaredLogger

// Set sets a global logger
func Set(logger *zap.SugaredLogger) {
	myLogger = logger
}

func I() *zap.SugaredLogger {
	return myLogger
}

// SetupDebug installs a development logger for verbose runs.
func SetupDebug() {
	logger, _ := zap.NewDevelopment()
	Set(logger.Sugar())
}

func init() {
	Set(zap.NewNop().Sugar())
}
