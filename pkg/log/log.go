// Copyright 2022 The xrocket Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	debugLevel   = "debug"
	infoLevel    = "info"
	warningLevel = "warn"
	errorLevel   = "error"
	offLevel     = "off"
)

const jsonFormat = "json"

// Config contains logger configuration.
type Config struct {
	Level  string `fig:"level" default:"debug"`
	Format string `fig:"format" default:"logfmt"`
}

// NewDefaultLogger creates a new go-kit logger writing to stderr.
func NewDefaultLogger(cfg Config) log.Logger {
	return New(cfg, os.Stderr)
}

// New creates a new go-kit logger with the configured level and format writing to w.
func New(cfg Config, w io.Writer) log.Logger {
	var logger log.Logger

	sw := log.NewSyncWriter(w)
	if strings.ToLower(cfg.Format) == jsonFormat {
		logger = log.NewJSONLogger(sw)
	} else {
		logger = log.NewLogfmtLogger(sw)
	}
	logger = level.NewFilter(logger, allowOption(cfg.Level))
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

func allowOption(lv string) level.Option {
	switch strings.ToLower(lv) {
	case debugLevel:
		return level.AllowDebug()
	case infoLevel:
		return level.AllowInfo()
	case warningLevel:
		return level.AllowWarn()
	case errorLevel:
		return level.AllowError()
	case offLevel:
		return level.AllowNone()
	default:
		return level.AllowAll()
	}
}
