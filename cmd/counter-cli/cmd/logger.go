// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"io"
	"os"
	"path"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logFactory writes to stderr and, when [config.Directory] is set, to a
// rotating JSON file per logger.
type logFactory struct {
	config logging.Config
	lock   sync.Mutex

	// Logger name --> the logger.
	loggers map[string]logging.Logger
}

func newLogFactory(config logging.Config) *logFactory {
	return &logFactory{
		config:  config,
		loggers: make(map[string]logging.Logger),
	}
}

// Assumes [f.lock] is held
func (f *logFactory) makeLogger(config logging.Config) (logging.Logger, error) {
	if _, ok := f.loggers[config.LoggerName]; ok {
		return nil, fmt.Errorf("logger with name %q already exists", config.LoggerName)
	}

	var consoleWriter io.WriteCloser = os.Stderr
	if config.DisableWriterDisplaying {
		consoleWriter = newDiscardWriteCloser()
	}
	consoleCore := logging.NewWrappedCore(config.DisplayLevel, consoleWriter, logging.Colors.ConsoleEncoder())
	consoleCore.WriterDisabled = config.DisableWriterDisplaying
	cores := []logging.WrappedCore{consoleCore}

	if config.Directory != "" {
		rw := &lumberjack.Logger{
			Filename:   path.Join(config.Directory, config.LoggerName+".log"),
			MaxSize:    config.MaxSize,  // megabytes
			MaxAge:     config.MaxAge,   // days
			MaxBackups: config.MaxFiles, // files
			Compress:   config.Compress,
		}
		cores = append(cores, logging.NewWrappedCore(config.LogLevel, rw, config.LogFormat.FileEncoder()))
	}

	prefix := config.LogFormat.WrapPrefix(config.MsgPrefix)
	l := logging.NewLogger(prefix, cores...)
	f.loggers[config.LoggerName] = l
	return l, nil
}

func (f *logFactory) Make(name string) (logging.Logger, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	config := f.config
	config.LoggerName = name
	return f.makeLogger(config)
}

func (f *logFactory) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, l := range f.loggers {
		l.Stop()
	}
	f.loggers = nil
}

func newLoggingConfig(level logging.Level, directory string) logging.Config {
	return logging.Config{
		RotatingWriterConfig: logging.RotatingWriterConfig{
			MaxSize:   8, // megabytes
			MaxFiles:  4,
			MaxAge:    7, // days
			Directory: directory,
		},
		DisplayLevel: level,
		LogLevel:     level,
		LogFormat:    logging.JSON,
	}
}

type discardWriteCloser struct {
	io.Writer
}

func newDiscardWriteCloser() *discardWriteCloser {
	return &discardWriteCloser{io.Discard}
}

// Close implements the io.Closer interface.
func (*discardWriteCloser) Close() error {
	return nil
}
