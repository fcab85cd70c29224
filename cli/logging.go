package cli

import (
	"github.com/urfave/cli/v2"
	"go.viam.com/rdk/logging"
	"go.viam.com/utils"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	metadataLogger  = "logger"
	metadataLogFile = "log_file"

	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
)

func setupLogging(c *cli.Context) error {
	logger := logging.NewBlankLogger("grasp-gen")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if !c.Bool(generalFlagDebug) {
		logger.SetLevel(logging.INFO)
	}
	if path := c.String(generalFlagLogFile); path != "" {
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			Compress:   true,
		}
		logger.AddAppender(logging.NewWriterAppender(rotator))
		c.App.Metadata[metadataLogFile] = rotator
	}
	c.App.Metadata[metadataLogger] = logger
	return nil
}

func closeLogging(c *cli.Context) error {
	if rotator, ok := c.App.Metadata[metadataLogFile].(*lumberjack.Logger); ok {
		utils.UncheckedError(rotator.Close())
	}
	return nil
}

func loggerFrom(c *cli.Context) logging.Logger {
	if logger, ok := c.App.Metadata[metadataLogger].(logging.Logger); ok {
		return logger
	}
	return logging.NewLogger("grasp-gen")
}
