// Package cli contains the grasp-gen command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"github.com/mrBelka/block-grasp-generator/visualize"
)

const (
	// Flags.
	generalFlagDebug   = "debug"
	generalFlagLogFile = "log-file"

	generateFlagRequest    = "request"
	generateFlagFormat     = "format"
	generateFlagVisualize  = "visualize"
	generateFlagFrameDelay = "frame-delay"
	generateFlagPolicy     = "policy"
	generateFlagWorkers    = "workers"

	formatTable = "table"
	formatJSON  = "json"
)

var requestFlag = &cli.StringFlag{
	Name:    generateFlagRequest,
	Aliases: []string{"r"},
	Usage:   "read the grasp request from `FILE`",
}

// NewApp returns a new app with the grasp-gen commands, Writer set to out, and ErrWriter
// set to errOut. Logs go to errOut so that command output can be piped.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "grasp-gen",
		Usage:           "generate grasp candidates for blocks",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Metadata:        map[string]interface{}{},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  generalFlagLogFile,
				Usage: "also write logs to `FILE`, rotating it as it grows",
			},
		},
		Before: setupLogging,
		After:  closeLogging,
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "generate grasp candidates for one or more request files",
				ArgsUsage: "[FILE...]",
				Flags: []cli.Flag{
					requestFlag,
					&cli.StringFlag{
						Name:  generateFlagFormat,
						Value: formatTable,
						Usage: "output format (table|json)",
					},
					&cli.BoolFlag{
						Name:  generateFlagVisualize,
						Usage: "animate the candidates in the motion-tools visualizer",
					},
					&cli.DurationFlag{
						Name:  generateFlagFrameDelay,
						Value: visualize.DefaultFrameDelay,
						Usage: "delay between animation frames",
					},
					&cli.StringFlag{
						Name:  generateFlagPolicy,
						Value: "default",
						Usage: "axis capability policy (default|reference)",
					},
					&cli.IntFlag{
						Name:  generateFlagWorkers,
						Usage: "number of requests generated concurrently, 0 for one per CPU",
					},
				},
				Action: GenerateAction,
			},
			{
				Name:      "validate",
				Usage:     "validate request files without generating",
				ArgsUsage: "[FILE...]",
				Flags:     []cli.Flag{requestFlag},
				Action:    ValidateAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of a request file",
				Action: SchemaAction,
			},
		},
	}
}
