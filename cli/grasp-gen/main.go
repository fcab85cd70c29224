// Package main is the grasp-gen command itself.
package main

import (
	"log"
	"os"

	"github.com/mrBelka/block-grasp-generator/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
