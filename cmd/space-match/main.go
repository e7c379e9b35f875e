// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// optional, flags fall back to their SPACEMATCH_* variables
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "space-match",
		Usage: "Utility for allocating shared office workspace",
		Commands: []*cli.Command{
			matchCmd,
			exampleCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

var seedFlag = &cli.Int64Flag{
	Name:    "seed",
	EnvVars: []string{"SPACEMATCH_SEED"},
	Usage:   "specify the random seed for example data (default: current time)",
}

var seqFlag = &cli.BoolFlag{
	Name:    "seq",
	EnvVars: []string{"SPACEMATCH_SEQ"},
	Usage:   "use sequential ids (usr-0001) instead of uuids",
}

var matchCmd = &cli.Command{
	Name:    "match",
	Usage:   "Match users against rental spaces",
	Aliases: []string{"m"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			EnvVars: []string{"SPACEMATCH_DATA"},
			Usage:   "specify the input data.json",
		},
		&cli.BoolFlag{
			Name:  "example",
			Usage: "match the generated example data instead of a data file",
		},
		&cli.BoolFlag{
			Name:    "subsplit",
			EnvVars: []string{"SPACEMATCH_SUBSPLIT"},
			Usage:   "allow rental spaces to be split",
		},
		&cli.StringFlag{
			Name:    "output",
			EnvVars: []string{"SPACEMATCH_OUTPUT"},
			Usage:   "specify the output matchings.json (default: stdout)",
		},
		seedFlag,
		seqFlag,
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			EnvVars: []string{"SPACEMATCH_VERBOSE"},
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			dataFile   = ctx.String("data")
			example    = ctx.Bool("example")
			subsplit   = ctx.Bool("subsplit")
			outputFile = ctx.String("output")
			verbose    = ctx.Bool("verbose")
		)
		if (dataFile == "") == !example {
			return errors.New("specify exactly one of --data and --example")
		}
		return doMatch(ctx.Context, matchOptions{
			DataFile:   dataFile,
			Example:    example,
			Subsplit:   subsplit,
			OutputFile: outputFile,
			Seed:       seed(ctx),
			Sequential: ctx.Bool("seq"),
			Verbose:    verbose,
		})
	},
}

var exampleCmd = &cli.Command{
	Name:    "example",
	Usage:   "Write the example data set",
	Aliases: []string{"e"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Required: true,
			Usage:    "specify the output data.json",
		},
		seedFlag,
		seqFlag,
	},
	Action: func(ctx *cli.Context) error {
		return doExample(ctx.Context, ctx.String("output"), seed(ctx), ctx.Bool("seq"))
	},
}

func seed(ctx *cli.Context) int64 {
	if ctx.IsSet("seed") {
		return ctx.Int64("seed")
	}
	return time.Now().UnixNano()
}
