/*
tapegen is a console utility generating, sampling, and parsing records of a YAML grammar file.
Usage is

	tapegen generate <file> [symbol]
	tapegen sample <file> [symbol] [-n <count>]
	tapegen parse <file> [symbol] --input <tape>=<text> ...
	tapegen symbols <file>

[symbol] is a qualified symbol name or a namespace, default is the last symbol of the file.

Records are printed as a table when stdout is a terminal and as JSON lines otherwise, --format overrides this.
Generation limits (--max-recursion, --max-chars, --max-results, --random, --seed) and --format
may also be set in a YAML config file (--config) or in TAPEGEN_* environment variables, e.g. TAPEGEN_MAX_CHARS.
*/
package main

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/ava12/tapegen/internal/log"
)

func main() {
	_ = goflag.Set("logtostderr", "true")
	root := newRootCommand()
	root.PersistentFlags().AddGoFlagSet(goflag.CommandLine)

	e := root.Execute()
	log.Flush()
	if e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(exitCode(e))
	}
}
