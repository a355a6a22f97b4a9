package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ava12/tapegen"
	"github.com/ava12/tapegen/generate"
	"github.com/ava12/tapegen/grammar"
	"github.com/ava12/tapegen/internal/log"
)

const envPrefix = "TAPEGEN"

const (
	flagConfig       = "config"
	flagMaxRecursion = "max-recursion"
	flagMaxChars     = "max-chars"
	flagMaxResults   = "max-results"
	flagRandom       = "random"
	flagSeed         = "seed"
	flagFormat       = "format"
	flagCount        = "count"
	flagInput        = "input"
	flagSummary      = "summary"
)

// settings are generation options resolved from flags, config file, and environment.
type settings struct {
	v *viper.Viper
}

func (s settings) options() generate.Options {
	return generate.Options{
		Random:       s.v.GetBool(flagRandom),
		MaxRecursion: s.v.GetInt(flagMaxRecursion),
		MaxChars:     s.v.GetInt(flagMaxChars),
		MaxResults:   s.v.GetInt(flagMaxResults),
		Seed:         s.v.GetUint64(flagSeed),
	}
}

func (s settings) format() string {
	return s.v.GetString(flagFormat)
}

func newRootCommand() *cobra.Command {
	s := settings{viper.New()}
	root := &cobra.Command{
		Use:           "tapegen",
		Short:         "Generate and parse records of multi-tape grammars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if e := log.Init(cmd.Flags()); e != nil {
				return e
			}
			return s.load(cmd)
		},
	}

	fs := root.PersistentFlags()
	fs.String(flagConfig, "", "YAML config file")
	fs.Int(flagMaxRecursion, 0, "nesting limit of each symbol, default 4")
	fs.Int(flagMaxChars, 0, "character limit of a record, default 100")
	fs.Int(flagMaxResults, 0, "record limit, 0 means no limit")
	fs.Bool(flagRandom, false, "generate records in random order")
	fs.Uint64(flagSeed, 0, "random seed, 0 picks a random one")
	fs.String(flagFormat, "", "output format: table or json, default depends on terminal")
	fs.Bool(flagSummary, false, "print record count and elapsed time to stderr")
	log.RegisterFlags(fs)

	root.AddCommand(
		newGenerateCommand(s),
		newSampleCommand(s),
		newParseCommand(s),
		newSymbolsCommand(s),
	)
	return root
}

func (s settings) load(cmd *cobra.Command) error {
	s.v.SetEnvPrefix(envPrefix)
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()
	if e := s.v.BindPFlags(cmd.Flags()); e != nil {
		return e
	}

	if path := s.v.GetString(flagConfig); path != "" {
		s.v.SetConfigFile(path)
		if e := s.v.ReadInConfig(); e != nil {
			return fmt.Errorf("cannot read config: %w", e)
		}
		log.DebugS("config loaded", "file", path)
	}
	return nil
}

func symbolArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}

func newGenerateCommand(s settings) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <file> [symbol]",
		Short: "Print all records of a symbol",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, e := grammar.LoadFile(args[0])
			if e != nil {
				return e
			}

			gen, e := g.Generate(symbolArg(args), s.options())
			if e != nil {
				return e
			}
			return s.print(cmd, gen)
		},
	}
}

func newSampleCommand(s settings) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "sample <file> [symbol]",
		Short: "Print random records of a symbol",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, e := grammar.LoadFile(args[0])
			if e != nil {
				return e
			}

			start := time.Now()
			records, e := g.Sample(symbolArg(args), count, s.options())
			if e != nil {
				return e
			}

			out := newRecordWriter(cmd.OutOrStdout(), s.format())
			for _, r := range records {
				if e = out.Write(r); e != nil {
					return e
				}
			}
			if e = out.Flush(); e != nil {
				return e
			}
			s.summary(cmd, len(records), start)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, flagCount, "n", 10, "number of records")
	return cmd
}

func newParseCommand(s settings) *cobra.Command {
	var input map[string]string
	cmd := &cobra.Command{
		Use:   "parse <file> [symbol]",
		Short: "Print records of a symbol matching input tapes",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, e := grammar.LoadFile(args[0])
			if e != nil {
				return e
			}

			gen, e := g.Parse(symbolArg(args), input, s.options())
			if e != nil {
				return e
			}
			return s.print(cmd, gen)
		},
	}
	cmd.Flags().StringToStringVarP(&input, flagInput, "i", nil, "input text of a tape, tape=text")
	return cmd
}

func newSymbolsCommand(s settings) *cobra.Command {
	return &cobra.Command{
		Use:   "symbols <file>",
		Short: "List symbols of a grammar file with their tapes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, e := grammar.LoadFile(args[0])
			if e != nil {
				return e
			}

			names := g.Names()
			rows := make([][]string, 0, len(names))
			for i, name := range names {
				_, tapes, e := g.Compile(name)
				if e != nil {
					return e
				}

				mark := ""
				if i == len(names)-1 {
					mark = "default"
				}
				rows = append(rows, []string{name, strings.Join(tapes, ", "), mark})
			}
			return writeTable(cmd.OutOrStdout(), []string{"symbol", "tapes", ""}, rows)
		},
	}
}

func (s settings) print(cmd *cobra.Command, gen *generate.Generator) error {
	start := time.Now()
	out := newRecordWriter(cmd.OutOrStdout(), s.format())
	for gen.Next() {
		if e := out.Write(gen.Record()); e != nil {
			return e
		}
	}
	if e := gen.Err(); e != nil {
		return e
	}
	if e := out.Flush(); e != nil {
		return e
	}

	s.summary(cmd, gen.Count(), start)
	return nil
}

func (s settings) summary(cmd *cobra.Command, count int, start time.Time) {
	if !s.v.GetBool(flagSummary) {
		return
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s records in %s\n", humanize.Comma(int64(count)), time.Since(start).Round(time.Millisecond))
}

// exitCode maps error classes to process exit codes.
func exitCode(e error) int {
	var te *tapegen.Error
	if !errors.As(e, &te) {
		return 1
	}

	if te.Code >= tapegen.NotationErrors {
		return 3
	}
	return 4
}
