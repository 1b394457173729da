// Command m4 is the CLI front end (spec §6 / SPEC_FULL.md §6): it
// parses the source file and configuration flags and drives a single
// expand.Processor run to completion.
//
// Grounded on the teacher's mk.go main() (flag parsing, stderr
// diagnostics, process exit codes), rebuilt on cobra/pflag per the
// devcmd/doxyllm manifests surveyed in DESIGN.md.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/akovalkov/m4-processor/config"
	"github.com/akovalkov/m4-processor/expand"
)

var (
	sourcePath      string
	leftQuote       string
	rightQuote      string
	beginComment    string
	endComment      string
	syncOutput      bool
	nestingLimit    int
	noGNUExtensions bool
	prefixBuiltins  bool
	includePath     []string
	debugFile       string
	debugFlags      string
	verbose         bool
	s3Bucket        string
	s3Prefix        string
)

func main() {
	root := &cobra.Command{
		Use:           "m4",
		Short:         "Macro-expand a source file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := root.Flags()
	flags.StringVarP(&sourcePath, "source", "s", "", "input file to expand (required)")
	flags.StringVar(&leftQuote, "left-quote", "`", "left quote delimiter")
	flags.StringVar(&rightQuote, "right-quote", "'", "right quote delimiter")
	flags.StringVar(&beginComment, "begin-comment", "#", "begin-comment delimiter")
	flags.StringVar(&endComment, "end-comment", "\n", "end-comment delimiter")
	flags.BoolVar(&syncOutput, "sync-output", true, "emit #line sync directives")
	flags.IntVar(&nestingLimit, "nesting-limit", 300, "maximum macro expansion nesting depth")
	flags.BoolVar(&noGNUExtensions, "no-gnu-extensions", false, "disable GNU-extension builtins")
	flags.BoolVar(&prefixBuiltins, "prefix-builtins", false, "register every builtin as m4_<name>")
	flags.StringArrayVarP(&includePath, "include-path", "I", nil, "directory to search for include()/sinclude() (repeatable)")
	flags.StringVar(&debugFile, "debug-file", "", "redirect the trace/debug sideband to this file")
	flags.StringVar(&debugFlags, "debug-flags", "", "debugmode()-style trace verbosity letters applied at startup")
	flags.BoolVarP(&verbose, "verbose", "v", false, "raise internal logging from warn to debug")
	flags.StringVar(&s3Bucket, "s3-bucket", "", "optional S3 bucket for s3:// include targets")
	flags.StringVar(&s3Prefix, "s3-prefix", "", "key prefix to search within --s3-bucket")

	if err := root.Execute(); err != nil {
		reportFatal(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if sourcePath == "" {
		return fmt.Errorf("-s/--source is required")
	}

	cfg := config.Default(cmd.Root().Name())
	cfg.LeftQuote, cfg.RightQuote = leftQuote, rightQuote
	cfg.BeginComment, cfg.EndComment = beginComment, endComment
	cfg.SyncOutput = syncOutput
	cfg.NestingLimit = nestingLimit
	cfg.NoGNUExtensions = noGNUExtensions
	cfg.PrefixAllBuiltins = prefixBuiltins
	cfg.IncludePath = includePath

	if s3Bucket != "" {
		resolver, err := config.NewS3Resolver(s3Bucket, s3Prefix)
		if err != nil {
			return err
		}
		cfg.Resolver = resolver
	}

	proc := expand.New(cfg, os.Stdout, os.Stderr)
	proc.SetVerbose(verbose)

	if debugFlags != "" {
		if err := proc.SetDebugLevel(debugFlags); err != nil {
			return err
		}
	}
	if debugFile != "" {
		if err := proc.SetDebugFile(debugFile); err != nil {
			return err
		}
	}

	if err := proc.ProcessFile(sourcePath); err != nil {
		reportFatal(err)
		os.Exit(1)
	}
	if code := proc.ExitCode(); code != 0 {
		os.Exit(code)
	}
	return nil
}

// reportFatal prints a fatal diagnostic (spec §7), colorized red when
// stderr is a terminal and plain otherwise.
func reportFatal(err error) {
	msg := "m4: " + err.Error()
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		msg = color.New(color.FgRed).Sprint(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}
