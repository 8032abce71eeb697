package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	cerrors "github.com/carbon-lang/carbonc/internal/compiler/errors"
	"github.com/carbon-lang/carbonc/internal/driver"
)

var (
	outputPath string
	optimize   bool
	debug      bool
)

// newRootCmd builds the root command, which IS the compile command:
// `carbonc <input> [-o path] [--optimize] [--debug]`.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carbonc <input>",
		Short: "Compile a Carbon source file to bytecode",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output bytecode file path (defaults to <input> with .crbn)")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "run the optimizer pipeline before codegen")
	cmd.Flags().BoolVar(&debug, "debug", false, "raise log verbosity (structured debug log); never affects compiled output")

	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := driver.LoadConfig()
	if err != nil {
		return err
	}

	effectiveOutput := outputPath
	if effectiveOutput == "" && cfg.Build.OutputDir != "" {
		effectiveOutput = filepath.Join(cfg.Build.OutputDir, filepath.Base(driver.DefaultOutputPath(input)))
	}

	effectiveOptimize := optimize || cfg.Build.OptimizeByDefault

	log, err := driver.NewLogger(os.Stdout, false, debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	p := driver.NewPipeline()
	written, err := p.CompileFile(input, effectiveOutput, driver.Options{
		Optimize: effectiveOptimize,
		Logger:   log,
	})
	if err != nil {
		printCompileError(err)
		return fmt.Errorf("compilation failed")
	}

	fmt.Printf("Wrote %s\n", written)
	return nil
}

func printCompileError(err error) {
	if ce, ok := err.(*cerrors.CompilerError); ok {
		fmt.Fprintln(os.Stderr, ce.FormatForTerminal())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
