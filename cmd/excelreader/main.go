// Package main provides the CLI entry point for excelreader-go.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/houssem11957/excelreader-go/pkg/excelreader"
	"github.com/houssem11957/excelreader-go/pkg/excelreader/models"
	"github.com/houssem11957/excelreader-go/pkg/excelreader/output"
)

type cliOptions struct {
	outputPath  string
	pretty      bool
	verbose     bool
	sheetIndex  int
	sheetName   string
	noHeader    bool
	mappingPath string
	mapPairs    []string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "excelreader",
		Short: "Read typed records from Excel worksheets",
		Long: `excelreader-go reads the rows of one worksheet of an .xlsx file
into typed records and outputs JSON.`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log diagnostics to stderr")

	peopleCmd := &cobra.Command{
		Use:   "people [input.xlsx]",
		Short: "Read the sample people sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeople(cmd, args[0], opts)
		},
	}
	peopleCmd.Flags().IntVar(&opts.sheetIndex, "sheet", 0, "0-based sheet index")
	peopleCmd.Flags().StringVar(&opts.sheetName, "sheet-name", "", "Sheet name (overrides --sheet)")
	peopleCmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "Treat the first row as data; columns are named Column0, Column1, ...")
	peopleCmd.Flags().StringVar(&opts.mappingPath, "mapping", "", "YAML or TOML file mapping headers to fields")
	peopleCmd.Flags().StringArrayVar(&opts.mapPairs, "map", nil, "Header mapping as header=Field (repeatable)")

	sheetsCmd := &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List the sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := excelreader.ListSheets(args[0])
			if err != nil {
				return fmt.Errorf("listing failed: %w", err)
			}
			return writeResult(cmd, info, opts)
		},
	}

	rootCmd.AddCommand(peopleCmd, sheetsCmd)
	return rootCmd
}

func runPeople(cmd *cobra.Command, inputPath string, opts *cliOptions) error {
	readOpts := excelreader.DefaultOptions().WithHeader(!opts.noHeader)
	readOpts.SheetIndex = opts.sheetIndex
	readOpts.SheetName = opts.sheetName
	readOpts.Logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
	readOpts.Mapping = models.PersonMapping()

	if opts.mappingPath != "" {
		m, err := loadMappingFile(opts.mappingPath)
		if err != nil {
			return err
		}
		readOpts.Mapping = m
	}
	m, err := applyMapFlags(readOpts.Mapping, opts.mapPairs)
	if err != nil {
		return err
	}
	readOpts.Mapping = m

	people, err := excelreader.ReadFile(inputPath, models.PersonSchema, readOpts)
	if err != nil {
		return fmt.Errorf("read failed: %w", err)
	}
	return writeResult(cmd, people, opts)
}

func writeResult(cmd *cobra.Command, v any, opts *cliOptions) error {
	if opts.outputPath == "" {
		return output.WriteJSON(cmd.OutOrStdout(), v, opts.pretty)
	}

	jsonData, err := output.ToJSON(v, opts.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if err := os.WriteFile(opts.outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}
