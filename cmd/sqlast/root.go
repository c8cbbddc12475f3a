package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/freeeve/sqlast"
)

type options struct {
	file    string
	compact bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "sqlast [sql]",
		Short: "Parse a SQL SELECT statement into its canonical JSON AST",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read the statement from a file instead of an argument or stdin")
	cmd.Flags().BoolVarP(&opts.compact, "compact", "c", false, "emit compact JSON instead of indented JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log parse failures with full detail")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	if opts.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	sql, err := readInput(cmd, args, opts.file)
	if err != nil {
		return err
	}
	sql = strings.TrimSpace(sql)

	value, err := sqlast.Parse(sql)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"sql": sql,
		}).WithError(err).Debug("parse failed")
		return err
	}

	var out []byte
	if opts.compact {
		out, err = json.Marshal(value)
	} else {
		out, err = json.MarshalIndent(value, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal ast: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(b), nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}
