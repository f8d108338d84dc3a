// Copyright 2020 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd implements the sigil command line: a REPL when invoked with
// no file arguments, a script runner otherwise, both sharing one
// bootstrapped interpreter instance per process.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/SummerRolf/sigil/bootstrap"
	"github.com/SummerRolf/sigil/internal/core/eval"
)

// addGlobalFlags registers the flags shared by every invocation, whether the
// command ends up in REPL or script mode.
func addGlobalFlags(f *pflag.FlagSet) {
	f.String("core", "", "path to a core.sg file overriding the embedded prelude")
}

// Command wraps a cobra.Command the way the teacher's cmd.Command does,
// tracking whether anything was written to stderr so Main can report a
// non-zero exit without cobra's own error-printing duplicating it.
type Command struct {
	*cobra.Command
	hasErr bool
}

type errWriter Command

func (w *errWriter) Write(b []byte) (int, error) {
	c := (*Command)(w)
	c.hasErr = true
	return c.Command.OutOrStderr().Write(b)
}

// Stderr returns the writer every diagnostic must go through so a
// script's exit code reflects whether anything was printed to it.
func (c *Command) Stderr() io.Writer { return (*errWriter)(c) }

func newRootCmd() *Command {
	cc := &cobra.Command{
		Use:   "sigil [file...]",
		Short: "sigil is a small Lisp-1 interpreter",
		Long: `sigil evaluates forms read from stdin, one at a time, printing each
result (a REPL), or evaluates the file named by its first argument when
given arguments (script mode). Remaining arguments after the first
file become the list value of *command-line-args* in the running
program; they are not evaluated as files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
	}
	c := &Command{Command: cc}
	cc.RunE = func(cc *cobra.Command, args []string) error {
		return runRoot(c, args)
	}
	addGlobalFlags(cc.PersistentFlags())
	return c
}

func runRoot(c *Command, args []string) error {
	corePath, err := c.Flags().GetString("core")
	if err != nil {
		return err
	}

	var cfg replConfig
	if len(args) == 0 {
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		if corePath == "" {
			corePath = cfg.Core
		}
	}

	in := eval.NewInterp()
	if err := bootstrap.Install(in, corePath); err != nil {
		return err
	}

	if len(args) == 0 {
		return runREPL(c, in, cfg)
	}
	return runScript(c, in, args[0], args[1:])
}

// Main runs the sigil tool and returns the code for passing to os.Exit.
func Main() int {
	c := newRootCmd()
	c.SetArgs(os.Args[1:])
	err := c.Execute()
	if err != nil && err != errPrintedError {
		fmt.Fprintln(c.Stderr(), err)
	}
	if err != nil || c.hasErr {
		return 1
	}
	return 0
}
