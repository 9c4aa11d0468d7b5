package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/merryhime/StaMINA/lib"
)

type checkOptions struct {
	*rootOptions
	filename string
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "check [file|-]",
		Short: "Report lexical errors and suspicious instructions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}
	cmd.Flags().StringVar(&opts.filename, "filename", "", "file name reported in diagnostics")
	return cmd
}

type checkReport struct {
	errors   int
	warnings int
}

func (o *checkOptions) run(cmd *cobra.Command, args []string) error {
	table, err := o.table()
	if err != nil {
		return err
	}
	in, err := openInput(cmd, args, o.filename)
	if err != nil {
		return err
	}
	defer in.Close()

	t := in.tokenizer([]lib.Option{
		lib.WithInstructions(table),
		lib.WithLogger(o.logger(cmd.ErrOrStderr())),
	})
	report, err := checkTokens(lib.NewPeekReader(t), table, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := t.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", in.name, err)
	}

	if report.errors > 0 {
		return &exitError{
			code: 2,
			err:  fmt.Errorf("%s: %d lexical errors, %d warnings", in.name, report.errors, report.warnings),
		}
	}
	return nil
}

// checkTokens writes one diagnostic line per problem found in r.
func checkTokens(r lib.TokenReader, table *lib.InstructionTable, out io.Writer) (checkReport, error) {
	var report checkReport
	atStart := true

	for {
		tok, done, err := r.Next()
		if err != nil {
			return report, err
		}
		if done {
			return report, nil
		}

		switch tok.Type {
		case lib.Error:
			report.errors++
			fmt.Fprintln(out, "error:", tok.Err())
			if hint, ok := conditionHint(tok, table); ok {
				fmt.Fprintf(out, "%s: note: did you mean %s?\n", tok.Pos, hint)
			}
		case lib.Identifier:
			if !atStart {
				break
			}
			// an identifier followed by an instruction is a label
			next, done, err := r.Peek()
			if err != nil {
				return report, err
			}
			if !done && next.Type == lib.Mnemonic {
				break
			}
			if guess, ok := table.SuggestMnemonic(tok.Text()); ok {
				report.warnings++
				fmt.Fprintf(out, "%s: warning: %s is not an instruction, did you mean %s?\n",
					tok.Pos, tok.Text(), guess)
			}
		}
		atStart = tok.Type == lib.NewLine
	}
}

// conditionHint suggests a full compare mnemonic for an unknown condition.
func conditionHint(tok lib.Token, table *lib.InstructionTable) (string, bool) {
	if tok.ErrKind != lib.InvalidCompareCondition {
		return "", false
	}
	mnemonic, cond, ok := strings.Cut(tok.Source, "/")
	if !ok {
		return "", false
	}
	guess, ok := table.SuggestCondition(cond)
	if !ok {
		return "", false
	}
	return strings.ToUpper(mnemonic) + "/" + guess, true
}
