package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/merryhime/StaMINA/lib"
)

type rootOptions struct {
	instructionsPath string
	debug            bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "smasm",
		Short: "Lexer tooling for smasm assembly sources",
		Long: `smasm tokenizes assembly sources for the smasm virtual machine.

Commands:
  lex           Print the token stream of a source file
  check         Report lexical errors and suspicious instructions
  instructions  List the known mnemonics and compare conditions
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.instructionsPath, "instructions", "", "YAML instruction table to use instead of the built-in one")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log every token to stderr")

	cmd.AddCommand(newLexCmd(opts), newCheckCmd(opts), newInstructionsCmd(opts))
	return cmd
}

func (o *rootOptions) table() (*lib.InstructionTable, error) {
	if o.instructionsPath == "" {
		return lib.DefaultInstructions(), nil
	}
	f, err := os.Open(o.instructionsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := lib.LoadInstructionTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.instructionsPath, err)
	}
	return table, nil
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	return lib.NewLogger(w, o.debug || os.Getenv(lib.DebugEnv) != "")
}

// tokenizerOptions builds the options shared by every command that lexes.
func (o *rootOptions) tokenizerOptions(cmd *cobra.Command) ([]lib.Option, error) {
	table, err := o.table()
	if err != nil {
		return nil, err
	}
	return []lib.Option{
		lib.WithInstructions(table),
		lib.WithLogger(o.logger(cmd.ErrOrStderr())),
	}, nil
}

// input is an open source file, or stdin when path is empty or "-".
// regular is set only for regular files, whose reads never stall.
type input struct {
	name    string
	r       io.Reader
	regular bool
	io.Closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openInput(cmd *cobra.Command, args []string, filename string) (*input, error) {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}

	if path == "-" {
		if filename == "" {
			filename = lib.DefaultFilename
		}
		return &input{name: filename, r: cmd.InOrStdin(), Closer: nopCloser{}}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if filename == "" {
		filename = path
	}
	return &input{name: filename, r: f, regular: info.Mode().IsRegular(), Closer: f}, nil
}

func (in *input) tokenizer(opts []lib.Option) *lib.Tokenizer {
	return lib.NewTokenizer(lib.NewReaderSource(in.name, in.r), opts...)
}
