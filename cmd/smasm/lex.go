package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/merryhime/StaMINA/lib"
)

type lexOptions struct {
	*rootOptions
	format   string
	filename string
	db       string
	watch    bool
}

func newLexCmd(root *rootOptions) *cobra.Command {
	opts := &lexOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "lex [file|-]",
		Short: "Print the token stream of a source file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text or cbor")
	cmd.Flags().StringVar(&opts.filename, "filename", "", "file name reported in token positions")
	cmd.Flags().StringVar(&opts.db, "db", os.Getenv(lib.DBEnv), "PostgreSQL connection string to save the listing to")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "lex the file again every time it is written")
	return cmd
}

func (o *lexOptions) run(cmd *cobra.Command, args []string) error {
	if o.format != "text" && o.format != "cbor" {
		return fmt.Errorf("unknown format %q", o.format)
	}
	if o.watch && (len(args) == 0 || args[0] == "-") {
		return fmt.Errorf("--watch needs a file")
	}

	tokOpts, err := o.tokenizerOptions(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var store *lib.ListingStore
	if o.db != "" {
		store, err = lib.OpenListingStore(ctx, o.db)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	once := func() error {
		in, err := openInput(cmd, args, o.filename)
		if err != nil {
			return err
		}
		defer in.Close()

		tokens, err := lexAll(in.tokenizer(tokOpts), in.regular)
		if err != nil {
			return fmt.Errorf("reading %s: %w", in.name, err)
		}
		if err := o.write(cmd.OutOrStdout(), tokens); err != nil {
			return err
		}
		if store != nil {
			id, err := store.Save(ctx, in.name, tokens)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "saved listing %d (%d tokens)\n", id, len(tokens))
		}
		return nil
	}

	if err := once(); err != nil {
		return err
	}
	if !o.watch {
		return nil
	}
	return watchFile(ctx, args[0], cmd.ErrOrStderr(), once)
}

func (o *lexOptions) write(w io.Writer, tokens []lib.Token) error {
	if o.format == "cbor" {
		return lib.EncodeTokens(w, tokens)
	}
	for _, tok := range tokens {
		if _, err := fmt.Fprintln(w, tok); err != nil {
			return err
		}
	}
	return nil
}

// lexAll collects every token before EndOfFile. Regular files are lexed on a
// producer goroutine; pipes, devices and stdin may stall for longer than
// TokenReadTimeout, so they are read synchronously.
func lexAll(t *lib.Tokenizer, stream bool) ([]lib.Token, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var r lib.TokenReader = lib.NewPeekReader(t)
	if stream {
		r = lib.Stream(ctx, t)
	}
	tokens := []lib.Token{}
	for {
		tok, done, err := r.Next()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		tokens = append(tokens, tok)
	}
	if err := t.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}
