package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tacc-lang/tacc/internal/lexer"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file and print the resulting tokens",
	Long: `Tokenize a source file and print the resulting token stream, one
token per line. Useful for debugging the lexer in isolation from parsing.`,
	Args: cobra.ArbitraryArgs,
	RunE: lexFile,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func lexFile(cmd *cobra.Command, args []string) error {
	content, filename, done := resolveSource(args)
	if done {
		return nil
	}

	tokens, err := lexer.Lex(content)
	if err != nil {
		fmt.Println(err)
		return nil
	}
	for _, tok := range tokens {
		fmt.Println(tok)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "%s: %d tokens\n", filename, len(tokens))
	}
	return nil
}
