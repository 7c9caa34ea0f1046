package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tacc-lang/tacc/internal/lexer"
	"github.com/tacc-lang/tacc/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file and print the generated three-address IR",
	Long: `Lex and parse a source file, printing the three-address IR the
translator emits. This is the textual contract the semantic analyzer and
the interpreter collaborator both consume.`,
	Args: cobra.ArbitraryArgs,
	RunE: parseFile,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseFile(_ *cobra.Command, args []string) error {
	content, _, done := resolveSource(args)
	if done {
		return nil
	}

	tokens, err := lexer.Lex(content)
	if err != nil {
		fmt.Println(err)
		return nil
	}

	code, err := parser.Parse(tokens)
	if err != nil {
		fmt.Println(err)
		return nil
	}
	fmt.Print(code)
	return nil
}
