package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	tacerrors "github.com/tacc-lang/tacc/internal/errors"
	"github.com/tacc-lang/tacc/internal/lexer"
	"github.com/tacc-lang/tacc/internal/parser"
	"github.com/tacc-lang/tacc/internal/semantic"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Lex, parse, and semantically validate a source file",
	Long: `Run the full compile-time pipeline -- lexer, parser, semantic
analyzer -- and print the verdict plus any diagnostics, without invoking
the interpreter collaborator.`,
	Args: cobra.ArbitraryArgs,
	RunE: checkFile,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkFile(cmd *cobra.Command, args []string) error {
	content, _, done := resolveSource(args)
	if done {
		return nil
	}

	code, ok := compile(content)
	if !ok {
		return nil
	}

	analyzer := semantic.NewAnalyzer()
	if analyzer.Analyze(code) {
		fmt.Println("OK")
		return nil
	}
	for _, msg := range analyzer.Errors() {
		fmt.Println(msg)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprint(os.Stderr, tacerrors.List(analyzer.Errors()).Format())
	}
	return nil
}

// compile runs the lexer and parser, printing any failure and reporting
// whether the pipeline can continue.
func compile(content string) (string, bool) {
	tokens, err := lexer.Lex(content)
	if err != nil {
		fmt.Println(err)
		return "", false
	}
	code, err := parser.Parse(tokens)
	if err != nil {
		fmt.Println(err)
		return "", false
	}
	return code, true
}
