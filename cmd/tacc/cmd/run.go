package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	tacerrors "github.com/tacc-lang/tacc/internal/errors"
	"github.com/tacc-lang/tacc/internal/interp"
	"github.com/tacc-lang/tacc/internal/semantic"
)

var showIR bool

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and execute a source file",
	Long: `Run the full pipeline: lex, parse, semantically validate, then hand
the generated IR to the interpreter collaborator. On any compile error the
IR is not executed.`,
	Args: cobra.ArbitraryArgs,
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&showIR, "show-ir", false, "print the generated IR before executing it")
}

func runFile(cmd *cobra.Command, args []string) error {
	content, _, done := resolveSource(args)
	if done {
		return nil
	}

	code, ok := compile(content)
	if !ok {
		return nil
	}

	analyzer := semantic.NewAnalyzer()
	if !analyzer.Analyze(code) {
		for _, msg := range analyzer.Errors() {
			fmt.Println(msg)
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			fmt.Fprint(os.Stderr, tacerrors.List(analyzer.Errors()).Format())
		}
		return nil
	}

	if showIR {
		fmt.Print(code)
	}

	interpreter := interp.NewTreeWalker(os.Stdout)
	if err := interpreter.Run(code); err != nil {
		fmt.Println(err)
	}
	return nil
}
