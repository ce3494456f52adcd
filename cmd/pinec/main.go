package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/pinelang/pinec/internal/analysis"
	"github.com/pinelang/pinec/internal/compiler"
)

func main() {
	app := &cli.App{
		Name:  "pinec",
		Usage: "compile indicator scripts to JavaScript",
		Commands: []*cli.Command{
			{
				Name:      "build",
				Usage:     "compile a script and write the generated module",
				ArgsUsage: "<script>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write the generated JavaScript to `FILE` (default: stdout)",
					},
					&cli.StringFlag{
						Name:  "ir",
						Usage: "write the indicator IR as JSON to `FILE`",
					},
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "enable debug logging",
					},
					&cli.BoolFlag{
						Name:  "no-color",
						Usage: "disable styled diagnostics",
					},
				},
				Action: buildAction,
			},
			{
				Name:      "check",
				Usage:     "check a script and report diagnostics without emitting code",
				ArgsUsage: "<script>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-color",
						Usage: "disable styled diagnostics",
					},
				},
				Action: checkAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func compileArgument(ctx *cli.Context, debug bool) (*compiler.Result, error) {
	if ctx.Args().Len() != 1 {
		return nil, fmt.Errorf("expected exactly one script argument")
	}
	path := ctx.Args().First()

	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	logger := zerolog.Nop()
	if debug {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}

	return compiler.Compile(string(code), compiler.Config{
		SourceName: path,
		Logger:     logger,
	}), nil
}

func reportDiagnostics(result *compiler.Result, styled bool) {
	for _, syntaxErr := range result.SyntaxErrors {
		fmt.Fprintln(os.Stderr, formatSyntaxError(syntaxErr.Position.SourceName, syntaxErr.Err.Message,
			syntaxErr.Position.StartLine, syntaxErr.Position.StartColumn, styled))
	}
	for _, semErr := range result.Errors {
		fmt.Fprintln(os.Stderr, analysis.FormatError(result.File.Name(), semErr, styled))
	}
	for _, warning := range result.Warnings {
		fmt.Fprintln(os.Stderr, analysis.FormatWarning(result.File.Name(), warning, styled))
	}
}

var syntaxErrorLabelStyle = termenv.String("syntax error").Foreground(termenv.ANSIRed).Bold()

func formatSyntaxError(sourceName, msg string, line, column int32, styled bool) string {
	label := "syntax error"
	if styled {
		label = syntaxErrorLabelStyle.String()
	}

	var b strings.Builder
	b.WriteString(sourceName)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(int(line)))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(int(column)))
	b.WriteString(": ")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(msg)
	return b.String()
}

func buildAction(ctx *cli.Context) error {
	result, err := compileArgument(ctx, ctx.Bool("debug"))
	if err != nil {
		return err
	}

	styled := !ctx.Bool("no-color")
	reportDiagnostics(result, styled)

	if result.HasErrors() {
		return cli.Exit("", 1)
	}

	if output := ctx.String("output"); output != "" {
		if err := os.WriteFile(output, []byte(result.JS), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Print(result.JS)
	}

	if irPath := ctx.String("ir"); irPath != "" {
		data, err := result.IR.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to serialize IR: %w", err)
		}
		if err := os.WriteFile(irPath, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write IR: %w", err)
		}
	}

	return nil
}

func checkAction(ctx *cli.Context) error {
	result, err := compileArgument(ctx, false)
	if err != nil {
		return err
	}

	styled := !ctx.Bool("no-color")
	reportDiagnostics(result, styled)

	if result.HasErrors() {
		return cli.Exit("", 1)
	}
	return nil
}
