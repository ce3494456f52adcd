// Package compiler drives the full pipeline: tokenize and parse, semantic
// check, then code and IR emission. Emission only happens for a compilation
// with no syntax and no semantic errors, warnings never block.
package compiler

import (
	"github.com/rs/zerolog"

	"github.com/pinelang/pinec/internal/analysis"
	"github.com/pinelang/pinec/internal/codegen"
	"github.com/pinelang/pinec/internal/parse"
	"github.com/pinelang/pinec/internal/sourcecode"
)

type Config struct {
	//SourceName is used in diagnostic locations, defaults to "<script>".
	SourceName string

	Logger zerolog.Logger
}

type Result struct {
	Chunk *parse.Chunk
	File  *sourcecode.File

	SyntaxErrors []sourcecode.LocatedParsingError
	Errors       []analysis.SemanticError
	Warnings     []analysis.SemanticWarning

	//JS, IR and Imports are only set when the compilation has no errors.
	JS      string
	IR      *codegen.IndicatorIR
	Imports []string
}

func (r *Result) HasErrors() bool {
	return len(r.SyntaxErrors) > 0 || len(r.Errors) > 0
}

// Compile runs the whole pipeline on the given source. It never fails with
// an error value: all problems with the script itself are reported as
// diagnostics in the result.
func Compile(code string, config Config) *Result {
	if config.SourceName == "" {
		config.SourceName = "<script>"
	}
	logger := config.Logger

	file := sourcecode.NewFile(config.SourceName, code)
	result := &Result{File: file}

	chunk, parseErrs := parse.ParseChunk(code)
	result.Chunk = chunk
	for _, parseErr := range parseErrs {
		result.SyntaxErrors = append(result.SyntaxErrors, sourcecode.LocatedParsingError{
			Err:      parseErr.Err,
			Position: file.GetSourcePosition(parseErr.Span),
		})
	}

	logger.Debug().
		Str("source", config.SourceName).
		Int("statements", len(chunk.Statements)).
		Int("syntax-errors", len(result.SyntaxErrors)).
		Msg("parsed chunk")

	checkResult := analysis.Check(analysis.CheckInput{Chunk: chunk, File: file})
	result.Errors = checkResult.Errors
	result.Warnings = checkResult.Warnings

	logger.Debug().
		Int("errors", len(result.Errors)).
		Int("warnings", len(result.Warnings)).
		Msg("checked chunk")

	if result.HasErrors() {
		return result
	}

	output := codegen.Emit(codegen.EmitInput{Chunk: chunk})
	result.JS = output.JS
	result.IR = output.IR
	result.Imports = output.Imports

	logger.Debug().
		Strs("imports", result.Imports).
		Int("output-bytes", len(result.JS)).
		Msg("emitted code")

	return result
}
