package sourcecode

const (
	UnspecifiedParsingError = "unspecified-parsing-error"
	UnterminatedString      = "unterminated-string"
	InvalidCharacter        = "invalid-character"
	MissingExpr             = "missing-expression"
	MissingBlock            = "missing-block"
	UnexpectedToken         = "unexpected-token"
	InconsistentIndentation = "inconsistent-indentation"
)

type ParsingError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (err ParsingError) Error() string {
	return err.Message
}

// A LocatedParsingError pairs a parsing error with the position of the
// smallest node (or token) it was attached to.
type LocatedParsingError struct {
	Err      *ParsingError `json:"error"`
	Position PositionRange `json:"position"`
}

func (err LocatedParsingError) Error() string {
	return err.Err.Message
}
