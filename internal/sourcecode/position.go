package sourcecode

// A NodeSpan is a range of byte-independent rune offsets in a source file,
// all AST nodes and tokens carry one.
type NodeSpan struct {
	Start int32 `json:"start"`
	End   int32 `json:"end"` //exclusive
}

type PositionRange struct {
	SourceName  string `json:"sourceName"`
	StartLine   int32  `json:"line"`   //1-indexed
	StartColumn int32  `json:"column"` //1-indexed
	Span        NodeSpan
}
