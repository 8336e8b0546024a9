package token

import "bitscript/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "line_comment"
	case TriviaBlockComment:
		return "block_comment"
	}
	return "unknown"
}
