package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	KwClass    // class
	KwStruct   // struct
	KwNew      // new
	KwMove     // move
	KwCopy     // copy
	KwOver     // over
	KwFinal    // final
	KwStatic   // static
	KwOwned    // owned
	KwShared   // shared
	KwRef      // ref
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwReturn   // return
	KwBreak    // break
	KwContinue // continue
	KwThis     // this
	KwNull     // null
	KwTrue     // true
	KwFalse    // false
	KwAs       // as

	// IntLit represents the integer literal token.
	IntLit
	// FloatLit represents the float literal token (with optional 'f' suffix).
	FloatLit

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Assign    // =
	EqEq      // ==
	Bang      // !
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	Shl       // <<
	Shr       // >>
	Amp       // &
	Pipe      // |
	Caret     // ^
	Tilde     // ~
	AndAnd    // &&
	OrOr      // ||
	Question  // ?
	Colon     // :
	Semicolon // ;
	Comma     // ,
	Dot       // .
	Arrow     // ->
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	KwClass:    "class",
	KwStruct:   "struct",
	KwNew:      "new",
	KwMove:     "move",
	KwCopy:     "copy",
	KwOver:     "over",
	KwFinal:    "final",
	KwStatic:   "static",
	KwOwned:    "owned",
	KwShared:   "shared",
	KwRef:      "ref",
	KwIf:       "if",
	KwElse:     "else",
	KwWhile:    "while",
	KwReturn:   "return",
	KwBreak:    "break",
	KwContinue: "continue",
	KwThis:     "this",
	KwNull:     "null",
	KwTrue:     "true",
	KwFalse:    "false",
	KwAs:       "as",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Assign:     "=",
	EqEq:       "==",
	Bang:       "!",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	Shl:        "<<",
	Shr:        ">>",
	Amp:        "&",
	Pipe:       "|",
	Caret:      "^",
	Tilde:      "~",
	AndAnd:     "&&",
	OrOr:       "||",
	Question:   "?",
	Colon:      ":",
	Semicolon:  ";",
	Comma:      ",",
	Dot:        ".",
	Arrow:      "->",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
