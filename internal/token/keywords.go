package token

var keywords = map[string]Kind{
	"class":    KwClass,
	"struct":   KwStruct,
	"new":      KwNew,
	"move":     KwMove,
	"copy":     KwCopy,
	"over":     KwOver,
	"final":    KwFinal,
	"static":   KwStatic,
	"owned":    KwOwned,
	"shared":   KwShared,
	"ref":      KwRef,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"this":     KwThis,
	"null":     KwNull,
	"true":     KwTrue,
	"false":    KwFalse,
	"as":       KwAs,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
