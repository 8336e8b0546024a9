package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"bitscript/internal/source"
	"bitscript/internal/token"
)

// TokenOutput is one token of `bitscript tokenize --format json`.
type TokenOutput struct {
	Kind    string   `json:"kind"`
	Text    string   `json:"text,omitempty"`
	Line    uint32   `json:"line"`
	Col     uint32   `json:"col"`
	Start   uint32   `json:"start"`
	End     uint32   `json:"end"`
	Leading []string `json:"leading,omitempty"`
}

func tokenOutputs(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos, _ := fs.Resolve(tok.Span)
		var leading []string
		for _, tr := range tok.Leading {
			leading = append(leading, tr.Kind.String())
		}
		out = append(out, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Line:    pos.Line,
			Col:     pos.Col,
			Start:   tok.Span.Start,
			End:     tok.Span.End,
			Leading: leading,
		})
		// всё после EOF не интересно
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensPretty prints one token per line: index, position, kind, text.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, t := range tokenOutputs(tokens, fs) {
		line := fmt.Sprintf("%4d %4d:%-3d %-14s", i, t.Line, t.Col, t.Kind)
		if t.Text != "" {
			line += " " + fmt.Sprintf("%q", t.Text)
		}
		if len(t.Leading) > 0 {
			line += "  [" + strings.Join(t.Leading, " ") + "]"
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokenOutputs(tokens, fs))
}
