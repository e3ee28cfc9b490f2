// Package parse implements a Unicode-aware lexer and recursive-descent
// parser: the lexer folds full-width glyphs to their ASCII equivalents,
// and the parser walks the resulting token stream to build
// internal.ASTNode trees.
package parse

import (
	"strings"

	"golang.org/x/text/width"
)

// normalizeGlyphs folds every full-width or half-width rune in s to its
// normal-width counterpart using golang.org/x/text/width — this is how
// ＋ ＊ ！ ＝ ＆ ｜ （ ） ： and full-width digits０-９ become their ASCII
// equivalents before the lexer ever sees them. A handful of glyphs treated
// as equivalent here are not "fullwidth forms" of an ASCII character in
// the Unicode sense (「」 are CJK brackets, not fullwidth
// '[' ']'; 、 is the ideographic comma, not fullwidth ','), so those are
// folded by direct rune replacement afterward. The ideographic full stop 。
// is left as it is; the lexer recognizes it directly.
func normalizeGlyphs(s string) string {
	s = width.Fold.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '「':
			b.WriteByte('[')
		case '」':
			b.WriteByte(']')
		case '、':
			b.WriteByte(',')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isIdeographicSpace reports whether r is the full-width ideographic space,
// which requires to count as ordinary whitespace.
func isIdeographicSpace(r rune) bool {
	return r == '　'
}
