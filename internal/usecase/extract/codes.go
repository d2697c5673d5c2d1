// Package extract pulls PDB codes out of free text and UniProt candidates out of
// mapping documents.
package extract

import (
	"regexp"

	"github.com/guimsilvaa/topufa/internal/domain"
)

// codePattern matches a 4-character PDB code: one letter and one digit in either
// order, then two alphanumerics, bounded on both sides by non-word characters.
var codePattern = regexp.MustCompile(`(?i)\b(?:[a-z][0-9]|[0-9][a-z])[a-z0-9]{2}\b`)

// Codes returns every non-overlapping code match in text order, lower-cased.
// Duplicates are kept.
func Codes(text string) []domain.Code {
	matches := codePattern.FindAllString(text, -1)
	out := make([]domain.Code, 0, len(matches))
	for _, m := range matches {
		out = append(out, domain.NewCode(m))
	}
	return out
}

// Unique reduces codes to a set, keeping first-occurrence order.
func Unique(codes []domain.Code) []domain.Code {
	seen := make(map[domain.Code]struct{}, len(codes))
	out := make([]domain.Code, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
