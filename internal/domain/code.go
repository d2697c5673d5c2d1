package domain

import "strings"

// Code is a 4-character PDB accession code, always stored lower-cased.
type Code string

// NewCode normalizes a raw token into a Code. It does not validate the shape.
func NewCode(raw string) Code {
	return Code(strings.ToLower(strings.TrimSpace(raw)))
}

func (c Code) String() string { return string(c) }

// CodeStrings converts codes into plain strings (row order preserved).
func CodeStrings(codes []Code) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, string(c))
	}
	return out
}
