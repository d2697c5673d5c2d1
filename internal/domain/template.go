package domain

import (
	"errors"
	"fmt"
	"strings"
)

// RenderTemplate replaces {{name}} placeholders with vars values.
// escape, when non-nil, is applied to every substituted value.
func RenderTemplate(input string, vars map[string]string, escape func(string) string) (string, error) {
	if !strings.Contains(input, "{{") {
		return input, nil
	}

	var out strings.Builder
	out.Grow(len(input) + 16)

	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", &OpError{
				Op:   "template.render",
				Kind: KindInvalidConfig,
				Err:  errors.New("unclosed placeholder"),
			}
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", &OpError{
				Op:   "template.render",
				Kind: KindInvalidConfig,
				Err:  errors.New("empty placeholder"),
			}
		}

		value, ok := vars[key]
		if !ok {
			return "", &OpError{
				Op:   "template.render",
				Kind: KindMissingVar,
				Err:  fmt.Errorf("%w: %s", ErrMissingVar, key),
			}
		}

		if escape != nil {
			value = escape(value)
		}
		out.WriteString(value)
		rest = rest[end+2:]
	}
}
