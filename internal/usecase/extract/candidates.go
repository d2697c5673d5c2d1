package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

var (
	ErrNotJSON      = errors.New("response body is not valid JSON")
	ErrNoCandidates = errors.New("no identifier found")
)

// Candidates evaluates a JSONPath expression against a JSON body and returns the
// identifier candidates it selects, in document order.
//
// Policy:
// - object -> its keys as they appear in the body (the PDBe mapping is keyed by accession)
// - array  -> its scalar elements
// - scalar -> itself
// An empty or null selection is ErrNoCandidates.
func Candidates(body []byte, expr string) ([]string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty jsonpath expression")
	}

	doc, keyOrder, err := parseJSON(body)
	if err != nil {
		return nil, ErrNotJSON
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: jsonpath %s: %v", ErrNoCandidates, expr, err)
	}
	if isEmptyValue(val) {
		return nil, ErrNoCandidates
	}

	var out []string
	switch t := val.(type) {
	case map[string]any:
		keys, ok := keyOrder[reflect.ValueOf(t).Pointer()]
		if !ok {
			// Not a map from the body; no document order to follow.
			keys = make([]string, 0, len(t))
			for k := range t {
				keys = append(keys, k)
			}
			sort.Strings(keys)
		}
		out = make([]string, 0, len(keys))
		for _, k := range keys {
			if strings.TrimSpace(k) != "" {
				out = append(out, k)
			}
		}
	case []any:
		out = make([]string, 0, len(t))
		for _, it := range t {
			if isEmptyValue(it) {
				continue
			}
			s, convErr := toString(it)
			if convErr != nil {
				return nil, fmt.Errorf("cannot convert candidate to string: %w", convErr)
			}
			out = append(out, s)
		}
	default:
		s, convErr := toString(t)
		if convErr != nil {
			return nil, fmt.Errorf("cannot convert candidate to string: %w", convErr)
		}
		out = []string{s}
	}

	if len(out) == 0 {
		return nil, ErrNoCandidates
	}
	return out, nil
}

// parseJSON decodes body like json.Unmarshal into any, and also returns the key
// order of every object, indexed by map identity.
func parseJSON(body []byte) (any, map[uintptr][]string, error) {
	p := orderedParser{
		dec:  json.NewDecoder(bytes.NewReader(body)),
		keys: map[uintptr][]string{},
	}
	doc, err := p.value()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.dec.Token(); err != io.EOF {
		return nil, nil, errors.New("trailing data after JSON value")
	}
	return doc, p.keys, nil
}

type orderedParser struct {
	dec  *json.Decoder
	keys map[uintptr][]string
}

func (p *orderedParser) value() (any, error) {
	tok, err := p.dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		m := map[string]any{}
		var order []string
		for p.dec.More() {
			kt, err := p.dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", kt)
			}
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			if _, dup := m[key]; !dup {
				order = append(order, key)
			}
			m[key] = v
		}
		if _, err := p.dec.Token(); err != nil {
			return nil, err
		}
		p.keys[reflect.ValueOf(m).Pointer()] = order
		return m, nil

	case '[':
		arr := []any{}
		for p.dec.More() {
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := p.dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64, bool, int, int64, uint64:
		return fmt.Sprint(t), nil
	case map[string]any, []any:
		return "", fmt.Errorf("unexpected %T", t)
	default:
		return fmt.Sprint(t), nil
	}
}
