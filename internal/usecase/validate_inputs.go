package usecase

import (
	"context"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/ports"
	"github.com/guimsilvaa/topufa/internal/usecase/extract"
)

// InputSummary describes the inputs of a run without touching the network.
type InputSummary struct {
	Extracted    []domain.Code
	Unique       []domain.Code
	QueryEntries int
}

type ValidateInputs struct {
	input ports.InputReader
	query ports.QueryValidator
}

func NewValidateInputs(in ports.InputReader, qv ports.QueryValidator) *ValidateInputs {
	return &ValidateInputs{input: in, query: qv}
}

// Execute reads the input file and checks the query file. An empty queryPath
// skips the query check.
func (uc *ValidateInputs) Execute(ctx context.Context, inputPath, queryPath string) (InputSummary, error) {
	var out InputSummary

	if queryPath != "" {
		n, err := uc.query.ValidateQuery(queryPath)
		if err != nil {
			return out, err
		}
		out.QueryEntries = n
	}

	if err := ctx.Err(); err != nil {
		return out, err
	}

	text, err := uc.input.ReadText(inputPath)
	if err != nil {
		return out, err
	}

	out.Extracted = extract.Codes(text)
	out.Unique = extract.Unique(out.Extracted)
	return out, nil
}
