package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guimsilvaa/topufa/internal/domain"
)

func TestValidateInputs_ExtractsAndDedupes(t *testing.T) {
	q := &fakeQuery{entries: 2}
	uc := NewValidateInputs(fakeInput{text: "see 1ABC and 2xyz, also 1abc"}, q)

	sum, err := uc.Execute(context.Background(), "in.txt", "q.fasta")
	require.NoError(t, err)

	assert.Equal(t, []domain.Code{"1abc", "2xyz", "1abc"}, sum.Extracted)
	assert.Equal(t, []domain.Code{"1abc", "2xyz"}, sum.Unique)
	assert.Equal(t, 2, sum.QueryEntries)
	assert.Equal(t, 1, q.calls)
}

func TestValidateInputs_SkipsQueryWhenEmpty(t *testing.T) {
	q := &fakeQuery{}
	_, err := NewValidateInputs(fakeInput{text: "1abc"}, q).Execute(context.Background(), "in.txt", "")
	require.NoError(t, err)
	assert.Zero(t, q.calls)
}

func TestValidateInputs_QueryErrorComesFirst(t *testing.T) {
	qErr := &domain.OpError{Op: "inputfile.query", Kind: domain.KindInvalidInput, Path: "q.pdf", Err: domain.ErrUnsupportedInput}
	q := &fakeQuery{err: qErr}

	_, err := NewValidateInputs(fakeInput{err: errBoom}, q).Execute(context.Background(), "in.txt", "q.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedInput)
}

func TestValidateInputs_InputError(t *testing.T) {
	inErr := &domain.OpError{Op: "inputfile.read", Kind: domain.KindNotFound, Path: "missing.txt", Err: domain.ErrNotFound}
	_, err := NewValidateInputs(fakeInput{err: inErr}, &fakeQuery{}).Execute(context.Background(), "missing.txt", "")
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestValidateInputs_NoCodes(t *testing.T) {
	sum, err := NewValidateInputs(fakeInput{text: "nothing to see"}, &fakeQuery{}).Execute(context.Background(), "in.txt", "")
	require.NoError(t, err)
	assert.Empty(t, sum.Extracted)
	assert.Empty(t, sum.Unique)
}
