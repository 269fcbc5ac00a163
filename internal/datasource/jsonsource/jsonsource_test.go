package jsonsource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuildsDatasetFromRowObjects(t *testing.T) {
	input := `[
		{"Submitter": "Alice", "Amount": 100, "Approved": true, "SubmittedOn": "2024-01-15"},
		{"Submitter": "Bob", "Amount": null, "Approved": false, "SubmittedOn": "2024-02-01"}
	]`
	ds, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())

	amount, ok := ds.Column("Amount")
	require.True(t, ok)
	assert.Equal(t, 100.0, amount.At(0).NumVal())
	assert.True(t, amount.At(1).IsMissing())

	submittedOn, ok := ds.Column("SubmittedOn")
	require.True(t, ok)
	assert.Equal(t, 2024, submittedOn.At(0).DateVal().Year())
}

func TestLoadUnionsKeysAcrossRows(t *testing.T) {
	input := `[{"A": 1}, {"B": "x"}]`
	ds, err := Load(strings.NewReader(input))
	require.NoError(t, err)

	a, ok := ds.Column("A")
	require.True(t, ok)
	assert.True(t, a.At(1).IsMissing())

	b, ok := ds.Column("B")
	require.True(t, ok)
	assert.True(t, b.At(0).IsMissing())
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader("not json"))
	assert.Error(t, err)
}
