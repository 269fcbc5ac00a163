package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserPrecedence(t *testing.T) {
	tree, err := Parse("1+2*3")
	require.NoError(t, err)
	bin, ok := tree.(*Binary)
	require.True(t, ok)
	assert.Equal(t, BinAdd, bin.Op)
	rhs, ok := bin.Right.(*Binary)
	require.True(t, ok)
	assert.Equal(t, BinMul, rhs.Op)
}

func TestParserNonChainingComparison(t *testing.T) {
	// "a<b<c" must parse as "(a<b)<c", a comparison of a comparison
	// result against c, not as a conjunction of two comparisons.
	tree, err := Parse("a<b<c")
	require.NoError(t, err)
	outer, ok := tree.(*Binary)
	require.True(t, ok)
	assert.Equal(t, BinLess, outer.Op)

	inner, ok := outer.Left.(*Binary)
	require.True(t, ok)
	assert.Equal(t, BinLess, inner.Op)

	_, rightIsRef := outer.Right.(*ColumnRef)
	assert.True(t, rightIsRef)
}

func TestParserLogicalPrecedence(t *testing.T) {
	// OR binds loosest, AND next, NOT tightest among the logical trio.
	tree, err := Parse("NOT a=1 AND b=2 OR c=3")
	require.NoError(t, err)
	or, ok := tree.(*Binary)
	require.True(t, ok)
	assert.Equal(t, BinOr, or.Op)

	and, ok := or.Left.(*Binary)
	require.True(t, ok)
	assert.Equal(t, BinAnd, and.Op)

	not, ok := and.Left.(*Unary)
	require.True(t, ok)
	assert.Equal(t, UnaryNot, not.Op)
}

func TestParserFunctionCall(t *testing.T) {
	tree, err := Parse(`IF(ISBLANK(Comment), "missing", Comment)`)
	require.NoError(t, err)
	call, ok := tree.(*Call)
	require.True(t, ok)
	assert.Equal(t, "IF", call.Name)
	require.Len(t, call.Args, 3)

	inner, ok := call.Args[0].(*Call)
	require.True(t, ok)
	assert.Equal(t, "ISBLANK", inner.Name)
}

func TestParserBacktickIdentifier(t *testing.T) {
	tree, err := Parse("`Submitter Name`=`Approver Name`")
	require.NoError(t, err)
	bin, ok := tree.(*Binary)
	require.True(t, ok)
	left, ok := bin.Left.(*ColumnRef)
	require.True(t, ok)
	assert.Equal(t, "Submitter Name", left.Name)
}

func TestParserEmptyFormula(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
}

func TestParserUnbalancedParens(t *testing.T) {
	_, err := Parse("(a=1")
	require.Error(t, err)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParserTrailingGarbage(t *testing.T) {
	_, err := Parse("a=1 b=2")
	require.Error(t, err)
}

func TestReferencedFieldsOrderAndDedup(t *testing.T) {
	tree, err := Parse(`IF(Amount>Limit, Owner&" "&Approver, Owner)`)
	require.NoError(t, err)
	fields := ReferencedFields(tree)
	assert.Equal(t, []string{"Amount", "Limit", "Owner", "Approver"}, fields)
}

func TestASTPrintRoundTrip(t *testing.T) {
	formulas := []string{
		"1+2*3",
		"a<b<c",
		`IF(ISBLANK(Comment), "missing", Comment)`,
		`Owner&" "&Approver`,
		"NOT a=1 AND b=2 OR c=3",
		"-5*(3+2)",
	}
	for _, f := range formulas {
		t.Run(f, func(t *testing.T) {
			tree, err := Parse(f)
			require.NoError(t, err)
			printed := Print(tree)

			reparsed, err := Parse(printed)
			require.NoError(t, err, "reparsing printed form %q", printed)

			assert.Equal(t, Print(tree), Print(reparsed), "round trip changed semantics for %q", f)
		})
	}
}
