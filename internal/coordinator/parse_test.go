package coordinator

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/viluon/ringelect/internal/election"
)

func TestParseIDsSplitsOnWhitespace(t *testing.T) {
	ids, err := parseIDs("1  2\t3")
	assert.NilError(t, err)
	assert.DeepEqual(t, ids, []election.NodeID{1, 2, 3})
}

func TestParseIDsEmptyLineYieldsNoIDs(t *testing.T) {
	ids, err := parseIDs("   ")
	assert.NilError(t, err)
	assert.Equal(t, len(ids), 0)
}

func TestParseIDsRejectsNonNumeric(t *testing.T) {
	_, err := parseIDs("1 two 3")
	assert.ErrorContains(t, err, `invalid node id "two"`)
}
