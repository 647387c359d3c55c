package ring

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/viluon/ringelect/internal/election"
)

func ids(vs ...uint64) []election.NodeID {
	out := make([]election.NodeID, len(vs))
	for i, v := range vs {
		out[i] = election.NodeID(v)
	}
	return out
}

func TestBuildSingletonRingIsSelfNeighbour(t *testing.T) {
	specs, err := Build(ids(7), AddressBook{Host: "127.0.0.1", BasePort: 50000})
	assert.NilError(t, err)
	assert.Equal(t, len(specs), 1)
	assert.Equal(t, specs[0].LeftAddr, specs[0].ListenAddr)
	assert.Equal(t, specs[0].RightAddr, specs[0].ListenAddr)
}

func TestBuildPreservesInputOrderNotSortedOrder(t *testing.T) {
	// "1 3 2" should ring as 1 -> 3 -> 2 -> 1, ids not sorted.
	specs, err := Build(ids(1, 3, 2), AddressBook{Host: "127.0.0.1", BasePort: 50000})
	assert.NilError(t, err)

	byID := map[election.NodeID]NodeSpec{}
	for _, s := range specs {
		byID[s.ID] = s
	}
	addrs := AddressBook{Host: "127.0.0.1", BasePort: 50000}
	assert.Equal(t, byID[1].RightAddr, addrs.Addr(3))
	assert.Equal(t, byID[1].LeftAddr, addrs.Addr(2))
	assert.Equal(t, byID[3].RightAddr, addrs.Addr(2))
	assert.Equal(t, byID[3].LeftAddr, addrs.Addr(1))
	assert.Equal(t, byID[2].RightAddr, addrs.Addr(1))
	assert.Equal(t, byID[2].LeftAddr, addrs.Addr(3))
}

func TestBuildRejectsDuplicateIDs(t *testing.T) {
	_, err := Build(ids(1, 2, 1), AddressBook{Host: "127.0.0.1", BasePort: 50000})
	assert.ErrorContains(t, err, "duplicate")
}

func TestBuildRejectsEmptyRing(t *testing.T) {
	_, err := Build(nil, AddressBook{Host: "127.0.0.1", BasePort: 50000})
	assert.ErrorContains(t, err, "at least one")
}

func TestAddressBookDerivesPortFromID(t *testing.T) {
	a := AddressBook{Host: "127.0.0.1", BasePort: 50000}
	assert.Equal(t, a.Addr(7), "127.0.0.1:50007")
}
