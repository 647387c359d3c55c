package election

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func newTestNode(id NodeID) *Node {
	return NewNode(id, "left:0", "right:0", nil)
}

func TestNodeInitialRole(t *testing.T) {
	n := newTestNode(1)
	assert.Assert(t, is.DeepEqual(n.Role(), Role(CandidatePhase{Phase: 1, LastPhaseProbed: 0})))
}

func TestNextPhaseAdvancesAndRecordsLastProbed(t *testing.T) {
	n := newTestNode(1)
	n.MarkProbed()
	n.NextPhase()
	assert.Assert(t, is.DeepEqual(n.Role(), Role(CandidatePhase{Phase: 2, LastPhaseProbed: 1})))
}

func TestNextPhaseFatalOutsideCandidate(t *testing.T) {
	n := newTestNode(1)
	n.Lead()
	defer func() {
		if recover() == nil {
			t.Fatal("expected NextPhase on a Leader to panic")
		}
	}()
	n.NextPhase()
}

func TestNextPhaseFatalWhenNotYetProbed(t *testing.T) {
	n := newTestNode(1) // Phase:1, LastPhaseProbed:0 — not yet probed
	defer func() {
		if recover() == nil {
			t.Fatal("expected NextPhase before MarkProbed to panic")
		}
	}()
	n.NextPhase()
}

func TestDefeatFromCandidate(t *testing.T) {
	n := newTestNode(1)
	n.Defeat()
	assert.Assert(t, is.DeepEqual(n.Role(), Role(DefeatedInfo{Leader: nil})))
}

func TestDefeatIdempotentOnDefeated(t *testing.T) {
	n := newTestNode(1)
	n.Defeat()
	n.Defeat()
	assert.Assert(t, is.DeepEqual(n.Role(), Role(DefeatedInfo{Leader: nil})))
}

func TestDefeatFatalOnLeader(t *testing.T) {
	n := newTestNode(1)
	n.Lead()
	defer func() {
		if recover() == nil {
			t.Fatal("expected Defeat on the leader to panic")
		}
	}()
	n.Defeat()
}

func TestDefeatWithLeaderOverwrites(t *testing.T) {
	n := newTestNode(1)
	n.DefeatWithLeader(5)
	n.DefeatWithLeader(9)
	role := n.Role().(DefeatedInfo)
	assert.Assert(t, role.Leader != nil)
	assert.Equal(t, *role.Leader, NodeID(9))
}

func TestLeadFromCandidate(t *testing.T) {
	n := newTestNode(1)
	n.Lead()
	assert.Assert(t, is.DeepEqual(n.Role(), Role(LeaderRole{})))
}

func TestLeadIdempotentOnLeader(t *testing.T) {
	n := newTestNode(1)
	n.Lead()
	n.Lead()
	assert.Assert(t, is.DeepEqual(n.Role(), Role(LeaderRole{})))
}

func TestLeadFatalOnDefeated(t *testing.T) {
	n := newTestNode(1)
	n.Defeat()
	defer func() {
		if recover() == nil {
			t.Fatal("expected Lead on a defeated node to panic")
		}
	}()
	n.Lead()
}

func TestMarkProbedFatalOutsideCandidate(t *testing.T) {
	n := newTestNode(1)
	n.Lead()
	defer func() {
		if recover() == nil {
			t.Fatal("expected MarkProbed on a Leader to panic")
		}
	}()
	n.MarkProbed()
}

func TestChangedWakesOnMutation(t *testing.T) {
	n := newTestNode(1)
	_, ch := n.Changed()

	go n.Defeat()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("mutation did not wake the previously observed channel")
	}
}
