package election

// HandleNotify handles a NotifyMessage announcing an elected leader: a node
// either drops it (the sweep has circled back to its originator) or
// records the leader and reports that it must be forwarded once more in
// the same direction.
func HandleNotify(node *Node, msg NotifyMessage) (forward bool) {
	if msg.LeaderID == node.ID {
		// The sweep has fully circled back to the leader that started it.
		return false
	}
	node.DefeatWithLeader(msg.LeaderID)
	return true
}
