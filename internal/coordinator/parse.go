package coordinator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viluon/ringelect/internal/election"
)

// parseIDs parses a whitespace-separated line of decimal node ids, the
// format a round is read from on standard input.
func parseIDs(line string) ([]election.NodeID, error) {
	fields := strings.Fields(line)
	ids := make([]election.NodeID, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("coordinator: invalid node id %q: %w", f, err)
		}
		ids = append(ids, election.NodeID(v))
	}
	return ids, nil
}
