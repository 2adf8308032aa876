package analysis

import (
	"strconv"
	"strings"

	"github.com/exilemind/arbor/pkg/errors"
)

// AllocatedSet is a player's current allocation plus build metadata, as
// extracted by the save-file collaborator.
type AllocatedSet struct {
	// Nodes holds every allocated node id, including dynamic socket ids;
	// the engine filters those at lookup time.
	Nodes map[int]bool

	Level        int // character level
	ClassID      int // base class identifier
	AscendancyID int // chosen ascendancy, 0 for none
}

// ParseAllocated builds an AllocatedSet from a comma-separated node-id
// string. Whitespace around ids is tolerated; duplicates collapse.
func ParseAllocated(list string, level, classID, ascendancyID int) (AllocatedSet, error) {
	if err := errors.ValidateNodeList(list); err != nil {
		return AllocatedSet{}, err
	}
	if level < 1 || level > 100 {
		return AllocatedSet{}, errors.New(errors.ErrCodeInvalidInput, "character level %d out of range", level)
	}

	nodes := make(map[int]bool)
	for _, part := range strings.Split(list, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return AllocatedSet{}, errors.Wrap(errors.ErrCodeInvalidNodes, err, "node id %q", part)
		}
		nodes[id] = true
	}

	return AllocatedSet{
		Nodes:        nodes,
		Level:        level,
		ClassID:      classID,
		AscendancyID: ascendancyID,
	}, nil
}

// questPoints is the number of passive points granted by quest rewards on a
// completed campaign, on top of one point per level past the first.
const questPoints = 22

// PointBudget returns the total passive points available at the set's level.
func (a AllocatedSet) PointBudget() int {
	return a.Level - 1 + questPoints
}
