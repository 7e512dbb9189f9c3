package console

import "github.com/aretw0/zconv/pkg/ports"

// Clearer empties the result and history regions.
type Clearer struct {
	result  ports.Region
	history ports.Region
}

// NewClearer binds the clear operation to the regions it empties.
func NewClearer(result, history ports.Region) *Clearer {
	return &Clearer{result: result, history: history}
}

// Clear empties both regions. It never fails and touches no network.
func (c *Clearer) Clear() {
	c.result.Clear()
	c.history.Clear()
}
