package solver

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
)

var (
	ErrSameTerminals = errors.New("source and sink must be different nodes")
	ErrCyclicFlow    = errors.New("flow assignment contains directed cycles not attributable to any source-sink path")
)

// resolveTerminals maps the source and sink names to vertex indices. It fails
// before the network is touched, so an unknown name never leaves partial state.
func resolveTerminals(graph *datastructure.FlowNetwork, source, sink string) (datastructure.Index, datastructure.Index, error) {
	s, ok := graph.IndexOf(source)
	if !ok {
		return 0, 0, fmt.Errorf("%w: source %q", datastructure.ErrUnknownNode, source)
	}
	t, ok := graph.IndexOf(sink)
	if !ok {
		return 0, 0, fmt.Errorf("%w: sink %q", datastructure.ErrUnknownNode, sink)
	}
	if s == t {
		return 0, 0, fmt.Errorf("%w: %q", ErrSameTerminals, source)
	}
	return s, t, nil
}
