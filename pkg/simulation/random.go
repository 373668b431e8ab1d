package simulation

import (
	"fmt"

	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
	"github.com/lintang-b-s/water-network-maxflow/pkg/util"
	"golang.org/x/exp/rand"
)

// RandomNetwork generates a reproducible acyclic pipe layout for stress
// runs. Node 0 is the source "S", the last node the sink "T", junctions in
// between are named J1, J2, ... Consecutive nodes are always connected, so
// the network carries flow for any seed; shortcut pipes appear with
// edgeProbability.
func RandomNetwork(numNodes int, edgeProbability, maxCapacity float64,
	seed uint64) ([]datastructure.PipeRecord, error) {
	if numNodes < 2 {
		return nil, fmt.Errorf("random network needs at least 2 nodes, got %d", numNodes)
	}
	if edgeProbability < 0 || edgeProbability > 1 {
		return nil, fmt.Errorf("edge probability must be between 0 and 1, got %g", edgeProbability)
	}
	if maxCapacity <= 0 {
		return nil, fmt.Errorf("max capacity must be positive, got %g", maxCapacity)
	}

	rng := rand.New(rand.NewSource(seed))
	label := func(i int) string {
		switch i {
		case 0:
			return "S"
		case numNodes - 1:
			return "T"
		default:
			return fmt.Sprintf("J%d", i)
		}
	}

	records := make([]datastructure.PipeRecord, 0)
	for i := 0; i < numNodes; i++ {
		for j := i + 1; j < numNodes; j++ {
			if j != i+1 && rng.Float64() >= edgeProbability {
				continue
			}
			capacity := util.RoundFloat(rng.Float64()*maxCapacity, 2)
			records = append(records, datastructure.NewPipeRecord(label(i), label(j), capacity))
		}
	}
	return records, nil
}
