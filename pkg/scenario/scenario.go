// Package scenario derates a pipe edge list for what-if simulations: city-wide
// leakage shrinking every capacity, or a single pipe taken offline.
package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
)

var (
	ErrPipeNotFound      = errors.New("pipe not found in the edge list")
	ErrInvalidLeakage    = errors.New("leakage percent must be between 0 and 100")
	ErrInvalidPipeFormat = errors.New("failed pipe must be given as \"u,v\"")
)

// ApplyLeakage scales every capacity by (1 - percent/100) and returns the
// derated records, leaving the input untouched.
func ApplyLeakage(records []datastructure.PipeRecord, percent float64) ([]datastructure.PipeRecord, error) {
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidLeakage, percent)
	}

	factor := 1 - percent/100
	derated := make([]datastructure.PipeRecord, len(records))
	for i, record := range records {
		record.Capacity *= factor
		derated[i] = record
	}
	return derated, nil
}

// ApplyPipeFailure forces the capacity of the named pipe to 0 and returns the
// updated records. The pipe keeps its place in the list, so it still shows up
// in utilization reports, carrying nothing.
func ApplyPipeFailure(records []datastructure.PipeRecord, from, to string) ([]datastructure.PipeRecord, error) {
	updated := make([]datastructure.PipeRecord, len(records))
	copy(updated, records)

	for i := range updated {
		if updated[i].From == from && updated[i].To == to {
			updated[i].Capacity = 0
			return updated, nil
		}
	}
	return nil, fmt.Errorf("%w: %s -> %s", ErrPipeNotFound, from, to)
}

// ParseFailurePipe splits the "u,v" failed-pipe notation into its node names.
func ParseFailurePipe(failurePipe string) (string, string, error) {
	parts := strings.Split(failurePipe, ",")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPipeFormat, failurePipe)
	}

	from := strings.TrimSpace(parts[0])
	to := strings.TrimSpace(parts[1])
	if from == "" || to == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPipeFormat, failurePipe)
	}
	return from, to, nil
}
