// Package csvparser loads a pipe edge list from a csv file with the
// columns u, v, capacity_mld. Files ending in .bz2 are decompressed on
// the fly.
package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
	"github.com/lintang-b-s/water-network-maxflow/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrMissingColumn = errors.New("missing required csv column")
	ErrEmptyNodeName = errors.New("empty node name")
)

type CSVParser struct {
	columns map[string]int
}

func NewCSVParser() *CSVParser {
	return &CSVParser{
		columns: make(map[string]int),
	}
}

// Parse reads the edge list at path and returns one record per data row,
// keeping the file order. Rows with a negative capacity or a repeated
// (u, v) pair fail the whole parse, with the offending line in the error.
func (p *CSVParser) Parse(path string, logger *zap.Logger) ([]datastructure.PipeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open edge list %s: %w", path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, fmt.Errorf("open bzip2 edge list %s: %w", path, err)
		}
		defer bz.Close()
		reader = bz
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header of %s: %w", path, err)
	}
	if err := p.indexColumns(header); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	records := make([]datastructure.PipeRecord, 0)
	seen := make(map[[2]string]struct{})
	line := 1
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row of %s: %w", path, err)
		}
		line++

		from := strings.TrimSpace(row[p.columns["u"]])
		to := strings.TrimSpace(row[p.columns["v"]])
		if from == "" || to == "" {
			return nil, fmt.Errorf("%s line %d: %w", path, line, ErrEmptyNodeName)
		}

		capacity, err := util.StringToFloat64(strings.TrimSpace(row[p.columns["capacity_mld"]]))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: parse capacity: %w", path, line, err)
		}
		if capacity < 0 {
			return nil, fmt.Errorf("%s line %d: %w: %s -> %s (%g)", path, line,
				datastructure.ErrInvalidCapacity, from, to, capacity)
		}

		pair := [2]string{from, to}
		if _, ok := seen[pair]; ok {
			return nil, fmt.Errorf("%s line %d: %w: %s -> %s", path, line,
				datastructure.ErrDuplicatePipe, from, to)
		}
		seen[pair] = struct{}{}

		records = append(records, datastructure.NewPipeRecord(from, to, capacity))
	}

	logger.Sugar().Infof("loaded %d pipes from %s", len(records), path)
	return records, nil
}

func (p *CSVParser) indexColumns(header []string) error {
	for i, name := range header {
		p.columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"u", "v", "capacity_mld"} {
		if _, ok := p.columns[required]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}
	return nil
}
