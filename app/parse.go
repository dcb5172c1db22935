package app

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gasparian/frechet-search-go/config"
	"github.com/gasparian/frechet-search-go/item"
)

const maxLineBytes = 1 << 20

// ParseDataset reads the whitespace-separated input format: one item
// per line, a name followed by its values. Under the Fréchet
// algorithms the values become a curve over the implicit time axis;
// otherwise a d-vector.
func ParseDataset(path string, alg config.Algorithm) (*item.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var items []item.Item
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		name := fields[0]
		values := make([]float64, len(fields)-1)
		for i, raw := range fields[1:] {
			values[i], err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
		}
		switch alg {
		case config.AlgFrechetDiscrete, config.AlgFrechetContinuous:
			items = append(items, item.SeriesToCurve(name, values))
		default:
			items = append(items, item.NewVector(name, values))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return item.NewDataset(items)
}
