package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

const timeRounding = time.Millisecond

// formatDims renders integer dimensions as "(4 x 2 x 4)".
func formatDims(dims []int) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "(" + strings.Join(parts, " x ") + ")"
}

// formatPosition renders a placement position as "(0, 5)".
func formatPosition(pos []int) string {
	parts := make([]string, len(pos))
	for i, p := range pos {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// sortedUnplacedNames returns the unplaced package names in stable order.
func sortedUnplacedNames(result model.OptimizationResult) []string {
	names := make([]string, 0, len(result.UnplacedPackages))
	for name := range result.UnplacedPackages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
