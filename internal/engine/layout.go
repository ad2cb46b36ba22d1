package engine

import (
	"math/rand"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// GeneKind distinguishes the two gene types in a genome.
type GeneKind int

const (
	// GeneUsage is a container usage bit. It is meaningful only for optional
	// containers; for mandatory ones it is held constant at 1.
	GeneUsage GeneKind = iota
	// GeneQuantity is a per-container package quantity.
	GeneQuantity
)

// GeneRef identifies what a gene position encodes.
type GeneRef struct {
	Kind      GeneKind
	Container int
	Package   int // valid only for GeneQuantity
}

// Genome is one candidate solution: a flat gene array with a cached fitness.
type Genome struct {
	Genes   []int
	fitness float64
	valid   bool
}

// Fitness returns the cached fitness and whether it is valid.
func (g *Genome) Fitness() (float64, bool) {
	return g.fitness, g.valid
}

// SetFitness stores an evaluated fitness.
func (g *Genome) SetFitness(f float64) {
	g.fitness = f
	g.valid = true
}

// Invalidate drops the cached fitness after a crossover or mutation.
func (g *Genome) Invalidate() {
	g.valid = false
}

// Clone returns a deep copy carrying over the fitness cache.
func (g *Genome) Clone() Genome {
	genes := make([]int, len(g.Genes))
	copy(genes, g.Genes)
	return Genome{Genes: genes, fitness: g.fitness, valid: g.valid}
}

// GeneLayout maps between flat genomes and the problem's (container usage,
// per-package quantity) decisions. The layout is: for each container in list
// order, one usage gene followed by one quantity gene per package. All
// offset tables are computed once at construction; mutation and decoding
// index into them directly instead of re-walking the layout.
type GeneLayout struct {
	problem  model.PackingProblem
	usage    []int
	quantity [][]int
	refs     []GeneRef
}

// NewGeneLayout derives the gene layout for a problem.
func NewGeneLayout(problem model.PackingProblem) *GeneLayout {
	layout := &GeneLayout{
		problem:  problem,
		usage:    make([]int, len(problem.Containers)),
		quantity: make([][]int, len(problem.Containers)),
	}

	idx := 0
	for c := range problem.Containers {
		layout.usage[c] = idx
		layout.refs = append(layout.refs, GeneRef{Kind: GeneUsage, Container: c})
		idx++

		layout.quantity[c] = make([]int, len(problem.Packages))
		for p := range problem.Packages {
			layout.quantity[c][p] = idx
			layout.refs = append(layout.refs, GeneRef{Kind: GeneQuantity, Container: c, Package: p})
			idx++
		}
	}

	return layout
}

// GeneCount returns the genome length for this problem.
func (l *GeneLayout) GeneCount() int {
	return len(l.refs)
}

// UsageIndex returns the gene index of a container's usage bit.
func (l *GeneLayout) UsageIndex(container int) int {
	return l.usage[container]
}

// QuantityIndex returns the gene index of a container/package quantity.
func (l *GeneLayout) QuantityIndex(container, pkg int) int {
	return l.quantity[container][pkg]
}

// RefAt returns the meaning of the gene at the given index.
func (l *GeneLayout) RefAt(index int) GeneRef {
	return l.refs[index]
}

// RandomGenome builds a uniform random genome: usage bits drawn 0/1 for
// optional containers (constant 1 otherwise) and quantities drawn uniformly
// from each package's [min, max] range.
func (l *GeneLayout) RandomGenome(rng *rand.Rand) Genome {
	genes := make([]int, 0, l.GeneCount())
	for _, container := range l.problem.Containers {
		if container.IsOptional {
			genes = append(genes, rng.Intn(2))
		} else {
			genes = append(genes, 1)
		}
		for _, pkg := range l.problem.Packages {
			genes = append(genes, pkg.MinQuantity+rng.Intn(pkg.MaxQuantity-pkg.MinQuantity+1))
		}
	}
	return Genome{Genes: genes}
}

// MutateGene applies the single-gene mutation at the given index: usage bits
// flip (only for optional containers), quantity genes are resampled
// uniformly from the package's range.
func (l *GeneLayout) MutateGene(genome *Genome, index int, rng *rand.Rand) {
	ref := l.refs[index]
	switch ref.Kind {
	case GeneUsage:
		if l.problem.Containers[ref.Container].IsOptional {
			genome.Genes[index] = 1 - genome.Genes[index]
		}
	case GeneQuantity:
		pkg := l.problem.Packages[ref.Package]
		genome.Genes[index] = pkg.MinQuantity + rng.Intn(pkg.MaxQuantity-pkg.MinQuantity+1)
	}
}
