package params

// SplitConfig configures the recursive polygon splitter.
type SplitConfig struct {
	// MaxVertices is the vertex budget: the maximum permitted exterior-ring
	// point count (closing point included) for an output piece.
	MaxVertices int

	// MaxDepth bounds quadrant recursion. A polygon still over budget at
	// MaxDepth is emitted as-is with a warning instead of recursing forever.
	// Pathological shapes (eg. zero-area slivers) can otherwise fail to
	// shrink under quadrant clipping.
	MaxDepth int
}

var DefaultSplitConfig = SplitConfig{
	MaxVertices: 250,
	MaxDepth:    64,
}

// MinMaxVertices is the smallest budget the CLI accepts.
// The splitter itself terminates for any budget >= 4 (a closed triangle),
// but tiny budgets shred real-world data into confetti.
const MinMaxVertices = 6
