package parameter

// Navigation - Quadtree decomposition
const (
	// NavDefaultMaxDepth is the subdivision depth used when a caller does not choose one
	NavDefaultMaxDepth = 6

	// NavMaxAllowedDepth bounds subdivision; locational codes need 2*depth+1 bits and
	// float64 cell edges stay exact well below this
	NavMaxAllowedDepth = 24

	// NavStripFactor is the neighbour strip thickness as a fraction of the smallest cell edge
	// Must stay below 1 so strips never reach past an adjacent leaf
	NavStripFactor = 0.5
)

// Navigation - Tolerances
const (
	// NavEpsilon is the relative tolerance for edge matching and funnel point equality,
	// scaled by the domain extent (see vmath.RelativeEpsilon)
	NavEpsilon = 1e-9
)

// Navigation - Search
const (
	// NavMaxExpansions caps A* node expansions per query, 0 disables the cap
	NavMaxExpansions = 0
)
