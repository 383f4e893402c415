package debugui

import (
	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/physics"
)

// PerformanceStats shows frame times, system timings and store occupancy.
type PerformanceStats struct {
	source  Source
	history *frameHistory
}

// BodyInspector lists physics bodies and the overlaps recorded for them by
// the last detection pass.
type BodyInspector struct {
	source SpaceSource
	// selected follows the chosen body across compaction. It belongs to
	// selectedIn; a different storage (after a reset) means no selection.
	selected   *ecs.EntityRef
	selectedIn *ecs.Storage
	filter     string
	perPage    int
	page       int
	sortBy     bodyColumn
	asc        bool
}

// SpaceSource is a Source that also exposes its physics space.
type SpaceSource interface {
	Source
	Space() *physics.Space
}
