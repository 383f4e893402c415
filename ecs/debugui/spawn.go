package debugui

import "github.com/plus3/roids/ecs"

// RegisterDebugUIComponents registers the components the debug store needs.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}

// SpawnDebugUI adds the standard panels for src to the debug store.
func SpawnDebugUI(storage *ecs.Storage, src SpaceSource) {
	storage.Spawn(ImguiItem{Panel: NewPerformanceStats(src, 120)})
	storage.Spawn(ImguiItem{Panel: NewBodyInspector(src, 50)})
}

// NewDebugScheduler builds the debug store's scheduler. Running it once per
// frame between the backend's BeginFrame and EndFrame draws every panel.
func NewDebugScheduler(storage *ecs.Storage) *ecs.Scheduler {
	ecs.NewSingleton[ImguiInputState](storage)
	s := ecs.NewScheduler(storage)
	s.Register(&ImguiSystem{})
	return s
}
