// Package ebiten hosts the debug panels on top of an Ebiten game.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Overlay owns the debug store and draws its panels over the game.
type Overlay struct {
	backend   ImguiBackend
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[debugui.ImguiInputState]
	timer     *debugui.FrameTimer
}

// NewOverlay creates the ImGui window and spawns the standard panels for src.
func NewOverlay(title string, width, height int, src debugui.SpaceSource) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	registry := ecs.NewComponentRegistry()
	debugui.RegisterDebugUIComponents(registry)

	storage := ecs.NewStorage(registry)
	debugui.SpawnDebugUI(storage, src)

	return &Overlay{
		backend:   ImguiBackend{EbitenBackend: backend},
		storage:   storage,
		scheduler: debugui.NewDebugScheduler(storage),
		input:     ecs.NewSingleton[debugui.ImguiInputState](storage),
		timer:     debugui.NewFrameTimer(),
	}
}

// Update builds this frame's panels. Call it once from the game's Update.
func (o *Overlay) Update() {
	o.backend.BeginFrame()
	o.scheduler.Once(o.timer.Delta())
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

// CapturingMouse reports whether ImGui wanted the mouse last frame.
func (o *Overlay) CapturingMouse() bool {
	return o.input.Get().WantCaptureMouse
}

// CapturingKeyboard reports whether ImGui wanted the keyboard last frame.
func (o *Overlay) CapturingKeyboard() bool {
	return o.input.Get().WantCaptureKeyboard
}
