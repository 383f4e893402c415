// Package debugui draws Dear ImGui inspection panels for a running store.
// The panels live in their own store and scheduler and look at the target
// through a Source, so inspecting never changes the simulation.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/roids/ecs"
)

// Source is whatever the panels inspect. It is asked again every frame, so
// a target that rebuilds its storage on reset stays visible.
type Source interface {
	Storage() *ecs.Storage
	Scheduler() *ecs.Scheduler
}

// Panel is one ImGui window.
type Panel interface {
	Render(frame *ecs.UpdateFrame)
}

// ImguiItem is a component that holds a panel to draw each frame.
type ImguiItem struct {
	Panel Panel
}

// ImguiInputState tracks whether ImGui is consuming mouse or keyboard input.
// Front ends read it before turning input into game intent.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem records the input capture state and queues every panel to be
// drawn when the frame's commands are flushed.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	state := i.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		panel := item.Panel
		frame.Commands.Defer(func() { panel.Render(frame) })
	}
}
