package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/roids/ecs"
)

// frameHistory is a ring of recent frame times in milliseconds.
type frameHistory struct {
	samples []float32
	next    int
	filled  int
}

func newFrameHistory(n int) *frameHistory {
	return &frameHistory{samples: make([]float32, n)}
}

func (h *frameHistory) Push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average is taken over the samples pushed so far, not the whole ring.
func (h *frameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range h.samples[:h.filled] {
		sum += ms
	}
	return sum / float32(h.filled)
}

func NewPerformanceStats(src Source, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		source:  src,
		history: newFrameHistory(max(historyFrames, 1)),
	}
}

// slowestSystems orders system timings by average duration, slowest first.
// Flush steps are left out.
func slowestSystems(stats *ecs.SchedulerStats) []ecs.SystemStats {
	systems := make([]ecs.SystemStats, 0, len(stats.Systems))
	for _, sys := range stats.Systems {
		if sys.Name == "syncPoint" {
			continue
		}
		systems = append(systems, sys)
	}
	slices.SortStableFunc(systems, func(a, b ecs.SystemStats) int {
		return cmp.Compare(b.AvgDuration, a.AvgDuration)
	})
	return systems
}

func (ps *PerformanceStats) Render(frame *ecs.UpdateFrame) {
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	ps.history.Push(float32(frame.DeltaTime * 1000))
	storage, scheduler := ps.source.Storage(), ps.source.Scheduler()
	stats := storage.CollectStats()

	avg := ps.history.Average()
	imgui.Text(fmt.Sprintf("Tick: %d", scheduler.Tick()))
	imgui.Text(fmt.Sprintf("Entities: %d (%d slots)", stats.TotalEntityCount, stats.TotalSlotCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d  Singletons: %d", stats.ArchetypeCount, stats.SingletonCount))
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.samples[0], int32(len(ps.history.samples)))

	imgui.Separator()
	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Last")
			imgui.TableHeadersRow()

			for _, sys := range slowestSystems(scheduler.GetStats()) {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.Round(time.Microsecond).String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.Round(time.Microsecond).String())
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.Round(time.Microsecond).String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetypes") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Live")
			imgui.TableSetupColumn("Slots")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(strings.Join(arch.ComponentTypes, ", "))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.SlotCount))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}
}

// FrameTimer measures wall time between calls.
type FrameTimer struct {
	last time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now()}
}

// Delta returns the seconds since the previous call.
func (ft *FrameTimer) Delta() float64 {
	now := time.Now()
	delta := now.Sub(ft.last).Seconds()
	ft.last = now
	return delta
}
