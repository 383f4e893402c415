package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/physics"
)

type bodyColumn int

const (
	columnEntity bodyColumn = iota
	columnPosition
	columnShape
	columnLayer
	columnOverlaps
)

// BodyRow is a snapshot of one body for display.
type BodyRow struct {
	Entity   ecs.EntityId
	X, Y     float64
	Shape    physics.Shape
	Layer    uint64
	Mask     uint64
	Sensor   bool
	Overlaps []physics.Overlap
}

func (r BodyRow) matches(filter string) bool {
	if filter == "" {
		return true
	}
	filter = strings.ToLower(filter)
	return strings.Contains(fmt.Sprintf("%d", r.Entity), filter) ||
		strings.Contains(r.Shape.String(), filter) ||
		strings.Contains(fmt.Sprintf("%b", r.Layer), filter)
}

// collectBodies snapshots every body with a primary collider that matches
// filter, sorted by column.
func collectBodies(space *physics.Space, filter string, by bodyColumn, asc bool) []BodyRow {
	var rows []BodyRow
	for id, parts := range space.Bodies() {
		c := parts.Body.Primary()
		if c == nil {
			continue
		}
		row := BodyRow{
			Entity:   id,
			X:        parts.X,
			Y:        parts.Y,
			Shape:    c.Shape,
			Layer:    c.Layer,
			Mask:     c.CollidesWith,
			Sensor:   c.Sensor,
			Overlaps: slices.Clone(c.Overlaps),
		}
		if row.matches(filter) {
			rows = append(rows, row)
		}
	}

	slices.SortStableFunc(rows, func(a, b BodyRow) int {
		var order int
		switch by {
		case columnPosition:
			order = cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
		case columnShape:
			order = cmp.Compare(a.Shape.Extent(), b.Shape.Extent())
		case columnLayer:
			order = cmp.Compare(a.Layer, b.Layer)
		case columnOverlaps:
			order = cmp.Compare(len(a.Overlaps), len(b.Overlaps))
		default:
			order = cmp.Compare(a.Entity, b.Entity)
		}
		if !asc {
			return -order
		}
		return order
	})
	return rows
}

func NewBodyInspector(src SpaceSource, perPage int) *BodyInspector {
	return &BodyInspector{
		source:  src,
		perPage: max(perPage, 1),
		asc:     true,
	}
}

func (bi *BodyInspector) Render(*ecs.UpdateFrame) {
	if !imgui.BeginV("Bodies", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.InputTextWithHint("##filter", "Filter...", &bi.filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		bi.filter = ""
		bi.page = 0
	}

	rows := collectBodies(bi.source.Space(), bi.filter, bi.sortBy, bi.asc)
	pages := max((len(rows)+bi.perPage-1)/bi.perPage, 1)
	bi.page = min(bi.page, pages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("BodyTable", 5, tableFlags, imgui.NewVec2(0, 240), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Shape")
		imgui.TableSetupColumn("Layer")
		imgui.TableSetupColumn("Overlaps")
		imgui.TableHeadersRow()

		if specs := imgui.TableGetSortSpecs(); specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			bi.sortBy = bodyColumn(spec.ColumnIndex())
			bi.asc = spec.SortDirection() == imgui.SortDirectionAscending
			specs.SetSpecsDirty(false)
		}

		selected, hasSelection := bi.selection()
		start := bi.page * bi.perPage
		for _, row := range rows[start:min(start+bi.perPage, len(rows))] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(row.Entity.String(), hasSelection && selected == row.Entity, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				bi.Select(row.Entity)
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f, %.1f", row.X, row.Y))
			imgui.TableNextColumn()
			imgui.Text(row.Shape.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%06b", row.Layer))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(row.Overlaps)))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d bodies)", bi.page+1, pages, len(rows)))
	imgui.SameLine()
	if imgui.Button("Prev") && bi.page > 0 {
		bi.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && bi.page < pages-1 {
		bi.page++
	}

	imgui.Separator()
	bi.renderSelected(rows)
}

// Select remembers id through an EntityRef, so the selection keeps naming
// the same body after the store is compacted.
func (bi *BodyInspector) Select(id ecs.EntityId) {
	storage := bi.source.Storage()
	bi.selected = storage.CreateEntityRef(id)
	bi.selectedIn = storage
}

// selection resolves the selected body for the current frame.
func (bi *BodyInspector) selection() (ecs.EntityId, bool) {
	storage := bi.source.Storage()
	if bi.selected == nil || bi.selectedIn != storage {
		return 0, false
	}
	return storage.ResolveEntityRef(bi.selected)
}

func (bi *BodyInspector) renderSelected(rows []BodyRow) {
	id, ok := bi.selection()
	i := slices.IndexFunc(rows, func(r BodyRow) bool { return ok && r.Entity == id })
	if i < 0 {
		imgui.Text("No body selected")
		return
	}
	row := rows[i]

	imgui.Text("Entity " + row.Entity.String())
	imgui.Text(fmt.Sprintf("Layer %06b  collides with %06b  sensor %v", row.Layer, row.Mask, row.Sensor))
	for _, o := range row.Overlaps {
		imgui.BulletText(fmt.Sprintf("%d on %06b at %.1f deg", o.Other.Entity, o.Other.Layer, o.ImpactAngle()))
	}
}
