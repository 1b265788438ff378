package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spaceship/ecs"
)

const (
	archetypeColumnID = iota
	archetypeColumnComponents
	archetypeColumnComponentCount
	archetypeColumnEntityCount
)

// ArchetypeViewer is a component tabling every archetype with its entity
// count. Clicking a row filters the EntityBrowser to that archetype.
type ArchetypeViewer struct {
	rows          []ecs.ArchetypeStats
	selected      *uint32
	sortColumn    int
	sortAscending bool
}

func NewArchetypeViewer() ArchetypeViewer {
	return ArchetypeViewer{sortColumn: archetypeColumnEntityCount}
}

// Refresh reloads the rows from storage stats, keeping the current sort.
func (av *ArchetypeViewer) Refresh(storage *ecs.Storage) {
	av.rows = storage.CollectStats().ArchetypeBreakdown
	av.sort()
}

// Rows returns the rows from the last Refresh.
func (av *ArchetypeViewer) Rows() []ecs.ArchetypeStats {
	return av.rows
}

// SortBy orders the rows by one of the table's columns.
func (av *ArchetypeViewer) SortBy(column int, ascending bool) {
	av.sortColumn = column
	av.sortAscending = ascending
	av.sort()
}

func (av *ArchetypeViewer) sort() {
	sort.SliceStable(av.rows, func(i, j int) bool {
		a, b := av.rows[i], av.rows[j]
		var less bool
		switch av.sortColumn {
		case archetypeColumnID:
			less = a.ID < b.ID
		case archetypeColumnComponents:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case archetypeColumnComponentCount:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			less = a.EntityCount < b.EntityCount
		}
		if !av.sortAscending {
			return !less
		}
		return less
	})
}

// Render draws the table and returns the archetype clicked this frame.
func (av *ArchetypeViewer) Render(storage *ecs.Storage) *uint32 {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	av.Refresh(storage)

	largest := 0
	for _, row := range av.rows {
		largest = max(largest, row.EntityCount)
	}

	var clicked *uint32
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Comp Count")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		if specs := imgui.TableGetSortSpecs(); specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			av.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			specs.SetSpecsDirty(false)
		}

		for _, row := range av.rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			isSelected := av.selected != nil && *av.selected == row.ID
			if imgui.SelectableBoolV(fmt.Sprintf("0x%08X", row.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := row.ID
				av.selected = &id
				clicked = &id
			}
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.ComponentTypes, ", "))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(row.ComponentTypes)))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.EntityCount))

			if largest > 0 {
				width := float32(row.EntityCount) / float32(largest) * 80
				imgui.SameLine()
				pos := imgui.CursorScreenPos()
				imgui.WindowDrawList().AddRectFilled(pos, imgui.NewVec2(pos.X+width, pos.Y+10),
					imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6)))
			}
		}
		imgui.EndTable()
	}

	imgui.End()
	return clicked
}
