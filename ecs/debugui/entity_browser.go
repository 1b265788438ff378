package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spaceship/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

const (
	browserColumnID = iota
	browserColumnArchetype
	browserColumnComponents
	browserColumnCount
)

// EntityBrowser is a component listing every live entity, with a text
// filter, an archetype filter and paging. The selected entity feeds the
// ComponentInspector.
type EntityBrowser struct {
	entities []EntityInfo
	selected ecs.EntityId

	filterText      string
	filterArchetype *uint32

	perPage       int
	page          int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowser(perPage int) EntityBrowser {
	return EntityBrowser{perPage: max(perPage, 1), sortAscending: true}
}

func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selected = id
}

// SetFilter matches entities whose id, archetype or component names contain
// text, case-insensitively.
func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
	eb.page = 0
}

// FilterArchetype limits the listing to one archetype; nil clears it.
func (eb *EntityBrowser) FilterArchetype(id *uint32) {
	eb.filterArchetype = id
	eb.page = 0
}

// Refresh rebuilds the listing from storage. Bullets come and go every
// frame, so the listing is never cached across frames.
func (eb *EntityBrowser) Refresh(storage *ecs.Storage) {
	eb.entities = eb.entities[:0]
	for _, archetype := range storage.GetArchetypes() {
		names := typeNames(archetype)
		for id := range archetype.Iter() {
			eb.entities = append(eb.entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}
	eb.sort()
}

func (eb *EntityBrowser) sort() {
	sort.SliceStable(eb.entities, func(i, j int) bool {
		a, b := eb.entities[i], eb.entities[j]
		var less bool
		switch eb.sortColumn {
		case browserColumnArchetype:
			less = a.ArchetypeID < b.ArchetypeID
		case browserColumnComponents:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case browserColumnCount:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			less = a.ID < b.ID
		}
		if !eb.sortAscending {
			return !less
		}
		return less
	})
}

// Filtered returns the entities passing both filters.
func (eb *EntityBrowser) Filtered() []EntityInfo {
	if eb.filterText == "" && eb.filterArchetype == nil {
		return eb.entities
	}

	needle := strings.ToLower(eb.filterText)
	out := make([]EntityInfo, 0, len(eb.entities))
	for _, entity := range eb.entities {
		if eb.filterArchetype != nil && entity.ArchetypeID != *eb.filterArchetype {
			continue
		}
		if needle != "" &&
			!strings.Contains(entity.ID.String(), needle) &&
			!strings.Contains(strings.ToLower(strings.Join(entity.ComponentTypes, " ")), needle) {
			continue
		}
		out = append(out, entity)
	}
	return out
}

// Page returns the current page of filtered entities and the page count.
func (eb *EntityBrowser) Page() ([]EntityInfo, int) {
	filtered := eb.Filtered()
	perPage := max(eb.perPage, 1)
	pages := max((len(filtered)+perPage-1)/perPage, 1)
	eb.page = min(eb.page, pages-1)

	start := eb.page * perPage
	end := min(start+perPage, len(filtered))
	return filtered[start:end], pages
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh(storage)

	filter := eb.filterText
	if imgui.InputTextWithHint("##search", "Search...", &filter, imgui.InputTextFlagsNone, nil) {
		eb.SetFilter(filter)
	}
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.SetFilter("")
		eb.FilterArchetype(nil)
	}

	rows, pages := eb.Page()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		if specs := imgui.TableGetSortSpecs(); specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sort()
			rows, pages = eb.Page()
			specs.SetSpecsDirty(false)
		}

		for _, entity := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(entity.ID.String(), eb.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(entity.ID)
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%08X", entity.ArchetypeID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.ComponentTypes)))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, pages, len(eb.Filtered())))
	if pages > 1 {
		imgui.SameLine()
		if imgui.Button("Prev") && eb.page > 0 {
			eb.page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.page < pages-1 {
			eb.page++
		}
	}

	imgui.End()
}

func typeNames(archetype *ecs.Archetype) []string {
	names := make([]string, len(archetype.Types()))
	for i, t := range archetype.Types() {
		names[i] = t.String()
	}
	return names
}
