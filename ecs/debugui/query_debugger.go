package debugui

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spaceship/ecs"
)

// QueryDebugger is a component that shows which archetypes and how many
// entities a set of component types would match.
type QueryDebugger struct {
	selected map[string]bool
}

func NewQueryDebugger() QueryDebugger {
	return QueryDebugger{selected: make(map[string]bool)}
}

// Toggle adds or removes a component type name from the query.
func (qd *QueryDebugger) Toggle(name string, on bool) {
	if on {
		qd.selected[name] = true
	} else {
		delete(qd.selected, name)
	}
}

// componentTypes maps every component type name in storage to its type.
func componentTypes(storage *ecs.Storage) map[string]reflect.Type {
	types := make(map[string]reflect.Type)
	for _, archetype := range storage.GetArchetypes() {
		for _, t := range archetype.Types() {
			types[t.String()] = t
		}
	}
	return types
}

// QueryMatch is the result of matching the selected types.
type QueryMatch struct {
	Archetypes []ecs.ArchetypeStats
	Entities   int
}

// Match returns the archetypes holding every selected type. Names no
// archetype carries can never match. An empty selection matches nothing.
func (qd *QueryDebugger) Match(storage *ecs.Storage) QueryMatch {
	var match QueryMatch
	if len(qd.selected) == 0 {
		return match
	}

	types := componentTypes(storage)
	for name := range qd.selected {
		if _, ok := types[name]; !ok {
			return match
		}
	}

	for _, row := range storage.CollectStats().ArchetypeBreakdown {
		if qd.matches(row.ComponentTypes) {
			match.Archetypes = append(match.Archetypes, row)
			match.Entities += row.EntityCount
		}
	}
	return match
}

func (qd *QueryDebugger) matches(names []string) bool {
	for name := range qd.selected {
		if !slices.Contains(names, name) {
			return false
		}
	}
	return true
}

func (qd *QueryDebugger) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()
	if imgui.Button("Clear All") {
		clear(qd.selected)
	}

	names := make([]string, 0)
	for name := range componentTypes(storage) {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		on := qd.selected[name]
		if imgui.Checkbox(name, &on) {
			qd.Toggle(name, on)
		}
	}
	imgui.Separator()

	if len(qd.selected) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	match := qd.Match(storage)
	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(match.Archetypes)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", match.Entities))

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()
			for _, row := range match.Archetypes {
				imgui.TableNextRow()
				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("0x%08X", row.ID))
				imgui.TableSetColumnIndex(1)
				imgui.Text(strings.Join(row.ComponentTypes, ", "))
				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", row.EntityCount))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
