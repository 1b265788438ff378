package debugui

import "github.com/plus3/spaceship/ecs"

// SpawnDebugUI spawns one of each inspection window. They render through
// DebugWindowsSystem.
func SpawnDebugUI(storage *ecs.Storage) {
	storage.Spawn(NewEntityBrowser(100))
	storage.Spawn(NewComponentInspector())
	storage.Spawn(NewArchetypeViewer())
	storage.Spawn(NewQueryDebugger())
}

// DebugWindowsSystem renders the inspection windows after the frame's
// commands are applied. Clicking an archetype filters every browser; the
// last browser's selection drives every inspector.
type DebugWindowsSystem struct {
	Browsers   ecs.Query[struct{ *EntityBrowser }]
	Inspectors ecs.Query[struct{ *ComponentInspector }]
	Archetypes ecs.Query[struct{ *ArchetypeViewer }]
	Queries    ecs.Query[struct{ *QueryDebugger }]
}

func (d *DebugWindowsSystem) Execute(frame *ecs.UpdateFrame) {
	var (
		browsers   []*EntityBrowser
		inspectors []*ComponentInspector
		viewers    []*ArchetypeViewer
		queries    []*QueryDebugger
	)
	for item := range d.Browsers.Iter() {
		browsers = append(browsers, item.EntityBrowser)
	}
	for item := range d.Inspectors.Iter() {
		inspectors = append(inspectors, item.ComponentInspector)
	}
	for item := range d.Archetypes.Iter() {
		viewers = append(viewers, item.ArchetypeViewer)
	}
	for item := range d.Queries.Iter() {
		queries = append(queries, item.QueryDebugger)
	}

	storage := frame.Storage
	frame.Commands.Defer(func() {
		for _, viewer := range viewers {
			if clicked := viewer.Render(storage); clicked != nil {
				for _, browser := range browsers {
					browser.FilterArchetype(clicked)
				}
			}
		}

		var selected ecs.EntityId
		for _, browser := range browsers {
			browser.Render(storage)
			selected = browser.Selected()
		}
		for _, inspector := range inspectors {
			inspector.Render(storage, selected)
		}
		for _, query := range queries {
			query.Render(storage)
		}
	})
}
