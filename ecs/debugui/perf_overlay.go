package debugui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spaceship/ecs"
	"golang.org/x/image/colornames"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type PerfEntry int

const (
	EntryFPSWorst PerfEntry = iota
	EntryFPS
	EntryFrameTime
	EntryEntityCount
)

func (e PerfEntry) Label() string {
	switch e {
	case EntryFPSWorst:
		return "FPS (worst)"
	case EntryFPS:
		return "FPS"
	case EntryFrameTime:
		return "Frame Time"
	case EntryEntityCount:
		return "Entities"
	}
	return fmt.Sprintf("PerfEntry(%d)", int(e))
}

// PerfOverlay is a component describing an on-screen performance readout.
// Spawn one entity with it; the active backend draws it every frame.
type PerfOverlay struct {
	DisplayLabels    bool
	LayoutHorizontal bool
	Entries          []PerfEntry
}

// PerfRow is one formatted overlay entry.
type PerfRow struct {
	Entry PerfEntry
	Text  string
	Color color.RGBA
}

var printer = message.NewPrinter(language.English)

// Rows formats every entry against the current diagnostics. stats may be nil,
// in which case entity counts read as zero.
func (p *PerfOverlay) Rows(diag *FrameDiagnostics, stats *ecs.StorageStats) []PerfRow {
	rows := make([]PerfRow, 0, len(p.Entries))
	for _, entry := range p.Entries {
		var value string
		clr := colornames.White

		switch entry {
		case EntryFPSWorst:
			fps := diag.WorstFPS()
			value = printer.Sprintf("%.0f", fps)
			clr = fpsColor(fps)
		case EntryFPS:
			fps := diag.FPS()
			value = printer.Sprintf("%.0f", fps)
			clr = fpsColor(fps)
		case EntryFrameTime:
			value = printer.Sprintf("%.2f ms", float64(diag.FrameTime().Microseconds())/1000)
		case EntryEntityCount:
			count := 0
			if stats != nil {
				count = stats.TotalEntityCount
			}
			value = printer.Sprintf("%d", count)
		}

		if p.DisplayLabels {
			value = entry.Label() + ": " + value
		}
		rows = append(rows, PerfRow{Entry: entry, Text: value, Color: clr})
	}
	return rows
}

// Lines lays the rows out as text, one row per line or all on one line.
func (p *PerfOverlay) Lines(diag *FrameDiagnostics, stats *ecs.StorageStats) []string {
	rows := p.Rows(diag, stats)
	texts := make([]string, len(rows))
	for i, row := range rows {
		texts[i] = row.Text
	}
	if p.LayoutHorizontal && len(texts) > 0 {
		return []string{strings.Join(texts, "  |  ")}
	}
	return texts
}

func fpsColor(fps float64) color.RGBA {
	switch {
	case fps >= 55:
		return colornames.Limegreen
	case fps >= 30:
		return colornames.Gold
	default:
		return colornames.Red
	}
}

func vec4(c color.RGBA) imgui.Vec4 {
	return imgui.NewVec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
}

const overlayFlags = imgui.WindowFlagsNoDecoration | imgui.WindowFlagsAlwaysAutoResize |
	imgui.WindowFlagsNoFocusOnAppearing | imgui.WindowFlagsNoNav | imgui.WindowFlagsNoSavedSettings

// RenderImgui draws the overlay as a small undecorated Dear ImGui window in
// the top-left corner, followed by a frame time plot.
func (p *PerfOverlay) RenderImgui(diag *FrameDiagnostics, stats *ecs.StorageStats) {
	imgui.SetNextWindowPos(imgui.NewVec2(8, 8))
	imgui.SetNextWindowBgAlpha(0.6)
	if !imgui.BeginV("Performance", nil, overlayFlags) {
		imgui.End()
		return
	}

	for i, row := range p.Rows(diag, stats) {
		if p.LayoutHorizontal && i > 0 {
			imgui.SameLine()
		}
		imgui.TextColored(vec4(row.Color), row.Text)
	}

	if samples := diag.Samples(); len(samples) > 0 {
		imgui.Separator()
		imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
	}

	imgui.End()
}

// PerfOverlaySystem queues every PerfOverlay entity for Dear ImGui rendering.
// Use it together with ImguiSystem; the text backend draws overlays itself.
type PerfOverlaySystem struct {
	Overlays    ecs.Query[struct{ *PerfOverlay }]
	Diagnostics ecs.Singleton[FrameDiagnostics]
}

func (s *PerfOverlaySystem) Execute(frame *ecs.UpdateFrame) {
	diag := s.Diagnostics.Get()
	if diag == nil {
		return
	}

	stats := frame.Storage.CollectStats()
	for item := range s.Overlays.Iter() {
		overlay := item.PerfOverlay
		frame.Commands.Defer(func() {
			overlay.RenderImgui(diag, stats)
		})
	}
}

// SystemTimingsWindow returns an ImguiItem listing per-system timings.
func SystemTimingsWindow(stats func() *ecs.SchedulerStats) ImguiItem {
	return ImguiItem{Render: func() {
		if !imgui.BeginV("System Timings", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemTimings", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}
			imgui.EndTable()
		}
		imgui.End()
	}}
}
