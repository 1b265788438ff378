package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spaceship/ecs"
)

// ComponentInspector is a component that shows and edits the fields of the
// entity selected in the EntityBrowser.
type ComponentInspector struct {
	selected ecs.EntityId
}

func NewComponentInspector() ComponentInspector {
	return ComponentInspector{}
}

// InspectedComponent is one component of an inspected entity. Value is
// addressable, so edits land in storage.
type InspectedComponent struct {
	Type  reflect.Type
	Value reflect.Value
}

// Inspect returns id's components in archetype order, or nil when id is
// not alive.
func Inspect(storage *ecs.Storage, id ecs.EntityId) []InspectedComponent {
	if !storage.Alive(id) {
		return nil
	}
	archetype := storage.GetArchetypeById(id.ArchetypeId())

	out := make([]InspectedComponent, 0, len(archetype.Types()))
	for _, t := range archetype.Types() {
		component := storage.GetComponent(id, t)
		if component == nil {
			continue
		}
		out = append(out, InspectedComponent{Type: t, Value: reflect.ValueOf(component).Elem()})
	}
	return out
}

// setField stores value into field, converting between the widget's value
// type and the field's kind. It reports whether the field changed.
func setField(field reflect.Value, value any) bool {
	if !field.CanSet() {
		return false
	}

	v := reflect.ValueOf(value)
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !v.CanInt() || field.OverflowInt(v.Int()) {
			return false
		}
		field.SetInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if !v.CanInt() || v.Int() < 0 || field.OverflowUint(uint64(v.Int())) {
			return false
		}
		field.SetUint(uint64(v.Int()))
	case reflect.Float32, reflect.Float64:
		if !v.CanFloat() {
			return false
		}
		field.SetFloat(v.Float())
	case reflect.Bool:
		if v.Kind() != reflect.Bool {
			return false
		}
		field.SetBool(v.Bool())
	case reflect.String:
		if v.Kind() != reflect.String {
			return false
		}
		field.SetString(v.String())
	default:
		return false
	}
	return true
}

func (ci *ComponentInspector) Render(storage *ecs.Storage, selected ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	ci.selected = selected

	if selected == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	components := Inspect(storage, selected)
	if components == nil {
		imgui.Text(fmt.Sprintf("Entity %s was deleted", selected))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", selected))
	imgui.Text(fmt.Sprintf("Archetype: 0x%08X", selected.ArchetypeId()))
	imgui.Separator()

	for _, component := range components {
		if imgui.TreeNodeStr(component.Type.String()) {
			ci.renderStruct(component.Value)
			imgui.TreePop()
		}
	}
	imgui.End()
}

func (ci *ComponentInspector) renderStruct(val reflect.Value) {
	for _, field := range reflectionCache.Fields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field.Name, field.Name, fieldVal)
	}
}

// id keeps widget ids unique across nested fields with the same name.
func (ci *ComponentInspector) renderField(name, id string, val reflect.Value) {
	label := "##" + id

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		ci.fieldLabel(name, 150)
		if imgui.InputInt(label, &v) {
			setField(val, v)
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		ci.fieldLabel(name, 150)
		if imgui.InputInt(label, &v) {
			setField(val, v)
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		ci.fieldLabel(name, 150)
		if imgui.InputFloat(label, &v) {
			setField(val, v)
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+label, &v) {
			setField(val, v)
		}

	case reflect.String:
		v := val.String()
		ci.fieldLabel(name, 200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) {
			setField(val, v)
		}

	case reflect.Array:
		// Vectors show one input per element.
		if imgui.TreeNodeStr(fmt.Sprintf("%s [%d]", name, val.Len())) {
			for i := 0; i < val.Len(); i++ {
				ci.renderField(fmt.Sprintf("[%d]", i), fmt.Sprintf("%s.%d", id, i), val.Index(i))
			}
			imgui.TreePop()
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nested := range reflectionCache.Fields(val.Type()) {
				nestedVal := val.Field(nested.Index)
				if nested.IsPointer {
					if nestedVal.IsNil() {
						imgui.Text(fmt.Sprintf("%s: nil", nested.Name))
						continue
					}
					nestedVal = nestedVal.Elem()
				}
				ci.renderField(nested.Name, id+"."+nested.Name, nestedVal)
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Type()))
		}
	}
}

func (ci *ComponentInspector) fieldLabel(name string, width float32) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(width)
}
