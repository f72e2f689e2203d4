package shroud

import (
	"bytes"
	"reflect"
	"testing"
	"time"
	"unsafe"
)

type shapeLevel int

type shapeName string

type shapeStruct struct{ A int }

func TestShapeOf(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want Shape
	}{
		{"string", reflect.TypeOf(""), ShapeScalar},
		{"int", reflect.TypeOf(0), ShapeScalar},
		{"bytes", reflect.TypeOf([]byte{}), ShapeScalar},
		{"named string", reflect.TypeOf(shapeName("")), ShapeScalar},
		{"named int", reflect.TypeOf(shapeLevel(0)), ShapeFixedValue},
		{"duration", reflect.TypeOf(time.Second), ShapeFixedValue},
		{"array", reflect.TypeOf([2]int{}), ShapeArray},
		{"slice", reflect.TypeOf([]int{}), ShapeSequence},
		{"map", reflect.TypeOf(map[string]int{}), ShapeMapping},
		{"struct", reflect.TypeOf(shapeStruct{}), ShapeComposite},
		{"pointer", reflect.TypeOf(&shapeStruct{}), ShapeIndirect},
		{"interface", reflect.TypeOf((*any)(nil)).Elem(), ShapeInterface},
		{"chan", reflect.TypeOf(make(chan int)), ShapeOpaque},
		{"func", reflect.TypeOf(func() {}), ShapeOpaque},
		{"unsafe", reflect.TypeOf(unsafe.Pointer(nil)), ShapeOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shapeOf(tt.typ); got != tt.want {
				t.Errorf("shapeOf(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestIsGeneral(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"string", reflect.TypeOf(""), true},
		{"fixed value", reflect.TypeOf(shapeLevel(0)), true},
		{"func", reflect.TypeOf(func() {}), true},
		{"time", reflect.TypeOf(time.Time{}), true},
		{"stdlib pointer", reflect.TypeOf(&bytes.Buffer{}), true},
		{"user struct", reflect.TypeOf(shapeStruct{}), false},
		{"user pointer", reflect.TypeOf(&shapeStruct{}), false},
		{"unnamed slice", reflect.TypeOf([]shapeStruct{}), false},
		{"anonymous struct", reflect.TypeOf(struct{ A string }{}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isGeneral(tt.typ); got != tt.want {
				t.Errorf("isGeneral(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestIsStdlib(t *testing.T) {
	tests := []struct {
		pkg  string
		want bool
	}{
		{"time", true},
		{"encoding/json", true},
		{"github.com/zoobzio/shroud", false},
		{"example.com/x", false},
		{"net/http", true},
		{"crypto/sha256", true},
		{"myapp", false},
		{"myapp/models", false},
		{"company/internal/billing", false},
		{"main", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isStdlib(tt.pkg); got != tt.want {
			t.Errorf("isStdlib(%q) = %v, want %v", tt.pkg, got, tt.want)
		}
	}
}

func TestShape_String(t *testing.T) {
	if ShapeFixedValue.String() != "fixed-value" {
		t.Errorf("String() = %q", ShapeFixedValue.String())
	}
	if Shape(99).String() != "unknown" {
		t.Errorf("String() = %q", Shape(99).String())
	}
}

func TestVisitedSet(t *testing.T) {
	type outer struct {
		Inner shapeStruct
	}
	v := reflect.ValueOf(&outer{}).Elem()
	s := make(visitedSet)

	if !s.add(v) {
		t.Error("first add should report new")
	}
	if s.add(v) {
		t.Error("second add should report seen")
	}
	if !s.add(v.Field(0)) {
		t.Error("first field shares the address but has a different type")
	}
}

func TestVisitedSet_AddRef(t *testing.T) {
	s := make(visitedSet)
	m := map[string]any{}
	backing := []any{1, 2, 3}

	if !s.addRef(reflect.ValueOf(m)) || s.addRef(reflect.ValueOf(m)) {
		t.Error("map should be new once")
	}
	if !s.addRef(reflect.ValueOf(backing)) || s.addRef(reflect.ValueOf(backing)) {
		t.Error("slice should be new once")
	}
	if !s.addRef(reflect.ValueOf(backing[:2])) {
		t.Error("a shorter window of the same array is a distinct identity")
	}
	if s.addRef(reflect.ValueOf([]any{})) {
		t.Error("empty slices are never new")
	}
	p := &backing
	if !s.addRef(reflect.ValueOf(p)) || s.addRef(reflect.ValueOf(p)) {
		t.Error("pointer should be new once")
	}
}
