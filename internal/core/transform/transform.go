// Package transform projects domain models into versioned response payloads.
//
// A Transformer starts from a base extraction and folds the result through an ordered list of
// steps. Each step is tagged with the API version that introduced it and runs only when the
// requested version is the same or newer. Steps run in the order they were declared, not sorted
// by version; keeping that list append-only is what makes newer versions a superset of older ones.
package transform

import (
	"reflect"

	"apisupport/internal/core/versioning"
)

// Data is the accumulated payload a step receives and returns
type Data = map[string]any

// Step is one version gated mutation of the payload
type Step[M any] interface {
	Transform(data Data, model M) Data
	APIVersion() versioning.APIVersion
}

// StepFunc adapts a function and its version tag to a Step
type StepFunc[M any] struct {
	Version versioning.APIVersion
	Fn      func(Data, M) Data
}

// Transform implements Step
func (s StepFunc[M]) Transform(data Data, model M) Data { return s.Fn(data, model) }

// APIVersion implements Step
func (s StepFunc[M]) APIVersion() versioning.APIVersion { return s.Version }

// NewStep tags fn with the dd-mm-yyyy version that introduced it; it panics on a bad version
func NewStep[M any](version string, fn func(Data, M) Data) StepFunc[M] {
	return StepFunc[M]{Version: versioning.MustParse(version), Fn: fn}
}

// Transformer is immutable after construction and safe for concurrent use
type Transformer[M any] struct {
	base  func(M) Data
	steps []Step[M]
}

// New builds a transformer from a base extraction and an ordered step list
func New[M any](base func(M) Data, steps ...Step[M]) *Transformer[M] {
	return &Transformer[M]{base: base, steps: append([]Step[M](nil), steps...)}
}

// With returns a copy with extra steps appended after the existing ones
func (t *Transformer[M]) With(steps ...Step[M]) *Transformer[M] {
	out := make([]Step[M], 0, len(t.steps)+len(steps))
	out = append(out, t.steps...)
	out = append(out, steps...)
	return &Transformer[M]{base: t.base, steps: out}
}

// Steps returns a copy of the declared steps
func (t *Transformer[M]) Steps() []Step[M] {
	return append([]Step[M](nil), t.steps...)
}

// ShouldRun reports whether step applies to a request for target
func ShouldRun[M any](step Step[M], target versioning.APIVersion) bool {
	return step.APIVersion().EarlierThanOrEqualTo(target)
}

// TransformModel returns nil for an absent model, otherwise the base data folded through
// every step whose version is at or before target
func (t *Transformer[M]) TransformModel(model M, target versioning.APIVersion) Data {
	if absent(model) {
		return nil
	}
	data := t.base(model)
	for _, s := range t.steps {
		if ShouldRun(s, target) {
			data = s.Transform(data, model)
		}
	}
	return data
}

// TransformCollection maps TransformModel over models, keeping order and length
// Absent entries produce nil entries; an empty input yields an empty, non-nil slice
func (t *Transformer[M]) TransformCollection(models []M, target versioning.APIVersion) []Data {
	out := make([]Data, 0, len(models))
	for _, m := range models {
		out = append(out, t.TransformModel(m, target))
	}
	return out
}

// absent reports nil interfaces and nil pointers, maps, slices, funcs and chans
func absent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
