package sheet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mind-engage/semester-gpa/internal/grading"
	"github.com/mind-engage/semester-gpa/internal/logging"
)

var (
	ErrNoModule    = errors.New("module not found")
	ErrNotEditable = errors.New("field is not editable")
)

// Store is what the front end drives: the five engine operations applied to
// the one module list it owns.
type Store interface {
	Modules() grading.List
	Report() grading.Report
	Add(ctx context.Context) grading.Report
	Set(ctx context.Context, index int, field, raw string) (grading.Report, error)
	Clear(ctx context.Context, index int) (grading.Report, error)
}

// Sheet holds the current module list. Edits are applied one at a time;
// each replaces the list with the value returned by the engine.
type Sheet struct {
	mu      sync.Mutex
	modules grading.List
}

var _ Store = (*Sheet)(nil)

// New returns a sheet seeded with initial, or with a single blank module
// when initial is empty.
func New(initial grading.List) *Sheet {
	if len(initial) == 0 {
		initial = grading.NewList()
	}
	return &Sheet{modules: initial}
}

func (s *Sheet) Modules() grading.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(grading.List(nil), s.modules...)
}

func (s *Sheet) Report() grading.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return grading.Evaluate(s.modules)
}

func (s *Sheet) Add(ctx context.Context) grading.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules = grading.AddModule(s.modules)
	logging.FromContext(ctx).Debug("module added", "count", len(s.modules))
	return grading.Evaluate(s.modules)
}

func (s *Sheet) Set(ctx context.Context, index int, field, raw string) (grading.Report, error) {
	f, ok := grading.ParseField(field)
	if !ok {
		return grading.Report{}, fmt.Errorf("%w: %q", ErrNotEditable, field)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.modules.Has(index) {
		return grading.Report{}, fmt.Errorf("%w: index %d", ErrNoModule, index)
	}
	s.modules = grading.Normalize(s.modules, index, f, raw)
	logging.FromContext(ctx).Debug("field updated",
		"index", index, "field", field, "raw", raw, "module", s.modules[index])
	return grading.Evaluate(s.modules), nil
}

func (s *Sheet) Clear(ctx context.Context, index int) (grading.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.modules.Has(index) {
		return grading.Report{}, fmt.Errorf("%w: index %d", ErrNoModule, index)
	}
	s.modules = grading.ClearModule(s.modules, index)
	logging.FromContext(ctx).Debug("module cleared", "index", index)
	return grading.Evaluate(s.modules), nil
}
