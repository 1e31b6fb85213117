// Package project holds the ordered list of loaded models and their
// placement on the bed. All methods are safe for concurrent use.
package project

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/chazu/printcost/pkg/estimate"
	"github.com/chazu/printcost/pkg/mesh"
)

// DefaultColor is the display color given to new models.
const DefaultColor = "#00a8e8"

// duplicateOffset is how far a copy is shifted on X and Z.
const duplicateOffset = 20

var (
	ErrNotFound = errors.New("project: model not found")
	ErrLocked   = errors.New("project: model is locked")
)

// Axis names a rotation axis.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// Model is one placed mesh. Rotation is Euler degrees; Scale multiplies
// the mesh's own coordinates.
type Model struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	FileName string     `json:"fileName"`
	Mesh     *mesh.Mesh `json:"-"`
	Position mesh.Vec3  `json:"position"`
	Rotation mesh.Vec3  `json:"rotation"`
	Scale    mesh.Vec3  `json:"scale"`
	Visible  bool       `json:"visible"`
	Locked   bool       `json:"locked"`
	Color    string     `json:"color"`
}

// Project is the working set of models.
type Project struct {
	mu       sync.RWMutex
	models   []*Model
	selected string
}

func New() *Project {
	return &Project{}
}

// Add appends a model for m and selects it. An empty name becomes
// "Model N" where N is the new list length.
func (p *Project) Add(name, fileName string, m *mesh.Mesh) Model {
	p.mu.Lock()
	defer p.mu.Unlock()
	if name == "" {
		name = fmt.Sprintf("Model %d", len(p.models)+1)
	}
	md := &Model{
		ID:       uuid.NewString(),
		Name:     name,
		FileName: fileName,
		Mesh:     m.Clone(),
		Scale:    mesh.Identity,
		Visible:  true,
		Color:    DefaultColor,
	}
	p.models = append(p.models, md)
	p.selected = md.ID
	return *md
}

// Models returns a snapshot of the list in insertion order.
func (p *Project) Models() []Model {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Model, len(p.models))
	for i, m := range p.models {
		out[i] = *m
	}
	return out
}

func (p *Project) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.models)
}

func (p *Project) Get(id string) (Model, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i := p.index(id)
	if i < 0 {
		return Model{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *p.models[i], nil
}

func (p *Project) index(id string) int {
	for i, m := range p.models {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Select marks id as the current model. An empty id clears the selection.
func (p *Project) Select(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if id != "" && p.index(id) < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	p.selected = id
	return nil
}

// Selected returns the current model, if any.
func (p *Project) Selected() (Model, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i := p.index(p.selected)
	if i < 0 {
		return Model{}, false
	}
	return *p.models[i], true
}

// update applies fn to the model with id under the write lock.
func (p *Project) update(id string, fn func(m *Model) error) (Model, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.index(id)
	if i < 0 {
		return Model{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := fn(p.models[i]); err != nil {
		return Model{}, err
	}
	return *p.models[i], nil
}

// transform is update for placement changes, which locked models refuse.
func (p *Project) transform(id string, fn func(m *Model)) (Model, error) {
	return p.update(id, func(m *Model) error {
		if m.Locked {
			return fmt.Errorf("%w: %s", ErrLocked, m.Name)
		}
		fn(m)
		return nil
	})
}

// Duplicate appends a copy with its own mesh, named "<name> (copy)" and
// shifted 20 mm on X and Z.
func (p *Project) Duplicate(id string) (Model, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.index(id)
	if i < 0 {
		return Model{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cp := *p.models[i]
	cp.ID = uuid.NewString()
	cp.Name = cp.Name + " (copy)"
	cp.Mesh = cp.Mesh.Clone()
	cp.Position.X += duplicateOffset
	cp.Position.Z += duplicateOffset
	p.models = append(p.models, &cp)
	return cp, nil
}

// Remove deletes id, clearing the selection if it pointed there.
func (p *Project) Remove(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	p.models = append(p.models[:i], p.models[i+1:]...)
	if p.selected == id {
		p.selected = ""
	}
	return nil
}

func (p *Project) Rename(id, name string) (Model, error) {
	return p.update(id, func(m *Model) error {
		m.Name = name
		return nil
	})
}

func (p *Project) SetPosition(id string, v mesh.Vec3) (Model, error) {
	return p.transform(id, func(m *Model) { m.Position = v })
}

func (p *Project) SetRotation(id string, degrees mesh.Vec3) (Model, error) {
	return p.transform(id, func(m *Model) { m.Rotation = degrees })
}

// SetScale sets a per-axis scale. Every component must be positive.
func (p *Project) SetScale(id string, s mesh.Vec3) (Model, error) {
	if s.X <= 0 || s.Y <= 0 || s.Z <= 0 {
		return Model{}, fmt.Errorf("project: scale must be positive, got %+v", s)
	}
	return p.transform(id, func(m *Model) { m.Scale = s })
}

func (p *Project) SetUniformScale(id string, s float64) (Model, error) {
	return p.SetScale(id, mesh.Uniform(s))
}

// Center moves the model to the bed origin on X and Z, keeping Y.
func (p *Project) Center(id string) (Model, error) {
	return p.transform(id, func(m *Model) {
		m.Position.X, m.Position.Z = estimate.CenterOffset()
	})
}

// PlaceOnBed lifts or lowers the model so its lowest scaled vertex
// touches Y=0.
func (p *Project) PlaceOnBed(id string) (Model, error) {
	return p.transform(id, func(m *Model) {
		m.Position.Y = estimate.RestOffset(m.Mesh, m.Scale)
	})
}

// LayFlat rotates the model so its largest bounding face is down.
func (p *Project) LayFlat(id string) (Model, error) {
	return p.transform(id, func(m *Model) {
		m.Rotation = estimate.FaceToRotation(mesh.DominantFace(m.Mesh))
	})
}

// Rotate90 adds a quarter turn about axis, wrapping at 360.
func (p *Project) Rotate90(id string, axis Axis) (Model, error) {
	if axis != AxisX && axis != AxisY && axis != AxisZ {
		return Model{}, fmt.Errorf("project: unknown axis %q", axis)
	}
	return p.transform(id, func(m *Model) {
		r := &m.Rotation.Z
		switch axis {
		case AxisX:
			r = &m.Rotation.X
		case AxisY:
			r = &m.Rotation.Y
		}
		*r = math.Mod(*r+90, 360)
	})
}

// ResetTransform restores the origin position, no rotation and unit scale.
func (p *Project) ResetTransform(id string) (Model, error) {
	return p.transform(id, func(m *Model) {
		m.Position = mesh.Vec3{}
		m.Rotation = mesh.Vec3{}
		m.Scale = mesh.Identity
	})
}

func (p *Project) ToggleVisible(id string) (Model, error) {
	return p.update(id, func(m *Model) error {
		m.Visible = !m.Visible
		return nil
	})
}

func (p *Project) ToggleLock(id string) (Model, error) {
	return p.update(id, func(m *Model) error {
		m.Locked = !m.Locked
		return nil
	})
}

// Clear removes every model.
func (p *Project) Clear() {
	p.mu.Lock()
	p.models = nil
	p.selected = ""
	p.mu.Unlock()
}
