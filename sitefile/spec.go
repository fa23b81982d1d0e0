// Package sitefile reads and writes the YAML description of a site and
// turns it into (and back out of) an ECS world.
package sitefile

import (
	"fmt"
	"os"

	"github.com/milk9111/siteeditor/site"
	"gopkg.in/yaml.v3"
)

// SiteSpec is the on-disk form of one site. Ids are file-local and only used
// to cross-reference entries.
type SiteSpec struct {
	Name    string       `yaml:"name"`
	Levels  []LevelSpec  `yaml:"levels"`
	Anchors []AnchorSpec `yaml:"anchors"`
	Lifts   []LiftSpec   `yaml:"lifts"`
}

type LevelSpec struct {
	ID        uint32  `yaml:"id"`
	Name      string  `yaml:"name"`
	Elevation float64 `yaml:"elevation"`
}

// AnchorSpec is a free anchor. Level is the id of the owning level, or 0 for
// anchors owned by the site. A non-nil Z makes the anchor a 3D pose.
type AnchorSpec struct {
	ID    uint32   `yaml:"id"`
	Level uint32   `yaml:"level,omitempty"`
	X     float64  `yaml:"x"`
	Y     float64  `yaml:"y"`
	Z     *float64 `yaml:"z,omitempty"`
}

type LiftSpec struct {
	ID               uint32    `yaml:"id"`
	Name             string    `yaml:"name"`
	ReferenceAnchors []uint32  `yaml:"reference_anchors,flow"`
	Cabin            CabinSpec `yaml:"cabin"`
}

type CabinSpec struct {
	Width         float64             `yaml:"width"`
	Depth         float64             `yaml:"depth"`
	WallThickness *float64            `yaml:"wall_thickness,omitempty"`
	Gap           *float64            `yaml:"gap,omitempty"`
	Shift         float64             `yaml:"shift,omitempty"`
	Doors         map[string]DoorSpec `yaml:"doors,omitempty"`
}

// DoorSpec places a door on a cabin face. Visits lists level ids.
type DoorSpec struct {
	Width   float64  `yaml:"width"`
	Shifted float64  `yaml:"shifted,omitempty"`
	Kind    string   `yaml:"kind,omitempty"`
	Ratio   float64  `yaml:"left_right_ratio,omitempty"`
	Visits  []uint32 `yaml:"visits,flow"`
}

func Parse(data []byte) (*SiteSpec, error) {
	var spec SiteSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("sitefile: unmarshal: %w", err)
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadSpec reads name from disk, falling back to the embedded sample sites.
func LoadSpec(name string) (*SiteSpec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("sitefile: load %s: %w", name, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return spec, nil
}

func (s *SiteSpec) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Save writes the spec to path.
func (s *SiteSpec) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("sitefile: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("sitefile: write %s: %w", path, err)
	}
	return nil
}

func (s *SiteSpec) validate() error {
	levels := make(map[uint32]struct{}, len(s.Levels))
	for _, l := range s.Levels {
		if l.ID == 0 {
			return fmt.Errorf("sitefile: level %q: %w", l.Name, ErrZeroID)
		}
		if _, dup := levels[l.ID]; dup {
			return fmt.Errorf("sitefile: level id %d: %w", l.ID, ErrDuplicateID)
		}
		levels[l.ID] = struct{}{}
	}

	anchors := make(map[uint32]struct{}, len(s.Anchors))
	for _, a := range s.Anchors {
		if a.ID == 0 {
			return fmt.Errorf("sitefile: anchor at (%g, %g): %w", a.X, a.Y, ErrZeroID)
		}
		if _, dup := anchors[a.ID]; dup {
			return fmt.Errorf("sitefile: anchor id %d: %w", a.ID, ErrDuplicateID)
		}
		if _, ok := levels[a.Level]; a.Level != 0 && !ok {
			return fmt.Errorf("sitefile: anchor %d level %d: %w", a.ID, a.Level, ErrUnknownID)
		}
		anchors[a.ID] = struct{}{}
	}

	for _, l := range s.Lifts {
		if len(l.ReferenceAnchors) != 2 {
			return fmt.Errorf("sitefile: lift %q needs two reference anchors, got %d", l.Name, len(l.ReferenceAnchors))
		}
		for face, d := range l.Cabin.Doors {
			if _, err := site.ParseRectFace(face); err != nil {
				return fmt.Errorf("sitefile: lift %q: %w", l.Name, err)
			}
			if _, err := site.ParseDoorKind(d.Kind); err != nil {
				return fmt.Errorf("sitefile: lift %q %s door: %w", l.Name, face, err)
			}
		}
		for _, ref := range l.ReferenceAnchors {
			if _, ok := anchors[ref]; !ok {
				return fmt.Errorf("sitefile: lift %q anchor %d: %w", l.Name, ref, ErrUnknownID)
			}
		}
		for face, d := range l.Cabin.Doors {
			if len(d.Visits) == 0 {
				return fmt.Errorf("sitefile: lift %q %s door: %w", l.Name, face, ErrEmptyVisits)
			}
			for _, v := range d.Visits {
				if _, ok := levels[v]; !ok {
					return fmt.Errorf("sitefile: lift %q %s door level %d: %w", l.Name, face, v, ErrUnknownID)
				}
			}
		}
	}
	return nil
}
