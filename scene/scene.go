package scene

import (
	"fmt"
)

// Scene owns the material and object registries and projects them into
// the flat record arrays the kernels consume. Mutation is not
// goroutine-safe; renderers work from snapshots instead.
type Scene struct {
	materials []Material
	objects   []*Object

	nextID int
	gen    uint64

	packedGen uint64
	snap      *Snapshot
}

func NewScene() *Scene {
	return &Scene{}
}

// AddMaterial appends m and returns its index. Materials are never
// removed or reordered, so indices stay valid for the scene's lifetime.
func (s *Scene) AddMaterial(m Material) int {
	s.materials = append(s.materials, m)
	s.gen++
	return len(s.materials) - 1
}

// AddObject validates the material reference, assigns the next ID and
// appends. A bad index is rejected rather than clamped so the mistake
// surfaces here and not as a wrong color on screen.
func (s *Scene) AddObject(o *Object) (int, error) {
	if o.Material < 0 || o.Material >= len(s.materials) {
		return 0, fmt.Errorf("scene: object references material %d but scene has %d", o.Material, len(s.materials))
	}
	o.id = s.nextID
	s.nextID++
	s.objects = append(s.objects, o)
	s.gen++
	return o.id, nil
}

// MustAddObject is AddObject for hand-built scenes where a bad material
// index is a programming error.
func (s *Scene) MustAddObject(o *Object) int {
	id, err := s.AddObject(o)
	if err != nil {
		panic(err)
	}
	return id
}

// RemoveObject tombstones the object with the given id. The slot is
// retired, never reused, so the ids of other objects stay valid.
func (s *Scene) RemoveObject(id int) bool {
	for _, o := range s.objects {
		if o.id == id && !o.dead {
			o.dead = true
			s.gen++
			return true
		}
	}
	return false
}

// SetTransform replaces the placement of a live object.
func (s *Scene) SetTransform(id int, tr Transform) bool {
	for _, o := range s.objects {
		if o.id == id && !o.dead {
			o.Transform = tr
			s.gen++
			return true
		}
	}
	return false
}

func (s *Scene) MaterialCount() int {
	return len(s.materials)
}

// ObjectCount counts live objects only.
func (s *Scene) ObjectCount() int {
	n := 0
	for _, o := range s.objects {
		if !o.dead {
			n++
		}
	}
	return n
}

// BuildDeviceArrays projects live objects and all materials into record
// slices, in insertion order. It is pure: the same scene state always
// produces the same records.
func (s *Scene) BuildDeviceArrays() ([]ObjectRecord, []MaterialRecord) {
	objs := make([]ObjectRecord, 0, len(s.objects))
	for _, o := range s.objects {
		if o.dead {
			continue
		}
		objs = append(objs, o.record())
	}
	mats := make([]MaterialRecord, 0, len(s.materials))
	for _, m := range s.materials {
		mats = append(mats, m.record())
	}
	return objs, mats
}

// Snapshot packs the device arrays, rebuilding only if the scene changed
// since the last call. The returned snapshot is immutable and safe to
// hand to other goroutines; Revision lets uploaders skip buffer writes
// for frames where nothing moved.
func (s *Scene) Snapshot() *Snapshot {
	if s.snap != nil && s.packedGen == s.gen {
		return s.snap
	}
	objs, mats := s.BuildDeviceArrays()
	rev := uint64(1)
	if s.snap != nil {
		rev = s.snap.Revision + 1
	}
	s.snap = &Snapshot{
		Objects:      objs,
		Materials:    mats,
		ObjectData:   PackObjectRecords(objs),
		MaterialData: PackMaterialRecords(mats),
		Revision:     rev,
	}
	s.packedGen = s.gen
	return s.snap
}

// Snapshot is a complete, immutable projection of a scene: the typed
// records for CPU traversal and their packed bytes for GPU upload.
type Snapshot struct {
	Objects   []ObjectRecord
	Materials []MaterialRecord

	ObjectData   []byte
	MaterialData []byte

	Revision uint64
}
