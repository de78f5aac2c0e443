package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/fresnel3d/fresnel/scene"
	"github.com/fresnel3d/fresnel/trace"
)

func f32At(t *testing.T, buf []byte, off int) float32 {
	t.Helper()
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestPackFrameUniformLayout(t *testing.T) {
	frame := trace.Frame{
		CameraPos: mgl32.Vec3{1.5, -2.25, 3.75},
		InvView:   mgl32.Translate3D(2, 3, 4),
		Time:      12.5,
		Aspect:    16.0 / 9.0,
	}

	buf := PackFrameUniform(frame)
	if len(buf) != scene.FrameUniformStride {
		t.Fatalf("uniform is %d bytes, want %d", len(buf), scene.FrameUniformStride)
	}

	// mgl32 matrices are column major, so the translation of Translate3D
	// sits in elements 12..14.
	if got := f32At(t, buf, 0); got != 1 {
		t.Errorf("inv_view[0] = %v, want 1", got)
	}
	if got := f32At(t, buf, 12*4); got != 2 {
		t.Errorf("inv_view tx = %v, want 2", got)
	}
	if got := f32At(t, buf, 13*4); got != 3 {
		t.Errorf("inv_view ty = %v, want 3", got)
	}
	if got := f32At(t, buf, 14*4); got != 4 {
		t.Errorf("inv_view tz = %v, want 4", got)
	}

	if got := f32At(t, buf, 64); got != 1.5 {
		t.Errorf("cam_pos.x = %v, want 1.5", got)
	}
	if got := f32At(t, buf, 68); got != -2.25 {
		t.Errorf("cam_pos.y = %v, want -2.25", got)
	}
	if got := f32At(t, buf, 72); got != 3.75 {
		t.Errorf("cam_pos.z = %v, want 3.75", got)
	}
	if got := binary.LittleEndian.Uint32(buf[76:]); got != 0 {
		t.Errorf("cam_pos.w bits = %#x, want 0", got)
	}

	if got := f32At(t, buf, 80); got != 12.5 {
		t.Errorf("time = %v, want 12.5", got)
	}
	if got := f32At(t, buf, 84); got != float32(16.0/9.0) {
		t.Errorf("aspect = %v, want %v", got, float32(16.0/9.0))
	}

	if binary.LittleEndian.Uint32(buf[88:]) != 0 || binary.LittleEndian.Uint32(buf[92:]) != 0 {
		t.Error("uniform padding is not zero")
	}
}

func TestDeviceArraysEmptyScenePlaceholder(t *testing.T) {
	objData, matData := deviceArrays(&scene.Snapshot{})

	if len(objData) != scene.ObjectRecordStride {
		t.Fatalf("placeholder objects are %d bytes, want %d", len(objData), scene.ObjectRecordStride)
	}
	if len(matData) != scene.MaterialRecordStride {
		t.Fatalf("placeholder materials are %d bytes, want %d", len(matData), scene.MaterialRecordStride)
	}

	recs, err := scene.DecodeObjectRecords(objData)
	if err != nil {
		t.Fatal(err)
	}
	if recs[0].Kind != scene.BoxPrimitive {
		t.Errorf("placeholder kind = %v, want the reserved box kind", recs[0].Kind)
	}
}

func TestDeviceArraysPassthrough(t *testing.T) {
	sc := scene.ShowcaseScene()
	snap := sc.Snapshot()

	objData, matData := deviceArrays(snap)
	if len(objData) != sc.ObjectCount()*scene.ObjectRecordStride {
		t.Errorf("object bytes = %d, want %d", len(objData), sc.ObjectCount()*scene.ObjectRecordStride)
	}
	if len(matData) != sc.MaterialCount()*scene.MaterialRecordStride {
		t.Errorf("material bytes = %d, want %d", len(matData), sc.MaterialCount()*scene.MaterialRecordStride)
	}
	if &objData[0] != &snap.ObjectData[0] {
		t.Error("non-empty object data should be bound as is")
	}
}
