package scene

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Byte strides of the packed records, shared verbatim with the WGSL
// structs in shaders/pathtrace.wgsl and with trace's CPU kernel. A
// mismatch here does not error, it renders garbage, so the sizes are
// pinned by tests.
const (
	ObjectRecordStride   = 160
	MaterialRecordStride = 64
	FrameUniformStride   = 96
)

// ObjectRecord is the fixed per-object device layout: two column-major
// matrices, then scalars padded so HalfExtent starts on a 16-byte
// boundary and the stride is a multiple of 16.
type ObjectRecord struct {
	Model    mgl32.Mat4
	InvModel mgl32.Mat4

	Material int32
	Kind     PrimitiveKind
	Radius   float32
	_        float32

	HalfExtent mgl32.Vec3
	_          float32
}

// MaterialRecord is the fixed per-material device layout. Props packs
// (metallic, roughness, ior, unused).
type MaterialRecord struct {
	BaseColor [4]float32
	Props     [4]float32
	Emission  [4]float32
	Kind      int32
	_         [3]int32
}

func (r MaterialRecord) Metallic() float32  { return r.Props[0] }
func (r MaterialRecord) Roughness() float32 { return r.Props[1] }
func (r MaterialRecord) IOR() float32       { return r.Props[2] }

func putFloat32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
}

func putMat4(buf []byte, off int, m mgl32.Mat4) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[off+i*4:], math.Float32bits(v))
	}
}

func getFloat32(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func getMat4(buf []byte, off int) mgl32.Mat4 {
	var m mgl32.Mat4
	for i := range m {
		m[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[off+i*4:]))
	}
	return m
}

// PackObjectRecords lays records out little-endian at ObjectRecordStride.
func PackObjectRecords(recs []ObjectRecord) []byte {
	buf := make([]byte, len(recs)*ObjectRecordStride)
	for i, r := range recs {
		base := i * ObjectRecordStride

		// Offset 0: model matrix, 64: inverse model.
		putMat4(buf, base+0, r.Model)
		putMat4(buf, base+64, r.InvModel)

		// Offset 128: material index, 132: primitive kind.
		binary.LittleEndian.PutUint32(buf[base+128:], uint32(r.Material))
		binary.LittleEndian.PutUint32(buf[base+132:], uint32(r.Kind))

		// Offset 136: radius, 140: pad.
		putFloat32(buf, base+136, r.Radius)
		putFloat32(buf, base+140, 0)

		// Offset 144: half extent, 156: pad.
		putFloat32(buf, base+144, r.HalfExtent.X())
		putFloat32(buf, base+148, r.HalfExtent.Y())
		putFloat32(buf, base+152, r.HalfExtent.Z())
		putFloat32(buf, base+156, 0)
	}
	return buf
}

// PackMaterialRecords lays records out little-endian at MaterialRecordStride.
func PackMaterialRecords(recs []MaterialRecord) []byte {
	buf := make([]byte, len(recs)*MaterialRecordStride)
	for i, r := range recs {
		base := i * MaterialRecordStride

		// Offset 0: base color, 16: props, 32: emission.
		for j := 0; j < 4; j++ {
			putFloat32(buf, base+j*4, r.BaseColor[j])
			putFloat32(buf, base+16+j*4, r.Props[j])
			putFloat32(buf, base+32+j*4, r.Emission[j])
		}

		// Offset 48: material kind, 52..63: pad.
		binary.LittleEndian.PutUint32(buf[base+48:], uint32(r.Kind))
	}
	return buf
}

// DecodeObjectRecords is the inverse of PackObjectRecords. The kernels
// never call it; it exists so tests and debug tooling can check what a
// buffer actually holds.
func DecodeObjectRecords(data []byte) ([]ObjectRecord, error) {
	if len(data)%ObjectRecordStride != 0 {
		return nil, fmt.Errorf("scene: object data is %d bytes, not a multiple of %d", len(data), ObjectRecordStride)
	}
	recs := make([]ObjectRecord, len(data)/ObjectRecordStride)
	for i := range recs {
		base := i * ObjectRecordStride
		recs[i] = ObjectRecord{
			Model:    getMat4(data, base+0),
			InvModel: getMat4(data, base+64),
			Material: int32(binary.LittleEndian.Uint32(data[base+128:])),
			Kind:     PrimitiveKind(binary.LittleEndian.Uint32(data[base+132:])),
			Radius:   getFloat32(data, base+136),
			HalfExtent: mgl32.Vec3{
				getFloat32(data, base+144),
				getFloat32(data, base+148),
				getFloat32(data, base+152),
			},
		}
	}
	return recs, nil
}

// DecodeMaterialRecords is the inverse of PackMaterialRecords.
func DecodeMaterialRecords(data []byte) ([]MaterialRecord, error) {
	if len(data)%MaterialRecordStride != 0 {
		return nil, fmt.Errorf("scene: material data is %d bytes, not a multiple of %d", len(data), MaterialRecordStride)
	}
	recs := make([]MaterialRecord, len(data)/MaterialRecordStride)
	for i := range recs {
		base := i * MaterialRecordStride
		r := MaterialRecord{
			Kind: int32(binary.LittleEndian.Uint32(data[base+48:])),
		}
		for j := 0; j < 4; j++ {
			r.BaseColor[j] = getFloat32(data, base+j*4)
			r.Props[j] = getFloat32(data, base+16+j*4)
			r.Emission[j] = getFloat32(data, base+32+j*4)
		}
		recs[i] = r
	}
	return recs, nil
}
