package gpu

import (
	"encoding/binary"
	"math"

	"github.com/fresnel3d/fresnel/scene"
	"github.com/fresnel3d/fresnel/trace"

	"github.com/cogentcore/webgpu/wgpu"
)

// BufferManager owns the GPU copies of the scene arrays and the frame
// uniform. Storage buffers are sized exactly to their contents: the kernel
// derives the object and material counts from arrayLength, so slack records
// would be traced as garbage geometry.
type BufferManager struct {
	Device *wgpu.Device

	ObjectBuf   *wgpu.Buffer
	MaterialBuf *wgpu.Buffer
	FrameBuf    *wgpu.Buffer

	SceneBindGroup *wgpu.BindGroup

	uploadedRevision uint64
}

func NewBufferManager(device *wgpu.Device) *BufferManager {
	return &BufferManager{Device: device}
}

// ensureBuffer reuploads data, recreating the buffer when the byte size
// changed. Unlike a grow-only pool this also shrinks, so removals keep
// arrayLength in sync. Returns true when the buffer was recreated and any
// bind group referencing it is stale.
func (m *BufferManager) ensureBuffer(name string, buf **wgpu.Buffer, data []byte, usage wgpu.BufferUsage) bool {
	neededSize := uint64(len(data))

	current := *buf
	if current == nil || current.GetSize() != neededSize {
		if current != nil {
			current.Release()
		}

		desc := &wgpu.BufferDescriptor{
			Label:            name,
			Size:             neededSize,
			Usage:            usage | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		}
		newBuf, err := m.Device.CreateBuffer(desc)
		if err != nil {
			panic(err)
		}
		*buf = newBuf

		m.Device.GetQueue().WriteBuffer(*buf, 0, data)
		return true
	}

	m.Device.GetQueue().WriteBuffer(current, 0, data)
	return false
}

// UploadSnapshot pushes the packed scene arrays to the GPU. Snapshots are
// revision gated, so calling this every frame costs nothing while the scene
// is static. Returns true when a storage buffer was recreated and the scene
// bind group must be rebuilt.
func (m *BufferManager) UploadSnapshot(snap *scene.Snapshot) bool {
	if m.ObjectBuf != nil && snap.Revision == m.uploadedRevision {
		return false
	}

	objData, matData := deviceArrays(snap)

	recreated := false
	if m.ensureBuffer("ObjectBuf", &m.ObjectBuf, objData, wgpu.BufferUsageStorage) {
		recreated = true
	}
	if m.ensureBuffer("MaterialBuf", &m.MaterialBuf, matData, wgpu.BufferUsageStorage) {
		recreated = true
	}

	m.uploadedRevision = snap.Revision
	return recreated
}

// deviceArrays returns the byte arrays to bind for a snapshot. Zero sized
// bindings are invalid in wgpu and a zeroed object record would read back
// as a degenerate sphere, so an empty scene binds one placeholder record
// with the reserved box kind, which the kernel skips.
func deviceArrays(snap *scene.Snapshot) (objects, materials []byte) {
	objects = snap.ObjectData
	materials = snap.MaterialData

	if len(objects) == 0 {
		buf := make([]byte, scene.ObjectRecordStride)
		binary.LittleEndian.PutUint32(buf[132:], uint32(scene.BoxPrimitive)) // kind
		objects = buf
	}
	if len(materials) == 0 {
		materials = make([]byte, scene.MaterialRecordStride)
	}
	return objects, materials
}

// PackFrameUniform lays out a trace.Frame the way the kernel's FrameData
// struct expects it.
func PackFrameUniform(frame trace.Frame) []byte {
	// Struct FrameData {
	//   inv_view: mat4x4<f32>; -- 64
	//   cam_pos: vec4<f32>;    -- 80
	//   time: f32;             -- 84
	//   aspect: f32;           -- 88
	//   pad (8 bytes)          -- 96
	// }
	buf := make([]byte, scene.FrameUniformStride)

	for i, v := range frame.InvView {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}

	// Cam Pos, w stays 0 so the matrix path never picks up a translation
	binary.LittleEndian.PutUint32(buf[64:], math.Float32bits(frame.CameraPos.X()))
	binary.LittleEndian.PutUint32(buf[68:], math.Float32bits(frame.CameraPos.Y()))
	binary.LittleEndian.PutUint32(buf[72:], math.Float32bits(frame.CameraPos.Z()))
	binary.LittleEndian.PutUint32(buf[76:], 0)

	binary.LittleEndian.PutUint32(buf[80:], math.Float32bits(frame.Time))
	binary.LittleEndian.PutUint32(buf[84:], math.Float32bits(frame.Aspect))

	return buf
}

// UpdateFrame writes the per frame uniform, creating the buffer on first use.
func (m *BufferManager) UpdateFrame(frame trace.Frame) {
	buf := PackFrameUniform(frame)

	if m.FrameBuf == nil {
		desc := &wgpu.BufferDescriptor{
			Label: "FrameUB",
			Size:  scene.FrameUniformStride,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		}
		var err error
		m.FrameBuf, err = m.Device.CreateBuffer(desc)
		if err != nil {
			panic(err)
		}
	}
	m.Device.GetQueue().WriteBuffer(m.FrameBuf, 0, buf)
}

// CreateSceneBindGroup builds group 0 of the trace pipeline. Call again
// after UploadSnapshot reports a recreated buffer.
func (m *BufferManager) CreateSceneBindGroup(pipeline *wgpu.ComputePipeline) {
	entries := []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: m.ObjectBuf, Size: wgpu.WholeSize},
		{Binding: 1, Buffer: m.MaterialBuf, Size: wgpu.WholeSize},
		{Binding: 2, Buffer: m.FrameBuf, Size: wgpu.WholeSize},
	}
	desc := &wgpu.BindGroupDescriptor{
		Layout:  pipeline.GetBindGroupLayout(0),
		Entries: entries,
	}
	var err error
	m.SceneBindGroup, err = m.Device.CreateBindGroup(desc)
	if err != nil {
		panic(err)
	}
}
