package wgpubackend

import (
	"errors"

	"github.com/Carmen-Shannon/breakout/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// uniformAlignment is the largest minUniformBufferOffsetAlignment WebGPU allows, so every
// adapter accepts it.
const uniformAlignment = 256

var errUniformRingFull = errors.New("uniform ring is full for this frame")

// uniformRing is one uniform buffer that every draw of a frame writes its uniform snapshot
// into. Snapshots are staged on the CPU and uploaded once before the frame is submitted.
type uniformRing struct {
	buf        *wgpu.Buffer
	capacity   uint64
	staged     []byte
	generation int
}

func newUniformRing(device *wgpu.Device, capacity uint64) (*uniformRing, error) {
	capacity = common.RoundUpAlign(uniformAlignment, capacity)
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Uniform Ring",
		Size:  capacity,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	return &uniformRing{
		buf:        buf,
		capacity:   capacity,
		staged:     make([]byte, 0, capacity),
		generation: 1,
	}, nil
}

// push appends data at the next aligned slot and returns its offset.
func (u *uniformRing) push(data []byte) (uint32, error) {
	offset := common.RoundUpAlign(uniformAlignment, uint64(len(u.staged)))
	end := offset + uint64(len(data))
	if end > u.capacity {
		return 0, errUniformRingFull
	}
	for uint64(len(u.staged)) < offset {
		u.staged = append(u.staged, 0)
	}
	u.staged = append(u.staged, data...)
	return uint32(offset), nil
}

// flush uploads the staged snapshots.
func (u *uniformRing) flush(queue *wgpu.Queue) error {
	if len(u.staged) == 0 {
		return nil
	}
	size := common.RoundUpAlign(copyAlignment, uint64(len(u.staged)))
	for uint64(len(u.staged)) < size {
		u.staged = append(u.staged, 0)
	}
	return queue.WriteBuffer(u.buf, 0, u.staged)
}

func (u *uniformRing) reset() {
	u.staged = u.staged[:0]
}

func (u *uniformRing) release() {
	if u.buf != nil {
		u.buf.Release()
		u.buf = nil
	}
}
