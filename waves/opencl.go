//go:build opencl

package waves

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

const waveKernelSource = `__kernel void wave_step(
    const int rows,
    const int cols,
    const float k1,
    const float k2,
    const float k3,
    __global const float* prev,
    __global const float* curr,
    __global float* next_buffer)
{
    int x = get_global_id(0);
    int y = get_global_id(1);
    if (x >= cols || y >= rows) {
        return;
    }
    int idx = y * cols + x;
    if (x == 0 || y == 0 || x == cols - 1 || y == rows - 1) {
        next_buffer[idx] = 0.0f;
        return;
    }
    float neighbors = curr[idx + cols] + curr[idx - cols] + curr[idx + 1] + curr[idx - 1];
    next_buffer[idx] = k1 * prev[idx] + k2 * curr[idx] + k3 * neighbors;
}

__kernel void disturb(
    const int cols,
    const int row,
    const int col,
    const float magnitude,
    __global float* curr)
{
    int t = get_global_id(1) * 16 + get_global_id(0);
    int dr[5] = {0, 0, 0, 1, -1};
    int dc[5] = {0, 1, -1, 0, 0};
    float w[5] = {1.0f, 0.5f, 0.5f, 0.5f, 0.5f};
    if (t >= 5) {
        return;
    }
    int idx = (row + dr[t]) * cols + col + dc[t];
    curr[idx] += w[t] * magnitude;
}`

// OpenCLExecutor runs the kernels on an OpenCL device. Host buffers stay
// authoritative: each dispatch uploads its inputs and blocks on the
// read-back of its output.
type OpenCLExecutor struct {
	context       *cl.Context
	queue         *cl.CommandQueue
	program       *cl.Program
	waveKernel    *cl.Kernel
	disturbKernel *cl.Kernel
	prevBuf       *cl.MemObject
	currBuf       *cl.MemObject
	nextBuf       *cl.MemObject
	size          int
	deviceName    string
}

// NewOpenCLExecutor selects the first GPU, falling back to the first CPU
// device, and builds the kernels.
func NewOpenCLExecutor() (*OpenCLExecutor, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := firstDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = firstDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	e := &OpenCLExecutor{deviceName: device.Name()}
	if e.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if e.queue, err = e.context.CreateCommandQueue(device, 0); err != nil {
		e.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if e.program, err = e.context.CreateProgramWithSource([]string{waveKernelSource}); err != nil {
		e.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := e.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		e.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if e.waveKernel, err = e.program.CreateKernel("wave_step"); err != nil {
		e.Close()
		return nil, fmt.Errorf("creating wave kernel: %w", err)
	}
	if e.disturbKernel, err = e.program.CreateKernel("disturb"); err != nil {
		e.Close()
		return nil, fmt.Errorf("creating disturb kernel: %w", err)
	}
	return e, nil
}

func firstDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

func (e *OpenCLExecutor) Name() string { return "OpenCL (" + e.deviceName + ")" }

// ensureBuffers reallocates the device buffers when the grid size changes.
func (e *OpenCLExecutor) ensureBuffers(size int) error {
	if size == e.size && e.currBuf != nil {
		return nil
	}
	e.releaseBuffers()
	byteSize := size * int(unsafe.Sizeof(float32(0)))
	var err error
	if e.prevBuf, err = e.context.CreateEmptyBuffer(cl.MemReadOnly, byteSize); err != nil {
		return fmt.Errorf("allocating previous buffer: %w", err)
	}
	if e.currBuf, err = e.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize); err != nil {
		e.releaseBuffers()
		return fmt.Errorf("allocating current buffer: %w", err)
	}
	if e.nextBuf, err = e.context.CreateEmptyBuffer(cl.MemWriteOnly, byteSize); err != nil {
		e.releaseBuffers()
		return fmt.Errorf("allocating next buffer: %w", err)
	}
	e.size = size
	return nil
}

// Dispatch uploads the launch inputs, runs the kernel and blocks until its
// output has been read back into the host buffer.
func (e *OpenCLExecutor) Dispatch(l *Launch) error {
	if err := l.validate(); err != nil {
		return err
	}
	if err := e.ensureBuffers(l.Rows * l.Cols); err != nil {
		return err
	}
	global := []int{l.GroupsX * GroupSize, l.GroupsY * GroupSize}
	switch l.Kernel {
	case KernelWave:
		if _, err := e.queue.EnqueueWriteBufferFloat32(e.prevBuf, false, 0, l.Prev, nil); err != nil {
			return fmt.Errorf("writing previous buffer: %w", err)
		}
		if _, err := e.queue.EnqueueWriteBufferFloat32(e.currBuf, false, 0, l.Curr, nil); err != nil {
			return fmt.Errorf("writing current buffer: %w", err)
		}
		if err := e.waveKernel.SetArgs(
			int32(l.Rows),
			int32(l.Cols),
			l.Consts.K1,
			l.Consts.K2,
			l.Consts.K3,
			e.prevBuf,
			e.currBuf,
			e.nextBuf,
		); err != nil {
			return fmt.Errorf("setting wave kernel arguments: %w", err)
		}
		if _, err := e.queue.EnqueueNDRangeKernel(e.waveKernel, nil, global, nil, nil); err != nil {
			return fmt.Errorf("enqueueing wave kernel: %w", err)
		}
		if _, err := e.queue.EnqueueReadBufferFloat32(e.nextBuf, true, 0, l.Next, nil); err != nil {
			return fmt.Errorf("reading next buffer: %w", err)
		}
	case KernelDisturb:
		if _, err := e.queue.EnqueueWriteBufferFloat32(e.currBuf, false, 0, l.Curr, nil); err != nil {
			return fmt.Errorf("writing current buffer: %w", err)
		}
		if err := e.disturbKernel.SetArgs(
			int32(l.Cols),
			int32(l.Impulse.Row),
			int32(l.Impulse.Col),
			l.Impulse.Magnitude,
			e.currBuf,
		); err != nil {
			return fmt.Errorf("setting disturb kernel arguments: %w", err)
		}
		if _, err := e.queue.EnqueueNDRangeKernel(e.disturbKernel, nil, global, nil, nil); err != nil {
			return fmt.Errorf("enqueueing disturb kernel: %w", err)
		}
		// Reading into a scratch slice keeps Curr intact on failure.
		scratch := make([]float32, len(l.Curr))
		if _, err := e.queue.EnqueueReadBufferFloat32(e.currBuf, true, 0, scratch, nil); err != nil {
			return fmt.Errorf("reading current buffer: %w", err)
		}
		copy(l.Curr, scratch)
	}
	return nil
}

func (e *OpenCLExecutor) releaseBuffers() {
	for _, b := range []**cl.MemObject{&e.prevBuf, &e.currBuf, &e.nextBuf} {
		if *b != nil {
			(*b).Release()
			*b = nil
		}
	}
	e.size = 0
}

// Close releases every device object. It is safe to call more than once.
func (e *OpenCLExecutor) Close() error {
	e.releaseBuffers()
	if e.waveKernel != nil {
		e.waveKernel.Release()
		e.waveKernel = nil
	}
	if e.disturbKernel != nil {
		e.disturbKernel.Release()
		e.disturbKernel = nil
	}
	if e.program != nil {
		e.program.Release()
		e.program = nil
	}
	if e.queue != nil {
		e.queue.Release()
		e.queue = nil
	}
	if e.context != nil {
		e.context.Release()
		e.context = nil
	}
	return nil
}
