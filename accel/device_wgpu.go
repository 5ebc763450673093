//go:build gpu

package accel

import (
	"sync"
	"time"

	"github.com/openfluke/webgpu/wgpu"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Buffer is device memory owned by the WebGPU runtime.
type Buffer = wgpu.Buffer

// device holds the single WebGPU device used for staging copies.
type device struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	once     sync.Once
	err      error
}

var dev device

func getDevice() (*device, error) {
	dev.once.Do(func() {
		dev.Instance = wgpu.CreateInstance(nil)
		if dev.Instance == nil {
			dev.err = errors.Wrap(ErrNoAccelerator, "failed to create WebGPU instance")
			return
		}

		var err error
		dev.Adapter, err = dev.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
			PowerPreference: wgpu.PowerPreferenceHighPerformance,
		})
		if err != nil || dev.Adapter == nil {
			klog.Warningf("accel: high performance adapter failed: %v, trying default", err)
			dev.Adapter, err = dev.Instance.RequestAdapter(nil)
		}
		if err != nil || dev.Adapter == nil {
			dev.err = errors.Wrapf(ErrNoAccelerator, "all adapter attempts failed: %v", err)
			return
		}

		dev.Device, err = dev.Adapter.RequestDevice(nil)
		if err != nil {
			dev.err = errors.Wrap(err, "request device")
			return
		}
		dev.Queue = dev.Device.GetQueue()
	})
	if dev.err != nil {
		return nil, dev.err
	}
	return &dev, nil
}

// Upload copies host bytes into a new device buffer. len(data) must be a
// multiple of the copy alignment.
func Upload(data []byte) (*Buffer, error) {
	d, err := getDevice()
	if err != nil {
		return nil, err
	}
	buf, err := d.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Contents: data,
		Usage:    wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create buffer")
	}
	return buf, nil
}

// Download reads size bytes of buffer back through a mappable staging buffer.
func Download(buffer *Buffer, size uint64) ([]byte, error) {
	d, err := getDevice()
	if err != nil {
		return nil, err
	}

	staging, err := d.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "ReadStaging",
		Size:  size,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create staging buffer")
	}
	defer staging.Destroy()

	encoder, err := d.Device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create command encoder")
	}
	encoder.CopyBufferToBuffer(buffer, 0, staging, 0, size)
	cmd, err := encoder.Finish(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to finish command")
	}
	d.Queue.Submit(cmd)

	done := make(chan struct{})
	var mapErr error
	err = staging.MapAsync(wgpu.MapModeRead, 0, size, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			mapErr = errors.Errorf("map failed: %v", status)
		}
		close(done)
	})
	if err != nil {
		return nil, errors.Wrap(err, "MapAsync failed")
	}

	timeout := time.After(2 * time.Second)
Loop:
	for {
		d.Device.Poll(false, nil)
		select {
		case <-done:
			break Loop
		case <-timeout:
			return nil, errors.New("Download timed out after 2s")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	if mapErr != nil {
		return nil, mapErr
	}

	mapped := staging.GetMappedRange(0, uint(size))
	if mapped == nil {
		return nil, errors.New("failed to get mapped range")
	}
	out := make([]byte, size)
	copy(out, mapped)
	staging.Unmap()
	return out, nil
}
