// Package device reports the compute hardware available to the process.
//
// Probe asks WebGPU for a high-performance adapter. All training runs on
// the CPU; the probe only tells the user what the machine offers, and
// BenchmarkMatMul measures the CPU matrix product the passes are built on.
package device

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/openfluke/webgpu/wgpu"
	"github.com/pkg/errors"
)

// ErrUnavailable is returned when no WebGPU adapter can be obtained.
var ErrUnavailable = errors.New("webgpu adapter not available")

// Report summarizes the default adapter.
type Report struct {
	WhenISO        string `json:"when_iso"`
	OS             string `json:"os"`
	Arch           string `json:"arch"`
	Backend        string `json:"backend"`
	AdapterType    string `json:"adapter_type"`
	VendorID       string `json:"vendor_id_hex"`
	DeviceID       string `json:"device_id_hex"`
	Name           string `json:"name"`
	Driver         string `json:"driver"`
	MaxBufferBytes uint64 `json:"max_buffer_size"`
}

// String renders the report as key=value pairs.
func (r *Report) String() string {
	return fmt.Sprintf("name=%q backend=%s adapter_type=%s vendor=%s device=%s driver=%q max_buffer_bytes=%d",
		r.Name, r.Backend, r.AdapterType, r.VendorID, r.DeviceID, r.Driver, r.MaxBufferBytes)
}

// Probe requests the default high-performance adapter and a device on it.
// A missing native WebGPU library is reported as ErrUnavailable rather
// than a panic.
func Probe() (report *Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = errors.Wrapf(ErrUnavailable, "native library: %v", r)
		}
	}()

	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		return nil, errors.Wrap(ErrUnavailable, "create instance")
	}
	defer inst.Release()

	adapter, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "request adapter: %v", err)
	}
	if adapter == nil {
		return nil, errors.Wrap(ErrUnavailable, "no adapter")
	}
	defer adapter.Release()

	info := adapter.GetInfo()
	limits := adapter.GetLimits()

	dev, err := adapter.RequestDevice(nil)
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "request device: %v", err)
	}
	defer dev.Release()

	return &Report{
		WhenISO:        time.Now().UTC().Format(time.RFC3339),
		OS:             runtime.GOOS,
		Arch:           runtime.GOARCH,
		Backend:        info.BackendType.String(),
		AdapterType:    info.AdapterType.String(),
		VendorID:       fmt.Sprintf("0x%04x", info.VendorId),
		DeviceID:       fmt.Sprintf("0x%04x", info.DeviceId),
		Name:           strings.TrimSpace(info.Name),
		Driver:         strings.TrimSpace(info.DriverDescription),
		MaxBufferBytes: limits.Limits.MaxBufferSize,
	}, nil
}
