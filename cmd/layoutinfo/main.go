// Command layoutinfo reports the accelerator capability and analyzes the
// layout of a strided descriptor given on the command line.
//
//	layoutinfo -dtype cf32 -space pinned -shape 2,3,4 -strides 192,64,8
package main

import (
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/openfluke/layout/accel"
	"github.com/openfluke/layout/array"
	"github.com/openfluke/layout/dtype"
	"github.com/openfluke/layout/memory"
)

// Analysis is the layout summary of the descriptor given on the command line.
type Analysis struct {
	Descriptor    string      `json:"descriptor"`
	Contiguous    bool        `json:"contiguous"`
	CapacityBytes int64       `json:"capacity_bytes"`
	NumElements   int64       `json:"num_elements"`
	Squeezed      string      `json:"squeezed"`
	HostPlan      accel.Plan  `json:"host_plan"`
	DevicePlan    *accel.Plan `json:"device_plan,omitempty"`
}

// Output is the JSON document written to stdout.
type Output struct {
	Accelerator   bool                       `json:"accelerator"`
	Adapter       string                     `json:"adapter,omitempty"`
	Accessibility map[string]map[string]bool `json:"accessibility"`
	Analysis      *Analysis                  `json:"analysis,omitempty"`
}

func parseInts(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad integer %q", p)
		}
		out[i] = v
	}
	return out, nil
}

func accessibility(p memory.Policy) map[string]map[string]bool {
	froms := []memory.Space{memory.Host}
	if p.Accelerator() {
		froms = append(froms, memory.Device)
	}
	out := map[string]map[string]bool{}
	for _, from := range froms {
		row := map[string]bool{}
		for _, s := range []memory.Space{memory.Host, memory.Device, memory.Pinned, memory.Unified} {
			row[s.String()] = p.Accessible(s, from)
		}
		out[from.String()] = row
	}
	return out
}

func analyze(c *accel.Capability, dtName, spaceName, shapeStr, stridesStr string) (*Analysis, error) {
	dt, err := dtype.Parse(dtName)
	if err != nil {
		return nil, err
	}
	space, err := memory.ParseSpace(spaceName)
	if err != nil {
		return nil, err
	}
	shape, err := parseInts(shapeStr)
	if err != nil {
		return nil, errors.WithMessage(err, "-shape")
	}
	var d *array.Descriptor
	if stridesStr == "" {
		d, err = array.Contiguous(dt, space, shape...)
	} else {
		var strides []int64
		if strides, err = parseInts(stridesStr); err != nil {
			return nil, errors.WithMessage(err, "-strides")
		}
		d, err = array.New(dt, space, shape, strides)
	}
	if err != nil {
		return nil, err
	}

	var sq array.Descriptor
	array.SqueezeContiguousDims(d, &sq)
	ec := accel.NewContext(c)
	a := &Analysis{
		Descriptor:    d.String(),
		Contiguous:    array.IsContiguous(d),
		CapacityBytes: array.CapacityBytes(d),
		NumElements:   d.NumElements(),
		Squeezed:      sq.String(),
		HostPlan:      ec.Plan(d),
	}
	if dev, err := ec.OnDevice(); err == nil {
		p := dev.Plan(d)
		a.DevicePlan = &p
	}
	return a, nil
}

func main() {
	klog.InitFlags(nil)
	dtName := flag.String("dtype", "f32", "element type (i4, u8, f32, cf32, ...)")
	spaceName := flag.String("space", "host", "memory space (host, device, pinned, unified)")
	shapeStr := flag.String("shape", "", "comma separated extents, outermost first")
	stridesStr := flag.String("strides", "", "comma separated byte strides (default: dense row-major)")
	flag.Parse()
	defer klog.Flush()

	c, err := accel.Init()
	if err != nil {
		klog.Fatalf("layoutinfo: %v", err)
	}

	out := Output{
		Accelerator:   c.Accelerator(),
		Accessibility: accessibility(c.Policy),
	}
	if c.Report != nil {
		out.Adapter = c.Report.Name
	}
	if *shapeStr != "" {
		if out.Analysis, err = analyze(c, *dtName, *spaceName, *shapeStr, *stridesStr); err != nil {
			klog.Fatalf("layoutinfo: %v", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		klog.Fatalf("layoutinfo: %v", err)
	}
}
