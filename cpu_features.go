package mtxmq

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// CPUFeatures tracks the instruction set extensions relevant to the kernels
type CPUFeatures struct {
	HasSSE2    bool
	HasAVX     bool
	HasAVX2    bool
	HasFMA     bool
	HasAVX512F bool
	HasASIMD   bool // arm64 Advanced SIMD
	HasFPHP    bool // arm64 half precision
}

// DetectCPUFeatures reads the features of the running processor.
func DetectCPUFeatures() CPUFeatures {
	return CPUFeatures{
		HasSSE2:    cpu.X86.HasSSE2,
		HasAVX:     cpu.X86.HasAVX,
		HasAVX2:    cpu.X86.HasAVX2,
		HasFMA:     cpu.X86.HasFMA,
		HasAVX512F: cpu.X86.HasAVX512F,
		HasASIMD:   cpu.ARM64.HasASIMD,
		HasFPHP:    cpu.ARM64.HasFPHP,
	}
}

// Names lists the detected features.
func (f CPUFeatures) Names() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	add(f.HasSSE2, "SSE2")
	add(f.HasAVX, "AVX")
	add(f.HasAVX2, "AVX2")
	add(f.HasFMA, "FMA")
	add(f.HasAVX512F, "AVX512F")
	add(f.HasASIMD, "ASIMD")
	add(f.HasFPHP, "FPHP")
	return features
}

// CPUInfo describes the architecture and its features for the run header.
func CPUInfo() string {
	names := DetectCPUFeatures().Names()
	if len(names) == 0 {
		return runtime.GOARCH + ": no SIMD extensions detected"
	}
	return runtime.GOARCH + ": " + strings.Join(names, ", ")
}
