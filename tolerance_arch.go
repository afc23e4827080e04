package mtxmq

import (
	"runtime"
)

// ArchToleranceConfig provides architecture-specific tolerance configurations
type ArchToleranceConfig struct {
	// Base tolerance for every architecture without an override
	Base ToleranceConfig

	// Architecture-specific overrides
	AMD64       *ToleranceConfig
	Contracting *ToleranceConfig
}

// MtxmArchTolerance is the default correctness bound for the contraction.
//
// On amd64 the Go compiler fuses a*b+c only at GOAMD64=v3 and above, and
// then uniformly, so a kernel that keeps the reference's summation order
// matches it bit for bit and the bound can sit below one ulp of the
// largest outputs. The arm64, ppc64x, s390x and
// riscv64 backends contract multiply-add into FMA, and whether a given
// expression is fused depends on how it is written, so they get the bound
// the reference harness documents for non-SSE builds. Every other port
// falls back to that bound as well.
var MtxmArchTolerance = ArchToleranceConfig{
	Base: ToleranceConfig{AbsTol: 1e-13},
	AMD64: &ToleranceConfig{
		AbsTol: 1e-15,
	},
	Contracting: &ToleranceConfig{
		AbsTol: 1e-13,
	},
}

// GetArchTolerance returns the appropriate tolerance for the current architecture
func GetArchTolerance(config ArchToleranceConfig) ToleranceConfig {
	return archTolerance(config, runtime.GOARCH)
}

func archTolerance(config ArchToleranceConfig, goarch string) ToleranceConfig {
	base := config.Base

	switch {
	case goarch == "amd64":
		if config.AMD64 != nil {
			return mergeTolerances(base, *config.AMD64)
		}
	case ContractsFMA(goarch):
		if config.Contracting != nil {
			return mergeTolerances(base, *config.Contracting)
		}
	}

	return base
}

// mergeTolerances applies overrides to base tolerance
func mergeTolerances(base, override ToleranceConfig) ToleranceConfig {
	result := base

	// Only override non-zero values
	if override.AbsTol > 0 {
		result.AbsTol = override.AbsTol
	}

	return result
}

// DefaultTolerance returns the contraction tolerance for this architecture
func DefaultTolerance() ToleranceConfig {
	return GetArchTolerance(MtxmArchTolerance)
}

// ContractsFMA reports whether the Go compiler for goarch fuses
// floating-point multiply-add expressions.
func ContractsFMA(goarch string) bool {
	switch goarch {
	case "arm64", "ppc64", "ppc64le", "s390x", "riscv64", "loong64":
		return true
	}
	return false
}
