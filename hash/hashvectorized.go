package hash

import "github.com/klauspost/cpuid/v2"

// HashVectorized computes out[i] = Hash(n[i], s[i], max) for every i.
var HashVectorized func(out []uint32, n []uint32, s []uint32, max uint32) = hashNotVectorized

var hashVectorizedParallelism int = 1

func init() {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ):
		hashVectorizedParallelism = 16
	case cpuid.CPU.Supports(cpuid.AVX2):
		hashVectorizedParallelism = 8
	case cpuid.CPU.Supports(cpuid.SSE2) || cpuid.CPU.Supports(cpuid.ASIMD):
		hashVectorizedParallelism = 4
	}
	if hashVectorizedParallelism > 1 {
		HashVectorized = hashUnrolled
	}
}

// HashVectorizedParallelism reports the recommended number of hashes to compute
// in one batch on this platform. Never returns 0.
func HashVectorizedParallelism() int {
	return hashVectorizedParallelism
}

// CPU describes the processor the lane width was picked for.
func CPU() string {
	return cpuid.CPU.BrandName
}

func hashNotVectorized(out []uint32, n []uint32, s []uint32, max uint32) {
	for i := range out {
		out[i] = Hash(n[i], s[i], max)
	}
}

// hashUnrolled processes four independent lanes per iteration so the
// xor shift chains overlap in the pipeline.
func hashUnrolled(out []uint32, n []uint32, s []uint32, max uint32) {
	i := 0
	for ; i+4 <= len(out); i += 4 {
		out[i] = Hash(n[i], s[i], max)
		out[i+1] = Hash(n[i+1], s[i+1], max)
		out[i+2] = Hash(n[i+2], s[i+2], max)
		out[i+3] = Hash(n[i+3], s[i+3], max)
	}
	for ; i < len(out); i++ {
		out[i] = Hash(n[i], s[i], max)
	}
}
