package cpu

import "testing"

func TestSIMDLevelString(t *testing.T) {
	tests := []struct {
		level SIMDLevel
		want  string
	}{
		{SIMDNone, "None"},
		{SIMDSSE2, "SSE2"},
		{SIMDAVX, "AVX"},
		{SIMDAVX2, "AVX2"},
		{SIMDAVX512, "AVX-512"},
		{SIMDNEON, "NEON"},
		{SIMDLevel(999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeaturesSIMD(t *testing.T) {
	tests := []struct {
		name     string
		features Features
		want     SIMDLevel
		lanes    int
	}{
		{"none", Features{}, SIMDNone, 1},
		{"sse2", Features{HasSSE2: true}, SIMDSSE2, 2},
		{"avx2", Features{HasSSE2: true, HasAVX: true, HasAVX2: true}, SIMDAVX2, 4},
		{"avx512", Features{HasSSE2: true, HasAVX2: true, HasAVX512: true}, SIMDAVX512, 8},
		{"neon", Features{HasNEON: true}, SIMDNEON, 2},
		{"forced generic", Features{HasAVX2: true, ForceGeneric: true}, SIMDNone, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.features.SIMD()
			if got != tt.want {
				t.Fatalf("SIMD() = %v, want %v", got, tt.want)
			}
			if got.Lanes() != tt.lanes {
				t.Errorf("Lanes() = %d, want %d", got.Lanes(), tt.lanes)
			}
		})
	}
}

func TestSupports(t *testing.T) {
	tests := []struct {
		name     string
		features Features
		level    SIMDLevel
		minCPUs  int
		want     bool
	}{
		{"generic always", Features{}, SIMDNone, 0, true},
		{"generic one cpu", Features{NumCPU: 1}, SIMDNone, 1, true},
		{"parallel needs cpus", Features{NumCPU: 1}, SIMDNone, 2, false},
		{"parallel with cpus", Features{NumCPU: 8}, SIMDNone, 2, true},
		{"avx2 missing", Features{HasSSE2: true, NumCPU: 8}, SIMDAVX2, 0, false},
		{"avx2 present", Features{HasAVX2: true, NumCPU: 8}, SIMDAVX2, 0, true},
		{"neon present", Features{HasNEON: true}, SIMDNEON, 0, true},
		{"force generic blocks parallel", Features{NumCPU: 8, ForceGeneric: true}, SIMDNone, 2, false},
		{"force generic blocks simd", Features{HasAVX2: true, ForceGeneric: true}, SIMDAVX2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Supports(tt.features, tt.level, tt.minCPUs); got != tt.want {
				t.Errorf("Supports() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForcedFeatures(t *testing.T) {
	defer ResetDetection()

	SetForcedFeatures(Features{NumCPU: 3, ForceGeneric: true})
	got := DetectFeatures()
	if got.NumCPU != 3 || !got.ForceGeneric {
		t.Fatalf("DetectFeatures() = %+v, want forced features", got)
	}

	ResetDetection()
	if DetectFeatures().ForceGeneric {
		t.Error("ForceGeneric still set after ResetDetection")
	}
	if DetectFeatures().NumCPU < 1 {
		t.Error("NumCPU should be at least 1 after detection")
	}
}
