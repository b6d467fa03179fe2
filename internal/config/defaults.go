package config

import (
	"strconv"

	"github.com/shirou/gopsutil/v4/mem"
)

// Memory limit resolution chain (highest priority first):
//   1. CLI flag (--memory-limit)
//   2. Environment variable (FIBBENCH_MEMORY_LIMIT)
//   3. Adaptive default from physical memory (this file)
//
// A value of "0" disables the check at any level.

// ApplyAdaptiveDefaults fills in configuration values that depend on the
// host rather than on the user's intent. Only unset values are touched,
// preserving explicit flag and environment choices.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.MemoryLimit == "" {
		cfg.MemoryLimit = DefaultMemoryLimit()
	}
	return cfg
}

// DefaultMemoryLimit derives a memo-table budget from the host: half of
// physical memory, in plain bytes. Returns "0" (no limit) when the probe
// fails.
func DefaultMemoryLimit() string {
	vm, err := mem.VirtualMemory()
	if err != nil || vm.Total == 0 {
		return "0"
	}
	return strconv.FormatUint(vm.Total/2, 10)
}
