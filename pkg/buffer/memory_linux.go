//go:build linux

package buffer

import "golang.org/x/sys/unix"

// availableMemory 返回空闲物理内存与可回收缓存之和
func availableMemory() (uint64, bool) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, false
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return (uint64(info.Freeram) + uint64(info.Bufferram)) * unit, true
}
