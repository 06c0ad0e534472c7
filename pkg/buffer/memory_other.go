//go:build !linux

package buffer

// 其他平台无法查询空闲内存，仅依赖 Go 软内存上限
func availableMemory() (uint64, bool) {
	return 0, false
}
