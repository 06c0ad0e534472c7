package buffer

import (
	"math"
	"runtime"
	"runtime/debug"
)

// Allocator 可失败的内存分配查询
// 要么一次分配 count 个大小为 size 的缓冲区，要么一个都不分配并返回 false
type Allocator interface {
	TryAlloc(size uint32, count int) ([][]byte, bool)
}

// SystemAllocator 根据系统可用内存与 Go 软内存上限判断能否分配
type SystemAllocator struct {
	// 预留给进程其他部分的内存
	Headroom uint64
}

func (a SystemAllocator) TryAlloc(size uint32, count int) ([][]byte, bool) {
	if count <= 0 {
		return nil, true
	}
	need := uint64(size) * uint64(count)
	if need/uint64(count) != uint64(size) {
		return nil, false
	}
	need += a.Headroom

	if avail, ok := availableMemory(); ok && need > avail {
		return nil, false
	}

	if limit := debug.SetMemoryLimit(-1); limit != math.MaxInt64 {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		if limit < 0 || ms.HeapAlloc+need > uint64(limit) {
			return nil, false
		}
	}

	buffers := make([][]byte, count)
	for i := range buffers {
		buffers[i] = make([]byte, size)
	}
	return buffers, true
}
