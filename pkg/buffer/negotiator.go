package buffer

import (
	"github.com/moyu-x/duplicate-finder/internal"
	"github.com/moyu-x/duplicate-finder/pkg/logger"
)

// Negotiator 确定比较时可以安全分配的最大缓冲区
type Negotiator struct {
	Allocator Allocator
	Ceiling   uint32
	Floor     uint32
	// 同时进行比较的工作者数，每个工作者需要一对缓冲区
	Pairs int
}

func NewNegotiator() *Negotiator {
	return &Negotiator{
		Allocator: SystemAllocator{},
		Ceiling:   internal.DefaultBufferCeiling,
		Floor:     internal.DefaultBufferFloor,
		Pairs:     1,
	}
}

// Negotiate 从 min(maxFileSize, Ceiling) 开始尝试分配缓冲区，失败则减半重试
// 候选值低于 Floor 时返回 Floor
func (n *Negotiator) Negotiate(maxFileSize uint64) uint32 {
	ceiling, floor := n.Ceiling, n.Floor
	if floor == 0 {
		floor = internal.DefaultBufferFloor
	}
	if ceiling < floor {
		ceiling = floor
	}
	pairs := n.Pairs
	if pairs < 1 {
		pairs = 1
	}
	allocator := n.Allocator
	if allocator == nil {
		allocator = SystemAllocator{}
	}

	start := uint64(ceiling)
	if maxFileSize < start {
		start = maxFileSize
	}
	if start < uint64(floor) {
		start = uint64(floor)
	}

	for candidate := uint32(start); candidate >= floor; candidate /= 2 {
		if _, ok := allocator.TryAlloc(candidate, 2*pairs); ok {
			logger.Get().Info().
				Uint32("bufferSize", candidate).
				Uint64("maxFileSize", maxFileSize).
				Int("pairs", pairs).
				Msg("比较缓冲区大小已确定")
			return candidate
		}
		logger.Get().Debug().Uint32("bufferSize", candidate).Msg("缓冲区分配失败，尝试减半")
	}

	logger.Get().Warn().Uint32("bufferSize", floor).Msg("无法分配任何候选缓冲区，使用最小值")
	return floor
}
