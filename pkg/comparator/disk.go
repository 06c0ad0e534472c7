package comparator

import (
	"github.com/spf13/afero"

	"github.com/moyu-x/duplicate-finder/internal"
	"github.com/moyu-x/duplicate-finder/pkg/logger"
)

// AllocationUnitSize 返回 root 所在文件系统的分配单元大小
// 查询失败时返回 1024
func AllocationUnitSize(fs afero.Fs, root string) uint32 {
	if _, ok := fs.(*afero.OsFs); !ok {
		logger.Get().Debug().Str("root", root).Msg("非系统文件系统，使用默认分配单元大小")
		return internal.DefaultAllocationUnit
	}

	size, err := blockSize(root)
	if err != nil || size == 0 {
		logger.Get().Warn().Err(err).Str("root", root).
			Uint32("fallback", internal.DefaultAllocationUnit).
			Msg("查询磁盘分配单元失败")
		return internal.DefaultAllocationUnit
	}

	logger.Get().Info().Str("root", root).Uint32("allocationUnit", size).Msg("磁盘分配单元")
	return size
}
