package duplicates

import (
	"github.com/moyu-x/duplicate-finder/internal"
)

// Builder 按产生顺序收集重复文件组
// 不再校验组的正确性，正确性由比较阶段保证
type Builder struct {
	groups []internal.DuplicateGroup
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add 追加重复文件组，单文件组会被忽略
func (b *Builder) Add(groups ...internal.DuplicateGroup) {
	for _, g := range groups {
		if len(g.Files) < 2 {
			continue
		}
		b.groups = append(b.groups, g)
	}
}

// Len 返回已收集的组数
func (b *Builder) Len() int {
	return len(b.groups)
}

// Finalize 生成扫描结果并计算可释放的总字节数
func (b *Builder) Finalize() internal.ScanResult {
	var total uint64
	for _, g := range b.groups {
		total += g.Reclaimable()
	}
	return internal.ScanResult{
		DuplicateGroups:       append([]internal.DuplicateGroup(nil), b.groups...),
		TotalReclaimableBytes: total,
	}
}
