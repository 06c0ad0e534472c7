package internal

import "time"

// 文件记录，由目录遍历产生，创建后不再修改
type FileRecord struct {
	Size     uint64
	Name     string
	FullPath string
}

// Equal 按 (Size, FullPath) 判断两条记录是否相同，与文件内容无关
func (r FileRecord) Equal(other FileRecord) bool {
	return r.Size == other.Size && r.FullPath == other.FullPath
}

// 重复文件组
type DuplicateGroup struct {
	Files []FileRecord
	// 仅比较了前 N 个字节时非空，此时组内文件可能并非完全相同
	PartialComparisonLimit *uint32
	// 根据代表文件头部检测出的 MIME 类型，仅用于报告
	FileType string
}

// Size 返回组内文件大小
func (g DuplicateGroup) Size() uint64 {
	if len(g.Files) == 0 {
		return 0
	}
	return g.Files[0].Size
}

// Partial 判断该组是否只经过部分比较
func (g DuplicateGroup) Partial() bool {
	return g.PartialComparisonLimit != nil
}

// Reclaimable 返回删除多余副本后可释放的字节数
func (g DuplicateGroup) Reclaimable() uint64 {
	if len(g.Files) < 2 {
		return 0
	}
	return g.Files[0].Size * uint64(len(g.Files)-1)
}

// 扫描结果
type ScanResult struct {
	ID                    string
	Roots                 []string
	DuplicateGroups       []DuplicateGroup
	TotalReclaimableBytes uint64
	MaxBufferSize         uint32
	AllocationUnitSize    uint32
	FilesScanned          int
	Candidates            int
	SkippedEntries        int
	ReadFailures          int
	StartTime             time.Time
	EndTime               time.Time
}

// DuplicateFileCount 返回所有组中多余副本的数量
func (r ScanResult) DuplicateFileCount() int {
	count := 0
	for _, g := range r.DuplicateGroups {
		if len(g.Files) > 1 {
			count += len(g.Files) - 1
		}
	}
	return count
}
