package candidate

import (
	"sort"

	"github.com/moyu-x/duplicate-finder/internal"
)

// Group 同一大小的候选文件
type Group struct {
	Size  uint64
	Files []internal.FileRecord
}

type bucket struct {
	files []internal.FileRecord
	paths map[string]struct{}
}

// Index 按文件大小归类候选文件，桶内保持发现顺序
type Index struct {
	buckets map[uint64]*bucket
	total   int
}

func NewIndex() *Index {
	return &Index{
		buckets: make(map[uint64]*bucket),
	}
}

// Add 将记录加入对应大小的桶
// 桶内已存在相同 (size, fullPath) 的记录时不做任何修改并返回 false
func (idx *Index) Add(record internal.FileRecord) bool {
	b, ok := idx.buckets[record.Size]
	if !ok {
		b = &bucket{paths: make(map[string]struct{})}
		idx.buckets[record.Size] = b
	}

	if _, exists := b.paths[record.FullPath]; exists {
		return false
	}

	b.paths[record.FullPath] = struct{}{}
	b.files = append(b.files, record)
	idx.total++
	return true
}

// Groups 按文件大小从大到小返回所有桶
func (idx *Index) Groups() []Group {
	sizes := idx.sizes()
	groups := make([]Group, 0, len(sizes))
	for _, size := range sizes {
		files := idx.buckets[size].files
		groups = append(groups, Group{
			Size:  size,
			Files: append([]internal.FileRecord(nil), files...),
		})
	}
	return groups
}

// BucketCount 返回不同文件大小的数量
func (idx *Index) BucketCount() int {
	return len(idx.buckets)
}

// CandidateCount 返回成员数不少于 2 的桶中的记录总数
func (idx *Index) CandidateCount() int {
	count := 0
	for _, b := range idx.buckets {
		if len(b.files) >= 2 {
			count += len(b.files)
		}
	}
	return count
}

// Len 返回所有记录数
func (idx *Index) Len() int {
	return idx.total
}

// MaxSize 返回最大文件大小，索引为空时返回 0
func (idx *Index) MaxSize() uint64 {
	var maxSize uint64
	for size := range idx.buckets {
		if size > maxSize {
			maxSize = size
		}
	}
	return maxSize
}

func (idx *Index) sizes() []uint64 {
	sizes := make([]uint64, 0, len(idx.buckets))
	for size := range idx.buckets {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] > sizes[j] })
	return sizes
}
