package comparator

import (
	"bytes"
	"sync/atomic"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"github.com/moyu-x/duplicate-finder/internal"
	"github.com/moyu-x/duplicate-finder/pkg/progress"
)

// UnknownFileType 无法识别文件类型时使用的标签
const UnknownFileType = "unknown"

// Tally 多个 Engine 共享的候选计数
type Tally struct {
	Total     int
	processed atomic.Int64
}

// Processed 返回已作为原始文件访问过的候选数
func (t *Tally) Processed() int {
	return int(t.processed.Load())
}

// Engine 对同一大小的候选文件做分级比较：先比较一个分配单元的头部，头部相同时再比较至多 MaxBufferSize 字节
// Engine 持有自己的缓冲区，不能在多个 goroutine 间共享
type Engine struct {
	AllocationUnit uint32
	MaxBufferSize  uint32
	Heartbeat      *progress.Heartbeat
	Observer       progress.Observer
	Tally          *Tally

	reader           *Reader
	prefixA, prefixB []byte
	fullA, fullB     []byte
}

func NewEngine(reader *Reader, allocationUnit, maxBufferSize uint32) *Engine {
	if allocationUnit == 0 {
		allocationUnit = internal.DefaultAllocationUnit
	}
	if maxBufferSize == 0 {
		maxBufferSize = internal.DefaultBufferFloor
	}
	return &Engine{
		AllocationUnit: allocationUnit,
		MaxBufferSize:  maxBufferSize,
		Heartbeat:      progress.NewHeartbeat(progress.DefaultInterval),
		Observer:       progress.Discard,
		Tally:          &Tally{},
		reader:         reader,
	}
}

// Compare 一次性比较 fs 上的一组同大小文件
func Compare(fs afero.Fs, group []internal.FileRecord, allocationUnit, maxBufferSize uint32) []internal.DuplicateGroup {
	return NewEngine(NewReader(fs), allocationUnit, maxBufferSize).Compare(group)
}

// Compare 返回组内的重复文件组，顺序与原始文件在组中的顺序一致
// 已并入前面某个组的文件不会再作为原始文件
func (e *Engine) Compare(group []internal.FileRecord) []internal.DuplicateGroup {
	if len(group) < 2 {
		return nil
	}

	matched := make(map[string]struct{})
	var groups []internal.DuplicateGroup

	for i, original := range group {
		e.Tally.processed.Add(1)
		if _, ok := matched[original.FullPath]; ok {
			continue
		}

		dup := internal.DuplicateGroup{Files: []internal.FileRecord{original}}
		readSize := e.readSize(original.Size)
		if uint64(readSize) != original.Size {
			limit := readSize
			dup.PartialComparisonLimit = &limit
		}

		e.prefixA = e.reader.Read(original.FullPath, e.AllocationUnit, e.prefixA)
		originalPrefix := e.prefixA
		var originalContent []byte
		originalLoaded := false

		for _, candidate := range group[i+1:] {
			if _, ok := matched[candidate.FullPath]; ok {
				continue
			}

			isMatch := false
			e.prefixB = e.reader.Read(candidate.FullPath, e.AllocationUnit, e.prefixB)
			if bytes.Equal(originalPrefix, e.prefixB) && e.prefixComplete(originalPrefix, original.Size) {
				if uint64(len(originalPrefix)) == original.Size {
					isMatch = true
				} else {
					if !originalLoaded {
						e.fullA = e.reader.Read(original.FullPath, readSize, e.fullA)
						originalContent = e.fullA
						originalLoaded = true
					}
					e.fullB = e.reader.Read(candidate.FullPath, readSize, e.fullB)
					isMatch = uint64(len(originalContent)) == uint64(readSize) &&
						bytes.Equal(originalContent, e.fullB)
				}
			}

			if isMatch {
				matched[candidate.FullPath] = struct{}{}
				dup.Files = append(dup.Files, candidate)
				e.notify(progress.EventMatch, original, candidate)
				e.Heartbeat.Reset()
			} else if e.Heartbeat.CheckAndReset() {
				e.notify(progress.EventHeartbeat, original, candidate)
			}
		}

		if len(dup.Files) > 1 {
			dup.FileType = detectFileType(originalPrefix)
			groups = append(groups, dup)
		}
	}

	return groups
}

// ReadFailures 返回读取失败次数
func (e *Engine) ReadFailures() int {
	return e.reader.Failures()
}

func (e *Engine) readSize(size uint64) uint32 {
	if uint64(e.MaxBufferSize) < size {
		return e.MaxBufferSize
	}
	return uint32(size)
}

// prefixComplete 头部读取的字节数必须与文件大小相符，读取失败的文件不能确认匹配
func (e *Engine) prefixComplete(prefix []byte, size uint64) bool {
	expected := uint64(e.AllocationUnit)
	if size < expected {
		expected = size
	}
	return uint64(len(prefix)) == expected
}

func (e *Engine) notify(kind progress.EventKind, original, candidate internal.FileRecord) {
	if e.Observer == nil {
		return
	}
	e.Observer.Notify(progress.Event{
		Stage:     progress.StageCompare,
		Kind:      kind,
		Path:      original.FullPath,
		OtherPath: candidate.FullPath,
		Size:      original.Size,
		Current:   e.Tally.Processed(),
		Total:     e.Tally.Total,
	})
}

func detectFileType(head []byte) string {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return UnknownFileType
	}
	return kind.MIME.Value
}
