package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/duplicate-finder/internal"
	"github.com/moyu-x/duplicate-finder/pkg/buffer"
	"github.com/moyu-x/duplicate-finder/pkg/candidate"
	"github.com/moyu-x/duplicate-finder/pkg/comparator"
	"github.com/moyu-x/duplicate-finder/pkg/duplicates"
	"github.com/moyu-x/duplicate-finder/pkg/logger"
	"github.com/moyu-x/duplicate-finder/pkg/progress"
	"github.com/moyu-x/duplicate-finder/pkg/scanner"
)

// ErrNoRoots 没有提供任何扫描目录
var ErrNoRoots = errors.New("no directories to scan")

// Options 扫描参数
type Options struct {
	Roots []string
	Fs    afero.Fs
	// 大于 1 时不同大小的桶并行比较
	Workers           int
	HeartbeatInterval time.Duration
	Negotiator        *buffer.Negotiator
	// 为 0 时查询第一个扫描目录所在的文件系统
	AllocationUnit uint32
	Observer       progress.Observer
}

// Session 一次扫描的全部状态，每次扫描新建，不可复用
type Session struct {
	id        string
	roots     []string
	fs        afero.Fs
	workers   int
	heartbeat *progress.Heartbeat
	observer  progress.Observer

	negotiator *buffer.Negotiator
	unit       uint32

	index   *candidate.Index
	builder *duplicates.Builder
	reader  *comparator.Reader
	skipped int
}

func New(opts Options) *Session {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = internal.DefaultWorkers
	}
	negotiator := opts.Negotiator
	if negotiator == nil {
		negotiator = buffer.NewNegotiator()
	}
	observer := opts.Observer
	if observer == nil {
		observer = progress.Discard
	}

	roots := make([]string, 0, len(opts.Roots))
	for _, root := range opts.Roots {
		roots = append(roots, scanner.NormalizeRoot(root))
	}

	return &Session{
		id:         uuid.NewString(),
		roots:      roots,
		fs:         fs,
		workers:    workers,
		heartbeat:  progress.NewHeartbeat(opts.HeartbeatInterval),
		observer:   observer,
		negotiator: negotiator,
		unit:       opts.AllocationUnit,
		index:      candidate.NewIndex(),
		builder:    duplicates.NewBuilder(),
		reader:     comparator.NewReader(fs),
	}
}

// ID 返回扫描编号
func (s *Session) ID() string {
	return s.id
}

// Run 依次执行遍历、统计候选、比较三个阶段
// 单个文件或目录的错误只记录日志，不会中断扫描
func (s *Session) Run() (*internal.ScanResult, error) {
	if len(s.roots) == 0 {
		return nil, ErrNoRoots
	}

	start := time.Now()
	logger.Get().Info().Str("id", s.id).Strs("roots", s.roots).Msg("开始扫描")

	if err := s.scanAll(); err != nil {
		return nil, err
	}

	candidates := s.listCandidates()

	// 调用方的 Negotiator 可能被多次扫描复用，只修改副本
	negotiator := *s.negotiator
	negotiator.Pairs = s.workers
	maxBufferSize := negotiator.Negotiate(s.index.MaxSize())

	if s.unit == 0 {
		s.unit = comparator.AllocationUnitSize(s.fs, s.roots[0])
	}

	if err := s.compareAll(candidates, maxBufferSize); err != nil {
		return nil, err
	}

	result := s.builder.Finalize()
	result.ID = s.id
	result.Roots = append([]string(nil), s.roots...)
	result.MaxBufferSize = maxBufferSize
	result.AllocationUnitSize = s.unit
	result.FilesScanned = s.index.Len() + s.skipped
	result.Candidates = s.index.CandidateCount()
	result.SkippedEntries = s.skipped
	result.ReadFailures = s.reader.Failures()
	result.StartTime = start
	result.EndTime = time.Now()

	logger.Get().Info().
		Str("id", s.id).
		Int("groups", len(result.DuplicateGroups)).
		Uint64("reclaimable", result.TotalReclaimableBytes).
		Dur("elapsed", result.EndTime.Sub(start)).
		Msg("扫描完成")

	return &result, nil
}

func (s *Session) scanAll() error {
	s.notify(progress.Event{Stage: progress.StageScan, Kind: progress.EventStageStart, Total: len(s.roots)})

	walker := scanner.NewFileWalker(s.fs)
	walker.Observer = progress.ObserverFunc(func(e progress.Event) {
		s.heartbeat.Reset()
		s.notify(e)
	})

	for _, root := range s.roots {
		if err := walker.Walk(root, s.ingest); err != nil {
			return fmt.Errorf("扫描目录失败 %s: %w", root, err)
		}
	}

	s.notify(progress.Event{Stage: progress.StageScan, Kind: progress.EventStageEnd, Current: s.index.Len(), Total: s.index.Len()})
	return nil
}

func (s *Session) ingest(record internal.FileRecord) error {
	s.notify(progress.Event{
		Stage:   progress.StageScan,
		Kind:    progress.EventFileFound,
		Path:    record.FullPath,
		Size:    record.Size,
		Current: s.index.Len() + 1,
	})
	s.heartbeat.Reset()

	if !s.index.Add(record) {
		s.skipped++
		s.notify(progress.Event{
			Stage: progress.StageScan,
			Kind:  progress.EventSkippedEntry,
			Path:  record.FullPath,
			Size:  record.Size,
		})
	}
	return nil
}

// listCandidates 从大到小列出成员数不少于 2 的桶
func (s *Session) listCandidates() []candidate.Group {
	groups := s.index.Groups()
	total := len(groups)
	s.notify(progress.Event{Stage: progress.StageCandidates, Kind: progress.EventStageStart, Total: total})
	s.heartbeat.Reset()

	var candidates []candidate.Group
	for i, g := range groups {
		if s.heartbeat.CheckAndReset() {
			s.notify(progress.Event{
				Stage:   progress.StageCandidates,
				Kind:    progress.EventHeartbeat,
				Size:    g.Size,
				Current: i + 1,
				Total:   total,
			})
		}
		if len(g.Files) < 2 {
			continue
		}
		candidates = append(candidates, g)
		for _, f := range g.Files {
			s.notify(progress.Event{
				Stage: progress.StageCandidates,
				Kind:  progress.EventCandidateGroup,
				Path:  f.FullPath,
				Size:  g.Size,
				Total: len(g.Files),
			})
		}
		s.heartbeat.Reset()
	}

	count := s.index.CandidateCount()
	s.notify(progress.Event{Stage: progress.StageCandidates, Kind: progress.EventStageEnd, Current: count, Total: count})
	s.heartbeat.Reset()
	return candidates
}

func (s *Session) compareAll(groups []candidate.Group, maxBufferSize uint32) error {
	tally := &comparator.Tally{Total: s.index.CandidateCount()}
	s.notify(progress.Event{Stage: progress.StageCompare, Kind: progress.EventStageStart, Total: tally.Total})
	s.heartbeat.Reset()

	newEngine := func() *comparator.Engine {
		e := comparator.NewEngine(s.reader, s.unit, maxBufferSize)
		e.Heartbeat = s.heartbeat
		e.Observer = s.observer
		e.Tally = tally
		return e
	}

	var results [][]internal.DuplicateGroup
	if s.workers > 1 && len(groups) > 1 {
		var err error
		results, err = s.compareParallel(groups, newEngine)
		if err != nil {
			return err
		}
	} else {
		engine := newEngine()
		results = make([][]internal.DuplicateGroup, len(groups))
		for i, g := range groups {
			results[i] = engine.Compare(g.Files)
		}
	}

	for _, r := range results {
		s.builder.Add(r...)
	}

	s.notify(progress.Event{Stage: progress.StageCompare, Kind: progress.EventStageEnd, Current: tally.Processed(), Total: tally.Total})
	s.heartbeat.Reset()
	return nil
}

// compareParallel 每个桶作为一个任务提交到 ants 池
// 每个工作者独占一个 Engine，结果按桶的顺序返回
func (s *Session) compareParallel(groups []candidate.Group, newEngine func() *comparator.Engine) ([][]internal.DuplicateGroup, error) {
	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("创建 goroutine 池失败: %w", err)
	}
	defer pool.Release()

	engines := make(chan *comparator.Engine, s.workers)
	for i := 0; i < s.workers; i++ {
		engines <- newEngine()
	}

	logger.Get().Info().Int("workers", s.workers).Int("buckets", len(groups)).Msg("并行比较候选文件")

	results := make([][]internal.DuplicateGroup, len(groups))
	var wg sync.WaitGroup
	for i, g := range groups {
		i, g := i, g
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			engine := <-engines
			results[i] = engine.Compare(g.Files)
			engines <- engine
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("提交比较任务失败: %w", err)
		}
	}
	wg.Wait()

	return results, nil
}

func (s *Session) notify(e progress.Event) {
	s.observer.Notify(e)
}
