package tui

import (
	"sync"

	"github.com/moyu-x/duplicate-finder/pkg/progress"
)

// snapshot 某一时刻的扫描进度
type snapshot struct {
	stage       progress.Stage
	filesFound  int
	skipped     int
	directories int
	candidates  int
	processed   int
	total       int
	matches     int
	currentFile string
}

// tracker 把扫描线程的事件汇总成快照，界面按固定频率读取
// 扫描线程不需要等待界面刷新
type tracker struct {
	mu   sync.Mutex
	snap snapshot
}

func (t *tracker) Notify(e progress.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e.Kind {
	case progress.EventStageStart:
		t.snap.stage = e.Stage
		if e.Stage == progress.StageCompare {
			t.snap.total = e.Total
			t.snap.processed = 0
		}
	case progress.EventStageEnd:
		if e.Stage == progress.StageCompare {
			t.snap.processed = e.Current
		}
		if e.Stage == progress.StageCandidates {
			t.snap.candidates = e.Total
		}
	case progress.EventDirectory:
		t.snap.directories++
	case progress.EventFileFound:
		t.snap.filesFound++
		t.snap.currentFile = e.Path
	case progress.EventSkippedEntry:
		t.snap.skipped++
	case progress.EventCandidateGroup:
		t.snap.currentFile = e.Path
	case progress.EventHeartbeat:
		t.snap.currentFile = e.Path
		if e.Stage == progress.StageCompare {
			t.snap.processed = e.Current
		}
	case progress.EventMatch:
		t.snap.matches++
		t.snap.processed = e.Current
		t.snap.currentFile = e.OtherPath
	}
}

func (t *tracker) Snapshot() snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}
