package session

import (
	"github.com/moyu-x/duplicate-finder/pkg/logger"
	"github.com/moyu-x/duplicate-finder/pkg/progress"
)

// LogObserver 将进度事件写入日志
// 并行比较时会被多个 goroutine 同时调用
type LogObserver struct{}

func (LogObserver) Notify(e progress.Event) {
	log := logger.Get()

	switch e.Kind {
	case progress.EventStageStart:
		log.Info().Int("stage", int(e.Stage)).Int("total", e.Total).Msgf("[Stage %d] 阶段开始: %s", e.Stage, stageName(e.Stage))
	case progress.EventStageEnd:
		log.Info().Int("stage", int(e.Stage)).Int("count", e.Current).Msgf("[Stage %d] 阶段结束: %s", e.Stage, stageName(e.Stage))
	case progress.EventDirectory:
		log.Debug().Str("dir", e.Path).Msg("[Stage 1] 扫描目录")
	case progress.EventFileFound:
		log.Debug().Str("file", e.Path).Uint64("size", e.Size).Msg("[Stage 1] 发现文件")
	case progress.EventSkippedEntry:
		log.Warn().Str("file", e.Path).Uint64("size", e.Size).Msg("[Stage 1] 文件已在列表中，跳过")
	case progress.EventCandidateGroup:
		log.Info().Uint64("size", e.Size).Int("members", e.Total).Str("file", e.Path).Msg("[Stage 2] 候选文件")
	case progress.EventHeartbeat:
		if e.Stage == progress.StageCandidates {
			log.Info().Uint64("size", e.Size).Msgf("[Stage 2] 心跳: 正在统计大小为 %d 的文件 (%d/%d)", e.Size, e.Current, e.Total)
			return
		}
		log.Info().
			Str("original", e.Path).
			Str("candidate", e.OtherPath).
			Msgf("[Stage 3] 心跳: 正在比较大小为 %d 的文件 (候选 %d/%d)", e.Size, e.Current, e.Total)
	case progress.EventMatch:
		log.Info().
			Str("original", e.Path).
			Str("duplicate", e.OtherPath).
			Msgf("[Stage 3] 发现重复: 大小 %d (候选 %d/%d)", e.Size, e.Current, e.Total)
	}
}

func stageName(stage progress.Stage) string {
	switch stage {
	case progress.StageScan:
		return "扫描所有文件"
	case progress.StageCandidates:
		return "统计候选文件"
	case progress.StageCompare:
		return "比较候选文件"
	default:
		return "未知阶段"
	}
}
