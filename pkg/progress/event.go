package progress

// Stage 扫描阶段
type Stage int

const (
	StageScan       Stage = 1 // 遍历目录
	StageCandidates Stage = 2 // 统计候选文件
	StageCompare    Stage = 3 // 比较候选文件
)

// EventKind 事件类型
type EventKind int

const (
	EventStageStart EventKind = iota
	EventStageEnd
	EventDirectory
	EventFileFound
	EventSkippedEntry
	EventCandidateGroup
	EventHeartbeat
	EventMatch
)

// Event 扫描过程中产生的进度事件，不影响扫描结果
type Event struct {
	Stage Stage
	Kind  EventKind
	// 当前文件或目录
	Path string
	// 比较阶段中与 Path 对比的另一个文件
	OtherPath string
	Size      uint64
	Current   int
	Total     int
}

// Observer 接收进度事件
type Observer interface {
	Notify(Event)
}

// ObserverFunc 函数适配器
type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) { f(e) }

// Observers 将事件依次转发给多个观察者
type Observers []Observer

func (o Observers) Notify(e Event) {
	for _, observer := range o {
		if observer != nil {
			observer.Notify(e)
		}
	}
}

// Discard 丢弃所有事件
var Discard Observer = ObserverFunc(func(Event) {})
