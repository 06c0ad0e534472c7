package internal

import "time"

const (
	// 报告数据库默认路径
	DefaultDatabasePath = "~/.duplicate-finder/reports.db"

	// 比较缓冲区上限 (1 GiB)
	DefaultBufferCeiling = 1024 * 1024 * 1024

	// 比较缓冲区下限
	DefaultBufferFloor = 4096

	// 无法查询磁盘分配单元时使用的默认值
	DefaultAllocationUnit = 1024

	// 心跳间隔
	DefaultHeartbeatInterval = 10 * time.Second

	// 默认比较并发数，1 表示完全顺序执行
	DefaultWorkers = 1
)
