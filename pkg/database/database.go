package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/moyu-x/duplicate-finder/internal"
	"github.com/moyu-x/duplicate-finder/pkg/logger"
)

// ErrScanNotFound 指定的扫描记录不存在
var ErrScanNotFound = errors.New("scan not found")

type ScanRecord struct {
	ID               string    `gorm:"primaryKey"`
	Roots            string    `gorm:"not null"`
	TotalReclaimable uint64    `gorm:"not null"`
	MaxBufferSize    uint32    `gorm:"not null"`
	AllocationUnit   uint32    `gorm:"not null"`
	FilesScanned     int       `gorm:"not null"`
	Candidates       int       `gorm:"not null"`
	SkippedEntries   int       `gorm:"not null"`
	ReadFailures     int       `gorm:"not null"`
	GroupCount       int       `gorm:"not null"`
	StartedAt        time.Time `gorm:"not null"`
	FinishedAt       time.Time `gorm:"not null;index"`

	Groups []GroupRecord `gorm:"foreignKey:ScanID;constraint:OnDelete:CASCADE"`
}

func (ScanRecord) TableName() string {
	return "scans"
}

type GroupRecord struct {
	ID           int64  `gorm:"primaryKey"`
	ScanID       string `gorm:"index;not null"`
	Position     int    `gorm:"not null"`
	Size         uint64 `gorm:"not null"`
	PartialLimit *uint32
	FileType     string

	Files []FileEntry `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

func (GroupRecord) TableName() string {
	return "duplicate_groups"
}

type FileEntry struct {
	ID       int64  `gorm:"primaryKey"`
	GroupID  int64  `gorm:"index;not null"`
	Position int    `gorm:"not null"`
	Name     string `gorm:"not null"`
	FullPath string `gorm:"not null"`
	Size     uint64 `gorm:"not null"`
}

func (FileEntry) TableName() string {
	return "duplicate_files"
}

// Database 扫描报告存储
type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	expandedPath, err := expandPath(dbPath)
	if err != nil {
		logger.Get().Error().Err(err).Msg("扩展数据库路径失败")
		return nil, err
	}

	logger.Get().Debug().Msgf("初始化数据库，路径: %s", expandedPath)

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		logger.Get().Error().Err(err).Msgf("创建数据库目录失败: %s", filepath.Dir(expandedPath))
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(expandedPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("打开数据库连接失败")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Get().Error().Err(err).Msg("获取数据库连接失败")
		return nil, err
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&ScanRecord{}, &GroupRecord{}, &FileEntry{}); err != nil {
		logger.Get().Error().Err(err).Msg("创建数据库表失败")
		return nil, err
	}

	return &Database{db: db}, nil
}

func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == '\\') {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// SaveScan 保存一次扫描的完整结果
func (d *Database) SaveScan(result *internal.ScanResult) error {
	if result == nil || result.ID == "" {
		return fmt.Errorf("扫描结果缺少编号")
	}

	record := toRecord(result)
	err := d.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&record).Error
	})
	if err != nil {
		logger.Get().Error().Err(err).Str("id", result.ID).Msg("保存扫描结果失败")
		return fmt.Errorf("保存扫描结果失败: %w", err)
	}

	logger.Get().Info().Str("id", result.ID).Int("groups", len(record.Groups)).Msg("扫描结果已保存")
	return nil
}

// ListScans 按完成时间倒序返回最近的扫描，不包含重复文件组
func (d *Database) ListScans(limit int) ([]ScanRecord, error) {
	var records []ScanRecord
	query := d.db.Order("finished_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("查询扫描记录失败: %w", err)
	}
	return records, nil
}

// LoadScan 读取一次扫描的完整结果
func (d *Database) LoadScan(id string) (*internal.ScanResult, error) {
	var record ScanRecord
	err := d.db.
		Preload("Groups", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Groups.Files", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrScanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("读取扫描记录失败: %w", err)
	}

	return fromRecord(&record), nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		logger.Get().Error().Err(err).Msg("获取数据库连接失败")
		return err
	}
	return sqlDB.Close()
}

func toRecord(result *internal.ScanResult) ScanRecord {
	record := ScanRecord{
		ID:               result.ID,
		Roots:            strings.Join(result.Roots, "\n"),
		TotalReclaimable: result.TotalReclaimableBytes,
		MaxBufferSize:    result.MaxBufferSize,
		AllocationUnit:   result.AllocationUnitSize,
		FilesScanned:     result.FilesScanned,
		Candidates:       result.Candidates,
		SkippedEntries:   result.SkippedEntries,
		ReadFailures:     result.ReadFailures,
		GroupCount:       len(result.DuplicateGroups),
		StartedAt:        result.StartTime,
		FinishedAt:       result.EndTime,
	}

	for i, g := range result.DuplicateGroups {
		group := GroupRecord{
			Position:     i,
			Size:         g.Size(),
			PartialLimit: g.PartialComparisonLimit,
			FileType:     g.FileType,
		}
		for j, f := range g.Files {
			group.Files = append(group.Files, FileEntry{
				Position: j,
				Name:     f.Name,
				FullPath: f.FullPath,
				Size:     f.Size,
			})
		}
		record.Groups = append(record.Groups, group)
	}
	return record
}

func fromRecord(record *ScanRecord) *internal.ScanResult {
	result := &internal.ScanResult{
		ID:                    record.ID,
		TotalReclaimableBytes: record.TotalReclaimable,
		MaxBufferSize:         record.MaxBufferSize,
		AllocationUnitSize:    record.AllocationUnit,
		FilesScanned:          record.FilesScanned,
		Candidates:            record.Candidates,
		SkippedEntries:        record.SkippedEntries,
		ReadFailures:          record.ReadFailures,
		StartTime:             record.StartedAt,
		EndTime:               record.FinishedAt,
	}
	if record.Roots != "" {
		result.Roots = strings.Split(record.Roots, "\n")
	}

	for _, g := range record.Groups {
		group := internal.DuplicateGroup{
			PartialComparisonLimit: g.PartialLimit,
			FileType:               g.FileType,
		}
		for _, f := range g.Files {
			group.Files = append(group.Files, internal.FileRecord{
				Size:     f.Size,
				Name:     f.Name,
				FullPath: f.FullPath,
			})
		}
		result.DuplicateGroups = append(result.DuplicateGroups, group)
	}
	return result
}
