package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/duplicate-finder/internal"
	"github.com/moyu-x/duplicate-finder/pkg/logger"
	"github.com/moyu-x/duplicate-finder/pkg/progress"
)

// FileWalker 深度优先遍历目录，对每个普通文件产生一条 FileRecord
type FileWalker struct {
	Fs       afero.Fs
	Observer progress.Observer
}

func NewFileWalker(fs afero.Fs) *FileWalker {
	return &FileWalker{
		Fs:       fs,
		Observer: progress.Discard,
	}
}

// Walk 遍历 root，无法访问的路径记录日志后跳过，不会中断遍历
// callback 返回的错误会终止遍历
// root 本身是指向目录的符号链接时会进入该目录，产生的路径仍以 root 开头；root 以下的符号链接照常跳过
func (w *FileWalker) Walk(root string, callback func(record internal.FileRecord) error) error {
	walkRoot := w.resolveRoot(root)

	return afero.Walk(w.Fs, walkRoot, func(path string, info os.FileInfo, err error) error {
		if walkRoot != root {
			if rel, relErr := filepath.Rel(walkRoot, path); relErr == nil {
				path = filepath.Join(root, rel)
			}
		}

		if err != nil {
			logger.Get().Warn().Err(err).Str("path", path).Msg("访问路径出错，已跳过")
			return nil
		}

		if info.IsDir() {
			w.notify(progress.Event{Stage: progress.StageScan, Kind: progress.EventDirectory, Path: path})
			return nil
		}

		// 符号链接、设备文件等不参与比较
		if !info.Mode().IsRegular() {
			logger.Get().Debug().Str("path", path).Str("mode", info.Mode().String()).Msg("跳过非普通文件")
			return nil
		}

		return callback(internal.FileRecord{
			Size:     uint64(info.Size()),
			Name:     info.Name(),
			FullPath: path,
		})
	})
}

// resolveRoot 返回实际遍历的路径，root 不是符号链接时原样返回
func (w *FileWalker) resolveRoot(root string) string {
	lstater, ok := w.Fs.(afero.Lstater)
	if !ok {
		return root
	}
	info, _, err := lstater.LstatIfPossible(root)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return root
	}

	target, err := w.Fs.Stat(root)
	if err != nil {
		logger.Get().Warn().Err(err).Str("root", root).Msg("扫描目录是无效的符号链接")
		return root
	}
	if !target.IsDir() {
		logger.Get().Warn().Str("root", root).Msg("扫描目录指向的不是目录，已跳过")
		return root
	}

	var resolved string
	switch fs := w.Fs.(type) {
	case *afero.OsFs:
		resolved, err = filepath.EvalSymlinks(root)
	case afero.LinkReader:
		resolved, err = fs.ReadlinkIfPossible(root)
		if err == nil && !filepath.IsAbs(resolved) {
			resolved = filepath.Join(filepath.Dir(root), resolved)
		}
	default:
		return root
	}
	if err != nil {
		logger.Get().Warn().Err(err).Str("root", root).Msg("解析符号链接失败")
		return root
	}

	logger.Get().Info().Str("root", root).Str("target", resolved).Msg("扫描目录是符号链接，进入目标目录")
	return resolved
}

func (w *FileWalker) notify(e progress.Event) {
	if w.Observer != nil {
		w.Observer.Notify(e)
	}
}

// NormalizeRoot 去掉末尾的路径分隔符并转换为绝对路径
func NormalizeRoot(dir string) string {
	if dir == "" {
		return dir
	}
	trimmed := strings.TrimRight(dir, `/\`)
	if trimmed == "" {
		trimmed = dir[:1]
	}
	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) {
		return cleaned
	}
	absPath, err := filepath.Abs(cleaned)
	if err != nil {
		return cleaned
	}
	return absPath
}
