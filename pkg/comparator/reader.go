package comparator

import (
	"errors"
	"io"
	"sync/atomic"

	"github.com/spf13/afero"

	"github.com/moyu-x/duplicate-finder/pkg/logger"
)

// Reader 读取文件开头的若干字节
// 每次读取都单独打开并关闭文件，句柄不会跨候选文件保留
type Reader struct {
	fs       afero.Fs
	failures atomic.Int64
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// Read 读取 path 的前 n 个字节到 buf 中并返回实际读到的部分
// 文件不足 n 字节时返回整个文件；打开或读取失败时返回空切片
func (r *Reader) Read(path string, n uint32, buf []byte) []byte {
	buf = grow(buf, n)

	file, err := r.fs.Open(path)
	if err != nil {
		r.failures.Add(1)
		logger.Get().Warn().Err(err).Str("path", path).Msg("打开文件失败，按空内容参与比较")
		return buf[:0]
	}
	defer file.Close()

	read, err := io.ReadFull(file, buf[:n])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		r.failures.Add(1)
		logger.Get().Warn().Err(err).Str("path", path).Msg("读取文件失败，按空内容参与比较")
		return buf[:0]
	}

	return buf[:read]
}

// Failures 返回读取失败次数
func (r *Reader) Failures() int {
	return int(r.failures.Load())
}

func grow(buf []byte, n uint32) []byte {
	if uint64(cap(buf)) >= uint64(n) {
		return buf[:n]
	}
	return make([]byte, n)
}
