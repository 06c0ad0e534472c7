//go:build linux || darwin || freebsd

package comparator

import "golang.org/x/sys/unix"

func blockSize(path string) (uint32, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return uint32(st.Bsize), nil
}
