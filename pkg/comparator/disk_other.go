//go:build !(linux || darwin || freebsd)

package comparator

import "errors"

func blockSize(path string) (uint32, error) {
	return 0, errors.New("allocation unit lookup not supported on this platform")
}
