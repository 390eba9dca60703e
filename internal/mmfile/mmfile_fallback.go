//go:build !unix && !windows

package mmfile

import "os"

// Map reads the file at path into memory on platforms without mmap support.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
