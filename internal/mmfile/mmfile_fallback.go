//go:build !unix

package mmfile

import "os"

// Open reads the entire file when mmap is not available.
func Open(path string, _ bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{data: data, unmap: func([]byte) error { return nil }}, nil
}
