//go:build !linux && !darwin

package fits

import (
	"fmt"
	"os"
)

// File is an opened FITS file. On platforms without the mmap loader the
// contents are read into memory.
type File struct {
	data []byte
}

// Open reads the FITS file at path into memory.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty FITS file: %s", path)
	}
	return &File{data: data}, nil
}

// Bytes returns the file contents.
func (f *File) Bytes() []byte { return f.data }

// Header parses the primary header from the start of the file.
func (f *File) Header() (*Header, error) {
	return ReadHeader(f.data)
}

// HeaderAt parses a header starting at the given byte offset, for files
// holding more than one header-data unit.
func (f *File) HeaderAt(off int) (*Header, error) {
	if off < 0 || off > len(f.data) {
		return nil, fmt.Errorf("header offset %d outside file of %d bytes", off, len(f.data))
	}
	return ReadHeader(f.data[off:])
}

func (f *File) Close() error {
	f.data = nil
	return nil
}
