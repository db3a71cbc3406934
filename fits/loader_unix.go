//go:build linux || darwin

package fits

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is an opened FITS file, backed by a read-only mmap.
type File struct {
	f    *os.File
	data []byte
}

// Open maps the FITS file at path read-only.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.Size() == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("empty FITS file: %s", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	return &File{f: f, data: data}, nil
}

// Bytes returns the mapped file contents. The slice is invalid after
// Close.
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
	var err error
	if f.data != nil {
		err = unix.Munmap(f.data)
		f.data = nil
	}
	if f.f != nil {
		err = errors.Join(err, f.f.Close())
		f.f = nil
	}
	return err
}
