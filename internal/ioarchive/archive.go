// Package ioarchive streams members of CNPJ zip archives. Members are
// read straight from the compressed representation, nothing is unpacked
// to disk.
package ioarchive

import (
	"io"
	"path/filepath"
	"slices"

	"github.com/klauspost/compress/zip"
)

// Member is a file inside an archive.
type Member struct {
	Name string
	// Size is the uncompressed length in bytes.
	Size uint64
}

// Archive is a zip container opened for reading.
type Archive struct {
	path    string
	zr      *zip.ReadCloser
	members []Member
	files   map[string]*zip.File
}

// Open opens a zip archive read-only. A missing file, broken central
// directory or any other integrity problem yields an
// errcode.ArchiveCorruptError.
func Open(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, CorruptArchiveError(path, err)
	}

	res := &Archive{
		path:  path,
		zr:    zr,
		files: make(map[string]*zip.File),
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		res.files[f.Name] = f
		res.members = append(res.members, Member{
			Name: f.Name,
			Size: f.UncompressedSize64,
		})
	}
	slices.SortFunc(res.members, func(a, b Member) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return res, nil
}

// Path returns the file system path of the archive.
func (a *Archive) Path() string {
	return a.path
}

// Name returns the base name of the archive.
func (a *Archive) Name() string {
	return filepath.Base(a.path)
}

// Members lists regular files of the archive sorted by name.
func (a *Archive) Members() []Member {
	return slices.Clone(a.members)
}

// Raw returns undecoded bytes of a member.
func (a *Archive) Raw(m Member) (io.ReadCloser, error) {
	f, ok := a.files[m.Name]
	if !ok {
		return nil, MemberNotFoundError(a.path, m.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, CorruptArchiveError(a.path, err)
	}
	return &rawReader{rc: rc, path: a.path}, nil
}

// Rows returns a forward-only reader of decoded rows of a member.
func (a *Archive) Rows(m Member) (*RowReader, error) {
	rc, err := a.Raw(m)
	if err != nil {
		return nil, err
	}
	return NewRowReader(rc), nil
}

// Close releases the archive.
func (a *Archive) Close() error {
	return a.zr.Close()
}

// rawReader reports read failures of compressed data as corruption.
type rawReader struct {
	rc   io.ReadCloser
	path string
}

func (r *rawReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	if err != nil && err != io.EOF {
		err = CorruptArchiveError(r.path, err)
	}
	return n, err
}

func (r *rawReader) Close() error {
	return r.rc.Close()
}
