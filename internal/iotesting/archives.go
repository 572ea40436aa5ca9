package iotesting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

// Member is the content of an archive member for test archives.
type Member struct {
	Name string
	// Rows are joined with newlines and encoded as ISO-8859-1.
	Rows []string
	// Store disables compression, so the content can be found and
	// damaged in the archive bytes.
	Store bool
}

// Latin1 encodes a UTF-8 string as ISO-8859-1.
func Latin1(t *testing.T, s string) []byte {
	t.Helper()
	res, err := charmap.ISO8859_1.NewEncoder().String(s)
	require.NoError(t, err)
	return []byte(res)
}

// MemberBytes returns encoded content of a member as written to archives.
func MemberBytes(t *testing.T, m Member) []byte {
	t.Helper()
	if len(m.Rows) == 0 {
		return nil
	}
	return Latin1(t, strings.Join(m.Rows, "\n")+"\n")
}

// WriteZip creates an archive in dir and returns its path.
func WriteZip(t *testing.T, dir, name string, members ...Member) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, m := range members {
		method := zip.Deflate
		if m.Store {
			method = zip.Store
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: m.Name, Method: method})
		require.NoError(t, err)
		_, err = w.Write(MemberBytes(t, m))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}
