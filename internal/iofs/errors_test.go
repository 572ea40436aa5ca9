package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/cnpjdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	origErr := errors.New("root cause")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		path string
		frag string
	}{
		{"create dir", CreateDirError("/dir", origErr),
			errcode.CreateDirError, "/dir", "cannot create"},
		{"copy file", CopyFileError("/file", origErr),
			errcode.CopyFileError, "/file", "cannot copy"},
		{"read file", ReadFileError("/path", origErr),
			errcode.ReadFileError, "/path", "cannot read"},
		{"data root", DataRootMissingError("/data", origErr),
			errcode.DataRootMissingError, "/data", "data root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])
			assert.ErrorIs(t, gnErr.Err, origErr)
			assert.Contains(t, gnErr.Err.Error(), "from")
			assert.Contains(t, gnErr.Err.Error(), tt.frag)
		})
	}
}

func TestDataRootMissingErrorNilCause(t *testing.T) {
	err := DataRootMissingError("/data", nil)
	gnErr := err.(*gn.Error)
	assert.Contains(t, gnErr.Err.Error(), "not a directory")
}
