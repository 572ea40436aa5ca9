package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/cnpjdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotConnectedError_Structure(t *testing.T) {
	err := NotConnectedError()

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

func TestWrappingErrors(t *testing.T) {
	originalErr := errors.New("connection failed")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{"gorm", GORMConnectionError(originalErr),
			errcode.SchemaGORMConnectionError},
		{"create", CreateSchemaError(originalErr), errcode.SchemaCreateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.ErrorIs(t, gnErr.Err, originalErr)
		})
	}
}
