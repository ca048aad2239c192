package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "houses.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Price\n1\n"), 0644))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "valid csv", path: csvPath},
		{name: "missing file", path: filepath.Join(dir, "absent.csv"), wantErr: "does not exist"},
		{name: "directory", path: dir, wantErr: "is a directory"},
	}

	v := NewFileValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateInputFile(tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateInputFile_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "houses.parquet")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	err := NewFileValidator(nil).ValidateInputFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported input format")
}

func TestValidateOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "processed", "nested")

	err := NewFileValidator(nil).ValidateOutputDirectory(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
