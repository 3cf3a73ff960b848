package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
)

func TestLoadCorrespondence(t *testing.T) {
	want := map[string][]string{"H1": {"P1"}, "H2": {"P2", "P3"}}

	fromTOML, hashTOML, err := loadCorrespondence(writeInput(t, "links.toml", "H1 = [\"P1\"]\nH2 = [\"P2\", \"P3\"]\n"))
	require.NoError(t, err)
	assert.Equal(t, want, fromTOML)

	fromJSON, hashJSON, err := loadCorrespondence(writeInput(t, "links.json", `{"H1": ["P1"], "H2": ["P2", "P3"]}`))
	require.NoError(t, err)
	assert.Equal(t, want, fromJSON)

	assert.NotEmpty(t, hashTOML)
	assert.NotEqual(t, hashTOML, hashJSON, "the hash covers the file content")
}

func TestLoadCorrespondenceErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		code errors.Code
	}{
		{"missing", func(t *testing.T) string { return t.TempDir() + "/absent.json" }, errors.ErrCodeFileNotFound},
		{"bad json", func(t *testing.T) string { return writeInput(t, "links.json", `{"H1": "P1"`) }, errors.ErrCodeInvalidFormat},
		{"bad toml", func(t *testing.T) string { return writeInput(t, "links.toml", "H1 = P1") }, errors.ErrCodeInvalidFormat},
		{"empty", func(t *testing.T) string { return writeInput(t, "links.json", `{}`) }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loadCorrespondence(tt.path(t))
			assert.True(t, errors.Is(err, tt.code), "error = %v, want %s", err, tt.code)
		})
	}
}
