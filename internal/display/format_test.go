package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{5 << 30, "5.0 GiB"},
		{3 << 40, "3.0 TiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in), "FormatBytes(%d)", tt.in)
	}
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "0 files", Plural(0, "file"))
	assert.Equal(t, "1 file", Plural(1, "file"))
	assert.Equal(t, "2 files", Plural(2, "file"))
}
