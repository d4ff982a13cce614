package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriveFileID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://drive.google.com/file/d/1AbC_dEf/view?usp=sharing", "1AbC_dEf"},
		{"https://drive.google.com/open?id=1AbC_dEf", "1AbC_dEf"},
		{"https://drive.google.com/uc?id=1AbC_dEf&export=download", "1AbC_dEf"},
		{"https://drive.google.com/drive/folders/xyz", ""},
		{"not a url at all ::", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, driveFileID(tt.raw), tt.raw)
	}
}
