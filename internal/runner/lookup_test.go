package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandName(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{"g++ -O2 a.cpp", "g++"},
		{"  ./a.out < in.txt", "./a.out"},
		{`"my tool" --flag`, "my tool"},
		{"CXX=clang++ LANG=C make all", "make"},
		{"A=1", ""},
		{"", ""},
		{`echo "unterminated`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			assert.Equal(t, tt.want, CommandName(tt.script))
		})
	}
}

func TestIsAvailable(t *testing.T) {
	assert.True(t, IsAvailable("echo hi"))
	assert.True(t, IsAvailable("./not-built-yet"))
	assert.True(t, IsAvailable(""))
	assert.False(t, IsAvailable("definitely-not-a-real-command-xyz --version"))
}
