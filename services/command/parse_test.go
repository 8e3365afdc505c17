package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		name string
		args []string
	}{
		{"help", "help", nil},
		{"create_user c1 Asha", "create_user", []string{"c1", "Asha"}},
		{`create_user c1 "Asha Rao"`, "create_user", []string{"c1", "Asha Rao"}},
		{`add_note "first session went well" extra`, "add_note", []string{"first session went well", "extra"}},
		{"  spaced   out  ", "spaced", []string{"out"}},
		{"", "", nil},
		{`""`, "", nil},
		{`say "unterminated quote`, "say", []string{"unterminated quote"}},
	}
	for _, tt := range tests {
		name, args := parseCommand(tt.line)
		assert.Equal(t, tt.name, name, "line %q", tt.line)
		assert.Equal(t, tt.args, args, "line %q", tt.line)
	}
}

func TestParseCommandStripsQuotes(t *testing.T) {
	_, args := parseCommand(`set_info name "Asha Rao"`)
	assert.Equal(t, []string{"name", "Asha Rao"}, args)
}
