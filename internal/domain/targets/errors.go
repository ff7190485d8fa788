package targets

import (
	"fmt"
	"strings"
)

// LineError reports one line of the target block that could not be applied
type LineError struct {
	Line    int
	Text    string
	Message string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s (%q)", e.Line, e.Message, e.Text)
}

// Summary joins all line errors into one multi-line message.
func (c *Config) Summary() string {
	if len(c.Errors) == 0 {
		return ""
	}
	lines := make([]string, 0, len(c.Errors))
	for _, e := range c.Errors {
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}
