package logsinktest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xraph/strata/logsink"
)

var _ logsink.Sink = (*Recorder)(nil)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.Log("MainActivity", "onCreate: one")
	r.Log("TestViewModel", "init: two")
	r.Log("MainActivity", "onCreate: three")

	assert.Equal(t, []Entry{
		{Tag: "MainActivity", Message: "onCreate: one"},
		{Tag: "TestViewModel", Message: "init: two"},
		{Tag: "MainActivity", Message: "onCreate: three"},
	}, r.Entries())
	assert.Equal(t, []string{"onCreate: one", "onCreate: three"}, r.Tagged("MainActivity"))
	assert.Empty(t, r.Tagged("Other"))
}
