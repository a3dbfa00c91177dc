package errs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMsg(t *testing.T) {
	assert.Contains(t, Msg(ScheduleConflict, "jobs create"), "oneoffctl jobs create --now")
	assert.Equal(t, `Invalid --scheduled-at "tomorrow": expected RFC3339 (2025-06-01T09:00:00Z) or "now"`,
		Msg(InvalidScheduledAt, "tomorrow"))
	assert.Equal(t, "SOMETHING_ELSE", Msg(Code("SOMETHING_ELSE")))
}
