package errs

import "fmt"

type Code string

const (
	ScheduleConflict   Code = "SCHEDULE_CONFLICT"
	ScheduleRequired   Code = "SCHEDULE_REQUIRED"
	NothingToUpdate    Code = "NOTHING_TO_UPDATE"
	InvalidScheduledAt Code = "INVALID_SCHEDULED_AT"
	UnknownPlatform    Code = "UNKNOWN_PLATFORM"
	ConfigExists       Code = "CONFIG_EXISTS"
)

var messages = map[Code]string{
	ScheduleConflict: `Invalid flag combination: cannot use --now with --scheduled-at

Usage:
  - Run the job as soon as a worker is free:
      oneoffctl %[1]s --now
  - Run the job at a given time:
      oneoffctl %[1]s --scheduled-at 2025-06-01T09:00:00Z`,

	ScheduleRequired: `Missing schedule: provide --scheduled-at or --now

Examples:
  oneoffctl %[1]s --scheduled-at 2025-06-01T09:00:00Z
  oneoffctl %[1]s --now`,

	NothingToUpdate: `Nothing to update: pass at least one field flag

Example:
  oneoffctl jobs update %[1]s --priority 8`,

	InvalidScheduledAt: `Invalid --scheduled-at %[1]q: expected RFC3339 (2025-06-01T09:00:00Z) or "now"`,

	UnknownPlatform: `Unknown platform %[1]q

Valid platforms:
  %[2]s`,

	ConfigExists: `Config file already exists: %[1]s

Use --force to overwrite it with the defaults.`,
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	return fmt.Sprintf(msg, a...)
}
