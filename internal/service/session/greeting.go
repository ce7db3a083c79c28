package session

import (
	"fmt"
	"time"
)

func TimeOfDayGreeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func greetingReply(t time.Time, equipment string) string {
	return fmt.Sprintf("%s! I'm ready to help with your %s. What seems to be the problem?", TimeOfDayGreeting(t), equipment)
}
