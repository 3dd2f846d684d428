package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// CountdownState classifies how close a departure is
type CountdownState string

const (
	CountdownMissed   CountdownState = "missed"
	CountdownImminent CountdownState = "imminent" // under 10 minutes
	CountdownSoon     CountdownState = "soon"     // under an hour
	CountdownLater    CountdownState = "later"
)

// Countdown is the time left until a departure today
type Countdown struct {
	MinutesLeft int            `json:"minutes_left"`
	State       CountdownState `json:"state"`
}

// ParseClock parses an HH:MM or HH:MM:SS wall-clock string
func ParseClock(value string) (hour, minute, second int, err error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid time %q: expected HH:MM[:SS]", value)
	}

	fields := make([]int, 3)
	limits := []int{23, 59, 59}
	for i, part := range parts {
		n, convErr := strconv.Atoi(part)
		if convErr != nil || n < 0 || n > limits[i] {
			return 0, 0, 0, fmt.Errorf("invalid time %q: expected HH:MM[:SS]", value)
		}
		fields[i] = n
	}

	return fields[0], fields[1], fields[2], nil
}

// NormalizeClock returns value as HH:MM:SS
func NormalizeClock(value string) (string, error) {
	h, m, s, err := ParseClock(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s), nil
}

// NewCountdown computes the minutes left until departure (seconds ignored) on now's day
func NewCountdown(departure string, now time.Time) (*Countdown, error) {
	h, m, _, err := ParseClock(departure)
	if err != nil {
		return nil, err
	}

	target := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	minutes := int(math.Floor(target.Sub(now).Minutes()))

	countdown := &Countdown{MinutesLeft: minutes}
	switch {
	case minutes < 0:
		countdown.State = CountdownMissed
	case minutes < 10:
		countdown.State = CountdownImminent
	case minutes < 60:
		countdown.State = CountdownSoon
	default:
		countdown.State = CountdownLater
	}
	return countdown, nil
}
