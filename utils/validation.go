// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// NormalizePhone strips formatting characters so the same number always
// stores identically. Customers are keyed by (salon, normalized phone).
func NormalizePhone(phone string) string {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")
	return cleaned
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(NormalizePhone(phone))
}

// ValidateClockRange checks an "HH:mm" pair the way rule edits need it: both
// parse and start is strictly before end.
func ValidateClockRange(start, end string) bool {
	return clockMinutes(start) >= 0 && clockMinutes(end) >= 0 &&
		clockMinutes(start) < clockMinutes(end)
}

func clockMinutes(clock string) int {
	if len(clock) != 5 || clock[2] != ':' {
		return -1
	}
	h := int(clock[0]-'0')*10 + int(clock[1]-'0')
	m := int(clock[3]-'0')*10 + int(clock[4]-'0')
	for _, c := range clock {
		if c != ':' && (c < '0' || c > '9') {
			return -1
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}
