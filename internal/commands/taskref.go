package commands

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"tasktrack/internal/service"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based dashboard position, 0 when ID is set
	ID  string // task id or unique id prefix
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// An all-digit first argument is a dashboard position; anything else is an
// id or id prefix. Only the first argument is read.
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	ref := strings.TrimSpace(args[0])
	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil || num < 1 {
			return TaskRef{}, fmt.Errorf("task number out of range: %s", ref)
		}
		return TaskRef{Num: num}, nil
	}
	if strings.ContainsAny(ref, " /?#") {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
	}
	return TaskRef{ID: ref}, nil
}

func (r TaskRef) String() string {
	if r.ID != "" {
		return r.ID
	}
	return strconv.Itoa(r.Num)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// dashboardOrder returns tasks grouped by status in the order the dashboard
// prints them; positions in the result are the numbers shown to the user.
func dashboardOrder(tasks []service.Task) []service.Task {
	ordered := make([]service.Task, 0, len(tasks))
	for _, status := range service.Statuses {
		for _, t := range tasks {
			if t.Status == status {
				ordered = append(ordered, t)
			}
		}
	}
	// statuses the client does not know go last
	for _, t := range tasks {
		if !slices.Contains(service.Statuses, t.Status) {
			ordered = append(ordered, t)
		}
	}
	return ordered
}
