package commands

import (
	"fmt"

	"github.com/jakechorley/ilford-attendance/pkg/core/model"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
)

// statusColor returns the color used to print an attendance status
func statusColor(status db.AttendanceStatus) string {
	switch status {
	case db.AttendancePresent:
		return colorGreen
	case db.AttendanceAbsent:
		return colorRed
	case db.AttendanceLate:
		return colorYellow
	case db.AttendanceJustified:
		return colorCyan
	default:
		return colorDim
	}
}

// attendanceCell renders today's attendance of a roster entry
func attendanceCell(snapshot *model.AttendanceSnapshot, width int) string {
	if snapshot == nil {
		return fmt.Sprintf("%s%-*s%s", colorDim, width, "sin marcar", colorReset)
	}
	return fmt.Sprintf("%s%-*s%s", statusColor(snapshot.Status), width, snapshot.Label, colorReset)
}

// nameColumnWidth returns the padded width of the name column
func nameColumnWidth(entries []model.RosterEntry) int {
	maxNameLen := 20
	for _, e := range entries {
		if len(e.Name) > maxNameLen {
			maxNameLen = len(e.Name)
		}
	}
	return maxNameLen + 2
}

// onOff parses the argument of freeDay
func onOff(arg string) (bool, error) {
	switch arg {
	case "on", "true", "enable":
		return true, nil
	case "off", "false", "disable":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got: %s", arg)
}
