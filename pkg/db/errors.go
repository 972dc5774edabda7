package db

import "errors"

// ErrDuplicateAttendance is returned when an insert would create a second
// non-deleted attendance record for a volunteer on the same day
var ErrDuplicateAttendance = errors.New("attendance already exists for this volunteer and day")
