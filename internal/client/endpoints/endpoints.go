// Package endpoints holds the REST path templates of the healthcare API.
package endpoints

import (
	"net/url"
	"strconv"
)

const (
	Register = "/auth/register"
	Login    = "/auth/login"
	Refresh  = "/auth/refresh"
	Logout   = "/auth/logout"

	Reminders        = "/reminders"
	Pharmacies       = "/pharmacy"
	NearbyPharmacies = "/pharmacy/nearby"
	Files            = "/files"
)

func Reminder(id int64) string {
	return Reminders + "/" + strconv.FormatInt(id, 10)
}

func CompleteReminder(id int64) string {
	return Reminder(id) + "/complete"
}

func Pharmacy(id int64) string {
	return Pharmacies + "/" + strconv.FormatInt(id, 10)
}

// Nearby returns the nearby-pharmacy path with lat and long query parameters.
func Nearby(lat, long float64) string {
	q := url.Values{}
	q.Set("lat", formatCoord(lat))
	q.Set("long", formatCoord(long))
	return NearbyPharmacies + "?" + q.Encode()
}

func File(id int64) string {
	return Files + "/" + strconv.FormatInt(id, 10)
}

// FileList returns the file listing path, filtered by reminder when
// reminderID is non-nil.
func FileList(reminderID *int64) string {
	if reminderID == nil {
		return Files
	}
	q := url.Values{}
	q.Set("reminderId", strconv.FormatInt(*reminderID, 10))
	return Files + "?" + q.Encode()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
