package department

import "time"

// Department is a municipal office. Its coordinates are the authoritative
// geofence center for attendance scans of its employees.
type Department struct {
	ID        string
	Name      string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasLocation reports whether the office coordinate is set. Departments
// without a coordinate skip geofence evaluation.
func (d *Department) HasLocation() bool {
	return d.Latitude != nil && d.Longitude != nil
}
