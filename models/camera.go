package models

// Coverage360 marks an omnidirectional camera; such records carry no direction.
const Coverage360 = "360"

// DataSourceUserSubmitted is stamped on every record created through the API.
const DataSourceUserSubmitted = "User Submitted"

type Camera struct {
	ID             string   `json:"id"`
	CameraNumber   string   `json:"camera_number,omitempty"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	Type           string   `json:"type"`
	Owner          string   `json:"owner,omitempty"`
	Network        string   `json:"network,omitempty"`
	Purpose        string   `json:"purpose,omitempty"`
	Suburb         string   `json:"suburb,omitempty"`
	Location       string   `json:"location,omitempty"`
	Coverage       string   `json:"coverage,omitempty"`
	Direction      *int     `json:"direction"`
	DetectionTypes []string `json:"detection_types,omitempty"`
	DataSource     string   `json:"data_source,omitempty"`
	LastUpdated    string   `json:"last_updated,omitempty"`
	CreatedBy      string   `json:"created_by,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
	UpdatedBy      string   `json:"updated_by,omitempty"`
	UpdatedAt      string   `json:"updated_at,omitempty"`
}

// NormalizeCoverage clears the bearing of omnidirectional cameras.
func (c *Camera) NormalizeCoverage() {
	if c.Coverage == Coverage360 {
		c.Direction = nil
	}
}

// CameraListResponse is the body of GET /api/cameras.
type CameraListResponse struct {
	Total   int      `json:"total"`
	Cameras []Camera `json:"cameras"`
}
