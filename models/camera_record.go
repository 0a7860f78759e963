package models

// CameraRecord is the SQL row shape of a Camera. Position keeps the
// collection's insertion order, which the JSON document gets for free.
type CameraRecord struct {
	ID             string   `gorm:"primaryKey;size:64"`
	Position       int      `gorm:"not null;index"`
	CameraNumber   string   `gorm:"size:64"`
	Lat            float64  `gorm:"not null"`
	Lng            float64  `gorm:"not null"`
	Type           string   `gorm:"not null"`
	Owner          string
	Network        string
	Purpose        string
	Suburb         string
	Location       string
	Coverage       string   `gorm:"size:16"`
	Direction      *int
	DetectionTypes []string `gorm:"serializer:json"`
	DataSource     string
	LastUpdated    string
	CreatedBy      string
	CreatedAt      string
	UpdatedBy      string
	UpdatedAt      string
}

func (CameraRecord) TableName() string { return "cameras" }

func NewCameraRecord(c Camera, position int) CameraRecord {
	return CameraRecord{
		ID:             c.ID,
		Position:       position,
		CameraNumber:   c.CameraNumber,
		Lat:            c.Lat,
		Lng:            c.Lng,
		Type:           c.Type,
		Owner:          c.Owner,
		Network:        c.Network,
		Purpose:        c.Purpose,
		Suburb:         c.Suburb,
		Location:       c.Location,
		Coverage:       c.Coverage,
		Direction:      c.Direction,
		DetectionTypes: c.DetectionTypes,
		DataSource:     c.DataSource,
		LastUpdated:    c.LastUpdated,
		CreatedBy:      c.CreatedBy,
		CreatedAt:      c.CreatedAt,
		UpdatedBy:      c.UpdatedBy,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (r CameraRecord) Camera() Camera {
	return Camera{
		ID:             r.ID,
		CameraNumber:   r.CameraNumber,
		Lat:            r.Lat,
		Lng:            r.Lng,
		Type:           r.Type,
		Owner:          r.Owner,
		Network:        r.Network,
		Purpose:        r.Purpose,
		Suburb:         r.Suburb,
		Location:       r.Location,
		Coverage:       r.Coverage,
		Direction:      r.Direction,
		DetectionTypes: r.DetectionTypes,
		DataSource:     r.DataSource,
		LastUpdated:    r.LastUpdated,
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
		UpdatedBy:      r.UpdatedBy,
		UpdatedAt:      r.UpdatedAt,
	}
}
