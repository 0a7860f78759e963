// Package seed builds camera records from public datasets: the City of Perth
// CCTV export and the WA Police enforcement and AI camera lists.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"surveillance-map/be/models"
)

const (
	webMercatorExtent = 20037508.34
	// LastUpdated is the date the bundled datasets were collected.
	LastUpdated = "2025-10-28"
)

// WebMercatorToLatLng converts EPSG:3857 metres to WGS84 degrees.
func WebMercatorToLatLng(x, y float64) (lat, lng float64) {
	lng = x / webMercatorExtent * 180
	lat = y / webMercatorExtent * 180
	lat = 180 / math.Pi * (2*math.Atan(math.Exp(lat*math.Pi/180)) - math.Pi/2)
	return lat, lng
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// PerthImport is the result of parsing a City of Perth CSV export.
type PerthImport struct {
	Cameras []models.Camera
	Skipped int
}

// ParsePerthCSV reads the City of Perth export, which has "Camera Number",
// "x" and "y" columns in Web Mercator. Rows that fail to parse are skipped.
func ParsePerthCSV(r io.Reader) (*PerthImport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		// Excel exports start with a UTF-8 BOM.
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))] = i
	}
	for _, required := range []string{"Camera Number", "x", "y"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV is missing column %q", required)
		}
	}

	out := &PerthImport{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		cam, ok := perthRow(row, cols)
		if !ok {
			out.Skipped++
			continue
		}
		out.Cameras = append(out.Cameras, cam)
	}
	return out, nil
}

func perthRow(row []string, cols map[string]int) (models.Camera, bool) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	number := field("Camera Number")
	x, errX := strconv.ParseFloat(field("x"), 64)
	y, errY := strconv.ParseFloat(field("y"), 64)
	if number == "" || errX != nil || errY != nil {
		return models.Camera{}, false
	}

	lat, lng := WebMercatorToLatLng(x, y)
	return models.Camera{
		ID:           "COP-" + number,
		CameraNumber: number,
		Lat:          round6(lat),
		Lng:          round6(lng),
		Type:         "Public Safety",
		Owner:        "City of Perth",
		Coverage:     models.Coverage360,
		Purpose:      "Public safety monitoring",
		Network:      "City of Perth CityWatch",
		Suburb:       "Perth CBD",
		DataSource:   "City of Perth Open Data",
		LastUpdated:  LastUpdated,
	}, true
}

// IsPerth matches records produced by ParsePerthCSV.
func IsPerth(c models.Camera) bool {
	return strings.HasPrefix(c.ID, "COP-")
}
