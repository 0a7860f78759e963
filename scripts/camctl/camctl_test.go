package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveillance-map/be/models"
)

func TestParseAssignments(t *testing.T) {
	fields, err := parseAssignments([]string{
		"suburb=Northbridge",
		"direction=90",
		"coverage=360",
		"detection_types=[\"speed\"]",
		"location=Hay St & Barrack St",
		"owner=",
		"direction_note=null",
	})
	require.NoError(t, err)

	assert.Equal(t, "Northbridge", fields["suburb"])
	assert.Equal(t, float64(90), fields["direction"])
	assert.Equal(t, float64(360), fields["coverage"])
	assert.Equal(t, []any{"speed"}, fields["detection_types"])
	assert.Equal(t, "Hay St & Barrack St", fields["location"])
	assert.Equal(t, "", fields["owner"])
	assert.Contains(t, fields, "direction_note")
	assert.Nil(t, fields["direction_note"])
}

func TestParseAssignmentsRejectsMissingKey(t *testing.T) {
	for _, bad := range []string{"suburb", "=value"} {
		_, err := parseAssignments([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestFilterByType(t *testing.T) {
	cams := []models.Camera{
		{ID: "a", Type: "AI Camera"},
		{ID: "b", Type: "Private"},
		{ID: "c", Type: "ai camera"},
	}
	got := filterByType(cams, "AI Camera")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Len(t, cams, 3)
}

func TestPrintCameraTable(t *testing.T) {
	dir := 45
	var buf bytes.Buffer
	printCameraTable(&buf, []models.Camera{
		{ID: "USER-1", Type: "Private", Suburb: "Perth", Lat: -31.95, Lng: 115.86, Direction: &dir},
		{ID: "COP-1", Type: "Public Safety", Lat: -31.9, Lng: 115.8},
	})

	out := buf.String()
	assert.Contains(t, out, "USER-1")
	assert.Contains(t, out, "-31.950000")
	assert.Contains(t, out, "45")
	assert.Contains(t, out, "2 cameras")
}

func TestSelectedSources(t *testing.T) {
	t.Cleanup(func() {
		seedPerthCSV, seedEnforcement, seedAI = "", false, false
	})

	assert.Empty(t, selectedSources())

	seedPerthCSV, seedAI = "perth.csv", true
	names := []string{}
	for _, s := range selectedSources() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"perth", "ai"}, names)
}
