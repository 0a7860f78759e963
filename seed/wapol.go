package seed

import (
	"fmt"
	"strings"

	"surveillance-map/be/models"
)

const (
	TypeRedLightSpeed = "Red-Light Speed"
	TypeFixedSpeed    = "Fixed Speed"
	TypePointToPoint  = "Point-to-Point"
	TypeAICamera      = "AI Camera"

	waPoliceOwner = "WA Police"
)

type site struct {
	suburb   string
	location string
	kind     string
	lat      float64
	lng      float64
}

// Approximate intersection coordinates for the published WA Police fixed
// camera sites.
var enforcementSites = []site{
	{"Applecross", "Canning Hwy & Riseley St", TypeRedLightSpeed, -32.0157, 115.8355},
	{"Ascot", "Great Eastern Hwy & Tonkin Hwy", TypeRedLightSpeed, -31.9293, 115.9340},
	{"Atwell", "Beeliar Dr & Kwinana Fwy", TypeRedLightSpeed, -32.1385, 115.8630},
	{"Balcatta", "Reid Hwy & Balcatta Rd", TypeRedLightSpeed, -31.8746, 115.8283},
	{"Balga", "Beach Rd & Mirrabooka Ave", TypeRedLightSpeed, -31.8579, 115.8400},
	{"Bateman", "Kwinana Freeway", TypeFixedSpeed, -32.0562, 115.8597},
	{"Bayswater", "Guildford Rd & Garratt Rd", TypeRedLightSpeed, -31.9215, 115.9179},
	{"Bayswater", "Guildford Rd & Tonkin Hwy", TypeRedLightSpeed, -31.9170, 115.9365},
	{"Beckenham", "Roe Highway", TypeFixedSpeed, -32.0249, 115.9597},
	{"Bedford", "Broun Ave & Coode St", TypeRedLightSpeed, -31.9157, 115.8933},
	{"Bentley", "Albany Hwy & Leach Hwy", TypeRedLightSpeed, -32.0062, 115.9219},
	{"Bentley", "Manning Rd & Townsing Dr", TypeRedLightSpeed, -32.0105, 115.9177},
	{"Bullsbrook", "Great Northern Hwy", TypeFixedSpeed, -31.6698, 116.0364},
	{"Canning Vale", "Nicholson Rd & Ranford Rd", TypeRedLightSpeed, -32.0681, 115.9204},
	{"Canning Vale", "Nicholson Rd & Warton Rd", TypeRedLightSpeed, -32.0572, 115.9190},
	{"Cannington", "Albany Hwy & Cecil Ave", TypeRedLightSpeed, -32.0166, 115.9384},
	{"Cannington", "Sevenoaks St & Wharf St", TypeRedLightSpeed, -32.0191, 115.9421},
	{"Como", "Kwinana Freeway", TypeFixedSpeed, -31.9956, 115.8702},
	{"Cottesloe", "Stirling Hwy & Eric St", TypeRedLightSpeed, -31.9994, 115.7621},
	{"Forrestfield", "Hale Rd & Maida Vale Rd", TypeRedLightSpeed, -31.9872, 116.0068},
	{"Fremantle", "Stirling Hwy & Tydeman Rd", TypeRedLightSpeed, -32.0563, 115.7496},
	{"Gosnells", "Albany Hwy & Corfield St", TypeRedLightSpeed, -32.0833, 116.0076},
	{"Innaloo", "Mitchell Freeway", TypeFixedSpeed, -31.8946, 115.8018},
	{"Joondalup", "Joondalup Dr & Shenton Ave", TypeRedLightSpeed, -31.7429, 115.7672},
	{"Kelmscott", "Albany Hwy & Welshpool Rd East", TypeRedLightSpeed, -32.1168, 116.0089},
	{"Malaga", "Marshall Rd & Reid Hwy", TypeRedLightSpeed, -31.8537, 115.8908},
	{"Manning", "Manning Rd & Ley St", TypeRedLightSpeed, -32.0142, 115.8705},
	{"Mirrabooka", "Reid Hwy & Morley Dr", TypeRedLightSpeed, -31.8611, 115.8644},
	{"Morley", "Beechboro Rd & Walter Rd West", TypeRedLightSpeed, -31.8937, 115.9039},
	{"Morley", "Benara Rd & Collier Rd", TypeRedLightSpeed, -31.8865, 115.9120},
	{"Morley", "Tonkin Hwy & Benara Rd", TypeRedLightSpeed, -31.8872, 115.9235},
	{"Mount Lawley", "Beaufort St & Walcott St", TypeRedLightSpeed, -31.9306, 115.8722},
	{"Murdoch", "Kwinana Freeway", TypeFixedSpeed, -32.0685, 115.8428},
	{"Osborne Park", "Main St & Hutton St", TypeRedLightSpeed, -31.9003, 115.8111},
	{"Perth", "Riverside Dr & Barrack St", TypeRedLightSpeed, -31.9580, 115.8589},
	{"South Perth", "Canning Hwy & Douglas Ave", TypeRedLightSpeed, -31.9788, 115.8590},
	{"Stirling", "Mitchell Freeway", TypeFixedSpeed, -31.8815, 115.8051},
	{"Subiaco", "Thomas St & Roberts Rd", TypeRedLightSpeed, -31.9495, 115.8249},
	{"Victoria Park", "Great Eastern Hwy & Mint St", TypeRedLightSpeed, -31.9765, 115.8984},
	{"Wangara", "Wanneroo Rd & Joondalup Dr", TypeRedLightSpeed, -31.7966, 115.8346},
	{"Willetton", "Roe Highway", TypeFixedSpeed, -32.0503, 115.8983},
	{"Lake Clifton", "Forrest Hwy (Northbound)", TypePointToPoint, -32.7667, 115.6833},
	{"Binningup", "Forrest Hwy (Southbound)", TypePointToPoint, -32.9500, 115.6833},
}

// Two fixed sites on the Kwinana Freeway plus the regions the mobile trailers
// rotate through.
var aiSites = []site{
	{"Kwinana Freeway", "Kwinana Freeway (North)", TypeAICamera, -32.0200, 115.8550},
	{"Kwinana Freeway", "Kwinana Freeway (South)", TypeAICamera, -32.0800, 115.8450},
	{"Perth North", "Mitchell Freeway Area", TypeAICamera, -31.8500, 115.7900},
	{"Perth South", "Tonkin Highway Area", TypeAICamera, -32.0500, 115.9500},
	{"Perth East", "Great Eastern Highway Area", TypeAICamera, -31.9500, 116.0200},
	{"Perth West", "Stirling Highway Area", TypeAICamera, -31.9800, 115.7800},
	{"Mandurah", "Mandurah Region", TypeAICamera, -32.5300, 115.7200},
	{"Joondalup", "Joondalup Region", TypeAICamera, -31.7500, 115.7700},
}

// EnforcementCameras returns the WA Police speed, red-light and average speed
// cameras, numbered from WAPOL-1001.
func EnforcementCameras() []models.Camera {
	out := make([]models.Camera, 0, len(enforcementSites))
	for i, s := range enforcementSites {
		id := fmt.Sprintf("WAPOL-%d", 1001+i)
		network, purpose := enforcementNetwork(s.kind)
		out = append(out, models.Camera{
			ID:           id,
			CameraNumber: id,
			Lat:          s.lat,
			Lng:          s.lng,
			Type:         s.kind,
			Owner:        waPoliceOwner,
			Coverage:     models.Coverage360,
			Purpose:      purpose,
			Network:      network,
			Suburb:       s.suburb,
			Location:     s.location,
			DataSource:   "WA Police Traffic Cameras",
			LastUpdated:  LastUpdated,
		})
	}
	return out
}

func enforcementNetwork(kind string) (network, purpose string) {
	switch {
	case strings.Contains(kind, "Red-Light"):
		return "WA Police Traffic Enforcement", "Red-light and speed enforcement"
	case strings.Contains(kind, "Point-to-Point"):
		return "WA Police Average Speed", "Average speed enforcement"
	default:
		return "WA Police Speed Enforcement", "Speed enforcement"
	}
}

// AICameras returns the mobile phone and seatbelt detection cameras, numbered
// from WAPOL-AI-2000.
func AICameras() []models.Camera {
	out := make([]models.Camera, 0, len(aiSites))
	for i, s := range aiSites {
		n := 2000 + i
		out = append(out, models.Camera{
			ID:             fmt.Sprintf("WAPOL-AI-%d", n),
			CameraNumber:   fmt.Sprintf("AI-%d", n),
			Lat:            s.lat,
			Lng:            s.lng,
			Type:           TypeAICamera,
			Owner:          waPoliceOwner,
			Coverage:       models.Coverage360,
			Purpose:        "AI detection: mobile phone use, seatbelt violations, speeding",
			Network:        "WA Police AI Enforcement",
			Suburb:         s.suburb,
			Location:       s.location,
			DetectionTypes: []string{"mobile_phone", "seatbelt", "speed"},
			DataSource:     "WA Police - Active from January 2025",
			LastUpdated:    LastUpdated,
		})
	}
	return out
}

// IsEnforcement matches speed, red-light and average speed cameras regardless
// of origin.
func IsEnforcement(c models.Camera) bool {
	return strings.Contains(c.Type, "Speed") || strings.Contains(c.Type, "Red-Light") || c.Type == TypePointToPoint
}

// IsAI matches AI detection cameras.
func IsAI(c models.Camera) bool {
	return c.Type == TypeAICamera
}
