package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"surveillance-map/be/logging"
	"surveillance-map/be/metrics"
	"surveillance-map/be/models"
	"surveillance-map/be/store"
)

const userIDPrefix = "USER-"

// CameraInput holds the fields accepted on create. Lat and Lng are pointers so
// that a zero coordinate counts as present.
type CameraInput struct {
	CameraNumber   string   `json:"camera_number"`
	Lat            *float64 `json:"lat"`
	Lng            *float64 `json:"lng"`
	Type           string   `json:"type"`
	Owner          string   `json:"owner"`
	Network        string   `json:"network"`
	Purpose        string   `json:"purpose"`
	Suburb         string   `json:"suburb"`
	Location       string   `json:"location"`
	Coverage       string   `json:"coverage"`
	Direction      *int     `json:"direction" binding:"omitempty,bearing"`
	DetectionTypes []string `json:"detection_types"`
	LastUpdated    string   `json:"last_updated"`
}

// IDGenerator returns a candidate id for a record created at t.
type IDGenerator func(t time.Time) string

// TimestampID produces USER-<unix millis> ids.
func TimestampID(t time.Time) string {
	return userIDPrefix + strconv.FormatInt(t.UnixMilli(), 10)
}

// Publisher receives change notifications after a mutation has been saved.
type Publisher interface {
	Publish(event CameraEvent)
}

// CameraService owns the camera collection. Every operation loads the whole
// collection from the backend and mutations save it back; mu serializes those
// cycles within this process.
type CameraService struct {
	backend   store.Backend
	publisher Publisher
	newID     IDGenerator
	now       func() time.Time
	mu        sync.Mutex
}

func NewCameraService(backend store.Backend, publisher Publisher) *CameraService {
	return &CameraService{
		backend:   backend,
		publisher: publisher,
		newID:     TimestampID,
		now:       time.Now,
	}
}

// WithClock replaces the time source and id generator, for tests.
func (s *CameraService) WithClock(now func() time.Time, newID IDGenerator) *CameraService {
	s.now = now
	if newID != nil {
		s.newID = newID
	}
	return s
}

// List returns the full collection. A load failure is logged and reported as
// an empty collection.
func (s *CameraService) List(ctx context.Context) []models.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrEmpty(ctx)
}

func (s *CameraService) Count(ctx context.Context) int {
	return len(s.List(ctx))
}

func (s *CameraService) Get(ctx context.Context, id string) (*models.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cameras := s.loadOrEmpty(ctx)
	if i := indexOf(cameras, id); i >= 0 {
		cam := cameras[i]
		return &cam, nil
	}
	return nil, ErrCameraNotFound
}

func (s *CameraService) Create(ctx context.Context, in CameraInput, identity string) (*models.Camera, error) {
	if in.Lat == nil || in.Lng == nil || in.Type == "" {
		return nil, newValidationError("Missing required fields: lat, lng, type")
	}
	if err := validateDirection(in.Direction); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cameras, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cam := models.Camera{
		ID:             s.uniqueID(cameras, now),
		CameraNumber:   in.CameraNumber,
		Lat:            *in.Lat,
		Lng:            *in.Lng,
		Type:           in.Type,
		Owner:          in.Owner,
		Network:        in.Network,
		Purpose:        in.Purpose,
		Suburb:         in.Suburb,
		Location:       in.Location,
		Coverage:       in.Coverage,
		Direction:      in.Direction,
		DetectionTypes: in.DetectionTypes,
		LastUpdated:    in.LastUpdated,
		DataSource:     models.DataSourceUserSubmitted,
		CreatedBy:      identity,
		CreatedAt:      now.UTC().Format(time.RFC3339Nano),
	}
	cam.NormalizeCoverage()

	if err := s.save(ctx, append(cameras, cam)); err != nil {
		return nil, err
	}

	logging.Info().Str("camera_id", cam.ID).Str("user", identity).Msg("camera created")
	s.publish(EventCameraCreated, cam.ID, &cam)
	return &cam, nil
}

// Update shallow-merges the JSON object patch over the stored record. Fields
// absent from patch keep their values. The id and creation stamps are never
// taken from the patch.
func (s *CameraService) Update(ctx context.Context, id string, patch []byte, identity string) (*models.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cameras, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(cameras, id)
	if i < 0 {
		return nil, ErrCameraNotFound
	}

	existing := cameras[i]
	merged := existing
	merged.DetectionTypes = append([]string(nil), existing.DetectionTypes...)
	if len(patch) > 0 {
		if err := json.Unmarshal(patch, &merged); err != nil {
			return nil, newValidationError("Invalid camera fields: " + err.Error())
		}
	}
	if err := validateDirection(merged.Direction); err != nil {
		return nil, err
	}

	merged.ID = existing.ID
	merged.CreatedBy = existing.CreatedBy
	merged.CreatedAt = existing.CreatedAt
	merged.UpdatedBy = identity
	merged.UpdatedAt = s.now().UTC().Format(time.RFC3339Nano)
	merged.NormalizeCoverage()

	updated := make([]models.Camera, len(cameras))
	copy(updated, cameras)
	updated[i] = merged

	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}

	logging.Info().Str("camera_id", id).Str("user", identity).Msg("camera updated")
	s.publish(EventCameraUpdated, id, &merged)
	return &merged, nil
}

func (s *CameraService) Delete(ctx context.Context, id string, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cameras, err := s.load(ctx)
	if err != nil {
		return err
	}

	filtered := make([]models.Camera, 0, len(cameras))
	for _, cam := range cameras {
		if cam.ID != id {
			filtered = append(filtered, cam)
		}
	}
	if len(filtered) == len(cameras) {
		return ErrCameraNotFound
	}

	if err := s.save(ctx, filtered); err != nil {
		return err
	}

	logging.Info().Str("camera_id", id).Str("user", identity).Msg("camera deleted")
	s.publish(EventCameraDeleted, id, nil)
	return nil
}

// Replace overwrites the whole collection, used by the seed importer.
func (s *CameraService) Replace(ctx context.Context, transform func([]models.Camera) []models.Camera) ([]models.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cameras, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	next := transform(cameras)
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *CameraService) load(ctx context.Context) ([]models.Camera, error) {
	cameras, err := s.backend.Load(ctx)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("load").Inc()
		logging.Error().Err(err).Str("backend", s.backend.Name()).Msg("Error loading cameras")
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	metrics.Cameras.Set(float64(len(cameras)))
	return cameras, nil
}

func (s *CameraService) loadOrEmpty(ctx context.Context) []models.Camera {
	cameras, err := s.load(ctx)
	if err != nil {
		return []models.Camera{}
	}
	return cameras
}

func (s *CameraService) save(ctx context.Context, cameras []models.Camera) error {
	if err := s.backend.Save(ctx, cameras); err != nil {
		metrics.StoreErrors.WithLabelValues("save").Inc()
		logging.Error().Err(err).Str("backend", s.backend.Name()).Msg("Error saving cameras")
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	metrics.Cameras.Set(float64(len(cameras)))
	return nil
}

// uniqueID never returns an id already in cameras; on a clash it appends a
// random suffix.
func (s *CameraService) uniqueID(cameras []models.Camera, now time.Time) string {
	id := s.newID(now)
	for indexOf(cameras, id) >= 0 {
		id = s.newID(now) + "-" + uuid.NewString()[:8]
	}
	return id
}

func (s *CameraService) publish(kind, id string, cam *models.Camera) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(CameraEvent{Type: kind, CameraID: id, Camera: cam})
}

func indexOf(cameras []models.Camera, id string) int {
	for i := range cameras {
		if cameras[i].ID == id {
			return i
		}
	}
	return -1
}

func validateDirection(direction *int) error {
	if direction != nil && (*direction < 0 || *direction > 359) {
		return newValidationError("direction must be a bearing between 0 and 359")
	}
	return nil
}

// IsValidation reports whether err is a caller input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
