package locations

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"proxy-logs/internal/models"
	"proxy-logs/internal/shared/configs"
)

var ErrUnknownLocation = errors.New("unknown location")

//go:generate mockgen -source=location_store.go -destination=./mocks/location_store_mock.go -package=mocks
type LocationStore interface {
	Get(name string) (models.Location, error)
	// Names returns every configured location name, sorted.
	Names() []string
}

type locationStore struct {
	locations map[string]models.Location
	names     []string
}

// NewLocationStore snapshots the configured locations; later config changes are not seen.
func NewLocationStore(cfgs map[string]configs.LocationConfig) LocationStore {
	s := &locationStore{locations: make(map[string]models.Location, len(cfgs))}
	for name, c := range cfgs {
		s.locations[name] = models.Location{
			Name:         name,
			BucketName:   c.BucketName,
			BucketType:   models.BucketType(c.BucketType),
			PathPrefix:   c.PathPrefix,
			AuthFile:     c.AuthFile,
			Region:       c.Region,
			Endpoint:     c.Endpoint,
			ServerGroups: slices.Clone(c.ServerGroups),
			StatusCodes:  slices.Clone(c.StatusCodes),
		}
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)
	return s
}

func (s *locationStore) Get(name string) (models.Location, error) {
	loc, ok := s.locations[name]
	if !ok {
		return models.Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}
	return loc, nil
}

func (s *locationStore) Names() []string {
	return slices.Clone(s.names)
}
