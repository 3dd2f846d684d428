package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/kktculasim/ulasim-backend/internal/database"
	"github.com/kktculasim/ulasim-backend/internal/geo"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/kktculasim/ulasim-backend/pkg/osrm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRouter struct {
	route *osrm.Route
	err   error
	calls int
}

func (f *fakeRouter) Route(ctx context.Context, from, to osrm.Coordinate) (*osrm.Route, error) {
	f.calls++
	return f.route, f.err
}

func setupMapService(t *testing.T, router Router) (*MapService, sqlmock.Sqlmock) {
	db, mock := setupTestDB(t)
	return NewMapService(database.NewStopRepository(db), router, testLogger()), mock
}

func TestNearestStop(t *testing.T) {
	t.Run("Closest Stop", func(t *testing.T) {
		service, mock := setupMapService(t, &fakeRouter{})
		stopA := uuid.New()

		mock.ExpectQuery(`WHERE latitude IS NOT NULL`).
			WillReturnRows(sqlmock.NewRows(stopColumns).
				AddRow(stopA.String(), "A", 35.0, 33.0).
				AddRow(uuid.New().String(), "B", 35.2, 33.3))

		user := geo.Point{Lat: 35.01, Lon: 33.01}
		nearest, err := service.NearestStop(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, "A", nearest.Stop.Name)
		assert.Equal(t, stopA, nearest.Stop.ID)
		assert.InDelta(t, geo.HaversineKm(user, geo.Point{Lat: 35.0, Lon: 33.0}), nearest.DistanceKm, 1e-12)
		assert.Equal(t, geo.Bounds{South: 35.0, West: 33.0, North: 35.01, East: 33.01}, nearest.Bounds)
	})

	t.Run("No Stops", func(t *testing.T) {
		service, mock := setupMapService(t, &fakeRouter{})
		mock.ExpectQuery(`FROM stops`).WillReturnRows(sqlmock.NewRows(stopColumns))

		_, err := service.NearestStop(context.Background(), geo.Point{Lat: 35, Lon: 33})
		assert.ErrorIs(t, err, ErrNoStops)
	})

	t.Run("Out Of Range", func(t *testing.T) {
		service, _ := setupMapService(t, &fakeRouter{})

		_, err := service.NearestStop(context.Background(), geo.Point{Lat: 135, Lon: 33})
		assert.Error(t, err)
	})

	t.Run("Not A Number", func(t *testing.T) {
		service, mock := setupMapService(t, &fakeRouter{})

		_, err := service.NearestStop(context.Background(), geo.Point{Lat: math.NaN(), Lon: 33})
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)

		_, err = service.NearestStop(context.Background(), geo.Point{Lat: 35, Lon: math.Inf(1)})
		assert.ErrorAs(t, err, &validationErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRouteLine(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		want := &osrm.Route{DistanceMeters: 1000, Path: []osrm.Coordinate{{Lat: 35, Lon: 33}}}
		router := &fakeRouter{route: want}
		service, _ := setupMapService(t, router)

		got, err := service.RouteLine(context.Background(), geo.Point{Lat: 35, Lon: 33}, geo.Point{Lat: 35.1, Lon: 33.1})
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, 1, router.calls)
	})

	t.Run("Upstream Failure", func(t *testing.T) {
		service, _ := setupMapService(t, &fakeRouter{err: fmt.Errorf("osrm status 503")})

		_, err := service.RouteLine(context.Background(), geo.Point{}, geo.Point{Lat: 1, Lon: 1})
		assert.True(t, errors.Is(err, ErrRoutingUnavailable))
	})

	t.Run("No Route", func(t *testing.T) {
		service, _ := setupMapService(t, &fakeRouter{err: osrm.ErrNoRoute})

		_, err := service.RouteLine(context.Background(), geo.Point{}, geo.Point{Lat: 1, Lon: 1})
		assert.ErrorIs(t, err, osrm.ErrNoRoute)
		assert.False(t, errors.Is(err, ErrRoutingUnavailable))
	})
}
