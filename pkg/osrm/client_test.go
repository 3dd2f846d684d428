package osrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotPath, gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"code":"Ok","routes":[{"distance":17650.2,"duration":1320.5,
				"geometry":{"type":"LineString","coordinates":[[33.3823,35.1856],[33.3199,35.3364]]}}]}`))
		}))
		defer srv.Close()

		client := New(srv.URL+"/", "driving", time.Second)
		route, err := client.Route(context.Background(),
			Coordinate{Lat: 35.1856, Lon: 33.3823},
			Coordinate{Lat: 35.3364, Lon: 33.3199})
		require.NoError(t, err)

		assert.Equal(t, "/route/v1/driving/33.382300,35.185600;33.319900,35.336400", gotPath)
		assert.Equal(t, "overview=full&geometries=geojson", gotQuery)
		assert.InDelta(t, 17650.2, route.DistanceMeters, 1e-9)
		require.Len(t, route.Path, 2)
		assert.Equal(t, Coordinate{Lat: 35.1856, Lon: 33.3823}, route.Path[0])
	})

	t.Run("No Route", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":"NoRoute","message":"Impossible route between points"}`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, "", 0).Route(context.Background(), Coordinate{}, Coordinate{Lat: 1, Lon: 1})
		assert.ErrorIs(t, err, ErrNoRoute)
	})

	t.Run("Upstream Failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer srv.Close()

		_, err := New(srv.URL, "", 0).Route(context.Background(), Coordinate{}, Coordinate{Lat: 1, Lon: 1})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoRoute)
		assert.Contains(t, err.Error(), "osrm status 502")
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(srv.URL, "", time.Second).Route(ctx, Coordinate{}, Coordinate{Lat: 1, Lon: 1})
		assert.Error(t, err)
	})
}
