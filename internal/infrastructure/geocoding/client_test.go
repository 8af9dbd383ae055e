package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/domain"
)

func testConfig(baseURL string) *config.GeocodingConfig {
	return &config.GeocodingConfig{
		BaseURL:        baseURL,
		AccessToken:    "test_token",
		RequestTimeout: 30,
	}
}

func TestClient_Resolve(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "Connaught")
			assert.Equal(t, "test_token", r.URL.Query().Get("access_token"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"features": [
					{
						"id": "poi.123",
						"text": "Connaught Place",
						"place_name": "Connaught Place, New Delhi, Delhi, India",
						"center": [77.2090, 28.6139]
					}
				]
			}`))
		}))
		defer server.Close()

		client := NewGeocodingClient(testConfig(server.URL), logger)

		coord, err := client.Resolve(context.Background(), "Connaught Place")
		require.NoError(t, err)
		assert.Equal(t, 28.6139, coord.Lat)
		assert.Equal(t, 77.2090, coord.Lon)
	})

	t.Run("no features", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"features": []}`))
		}))
		defer server.Close()

		client := NewGeocodingClient(testConfig(server.URL), logger)

		coord, err := client.Resolve(context.Background(), "nowhere at all")
		assert.Error(t, err)
		assert.Nil(t, coord)
		assert.Contains(t, err.Error(), "no results")
	})

	t.Run("empty query", func(t *testing.T) {
		client := NewGeocodingClient(testConfig("https://api.mapbox.com"), logger)

		coord, err := client.Resolve(context.Background(), "")
		assert.Error(t, err)
		assert.Nil(t, coord)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("api error response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Not Authorized - Invalid Token"}`))
		}))
		defer server.Close()

		client := NewGeocodingClient(testConfig(server.URL), logger)

		coord, err := client.Resolve(context.Background(), "Connaught Place")
		assert.Error(t, err)
		assert.Nil(t, coord)
		assert.Contains(t, err.Error(), "geocoding API error")
	})

	t.Run("malformed center", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"features": [{"id": "poi.1", "text": "Broken", "center": [77.2090]}]}`))
		}))
		defer server.Close()

		client := NewGeocodingClient(testConfig(server.URL), logger)

		coord, err := client.Resolve(context.Background(), "broken")
		assert.Error(t, err)
		assert.Nil(t, coord)
	})
}

func TestClient_NearbySearch(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	center := domain.Coordinate{Lat: 28.6139, Lon: 77.2090}

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "parking")
			assert.Equal(t, "poi", r.URL.Query().Get("types"))
			assert.NotEmpty(t, r.URL.Query().Get("proximity"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"features": [
					{
						"id": "poi.1",
						"text": "Palika Bazar Parking",
						"place_name": "Palika Bazar Parking, Connaught Place, New Delhi",
						"center": [77.2167, 28.6270]
					},
					{
						"id": "poi.2",
						"text": "Broken Record",
						"place_name": "Broken Record, New Delhi",
						"center": []
					}
				]
			}`))
		}))
		defer server.Close()

		client := NewGeocodingClient(testConfig(server.URL), logger)

		records, err := client.NearbySearch(context.Background(), center, 5.0, "parking")
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "poi.1", records[0].PlaceID)
		assert.Equal(t, "Palika Bazar Parking", records[0].Name)
		require.NotNil(t, records[0].Location)
		assert.Equal(t, 28.6270, records[0].Location.Lat)
		assert.Equal(t, 77.2167, records[0].Location.Lon)

		// Missing geometry stays nil for the normalizer to drop.
		assert.Nil(t, records[1].Location)
	})

	t.Run("empty keyword", func(t *testing.T) {
		client := NewGeocodingClient(testConfig("https://api.mapbox.com"), logger)

		records, err := client.NearbySearch(context.Background(), center, 5.0, "")
		assert.Error(t, err)
		assert.Nil(t, records)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("api error response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"upstream error"}`))
		}))
		defer server.Close()

		client := NewGeocodingClient(testConfig(server.URL), logger)

		records, err := client.NearbySearch(context.Background(), center, 5.0, "parking")
		assert.Error(t, err)
		assert.Nil(t, records)
		assert.Contains(t, err.Error(), "geocoding API error")
	})
}
