package media

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/evanoberholster/imagemeta"
	"github.com/rs/zerolog/log"
)

// ErrNoGPS is returned when a photo carries no GPS coordinates.
var ErrNoGPS = errors.New("photo has no GPS coordinates")

// PhotoCoordinates reads the EXIF GPS position of a photo. It stands in
// for device geolocation: a creator on the move passes a recent photo and
// trend discovery is biased to where it was taken.
func PhotoCoordinates(data []byte) (latitude, longitude float64, err error) {
	exifData, err := imagemeta.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode EXIF metadata: %w", err)
	}
	gps := exifData.GPS
	if gps.Latitude() == 0 && gps.Longitude() == 0 {
		return 0, 0, ErrNoGPS
	}
	return gps.Latitude(), gps.Longitude(), nil
}

// PhotoCoordinatesFromFile is PhotoCoordinates for a file path.
func PhotoCoordinatesFromFile(path string) (float64, float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open file: %w", err)
	}
	lat, lng, err := PhotoCoordinates(data)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Float64("lat", lat).Float64("lng", lng).Msg("GPS read from photo")
	return lat, lng, nil
}
