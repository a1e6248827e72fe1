package exif

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGPSLocationWithoutMetadata(t *testing.T) {
	// Not an image at all: no coordinate.
	lat, lng := GPSLocation([]byte("not an image"))
	assert.Nil(t, lat)
	assert.Nil(t, lng)
}

func TestGPSLocationEmptyInput(t *testing.T) {
	lat, lng := GPSLocation(nil)
	assert.Nil(t, lat)
	assert.Nil(t, lng)
}
