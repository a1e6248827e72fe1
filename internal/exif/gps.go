// Package exif extracts GPS coordinates from photo metadata.
package exif

import (
	"bytes"

	goexif "github.com/rwcarlsen/goexif/exif"
)

// GPSLocation returns the GPS coordinate embedded in the image, if any.
// Images without usable GPS tags yield (nil, nil); a missing or broken
// coordinate is expected, not an error.
func GPSLocation(data []byte) (lat, lng *float64) {
	x, err := goexif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil
	}

	la, lo, err := x.LatLong()
	if err != nil {
		return nil, nil
	}
	if la < -90 || la > 90 || lo < -180 || lo > 180 {
		return nil, nil
	}
	return &la, &lo
}
