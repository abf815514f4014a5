package kernel

import (
	"errors"

	"courierops/internal/pkg/errs"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// GeoPoint is the position a handheld reported with a scan.
type GeoPoint struct {
	latitude  float64
	longitude float64

	isSet bool
}

func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	var err error
	if latitude < MinLatitude || latitude > MaxLatitude {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude))
	}
	if longitude < MinLongitude || longitude > MaxLongitude {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude))
	}
	if err != nil {
		return GeoPoint{}, err
	}

	return GeoPoint{latitude: latitude, longitude: longitude, isSet: true}, nil
}

func (g GeoPoint) Latitude() float64 {
	return g.latitude
}

func (g GeoPoint) Longitude() float64 {
	return g.longitude
}

// IsEqual compares coordinates exactly; readings are never rounded.
func (g GeoPoint) IsEqual(other GeoPoint) bool {
	return g.isSet == other.isSet && g.latitude == other.latitude && g.longitude == other.longitude
}

func (g GeoPoint) Validate() error {
	if !g.isSet {
		return errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")
	}
	return nil
}
