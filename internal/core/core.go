// Package core holds the Delivery Core: pure functions with no dependency on
// the broker, the store, or the cache. Both the Event Dispatcher and the RPC
// Surface compose this leaf instead of reaching into each other's helpers —
// the source's event handler called back into the RPC service struct's
// static methods for pickup generation; this package is where that logic
// belongs so neither caller needs the other.
package core

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/timour/delivery-service/api"
	"github.com/timour/delivery-service/internal/apperr"
)

// EarthRadiusKM is the radius used for the haversine computation.
const EarthRadiusKM = 6371.0

// HaversineDistance returns the great-circle distance between p1 and p2 in
// kilometers.
func HaversineDistance(p1, p2 api.Point) float64 {
	lat1 := toRadians(p1.Latitude)
	lat2 := toRadians(p2.Latitude)
	dLat := toRadians(p2.Latitude - p1.Latitude)
	dLng := toRadians(p2.Longitude - p1.Longitude)

	a := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLng/2), 2)
	c := 2 * math.Asin(math.Sqrt(a))

	return EarthRadiusKM * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// CalcDeliveryFee computes the delivery fee between a customer point and a
// merchant point. Distance must fall in [0, 25] km; outside that range is a
// domain error rather than a fee.
func CalcDeliveryFee(customer, merchant api.Point) (int32, error) {
	distance := HaversineDistance(customer, merchant)
	if distance < 0.0 || distance > 25.0 {
		return 0, apperr.New(apperr.KindOutOfRange, "distance must be between 0km and 25km")
	}

	switch {
	case distance <= 5.0:
		return 0, nil
	case distance <= 10.0:
		return 50, nil
	default:
		return 100, nil
	}
}

// districts are the fixed, known delivery areas used by AddressToPoint. Real
// geocoding is out of scope (spec Non-goals); this is the stub the event
// path uses.
var districts = map[string]api.Point{
	"Mueang":     {Latitude: 18.7883, Longitude: 98.9853},
	"Hang Dong":  {Latitude: 18.6870, Longitude: 98.8897},
	"San Sai":    {Latitude: 18.8578, Longitude: 99.0631},
	"Mae Rim":    {Latitude: 18.8998, Longitude: 98.9311},
	"Doi Saket":  {Latitude: 18.8482, Longitude: 99.1403},
}

// AddressToPoint resolves an address to a Point via the fixed district
// table. Returns false when the district is unknown.
func AddressToPoint(addr api.Address) (api.Point, bool) {
	p, ok := districts[addr.District]
	return p, ok
}

// FakeGeocode returns a random point within ±0.225° latitude (~25km) and
// ±0.25° longitude (~28km) of (0,0). Used by
// the RPC path (GetDeliveryFee) where the district table would be too
// restrictive for arbitrary customer/merchant addresses — spec.md Design
// Notes flags this dual-geocoder inconsistency as intentional pending real
// geocoding.
func FakeGeocode(_ api.Address) api.Point {
	const maxLatOffset = 0.225
	const maxLngOffset = 0.25

	return api.Point{
		Latitude:  (rand.Float64()*2 - 1) * maxLatOffset,
		Longitude: (rand.Float64()*2 - 1) * maxLngOffset,
	}
}

// CalcNearestRiders returns the candidate riders for a new delivery. Real
// proximity ranking is out of scope; this stub always returns 5
// default-initialized riders.
func CalcNearestRiders() []api.Rider {
	riders := make([]api.Rider, 5)
	return riders
}

// GeneratePickupCode draws a uniform 3-digit code in [100, 999]. Collision
// handling is explicitly unspecified (spec.md Open Question) — callers must
// not assume uniqueness.
func GeneratePickupCode() string {
	return fmt.Sprintf("%d", 100+rand.Intn(900))
}

// PreparedDelivery is the output of PrepareOrderDelivery: the candidate
// riders to notify and the pickup information to persist.
type PreparedDelivery struct {
	Riders     []api.Rider
	PickupInfo api.PickupInfo
}

// PrepareOrderDelivery computes the candidate riders and pickup info for a
// newly placed order. Missing merchant/customer addresses are domain errors.
func PrepareOrderDelivery(order *api.PlaceOrder) (*PreparedDelivery, error) {
	riders := CalcNearestRiders()

	pickupInfo, err := generatePickupInfo(order)
	if err != nil {
		return nil, err
	}

	return &PreparedDelivery{Riders: riders, PickupInfo: *pickupInfo}, nil
}

func generatePickupInfo(order *api.PlaceOrder) (*api.PickupInfo, error) {
	pickupPoint, ok := AddressToPoint(order.MerchantAddress)
	if !ok {
		return nil, apperr.New(apperr.KindInvalidPayload, "restaurant address is empty")
	}

	dropOffPoint, ok := AddressToPoint(order.CustomerAddress)
	if !ok {
		return nil, apperr.New(apperr.KindInvalidPayload, "user address is empty")
	}

	return &api.PickupInfo{
		PickupCode:      GeneratePickupCode(),
		PickupLocation:  &pickupPoint,
		DropOffLocation: &dropOffPoint,
	}, nil
}
