package core

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timour/delivery-service/api"
	"github.com/timour/delivery-service/internal/apperr"
)

func TestHaversineDistanceSymmetricAndZero(t *testing.T) {
	p1 := api.Point{Latitude: 18.7883, Longitude: 98.9853}
	p2 := api.Point{Latitude: 18.6870, Longitude: 98.8897}

	d1 := HaversineDistance(p1, p2)
	d2 := HaversineDistance(p2, p1)

	assert.InDelta(t, d1, d2, 1e-9)
	assert.GreaterOrEqual(t, d1, 0.0)
	assert.Equal(t, 0.0, HaversineDistance(p1, p1))
}

func TestCalcDeliveryFeeWithinCity(t *testing.T) {
	// Mueang to Hang Dong is ~15.1km, the (10,25] bracket.
	customer := api.Point{Latitude: 18.7883, Longitude: 98.9853} // Mueang
	merchant := api.Point{Latitude: 18.6870, Longitude: 98.8897} // Hang Dong

	fee, err := CalcDeliveryFee(customer, merchant)

	require.NoError(t, err)
	assert.Equal(t, int32(100), fee)
}

func TestCalcDeliveryFeeTooFar(t *testing.T) {
	customer := api.Point{Latitude: 18.7883, Longitude: 98.9853}
	merchant := api.Point{Latitude: 50.0, Longitude: 50.0}

	_, err := CalcDeliveryFee(customer, merchant)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "distance must be between 0km and 25km")
	assert.True(t, apperr.Is(err, apperr.KindOutOfRange))
}

func TestCalcDeliveryFeeMonotoneBrackets(t *testing.T) {
	base := api.Point{Latitude: 0, Longitude: 0}

	near := api.Point{Latitude: 0.03, Longitude: 0} // ~3.3km
	mid := api.Point{Latitude: 0.07, Longitude: 0}  // ~7.8km
	far := api.Point{Latitude: 0.15, Longitude: 0}  // ~16.7km

	feeNear, err := CalcDeliveryFee(base, near)
	require.NoError(t, err)
	feeMid, err := CalcDeliveryFee(base, mid)
	require.NoError(t, err)
	feeFar, err := CalcDeliveryFee(base, far)
	require.NoError(t, err)

	assert.Equal(t, int32(0), feeNear)
	assert.Equal(t, int32(50), feeMid)
	assert.Equal(t, int32(100), feeFar)
}

func TestGeneratePickupCodeInRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GeneratePickupCode()
		require.Len(t, code, 3)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100)
		require.LessOrEqual(t, n, 999)
	}
}

func TestPrepareOrderDeliverySuccess(t *testing.T) {
	order := &api.PlaceOrder{
		OrderID:         "order-1",
		MerchantAddress: api.Address{District: "Mueang"},
		CustomerAddress: api.Address{District: "Hang Dong"},
	}

	prepared, err := PrepareOrderDelivery(order)

	require.NoError(t, err)
	assert.Len(t, prepared.Riders, 5)
	require.NotNil(t, prepared.PickupInfo.PickupLocation)
	require.NotNil(t, prepared.PickupInfo.DropOffLocation)
	assert.Len(t, prepared.PickupInfo.PickupCode, 3)
}

func TestPrepareOrderDeliveryMissingMerchantAddress(t *testing.T) {
	order := &api.PlaceOrder{
		OrderID:         "order-1",
		MerchantAddress: api.Address{District: "Unknown District"},
		CustomerAddress: api.Address{District: "Hang Dong"},
	}

	_, err := PrepareOrderDelivery(order)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "restaurant address is empty")
}

func TestPrepareOrderDeliveryMissingCustomerAddress(t *testing.T) {
	order := &api.PlaceOrder{
		OrderID:         "order-1",
		MerchantAddress: api.Address{District: "Mueang"},
		CustomerAddress: api.Address{District: "Unknown District"},
	}

	_, err := PrepareOrderDelivery(order)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "user address is empty")
}
