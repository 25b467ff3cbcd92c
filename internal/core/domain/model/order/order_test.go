package order_test

import (
	"testing"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoute(t *testing.T, stops ...order.Stop) order.Route {
	t.Helper()
	pickup, err := kernel.NewGeoPoint(41.0082, 28.9784)
	require.NoError(t, err)
	dropoff, err := kernel.NewGeoPoint(40.9923, 29.0275)
	require.NoError(t, err)

	route, err := order.NewRoute("Taksim Square", pickup, "Kadikoy Pier", dropoff, stops)
	require.NoError(t, err)
	return route
}

func testFare(t *testing.T) order.Fare {
	t.Helper()
	fare, err := order.NewFare(150.0, 5.0, 25, "card")
	require.NoError(t, err)
	return fare
}

func testStop(t *testing.T, address string, lat, lng float64) order.Stop {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	stop, err := order.NewStop(address, p)
	require.NoError(t, err)
	return stop
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	number, err := kernel.NewOrderNumber(1000)
	require.NoError(t, err)

	o, err := order.NewOrder(
		number,
		kernel.NewUUID(),
		kernel.NewUUID(),
		testRoute(t),
		time.Now().Add(2*time.Hour),
		testFare(t),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create scheduled order with no driver", func(t *testing.T) {
		o := testOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Scheduled, o.Status())
		assert.Nil(t, o.DriverID())
		assert.Nil(t, o.VehicleID())
		assert.Empty(t, o.LicensePlate())
		assert.False(t, o.CreatedAt().IsZero())
	})

	t.Run("should fail with zero order number", func(t *testing.T) {
		var number kernel.OrderNumber

		_, err := order.NewOrder(number, kernel.NewUUID(), kernel.NewUUID(),
			testRoute(t), time.Now(), testFare(t))

		require.Error(t, err)
	})

	t.Run("should fail with zero pickup time", func(t *testing.T) {
		number, _ := kernel.NewOrderNumber(1000)

		_, err := order.NewOrder(number, kernel.NewUUID(), kernel.NewUUID(),
			testRoute(t), time.Time{}, testFare(t))

		require.Error(t, err)
	})

	t.Run("nil order fails validation", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("zero value order fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestRoute_StopSequencing(t *testing.T) {
	t.Run("stops keep input order with contiguous indices", func(t *testing.T) {
		route := testRoute(t,
			testStop(t, "Stop A", 41.01, 28.98),
			testStop(t, "Stop B", 41.02, 28.99),
			testStop(t, "Stop C", 41.03, 29.00),
		)

		stops := route.Stops()
		require.Len(t, stops, 3)
		for i, want := range []string{"Stop A", "Stop B", "Stop C"} {
			assert.Equal(t, want, stops[i].Address())
			assert.Equal(t, i, stops[i].Seq())
		}
	})
}

func TestOrder_Claim(t *testing.T) {
	t.Run("first claim on unclaimed order wins", func(t *testing.T) {
		o := testOrder(t)
		driver := kernel.NewUUID()

		require.NoError(t, o.Claim(driver))

		assert.Equal(t, order.Accepted, o.Status())
		require.NotNil(t, o.DriverID())
		assert.True(t, o.DriverID().IsEqual(driver))
	})

	t.Run("second claim by different driver fails with AlreadyTaken", func(t *testing.T) {
		o := testOrder(t)
		winner := kernel.NewUUID()
		loser := kernel.NewUUID()

		require.NoError(t, o.Claim(winner))
		err := o.Claim(loser)

		require.ErrorIs(t, err, order.ErrAlreadyTaken)
		assert.True(t, o.DriverID().IsEqual(winner))
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("re-claim by the holder is idempotent", func(t *testing.T) {
		o := testOrder(t)
		driver := kernel.NewUUID()

		require.NoError(t, o.Claim(driver))
		require.NoError(t, o.Claim(driver))

		assert.Equal(t, order.Accepted, o.Status())
		assert.True(t, o.DriverID().IsEqual(driver))
	})

	t.Run("assigned driver confirms via claim", func(t *testing.T) {
		o := testOrder(t)
		driver := kernel.NewUUID()
		require.NoError(t, o.AssignDriver(driver))

		require.NoError(t, o.Claim(driver))

		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("claim on admin-assigned order by another driver fails", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.AssignDriver(kernel.NewUUID()))

		err := o.Claim(kernel.NewUUID())

		require.ErrorIs(t, err, order.ErrAlreadyTaken)
	})

	t.Run("claim on cancelled order fails", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.Cancel())

		err := o.Claim(kernel.NewUUID())

		require.ErrorIs(t, err, order.ErrIllegalTransition)
	})
}

func TestOrder_AdvanceTo(t *testing.T) {
	claimed := func(t *testing.T) (*order.Order, kernel.UUID) {
		o := testOrder(t)
		driver := kernel.NewUUID()
		require.NoError(t, o.Claim(driver))
		return o, driver
	}

	t.Run("walks the full forward path", func(t *testing.T) {
		o, driver := claimed(t)

		require.NoError(t, o.AdvanceTo(driver, order.OnWay))
		assert.Equal(t, order.OnWay, o.Status())

		require.NoError(t, o.AdvanceTo(driver, order.InProgress))
		assert.Equal(t, order.InProgress, o.Status())

		require.NoError(t, o.AdvanceTo(driver, order.Completed))
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("skipping a step is rejected", func(t *testing.T) {
		o, driver := claimed(t)

		err := o.AdvanceTo(driver, order.InProgress)

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("repeating a step is rejected", func(t *testing.T) {
		o, driver := claimed(t)
		require.NoError(t, o.AdvanceTo(driver, order.OnWay))
		require.NoError(t, o.AdvanceTo(driver, order.InProgress))

		err := o.AdvanceTo(driver, order.InProgress)

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Equal(t, order.InProgress, o.Status())
	})

	t.Run("only the assigned driver may advance", func(t *testing.T) {
		o, _ := claimed(t)

		err := o.AdvanceTo(kernel.NewUUID(), order.OnWay)

		require.ErrorIs(t, err, order.ErrNotAssignedDriver)
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("non driver-controlled targets are rejected", func(t *testing.T) {
		o, driver := claimed(t)

		err := o.AdvanceTo(driver, order.Assigned)

		require.ErrorIs(t, err, order.ErrIllegalTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancellable from pre-drive states", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("cancellable while driver is on the way", func(t *testing.T) {
		o := testOrder(t)
		driver := kernel.NewUUID()
		require.NoError(t, o.Claim(driver))
		require.NoError(t, o.AdvanceTo(driver, order.OnWay))

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("rejected once the drive started", func(t *testing.T) {
		o := testOrder(t)
		driver := kernel.NewUUID()
		require.NoError(t, o.Claim(driver))
		require.NoError(t, o.AdvanceTo(driver, order.OnWay))
		require.NoError(t, o.AdvanceTo(driver, order.InProgress))

		err := o.Cancel()

		require.ErrorIs(t, err, order.ErrNotCancellable)
		assert.Equal(t, order.InProgress, o.Status())
	})

	t.Run("rejected in terminal states", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.Cancel())

		require.ErrorIs(t, o.Cancel(), order.ErrNotCancellable)
	})
}

func TestOrder_SelfAssign(t *testing.T) {
	t.Run("driver-created order starts assigned to its creator", func(t *testing.T) {
		o := testOrder(t)

		require.NoError(t, o.SelfAssign())

		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.DriverID())
		assert.True(t, o.DriverID().IsEqual(o.CustomerID()))
	})

	t.Run("rejected once lifecycle progressed", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.Claim(kernel.NewUUID()))

		require.Error(t, o.SelfAssign())
	})
}

func TestOrder_PlateMirroring(t *testing.T) {
	t.Run("assigning a vehicle mirrors its plate", func(t *testing.T) {
		o := testOrder(t)

		require.NoError(t, o.AssignVehicle(kernel.NewUUID(), "34ABC123"))

		assert.Equal(t, "34ABC123", o.LicensePlate())
	})

	t.Run("manual plate survives the vehicle being cleared", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.SetLicensePlate("34XYZ789"))
		require.NoError(t, o.AssignVehicle(kernel.NewUUID(), "34ABC123"))
		assert.Equal(t, "34ABC123", o.LicensePlate())

		o.ClearVehicle()

		assert.Nil(t, o.VehicleID())
		assert.Equal(t, "34XYZ789", o.LicensePlate())
	})

	t.Run("clearing without a manual plate leaves it empty", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.AssignVehicle(kernel.NewUUID(), "34ABC123"))

		o.ClearVehicle()

		assert.Empty(t, o.LicensePlate())
	})

	t.Run("manual entry rejected while a vehicle is set", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.AssignVehicle(kernel.NewUUID(), "34ABC123"))

		require.Error(t, o.SetLicensePlate("06DEF456"))
		assert.Equal(t, "34ABC123", o.LicensePlate())
	})
}

func TestOrder_AssignDriver(t *testing.T) {
	t.Run("admin assignment from scheduled", func(t *testing.T) {
		o := testOrder(t)
		driver := kernel.NewUUID()

		require.NoError(t, o.AssignDriver(driver))

		assert.Equal(t, order.Assigned, o.Status())
		assert.True(t, o.DriverID().IsEqual(driver))
	})

	t.Run("admin may reassign", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.AssignDriver(kernel.NewUUID()))
		replacement := kernel.NewUUID()

		require.NoError(t, o.AssignDriver(replacement))

		assert.True(t, o.DriverID().IsEqual(replacement))
	})

	t.Run("rejected in terminal states", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.Cancel())

		require.ErrorIs(t, o.AssignDriver(kernel.NewUUID()), order.ErrIllegalTransition)
	})
}

func TestOrder_UpdateContent(t *testing.T) {
	t.Run("owner may rewrite content while scheduled", func(t *testing.T) {
		o := testOrder(t)
		newRoute := testRoute(t, testStop(t, "Extra stop", 41.05, 29.01))
		newFare, err := order.NewFare(200, 8.5, 40, "cash")
		require.NoError(t, err)

		require.NoError(t, o.UpdateContent(newRoute, time.Now().Add(3*time.Hour), newFare))

		assert.Len(t, o.Route().Stops(), 1)
		assert.InDelta(t, 200.0, o.Fare().Price(), 1e-9)
	})

	t.Run("content frozen after a driver claims", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.Claim(kernel.NewUUID()))

		err := o.UpdateContent(testRoute(t), time.Now().Add(time.Hour), testFare(t))

		require.ErrorIs(t, err, order.ErrIllegalTransition)
	})
}

func TestOrder_SnapshotRoundTrip(t *testing.T) {
	o := testOrder(t)
	driver := kernel.NewUUID()
	require.NoError(t, o.Claim(driver))
	require.NoError(t, o.SetInvoice(kernel.NewUUID()))
	contact, err := order.NewContact("Jane Doe", "+905551112233")
	require.NoError(t, err)
	o.SetEmergencyContact(contact)

	restored, err := order.RestoreOrder(o.ToSnapshot())

	require.NoError(t, err)
	require.NoError(t, restored.Validate())
	assert.True(t, restored.Number().IsEqual(o.Number()))
	assert.Equal(t, order.Accepted, restored.Status())
	assert.True(t, restored.DriverID().IsEqual(driver))
	require.NotNil(t, restored.EmergencyContact())
	assert.Equal(t, "Jane Doe", restored.EmergencyContact().Name())
}
