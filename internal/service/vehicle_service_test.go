package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/car-marketplace/internal/config"
	"github.com/spec-kit/car-marketplace/internal/domain"
	"github.com/spec-kit/car-marketplace/internal/events"
	"github.com/spec-kit/car-marketplace/internal/repository"
	apperrors "github.com/spec-kit/car-marketplace/pkg/util"
)

type mockVehicleRepo struct{ mock.Mock }

func (m *mockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	return m.Called(vehicle).Error(0)
}
func (m *mockVehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	return m.Called(vehicle).Error(0)
}
func (m *mockVehicleRepo) Delete(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}
func (m *mockVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *mockVehicleRepo) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	args := m.Called(plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *mockVehicleRepo) List(ctx context.Context, filter repository.VehicleFilter) ([]*domain.Vehicle, int64, error) {
	args := m.Called(filter)
	return args.Get(0).([]*domain.Vehicle), args.Get(1).(int64), args.Error(2)
}

type mockBrandRepo struct{ mock.Mock }

func (m *mockBrandRepo) Create(ctx context.Context, brand *domain.Brand) error {
	return m.Called(brand).Error(0)
}
func (m *mockBrandRepo) Update(ctx context.Context, brand *domain.Brand) error {
	return m.Called(brand).Error(0)
}
func (m *mockBrandRepo) Delete(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}
func (m *mockBrandRepo) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}
func (m *mockBrandRepo) GetByName(ctx context.Context, name string) (*domain.Brand, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}
func (m *mockBrandRepo) List(ctx context.Context, filter repository.BrandFilter) ([]*domain.Brand, int64, error) {
	args := m.Called(filter)
	return args.Get(0).([]*domain.Brand), args.Get(1).(int64), args.Error(2)
}
func (m *mockBrandRepo) HasVehicles(ctx context.Context, id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func marketConfig() config.Config {
	return config.Config{
		Market: config.MarketConfig{
			MinFactoryYear: 1950,
			MaxFutureYears: 1,
			MaxPrice:       10000000,
			MaxMileage:     1000000,
		},
	}
}

func validCreateInput() VehicleCreateInput {
	year := time.Now().Year()
	return VehicleCreateInput{
		Type:         domain.VehicleTypeSedan,
		Model:        "Corolla",
		FactoryYear:  year - 1,
		ModelYear:    year,
		Color:        domain.VehicleColorWhite,
		FuelType:     domain.FuelFlex,
		Transmission: domain.TransmissionAutomatic,
		Condition:    domain.VehicleConditionUsed,
		Mileage:      42000,
		Plate:        "ABC1D23",
		Price:        85000,
		BrandID:      "brand-1",
		OwnerID:      "user-1",
	}
}

func newVehicleService(vehicles *mockVehicleRepo, brands *mockBrandRepo, users *mockUserRepo, dispatcher events.Dispatcher) *VehicleService {
	return NewVehicleService(marketConfig(), VehicleDependencies{
		VehicleRepo: vehicles,
		BrandRepo:   brands,
		UserRepo:    users,
		Dispatcher:  dispatcher,
	})
}

func TestVehicleService_CreateListing(t *testing.T) {
	t.Run("success publishes vehicle_listed", func(t *testing.T) {
		vehicles := new(mockVehicleRepo)
		brands := new(mockBrandRepo)
		users := new(mockUserRepo)

		brands.On("GetByID", "brand-1").Return(&domain.Brand{ID: "brand-1", Active: true}, nil).Once()
		users.On("GetByID", "user-1").Return(&domain.User{ID: "user-1", Active: true}, nil).Once()
		vehicles.On("GetByPlate", "ABC1D23").Return(nil, pgx.ErrNoRows).Once()
		vehicles.On("Create", mock.MatchedBy(func(v *domain.Vehicle) bool {
			return v.Status == domain.VehicleStatusAvailable && v.OwnerID == "user-1"
		})).Return(nil).Once()

		dispatcher := events.NewInMemoryDispatcher()
		var listed int
		dispatcher.Subscribe(events.EventVehicleListed, func(_ context.Context, _ events.Event) error {
			listed++
			return nil
		})

		svc := newVehicleService(vehicles, brands, users, dispatcher)
		vehicle, err := svc.CreateListing(context.Background(), validCreateInput())

		require.NoError(t, err)
		assert.Equal(t, domain.VehicleStatusAvailable, vehicle.Status)
		assert.Equal(t, 1, listed)
		vehicles.AssertExpectations(t)
	})

	t.Run("unknown brand rejected", func(t *testing.T) {
		vehicles := new(mockVehicleRepo)
		brands := new(mockBrandRepo)
		users := new(mockUserRepo)
		brands.On("GetByID", "brand-1").Return(nil, pgx.ErrNoRows).Once()

		svc := newVehicleService(vehicles, brands, users, nil)
		_, err := svc.CreateListing(context.Background(), validCreateInput())

		require.Error(t, err)
		assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
		vehicles.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate plate rejected", func(t *testing.T) {
		vehicles := new(mockVehicleRepo)
		brands := new(mockBrandRepo)
		users := new(mockUserRepo)

		brands.On("GetByID", "brand-1").Return(&domain.Brand{ID: "brand-1", Active: true}, nil).Once()
		users.On("GetByID", "user-1").Return(&domain.User{ID: "user-1", Active: true}, nil).Once()
		vehicles.On("GetByPlate", "ABC1D23").
			Return(&domain.Vehicle{ID: "other-vehicle", Plate: "ABC1D23"}, nil).Once()

		svc := newVehicleService(vehicles, brands, users, nil)
		_, err := svc.CreateListing(context.Background(), validCreateInput())

		require.Error(t, err)
		assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
		vehicles.AssertNotCalled(t, "Create")
	})

	t.Run("model year cannot trail or outrun factory year", func(t *testing.T) {
		svc := newVehicleService(new(mockVehicleRepo), new(mockBrandRepo), new(mockUserRepo), nil)

		input := validCreateInput()
		input.ModelYear = input.FactoryYear - 1
		_, err := svc.CreateListing(context.Background(), input)
		assert.Error(t, err)

		input = validCreateInput()
		input.ModelYear = input.FactoryYear + 2
		_, err = svc.CreateListing(context.Background(), input)
		assert.Error(t, err)
	})

	t.Run("factory year bounds enforced", func(t *testing.T) {
		svc := newVehicleService(new(mockVehicleRepo), new(mockBrandRepo), new(mockUserRepo), nil)

		input := validCreateInput()
		input.FactoryYear = 1900
		input.ModelYear = 1900
		_, err := svc.CreateListing(context.Background(), input)
		assert.Error(t, err)
	})
}

func TestVehicleService_UpdateVehicle(t *testing.T) {
	existing := func() *domain.Vehicle {
		year := time.Now().Year()
		return &domain.Vehicle{
			ID:          "vehicle-1",
			Model:       "Corolla",
			FactoryYear: year - 1,
			ModelYear:   year,
			Status:      domain.VehicleStatusAvailable,
			Plate:       "ABC1D23",
			Price:       85000,
			Mileage:     42000,
			BrandID:     "brand-1",
			OwnerID:     "user-1",
		}
	}

	t.Run("status change publishes event", func(t *testing.T) {
		vehicles := new(mockVehicleRepo)
		vehicles.On("Update", mock.Anything).Return(nil).Once()

		dispatcher := events.NewInMemoryDispatcher()
		var changes []events.VehicleStatusChangedPayload
		dispatcher.Subscribe(events.EventVehicleStatusChanged, func(_ context.Context, e events.Event) error {
			changes = append(changes, e.Payload.(events.VehicleStatusChangedPayload))
			return nil
		})

		svc := newVehicleService(vehicles, new(mockBrandRepo), new(mockUserRepo), dispatcher)
		sold := domain.VehicleStatusSold
		_, err := svc.UpdateVehicle(context.Background(), existing(), VehicleUpdateInput{Status: &sold})

		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Equal(t, domain.VehicleStatusAvailable, changes[0].OldStatus)
		assert.Equal(t, domain.VehicleStatusSold, changes[0].NewStatus)
	})

	t.Run("plate change checks uniqueness", func(t *testing.T) {
		vehicles := new(mockVehicleRepo)
		vehicles.On("GetByPlate", "XYZ9K88").
			Return(&domain.Vehicle{ID: "other-vehicle", Plate: "XYZ9K88"}, nil).Once()

		svc := newVehicleService(vehicles, new(mockBrandRepo), new(mockUserRepo), nil)
		plate := "XYZ9K88"
		_, err := svc.UpdateVehicle(context.Background(), existing(), VehicleUpdateInput{Plate: &plate})

		require.Error(t, err)
		assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
		vehicles.AssertNotCalled(t, "Update")
	})
}

func TestVehicleService_DeleteVehicle(t *testing.T) {
	vehicles := new(mockVehicleRepo)
	vehicles.On("Delete", "vehicle-1").Return(nil).Once()

	dispatcher := events.NewInMemoryDispatcher()
	var removed int
	dispatcher.Subscribe(events.EventVehicleRemoved, func(_ context.Context, _ events.Event) error {
		removed++
		return nil
	})

	svc := newVehicleService(vehicles, new(mockBrandRepo), new(mockUserRepo), dispatcher)
	err := svc.DeleteVehicle(context.Background(), &domain.Vehicle{ID: "vehicle-1", OwnerID: "user-1"})

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	vehicles.AssertExpectations(t)
}
