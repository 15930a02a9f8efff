package domain

import "time"

// VehicleType categorizes body styles.
type VehicleType string

const (
	VehicleTypeHatch       VehicleType = "hatch"
	VehicleTypeSedan       VehicleType = "sedan"
	VehicleTypeSUV         VehicleType = "suv"
	VehicleTypeHatchback   VehicleType = "hatchback"
	VehicleTypeCoupe       VehicleType = "coupe"
	VehicleTypeConvertible VehicleType = "convertible"
	VehicleTypeWagon       VehicleType = "wagon"
	VehicleTypeVan         VehicleType = "van"
	VehicleTypePickup      VehicleType = "pickup"
	VehicleTypeOther       VehicleType = "other"
)

// VehicleStatus tracks listing availability.
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusUnavailable VehicleStatus = "unavailable"
	VehicleStatusSold        VehicleStatus = "sold"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusReserved    VehicleStatus = "reserved"
)

// VehicleCondition describes wear level.
type VehicleCondition string

const (
	VehicleConditionNew       VehicleCondition = "new"
	VehicleConditionUsed      VehicleCondition = "used"
	VehicleConditionCertified VehicleCondition = "certified pre-owned"
)

// VehicleColor enumerates accepted exterior colors.
type VehicleColor string

const (
	VehicleColorBlack  VehicleColor = "black"
	VehicleColorWhite  VehicleColor = "white"
	VehicleColorSilver VehicleColor = "silver"
	VehicleColorGray   VehicleColor = "gray"
	VehicleColorRed    VehicleColor = "red"
	VehicleColorBlue   VehicleColor = "blue"
	VehicleColorBrown  VehicleColor = "brown"
	VehicleColorGreen  VehicleColor = "green"
	VehicleColorYellow VehicleColor = "yellow"
	VehicleColorOrange VehicleColor = "orange"
	VehicleColorPurple VehicleColor = "purple"
	VehicleColorOther  VehicleColor = "other"
)

// TransmissionType enumerates gearbox variants.
type TransmissionType string

const (
	TransmissionAutomatic     TransmissionType = "automatic"
	TransmissionManual        TransmissionType = "manual"
	TransmissionSemiAutomatic TransmissionType = "semi-automatic"
	TransmissionCVT           TransmissionType = "cvt"
)

// FuelType enumerates powertrain fuels.
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelEthanol  FuelType = "ethanol"
	FuelFlex     FuelType = "flex"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
	FuelOther    FuelType = "other"
)

// Vehicle is a marketplace listing owned by a user.
type Vehicle struct {
	ID           string
	Type         VehicleType
	Model        string
	FactoryYear  int
	ModelYear    int
	Color        VehicleColor
	FuelType     FuelType
	Transmission TransmissionType
	Condition    VehicleCondition
	Status       VehicleStatus
	Mileage      int
	Plate        string
	Price        float64
	Description  *string
	BrandID      string
	OwnerID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
