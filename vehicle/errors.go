package vehicle

import "errors"

var (
	ErrOrderTableFull          = errors.New("no space for more vehicle orders")
	ErrRoutingTableFull        = errors.New("no free routing slots")
	ErrTooManyVehiclesForOwner = errors.New("too many vehicles")
	ErrIncompatibleVehicleType = errors.New("incompatible vehicle")
	ErrMalformedChain          = errors.New("malformed vehicle chain")
	ErrNoVehicle               = errors.New("vehicle does not exist")
	ErrVehicleLocked           = errors.New("vehicle is locked")
	ErrNotOwner                = errors.New("vehicle is owned by another company")
	ErrCannotModify            = errors.New("vehicle must be stopped to be modified")
	ErrUnknownObject           = errors.New("unknown vehicle object")
)
