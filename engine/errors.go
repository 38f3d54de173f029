package engine

import "errors"

// Business-rule violations returned by the matching core. None of them
// leave a book partially mutated: every rejecting path checks before it
// acts.
var (
	ErrSymbolMismatch         = errors.New("order symbol does not match book symbol")
	ErrInvalidOrderParameters = errors.New("invalid order parameters")
	ErrInsufficientLiquidity  = errors.New("insufficient liquidity to fill order")
	ErrUnsupportedOrderType   = errors.New("unsupported order type")
	ErrSymbolNotRegistered    = errors.New("symbol not registered")
	ErrSymbolAlreadyExists    = errors.New("symbol already registered")
)
