package contract

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ToBigInt widens a native integer to *big.Int. An existing *big.Int
// passes through untouched. Widening is always lossless; anything that
// is not an integer is rejected.
func ToBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("nil *big.Int")
		}
		return v, nil
	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("unsupported numeric type %T", value)
	}
}

// normalizeArgs coerces native integer arguments to *big.Int wherever the
// ABI input is an integer wider than 64 bits, so callers can pass either
// form and produce identical call data.
func normalizeArgs(method abi.Method, args []any) ([]any, error) {
	if len(args) != len(method.Inputs) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(method.Inputs), len(args))
	}

	normalized := make([]any, len(args))
	for i, arg := range args {
		input := method.Inputs[i]
		if wideInteger(input.Type) {
			value, err := ToBigInt(arg)
			if err != nil {
				return nil, fmt.Errorf("argument %d (%s): %w", i, input.Name, err)
			}
			normalized[i] = value
			continue
		}
		normalized[i] = arg
	}

	return normalized, nil
}

// wideInteger reports whether the ABI type is an integer the abi package
// represents as *big.Int.
func wideInteger(t abi.Type) bool {
	return (t.T == abi.UintTy || t.T == abi.IntTy) && t.Size > 64
}
