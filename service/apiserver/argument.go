package apiserver

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/pkg/errors"
)

// Argument parses rpc arguments
type Argument struct {
	args []interface{}
}

// NewArgument returns a Argument
func NewArgument(args []interface{}) *Argument {
	arg := &Argument{
		args: args,
	}
	return arg
}

// Len returns length of arguments
func (arg *Argument) Len() int {
	return len(arg.args)
}

func (arg *Argument) get(index int) (interface{}, error) {
	if index < 0 || index >= len(arg.args) {
		return nil, errors.Wrapf(ErrInvalidArgumentIndex, "%v of %v", index, len(arg.args))
	}
	a := arg.args[index]
	if a == nil {
		return nil, errors.Wrapf(ErrInvalidArgumentType, "null at %v", index)
	}
	return a, nil
}

// Uint32 returns a uint32 value of the index
func (arg *Argument) Uint32(index int) (uint32, error) {
	a, err := arg.get(index)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(fmt.Sprintf("%v", a), 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArgument, "%v", err)
	}
	return uint32(n), nil
}

// Uint64 returns a uint64 value of the index
func (arg *Argument) Uint64(index int) (uint64, error) {
	a, err := arg.get(index)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(fmt.Sprintf("%v", a), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArgument, "%v", err)
	}
	return n, nil
}

// String returns a string value of the index
func (arg *Argument) String(index int) (string, error) {
	a, err := arg.get(index)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", a), nil
}

// Address returns the address of the hex string at the index
func (arg *Argument) Address(index int) (common.Address, error) {
	str, err := arg.String(index)
	if err != nil {
		return common.ZeroAddr, err
	}
	addr, err := common.ParseAddress(str)
	if err != nil {
		return common.ZeroAddr, errors.Wrapf(ErrInvalidArgument, "%v", err)
	}
	return addr, nil
}

// Addresses returns the addresses of the array at the index
func (arg *Argument) Addresses(index int) ([]common.Address, error) {
	arr, err := arg.Array(index)
	if err != nil {
		return nil, err
	}
	addrs := make([]common.Address, 0, len(arr))
	for i, v := range arr {
		addr, err := common.ParseAddress(fmt.Sprintf("%v", v))
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidArgument, "address(%v): %v", i, err)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// Amount returns the amount of the decimal string at the index
func (arg *Argument) Amount(index int) (*amount.Amount, error) {
	str, err := arg.String(index)
	if err != nil {
		return nil, err
	}
	am, err := amount.ParseAmount(str)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "%v", err)
	}
	return am, nil
}

// Array returns a slice value of the index
func (arg *Argument) Array(index int) ([]interface{}, error) {
	a, err := arg.get(index)
	if err != nil {
		return nil, err
	}
	switch reflect.TypeOf(a).Kind() {
	case reflect.Slice:
		s := reflect.ValueOf(a)

		r := make([]interface{}, 0, s.Len())
		for i := 0; i < s.Len(); i++ {
			r = append(r, s.Index(i).Interface())
		}
		return r, nil
	}
	return nil, errors.Wrapf(ErrInvalidArgumentType, "%T at %v", a, index)
}

// Map returns a map value of the index
func (arg *Argument) Map(index int) (map[string]interface{}, error) {
	a, err := arg.get(index)
	if err != nil {
		return nil, err
	}
	switch reflect.TypeOf(a).Kind() {
	case reflect.Map:
		s := reflect.ValueOf(a)

		r := map[string]interface{}{}
		mi := s.MapRange()
		for mi.Next() {
			r[fmt.Sprintf("%v", mi.Key().Interface())] = mi.Value().Interface()
		}
		return r, nil
	}
	return nil, errors.Wrapf(ErrInvalidArgumentType, "%T at %v", a, index)
}

// Decode re-encodes the value of the index and decodes it into v
func (arg *Argument) Decode(index int, v interface{}) error {
	a, err := arg.get(index)
	if err != nil {
		return err
	}
	bs, err := json.Marshal(a)
	if err != nil {
		return errors.Wrapf(ErrInvalidArgument, "%v", err)
	}
	if err := json.Unmarshal(bs, v); err != nil {
		return errors.Wrapf(ErrInvalidArgument, "%v", err)
	}
	return nil
}
