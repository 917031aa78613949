package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/pkg/errors"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

var (
	addressType   = reflect.TypeOf(common.Address{})
	amountType    = reflect.TypeOf(&amount.Amount{})
	bigIntType    = reflect.TypeOf(&big.Int{})
	bytesType     = reflect.TypeOf([]byte{})
	addressesType = reflect.TypeOf([]common.Address{})
	amountsType   = reflect.TypeOf([]*amount.Amount{})
	stringsType   = reflect.TypeOf([]string{})
)

// ExecFunc calls a method of the contract at Addr on behalf of the running contract
type ExecFunc = func(Cc *ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error)

type interactor struct {
	ctx    *Context
	conMap map[common.Address]Contract
}

// NewInteractor returns the dispatcher of nested contract calls
func NewInteractor(ctx *Context) *interactor {
	return &interactor{
		ctx:    ctx,
		conMap: map[common.Address]Contract{},
	}
}

// Exec runs the method with the calling contract as the caller
func (i *interactor) Exec(Cc *ContractContext, ContAddr common.Address, MethodName string, Args []interface{}) ([]interface{}, error) {
	if MethodName == "" {
		return nil, errors.WithStack(ErrMethodNotExist)
	}
	cont, err := i.getContract(ContAddr)
	if err != nil {
		return nil, err
	}
	ecc := &ContractContext{
		cont: ContAddr,
		from: Cc.cont,
		ctx:  Cc.ctx,
		Exec: i.Exec,
	}
	return execMethod(ecc, cont, MethodName, Args)
}

func (i *interactor) getContract(Addr common.Address) (Contract, error) {
	if cont, has := i.conMap[Addr]; has {
		return cont, nil
	}
	cont, err := i.ctx.Contract(Addr)
	if err != nil {
		return nil, err
	}
	i.conMap[Addr] = cont
	return cont, nil
}

// execMethod calls the method inside a snapshot, the snapshot is committed only when the method succeeds
func execMethod(ecc *ContractContext, cont Contract, MethodName string, Args []interface{}) (result []interface{}, err error) {
	if MethodName == "" {
		return nil, errors.WithStack(ErrMethodNotExist)
	}
	MethodName = strings.ToUpper(MethodName[:1]) + MethodName[1:]
	rMethod, err := contractMethod(cont.Front(), cont.Address(), MethodName)
	if err != nil {
		return nil, err
	}
	in, err := ContractInputsConv(Args, rMethod)
	if err != nil {
		return nil, err
	}
	in = append([]reflect.Value{reflect.ValueOf(ecc)}, in...)

	sn := ecc.ctx.Snapshot()
	vs, err := func() (vs []reflect.Value, err error) {
		defer func() {
			if v := recover(); v != nil {
				err = errors.Wrapf(ErrContractPanic, "call method(%v) of contract(%v): %v", MethodName, cont.Address().String(), v)
			}
		}()
		return rMethod.Call(in), nil
	}()
	if err == nil {
		result, err = getResults(rMethod.Type(), vs)
	}
	if err != nil {
		ecc.ctx.Revert(sn)
		return nil, err
	}
	ecc.ctx.Commit(sn)
	return result, nil
}

func contractMethod(front interface{}, addr common.Address, MethodName string) (reflect.Value, error) {
	vo := reflect.ValueOf(front)
	if !vo.IsValid() || (vo.Kind() == reflect.Ptr && vo.IsNil()) {
		return reflect.Value{}, errors.Wrapf(ErrNotExistContract, "%v", addr.String())
	}
	method := vo.MethodByName(MethodName)
	if !method.IsValid() {
		return reflect.Value{}, errors.Wrapf(ErrMethodNotExist, "%v of %v", MethodName, addr.String())
	}
	if method.Type().NumIn() < 1 || method.Type().In(0) != reflect.TypeOf(&ContractContext{}) {
		return reflect.Value{}, errors.Wrapf(ErrMethodNotExist, "%v of %v", MethodName, addr.String())
	}
	return method, nil
}

func getResults(mType reflect.Type, vs []reflect.Value) ([]interface{}, error) {
	result := []interface{}{}
	for i, v := range vs {
		if mType.Out(i).Kind() == reflect.Interface && mType.Out(i).Implements(errType) {
			if !v.IsNil() {
				return nil, v.Interface().(error)
			}
			continue
		}
		result = append(result, v.Interface())
	}
	return result, nil
}

// ContractInputsConv converts the call arguments to the parameter types of the method.
// Arguments decoded from JSON (strings, numbers and arrays) are accepted for the known types.
func ContractInputsConv(Args []interface{}, rMethod reflect.Value) ([]reflect.Value, error) {
	mt := rMethod.Type()
	if mt.NumIn() != len(Args)+1 {
		return nil, errors.Wrapf(ErrInvalidInputCount, "got %v want %v", len(Args), mt.NumIn()-1)
	}
	in := make([]reflect.Value, len(Args))
	for i, v := range Args {
		mType := mt.In(i + 1)
		param, err := convertInput(v, mType)
		if err != nil {
			return nil, errors.Wrapf(err, "input(%v)", i)
		}
		in[i] = param
	}
	return in, nil
}

func convertInput(v interface{}, mType reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(mType), nil
	}
	param := reflect.ValueOf(v)
	if param.Type() == mType {
		return param, nil
	}
	if param.Type().ConvertibleTo(mType) && param.Kind() == mType.Kind() {
		return param.Convert(mType), nil
	}
	if isUnsigned(mType.Kind()) {
		switch param.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return param.Convert(mType), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if param.Int() < 0 {
				return reflect.Value{}, errors.Wrapf(ErrInvalidInputType, "negative value %v", v)
			}
			return param.Convert(mType), nil
		}
	}

	switch pv := v.(type) {
	case string:
		return convertString(pv, mType)
	case json.Number:
		return convertString(pv.String(), mType)
	case float64:
		return convertString(fmt.Sprintf("%.0f", pv), mType)
	case *big.Int:
		switch mType {
		case amountType:
			return reflect.ValueOf(amount.NewAmountFromBigInt(pv)), nil
		case addressType:
			return reflect.ValueOf(common.BigToAddress(pv)), nil
		}
		if isUnsigned(mType.Kind()) {
			return reflect.ValueOf(pv.Uint64()).Convert(mType), nil
		}
	case *amount.Amount:
		if mType == bigIntType {
			return reflect.ValueOf(new(big.Int).Set(pv.Int)), nil
		}
	case []byte:
		switch mType {
		case addressType:
			return reflect.ValueOf(common.BytesToAddress(pv)), nil
		case amountType:
			return reflect.ValueOf(amount.NewAmountFromBytes(pv)), nil
		}
	case []string:
		items := make([]interface{}, 0, len(pv))
		for _, s := range pv {
			items = append(items, s)
		}
		return convertSlice(items, mType)
	case []interface{}:
		return convertSlice(pv, mType)
	}
	if mType.Kind() == reflect.Slice && param.Kind() == reflect.Slice {
		items := make([]interface{}, 0, param.Len())
		for k := 0; k < param.Len(); k++ {
			items = append(items, param.Index(k).Interface())
		}
		return convertSlice(items, mType)
	}
	return reflect.Value{}, errors.Wrapf(ErrInvalidInputType, "get %v want %v", param.Type(), mType)
}

func convertSlice(items []interface{}, mType reflect.Type) (reflect.Value, error) {
	if mType.Kind() != reflect.Slice {
		return reflect.Value{}, errors.Wrapf(ErrInvalidInputType, "get slice want %v", mType)
	}
	switch mType {
	case addressesType, amountsType, stringsType:
	default:
		if !isUnsigned(mType.Elem().Kind()) && mType.Elem().Kind() != reflect.Bool {
			return reflect.Value{}, errors.Wrapf(ErrInvalidInputType, "unsupported slice %v", mType)
		}
	}
	sl := reflect.MakeSlice(mType, 0, len(items))
	for _, item := range items {
		ev, err := convertInput(item, mType.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		sl = reflect.Append(sl, ev)
	}
	return sl, nil
}

func convertString(pv string, mType reflect.Type) (reflect.Value, error) {
	switch mType {
	case addressType:
		addr, err := common.ParseAddress(pv)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(addr), nil
	case amountType:
		if strings.HasPrefix(pv, "0x") {
			bi, ok := new(big.Int).SetString(pv[2:], 16)
			if !ok {
				return reflect.Value{}, errors.WithStack(amount.ErrInvalidAmountFormat)
			}
			return reflect.ValueOf(amount.NewAmountFromBigInt(bi)), nil
		}
		am, err := amount.ParseAmount(pv)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(am), nil
	case bigIntType:
		bi, ok := new(big.Int).SetString(pv, 0)
		if !ok {
			return reflect.Value{}, errors.Wrapf(ErrInvalidInputType, "%v is not an integer", pv)
		}
		return reflect.ValueOf(bi), nil
	case bytesType:
		bs, err := hex.DecodeString(strings.TrimPrefix(pv, "0x"))
		if err != nil {
			return reflect.Value{}, errors.Wrapf(ErrInvalidInputType, "%v is not hex", pv)
		}
		return reflect.ValueOf(bs), nil
	}
	switch mType.Kind() {
	case reflect.Bool:
		return reflect.ValueOf(strings.ToLower(pv) == "true").Convert(mType), nil
	case reflect.String:
		return reflect.ValueOf(pv).Convert(mType), nil
	}
	if isUnsigned(mType.Kind()) {
		bi, ok := new(big.Int).SetString(pv, 0)
		if !ok || bi.Sign() < 0 || !bi.IsUint64() {
			return reflect.Value{}, errors.Wrapf(ErrInvalidInputType, "%v is not an unsigned integer", pv)
		}
		return reflect.ValueOf(bi.Uint64()).Convert(mType), nil
	}
	return reflect.Value{}, errors.Wrapf(ErrInvalidInputType, "get string want %v", mType)
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
