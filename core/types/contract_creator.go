package types

import (
	"reflect"
	"sort"
	"sync"

	"github.com/meverselabs/yieldvault/common/hash"
	"github.com/pkg/errors"
)

var (
	gContractLock    sync.RWMutex
	gContractTypeMap = map[uint64]reflect.Type{}
	gContractNameMap = map[uint64]string{}
)

// RegisterContractType registers the contract struct and returns its class id.
// The class id is derived from the package path and the type name, so registering
// the same type twice returns the same id.
func RegisterContractType(cont Contract) (uint64, error) {
	rt := reflect.TypeOf(cont)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	name := rt.Name()
	if pkgPath := rt.PkgPath(); len(pkgPath) > 0 {
		name = pkgPath + "." + name
	}
	ClassID := hash.Uint64([]byte(name))

	gContractLock.Lock()
	defer gContractLock.Unlock()

	if v, has := gContractNameMap[ClassID]; has {
		if name != v {
			return 0, errors.WithStack(ErrExistContractType)
		}
		return ClassID, nil
	}
	gContractNameMap[ClassID] = name
	gContractTypeMap[ClassID] = rt
	return ClassID, nil
}

// CreateContract instantiates the registered type of the define
func CreateContract(cd *ContractDefine) (Contract, error) {
	gContractLock.RLock()
	rt, has := gContractTypeMap[cd.ClassID]
	gContractLock.RUnlock()
	if !has {
		return nil, errors.WithStack(ErrInvalidClassID)
	}
	cont := reflect.New(rt).Interface().(Contract)
	cont.Init(cd.Address, cd.Owner)
	return cont, nil
}

func IsValidClassID(ClassID uint64) bool {
	gContractLock.RLock()
	defer gContractLock.RUnlock()
	_, has := gContractTypeMap[ClassID]
	return has
}

func ContractName(ClassID uint64) string {
	gContractLock.RLock()
	defer gContractLock.RUnlock()
	return gContractNameMap[ClassID]
}

// ContractClasses returns registered class ids ordered by name
func ContractClasses() []uint64 {
	gContractLock.RLock()
	defer gContractLock.RUnlock()
	ids := make([]uint64, 0, len(gContractNameMap))
	for id := range gContractNameMap {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return gContractNameMap[ids[i]] < gContractNameMap[ids[j]]
	})
	return ids
}
