package capability

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

// PriceGuard calls the price oracle that decides if a live price drifted too far down
type PriceGuard struct {
	Addr common.Address
}

func (g PriceGuard) IsPriceDiffOverThreshold(cc *types.ContractContext, tokenA common.Address, tokenB common.Address) (bool, error) {
	return callBool(cc, g.Addr, "IsPriceDiffOverThreshold", tokenA, tokenB)
}

func (g PriceGuard) IsPathPriceDiffOverThreshold(cc *types.ContractContext, path []common.Address) (bool, error) {
	return callBool(cc, g.Addr, "IsPathPriceDiffOverThreshold", path)
}

// CheckPaths fails with ErrPriceGuardTripped when any path is over the threshold
func (g PriceGuard) CheckPaths(cc *types.ContractContext, paths ...[]common.Address) error {
	for _, path := range paths {
		if len(path) < 2 {
			continue
		}
		over, err := g.IsPathPriceDiffOverThreshold(cc, path)
		if err != nil {
			return err
		}
		if over {
			return errors.Wrapf(ErrPriceGuardTripped, "%v -> %v", path[0].String(), path[len(path)-1].String())
		}
	}
	return nil
}
