package priceoracle

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
)

func (cont *PriceOracleContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *PriceOracleContract
}

func (f *front) Owner(cc *types.ContractContext) common.Address {
	return f.cont.Owner(cc)
}

func (f *front) Feeder(cc *types.ContractContext) common.Address {
	return f.cont.Feeder(cc)
}

func (f *front) Router(cc *types.ContractContext) common.Address {
	return f.cont.Router(cc)
}

func (f *front) Threshold(cc *types.ContractContext) uint64 {
	return f.cont.Threshold(cc)
}

func (f *front) GetPrice(cc *types.ContractContext, tokenA common.Address, tokenB common.Address) (*amount.Amount, uint64, error) {
	return f.cont.GetPrice(cc, tokenA, tokenB)
}

func (f *front) IsPriceDiffOverThreshold(cc *types.ContractContext, tokenA common.Address, tokenB common.Address) (bool, error) {
	return f.cont.IsPriceDiffOverThreshold(cc, tokenA, tokenB)
}

func (f *front) IsPathPriceDiffOverThreshold(cc *types.ContractContext, path []common.Address) (bool, error) {
	return f.cont.IsPathPriceDiffOverThreshold(cc, path)
}

func (f *front) SetPrices(cc *types.ContractContext, tokensA []common.Address, tokensB []common.Address, prices []*amount.Amount) error {
	return f.cont.SetPrices(cc, tokensA, tokensB, prices)
}

func (f *front) SetThreshold(cc *types.ContractContext, threshold uint64) error {
	return f.cont.SetThreshold(cc, threshold)
}

func (f *front) SetFeeder(cc *types.ContractContext, feeder common.Address) error {
	return f.cont.SetFeeder(cc, feeder)
}

func (f *front) SetRouter(cc *types.ContractContext, router common.Address) error {
	return f.cont.SetRouter(cc, router)
}

func (f *front) TransferOwnership(cc *types.ContractContext, newOwner common.Address) error {
	return f.cont.TransferOwnership(cc, newOwner)
}
