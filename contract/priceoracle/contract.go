package priceoracle

import (
	"bytes"
	"math/big"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

var ownable = capability.Ownable{Tag: tagOwner}

// PriceOracleContract keeps the prices submitted by the feeder and compares them
// with the live quote of the router. Only a live price below the stored one can trip it.
type PriceOracleContract struct {
	addr   common.Address
	master common.Address
}

func (cont *PriceOracleContract) Name() string {
	return "PriceOracleContract"
}

func (cont *PriceOracleContract) Address() common.Address {
	return cont.addr
}

func (cont *PriceOracleContract) Master() common.Address {
	return cont.master
}

func (cont *PriceOracleContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *PriceOracleContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &PriceOracleContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	ownable.SetOwner(cc, data.Owner)
	cc.SetContractData([]byte{tagFeeder}, data.Feeder[:])
	cc.SetContractData([]byte{tagRouter}, data.Router[:])
	cc.SetContractData([]byte{tagThreshold}, bin.Uint64Bytes(data.ThresholdPercent))
	return nil
}

func (cont *PriceOracleContract) priceRecord(cc *types.ContractContext, tokenA common.Address, tokenB common.Address) (*PriceRecord, error) {
	bs := cc.ContractData(makePriceKey(tokenA, tokenB))
	if len(bs) == 0 {
		return nil, errors.Wrapf(capability.ErrBadPriceData, "%v/%v", tokenA.String(), tokenB.String())
	}
	rec := &PriceRecord{}
	if _, err := rec.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return rec, nil
}

// isOver tells if live is lower than stored by strictly more than threshold percent of stored
func isOver(stored *amount.Amount, live *amount.Amount, threshold uint64) bool {
	if !live.Less(stored) {
		return false
	}
	diff := stored.Sub(live).MulC(100)
	limit := new(big.Int).Mul(stored.Int, new(big.Int).SetUint64(threshold))
	return diff.Cmp(limit) > 0
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *PriceOracleContract) Owner(cc *types.ContractContext) common.Address {
	return ownable.Owner(cc)
}

func (cont *PriceOracleContract) Feeder(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagFeeder}))
}

func (cont *PriceOracleContract) Router(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagRouter}))
}

func (cont *PriceOracleContract) Threshold(cc *types.ContractContext) uint64 {
	return bin.Uint64(cc.ContractData([]byte{tagThreshold}))
}

func (cont *PriceOracleContract) GetPrice(cc *types.ContractContext, tokenA common.Address, tokenB common.Address) (*amount.Amount, uint64, error) {
	rec, err := cont.priceRecord(cc, tokenA, tokenB)
	if err != nil {
		return nil, 0, err
	}
	return rec.Price, rec.LastUpdate, nil
}

// IsPriceDiffOverThreshold quotes one coin of tokenA in tokenB on the router
func (cont *PriceOracleContract) IsPriceDiffOverThreshold(cc *types.ContractContext, tokenA common.Address, tokenB common.Address) (bool, error) {
	return cont.IsPathPriceDiffOverThreshold(cc, []common.Address{tokenA, tokenB})
}

// IsPathPriceDiffOverThreshold quotes one coin over the whole path against the stored price
// of the first and the last token of the path
func (cont *PriceOracleContract) IsPathPriceDiffOverThreshold(cc *types.ContractContext, path []common.Address) (bool, error) {
	if len(path) < 2 {
		return false, errors.Wrapf(capability.ErrInvalidLength, "path of %v tokens", len(path))
	}
	rec, err := cont.priceRecord(cc, path[0], path[len(path)-1])
	if err != nil {
		return false, err
	}
	router := capability.Router{Addr: cont.Router(cc)}
	live, err := router.Quote(cc, amount.COIN, path)
	if err != nil {
		return false, err
	}
	return isOver(rec.Price, live, cont.Threshold(cc)), nil
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *PriceOracleContract) SetPrices(cc *types.ContractContext, tokensA []common.Address, tokensB []common.Address, prices []*amount.Amount) error {
	if cc.From() != cont.Feeder(cc) {
		return errors.Wrapf(capability.ErrPermissionDenied, "%v is not the feeder", cc.From().String())
	}
	if len(tokensA) != len(tokensB) || len(tokensA) != len(prices) {
		return errors.Wrapf(capability.ErrInvalidLength, "%v tokenA, %v tokenB, %v prices", len(tokensA), len(tokensB), len(prices))
	}
	for i, price := range prices {
		if price == nil || price.IsMinus() {
			return errors.Wrapf(capability.ErrInvalidAmount, "price(%v)", i)
		}
		rec := &PriceRecord{
			Price:      price,
			LastUpdate: cc.LastTimestamp(),
		}
		cc.SetContractData(makePriceKey(tokensA[i], tokensB[i]), bin.MustWriterToBytes(rec))
		cc.EmitEvent("PriceUpdated", tokensA[i], tokensB[i], price, rec.LastUpdate)
	}
	return nil
}

//////////////////////////////////////////////////
// Public Writer only owner Functions
//////////////////////////////////////////////////

func (cont *PriceOracleContract) SetThreshold(cc *types.ContractContext, threshold uint64) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagThreshold}, bin.Uint64Bytes(threshold))
	cc.EmitEvent("ThresholdUpdated", threshold)
	return nil
}

func (cont *PriceOracleContract) SetFeeder(cc *types.ContractContext, feeder common.Address) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagFeeder}, feeder[:])
	cc.EmitEvent("FeederUpdated", feeder)
	return nil
}

func (cont *PriceOracleContract) SetRouter(cc *types.ContractContext, router common.Address) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	if router == common.ZeroAddr {
		return errors.Wrap(capability.ErrInvalidAddress, "router")
	}
	cc.SetContractData([]byte{tagRouter}, router[:])
	return nil
}

func (cont *PriceOracleContract) TransferOwnership(cc *types.ContractContext, newOwner common.Address) error {
	return ownable.TransferOwnership(cc, newOwner)
}
