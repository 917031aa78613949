package farm

import (
	"bytes"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

var ownable = capability.Ownable{Tag: tagOwner}

// FarmContract is a MasterChef: the farm token is minted every block and shared
// between the pools by their alloc points, then between the stakers of a pool by amount.
// The farm must be a minter of the farm token.
type FarmContract struct {
	addr   common.Address
	master common.Address
}

func (cont *FarmContract) Name() string {
	return "FarmContract"
}

func (cont *FarmContract) Address() common.Address {
	return cont.addr
}

func (cont *FarmContract) Master() common.Address {
	return cont.master
}

func (cont *FarmContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *FarmContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &FarmContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	ownable.SetOwner(cc, data.Owner)
	cc.SetContractData([]byte{tagFarmToken}, data.FarmToken[:])
	cc.SetContractData([]byte{tagTokenPerBlock}, data.TokenPerBlock.Bytes())
	cc.SetContractData([]byte{tagStartBlock}, bin.Uint32Bytes(data.StartBlock))
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *FarmContract) poolInfo(cc *types.ContractContext, pid uint64) (*PoolInfo, error) {
	if pid >= cont.PoolLength(cc) {
		return nil, errors.Wrapf(ErrNotExistPool, "pid %v", pid)
	}
	bs := cc.ContractData(makePoolInfoKey(pid))
	pool := &PoolInfo{}
	if _, err := pool.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return pool, nil
}

func (cont *FarmContract) setPoolInfo(cc *types.ContractContext, pid uint64, pool *PoolInfo) {
	cc.SetContractData(makePoolInfoKey(pid), bin.MustWriterToBytes(pool))
}

func (cont *FarmContract) userInfo(cc *types.ContractContext, pid uint64, user common.Address) *UserInfo {
	bs := cc.ContractData(makeUserInfoKey(pid, user))
	if len(bs) == 0 {
		return &UserInfo{
			Amount:     amount.NewAmount(0, 0),
			RewardDebt: amount.NewAmount(0, 0),
		}
	}
	info := &UserInfo{}
	if _, err := info.ReadFrom(bytes.NewReader(bs)); err != nil {
		panic(err)
	}
	return info
}

func (cont *FarmContract) setUserInfo(cc *types.ContractContext, pid uint64, user common.Address, info *UserInfo) {
	if info.Amount.IsZero() && info.RewardDebt.IsZero() {
		cc.SetContractData(makeUserInfoKey(pid, user), nil)
		return
	}
	cc.SetContractData(makeUserInfoKey(pid, user), bin.MustWriterToBytes(info))
}

// accumulated returns the AccTokenPerShare of the pool as if it was updated at the target height
func (cont *FarmContract) accumulated(cc *types.ContractContext, pool *PoolInfo) (*amount.Amount, *amount.Amount) {
	reward := cont.poolReward(cc, pool)
	if reward.IsZero() {
		return pool.AccTokenPerShare, reward
	}
	return pool.AccTokenPerShare.Add(reward.MulC(ACC_SCALE).Div(pool.TotalAmount)), reward
}

func (cont *FarmContract) poolReward(cc *types.ContractContext, pool *PoolInfo) *amount.Amount {
	if cc.TargetHeight() <= pool.LastRewardBlock || pool.TotalAmount.IsZero() {
		return amount.NewAmount(0, 0)
	}
	totalAllocPoint := cont.TotalAllocPoint(cc)
	if totalAllocPoint == 0 {
		return amount.NewAmount(0, 0)
	}
	multiplier := int64(cc.TargetHeight() - pool.LastRewardBlock)
	return cont.TokenPerBlock(cc).MulC(multiplier).MulC(int64(pool.AllocPoint)).DivC(int64(totalAllocPoint))
}

func pendingOf(user *UserInfo, acc *amount.Amount) *amount.Amount {
	pending := user.Amount.Mul(acc).DivC(ACC_SCALE).Sub(user.RewardDebt)
	if pending.IsMinus() {
		return amount.NewAmount(0, 0)
	}
	return pending
}

// safeFarmTokenTransfer pays at most the balance of the farm
func (cont *FarmContract) safeFarmTokenTransfer(cc *types.ContractContext, to common.Address, amt *amount.Amount) error {
	farmToken := capability.Token{Addr: cont.FarmToken(cc)}
	bal, err := farmToken.SelfBalance(cc)
	if err != nil {
		return err
	}
	return farmToken.Transfer(cc, to, amount.Min(amt, bal))
}

func (cont *FarmContract) payPending(cc *types.ContractContext, pid uint64, to common.Address, user *UserInfo, acc *amount.Amount) error {
	pending := pendingOf(user, acc)
	if !pending.IsPlus() {
		return nil
	}
	if err := cont.safeFarmTokenTransfer(cc, to, pending); err != nil {
		return err
	}
	cc.EmitEvent("Harvest", to, pid, pending)
	return nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *FarmContract) Owner(cc *types.ContractContext) common.Address {
	return ownable.Owner(cc)
}

func (cont *FarmContract) FarmToken(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagFarmToken}))
}

func (cont *FarmContract) TokenPerBlock(cc *types.ContractContext) *amount.Amount {
	return amount.NewAmountFromBytes(cc.ContractData([]byte{tagTokenPerBlock}))
}

func (cont *FarmContract) StartBlock(cc *types.ContractContext) uint32 {
	return bin.Uint32(cc.ContractData([]byte{tagStartBlock}))
}

func (cont *FarmContract) TotalAllocPoint(cc *types.ContractContext) uint32 {
	return bin.Uint32(cc.ContractData([]byte{tagTotalAllocPoint}))
}

func (cont *FarmContract) PoolLength(cc *types.ContractContext) uint64 {
	return bin.Uint64(cc.ContractData([]byte{tagPoolLength}))
}

func (cont *FarmContract) PoolInfo(cc *types.ContractContext, pid uint64) (*PoolInfo, error) {
	return cont.poolInfo(cc, pid)
}

func (cont *FarmContract) UserInfo(cc *types.ContractContext, pid uint64, user common.Address) (*amount.Amount, *amount.Amount) {
	info := cont.userInfo(cc, pid, user)
	return info.Amount, info.RewardDebt
}

// PendingReward returns the farm token the user would receive on the next deposit or withdraw
func (cont *FarmContract) PendingReward(cc *types.ContractContext, pid uint64, user common.Address) (*amount.Amount, error) {
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return nil, err
	}
	acc, _ := cont.accumulated(cc, pool)
	return pendingOf(cont.userInfo(cc, pid, user), acc), nil
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *FarmContract) MassUpdatePools(cc *types.ContractContext) error {
	length := cont.PoolLength(cc)
	for pid := uint64(0); pid < length; pid++ {
		if err := cont.UpdatePool(cc, pid); err != nil {
			return err
		}
	}
	return nil
}

// UpdatePool mints the reward of the pool since its last reward block
func (cont *FarmContract) UpdatePool(cc *types.ContractContext, pid uint64) error {
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return err
	}
	if cc.TargetHeight() <= pool.LastRewardBlock {
		return nil
	}
	acc, reward := cont.accumulated(cc, pool)
	if reward.IsPlus() {
		farmToken := capability.Token{Addr: cont.FarmToken(cc)}
		if err := farmToken.Mint(cc, cont.addr, reward); err != nil {
			return err
		}
	}
	pool.AccTokenPerShare = acc
	pool.LastRewardBlock = cc.TargetHeight()
	cont.setPoolInfo(cc, pid, pool)
	return nil
}

// Deposit stakes the want token of the pool and pays the pending reward.
// A zero amount only claims.
func (cont *FarmContract) Deposit(cc *types.ContractContext, pid uint64, amt *amount.Amount) error {
	if amt.IsMinus() {
		return errors.Wrap(capability.ErrInvalidAmount, "negative deposit")
	}
	if err := cont.UpdatePool(cc, pid); err != nil {
		return err
	}
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return err
	}
	user := cont.userInfo(cc, pid, cc.From())
	if err := cont.payPending(cc, pid, cc.From(), user, pool.AccTokenPerShare); err != nil {
		return err
	}
	if amt.IsPlus() {
		want := capability.Token{Addr: pool.Want}
		if err := want.TransferFrom(cc, cc.From(), cont.addr, amt); err != nil {
			return err
		}
		user.Amount = user.Amount.Add(amt)
		pool.TotalAmount = pool.TotalAmount.Add(amt)
		cont.setPoolInfo(cc, pid, pool)
	}
	user.RewardDebt = user.Amount.Mul(pool.AccTokenPerShare).DivC(ACC_SCALE)
	cont.setUserInfo(cc, pid, cc.From(), user)
	cc.EmitEvent("Deposit", cc.From(), pid, amt)
	return nil
}

// Withdraw returns the staked want token and pays the pending reward
func (cont *FarmContract) Withdraw(cc *types.ContractContext, pid uint64, amt *amount.Amount) error {
	if amt.IsMinus() {
		return errors.Wrap(capability.ErrInvalidAmount, "negative withdraw")
	}
	if err := cont.UpdatePool(cc, pid); err != nil {
		return err
	}
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return err
	}
	user := cont.userInfo(cc, pid, cc.From())
	if user.Amount.Less(amt) {
		return errors.Wrapf(capability.ErrInsufficientBalance, "staked %v, withdraw %v", user.Amount.String(), amt.String())
	}
	if err := cont.payPending(cc, pid, cc.From(), user, pool.AccTokenPerShare); err != nil {
		return err
	}
	if amt.IsPlus() {
		user.Amount = user.Amount.Sub(amt)
		pool.TotalAmount = pool.TotalAmount.Sub(amt)
		cont.setPoolInfo(cc, pid, pool)
	}
	user.RewardDebt = user.Amount.Mul(pool.AccTokenPerShare).DivC(ACC_SCALE)
	cont.setUserInfo(cc, pid, cc.From(), user)
	if amt.IsPlus() {
		want := capability.Token{Addr: pool.Want}
		if err := want.Transfer(cc, cc.From(), amt); err != nil {
			return err
		}
	}
	cc.EmitEvent("Withdraw", cc.From(), pid, amt)
	return nil
}

// EmergencyWithdraw returns the whole stake without caring about the reward
func (cont *FarmContract) EmergencyWithdraw(cc *types.ContractContext, pid uint64) error {
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return err
	}
	user := cont.userInfo(cc, pid, cc.From())
	amt := user.Amount
	pool.TotalAmount = pool.TotalAmount.Sub(amt)
	cont.setPoolInfo(cc, pid, pool)
	cont.setUserInfo(cc, pid, cc.From(), &UserInfo{
		Amount:     amount.NewAmount(0, 0),
		RewardDebt: amount.NewAmount(0, 0),
	})
	if amt.IsPlus() {
		want := capability.Token{Addr: pool.Want}
		if err := want.Transfer(cc, cc.From(), amt); err != nil {
			return err
		}
	}
	cc.EmitEvent("EmergencyWithdraw", cc.From(), pid, amt)
	return nil
}

//////////////////////////////////////////////////
// Public Writer only owner Functions
//////////////////////////////////////////////////

func (cont *FarmContract) Add(cc *types.ContractContext, allocPoint uint32, want common.Address, withUpdate bool) (uint64, error) {
	if err := ownable.OnlyOwner(cc); err != nil {
		return 0, err
	}
	if withUpdate {
		if err := cont.MassUpdatePools(cc); err != nil {
			return 0, err
		}
	}
	lastRewardBlock := cont.StartBlock(cc)
	if cc.TargetHeight() > lastRewardBlock {
		lastRewardBlock = cc.TargetHeight()
	}
	cc.SetContractData([]byte{tagTotalAllocPoint}, bin.Uint32Bytes(cont.TotalAllocPoint(cc)+allocPoint))

	pid := cont.PoolLength(cc)
	cont.setPoolInfo(cc, pid, &PoolInfo{
		Want:             want,
		AllocPoint:       allocPoint,
		LastRewardBlock:  lastRewardBlock,
		AccTokenPerShare: amount.NewAmount(0, 0),
		TotalAmount:      amount.NewAmount(0, 0),
	})
	cc.SetContractData([]byte{tagPoolLength}, bin.Uint64Bytes(pid+1))
	return pid, nil
}

// Set changes the alloc point of the pool
func (cont *FarmContract) Set(cc *types.ContractContext, pid uint64, allocPoint uint32, withUpdate bool) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	if withUpdate {
		if err := cont.MassUpdatePools(cc); err != nil {
			return err
		}
	}
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return err
	}
	total := cont.TotalAllocPoint(cc) - pool.AllocPoint + allocPoint
	cc.SetContractData([]byte{tagTotalAllocPoint}, bin.Uint32Bytes(total))
	pool.AllocPoint = allocPoint
	cont.setPoolInfo(cc, pid, pool)
	return nil
}

func (cont *FarmContract) SetTokenPerBlock(cc *types.ContractContext, tokenPerBlock *amount.Amount) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	if tokenPerBlock.IsMinus() {
		return errors.Wrap(capability.ErrInvalidAmount, "token per block")
	}
	if err := cont.MassUpdatePools(cc); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagTokenPerBlock}, tokenPerBlock.Bytes())
	return nil
}

func (cont *FarmContract) TransferOwnership(cc *types.ContractContext, newOwner common.Address) error {
	return ownable.TransferOwnership(cc, newOwner)
}
