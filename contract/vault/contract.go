package vault

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

var (
	ownable  = capability.Ownable{Tag: tagOwner}
	pausable = capability.Pausable{Tag: tagPause}
	latch    = capability.ReentrancyGuard{Tag: tagLatch}

	scale = amount.NewAmountFromBigInt(big.NewInt(SCALE))
)

// VaultContract pools the principal of its depositors into a strategy and shares the harvested
// reward between them through the reward per share accumulator
type VaultContract struct {
	addr   common.Address
	master common.Address
}

func (cont *VaultContract) Name() string {
	return "VaultContract"
}

func (cont *VaultContract) Address() common.Address {
	return cont.addr
}

func (cont *VaultContract) Master() common.Address {
	return cont.master
}

func (cont *VaultContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *VaultContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &VaultContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	if data.Strategy == common.ZeroAddr || data.PrincipalToken == common.ZeroAddr || data.RewardToken == common.ZeroAddr {
		return errors.Wrap(capability.ErrInvalidAddress, "vault construction")
	}
	ownable.SetOwner(cc, data.Owner)
	cc.SetContractData([]byte{tagStrategy}, data.Strategy[:])
	cc.SetContractData([]byte{tagPrincipalToken}, data.PrincipalToken[:])
	cc.SetContractData([]byte{tagRewardToken}, data.RewardToken[:])
	cc.SetContractData([]byte{tagFeeManager}, data.FeeManager[:])
	cc.SetContractData([]byte{tagWithdrawalDelayBlocks}, bin.Uint32Bytes(data.WithdrawalDelayBlocks))
	cc.SetContractData([]byte{tagName}, []byte(data.Name))
	cc.SetContractData([]byte{tagSymbol}, []byte(data.Symbol))
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *VaultContract) strategy(cc *types.ContractContext) capability.StrategyProxy {
	return capability.StrategyProxy{Addr: cont.Strategy(cc)}
}

func (cont *VaultContract) principal(cc *types.ContractContext) capability.Token {
	return capability.Token{Addr: cont.PrincipalToken(cc)}
}

func (cont *VaultContract) reward(cc *types.ContractContext) capability.Token {
	return capability.Token{Addr: cont.RewardToken(cc)}
}

func (cont *VaultContract) position(cc *types.ContractContext, user common.Address) *UserPosition {
	bs := cc.AccountData(user, []byte{tagPosition})
	if len(bs) == 0 {
		return &UserPosition{
			Principal:  amount.NewAmount(0, 0),
			RewardDebt: amount.NewAmount(0, 0),
		}
	}
	pos := &UserPosition{}
	if _, err := pos.ReadFrom(bytes.NewReader(bs)); err != nil {
		panic(err)
	}
	return pos
}

func (cont *VaultContract) setPosition(cc *types.ContractContext, user common.Address, pos *UserPosition) {
	if pos.Principal.IsZero() && pos.RewardDebt.IsZero() && pos.LastDepositHeight == 0 {
		cc.SetAccountData(user, []byte{tagPosition}, nil)
		return
	}
	cc.SetAccountData(user, []byte{tagPosition}, bin.MustWriterToBytes(pos))
}

func (cont *VaultContract) setTotalPrincipal(cc *types.ContractContext, total *amount.Amount) {
	cc.SetContractData([]byte{tagTotalPrincipal}, total.Bytes())
}

func debtOf(principal *amount.Amount, acc *amount.Amount) *amount.Amount {
	return principal.MulDiv(acc, scale)
}

func owedOf(pos *UserPosition, acc *amount.Amount) *amount.Amount {
	owed := debtOf(pos.Principal, acc).Sub(pos.RewardDebt)
	if owed.IsMinus() {
		return amount.NewAmount(0, 0)
	}
	return owed
}

func checkAmount(amt *amount.Amount) error {
	if amt == nil || amt.Int == nil || amt.IsMinus() {
		return errors.WithStack(capability.ErrInvalidAmount)
	}
	return nil
}

// work harvests the strategy and advances the accumulator by the credited reward
func (cont *VaultContract) work(cc *types.ContractContext) error {
	credited, err := cont.strategy(cc).Harvest(cc)
	if err != nil {
		return err
	}
	total := cont.TotalPrincipal(cc)
	if !credited.IsPlus() || !total.IsPlus() {
		return nil
	}
	acc := cont.AccRewardPerShare(cc).Add(credited.MulDiv(scale, total))
	cc.SetContractData([]byte{tagAccRewardPerShare}, acc.Bytes())
	cc.EmitEvent("Harvest", credited, acc)
	return nil
}

// payReward claims owed from the strategy and splits it between the fee recipient and the user
func (cont *VaultContract) payReward(cc *types.ContractContext, user common.Address, owed *amount.Amount) error {
	if !owed.IsPlus() {
		return nil
	}
	if err := cont.strategy(cc).ClaimReward(cc, owed); err != nil {
		return err
	}
	feeCalc := capability.FeeCalculator{Addr: cont.FeeManager(cc)}
	fee, net, err := feeCalc.ComputeFee(cc, owed, user)
	if err != nil {
		return err
	}
	reward := cont.reward(cc)
	if fee.IsPlus() {
		recipient, err := feeCalc.FeeRecipient(cc)
		if err != nil {
			return err
		}
		if err := reward.Transfer(cc, recipient, fee); err != nil {
			return err
		}
	}
	if net.IsPlus() {
		if err := reward.Transfer(cc, user, net); err != nil {
			return err
		}
	}
	cc.EmitEvent("RewardPaid", user, owed, fee, net)
	return nil
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

// Deposit settles the reward of the caller and stakes amt of principal.
// A zero amount only claims the reward.
func (cont *VaultContract) Deposit(cc *types.ContractContext, amt *amount.Amount) error {
	if err := checkAmount(amt); err != nil {
		return err
	}
	if err := latch.Enter(cc); err != nil {
		return err
	}
	if amt.IsPlus() {
		if err := pausable.WhenNotPaused(cc); err != nil {
			return err
		}
		if cont.IsEmergency(cc) {
			return errors.WithStack(capability.ErrEmergencyMode)
		}
	}
	if err := cont.work(cc); err != nil {
		return err
	}

	user := cc.From()
	acc := cont.AccRewardPerShare(cc)
	pos := cont.position(cc, user)
	owed := owedOf(pos, acc)
	if amt.IsPlus() {
		pos.Principal = pos.Principal.Add(amt)
		pos.LastDepositHeight = cc.TargetHeight()
		cont.setTotalPrincipal(cc, cont.TotalPrincipal(cc).Add(amt))
	}
	pos.RewardDebt = debtOf(pos.Principal, acc)
	cont.setPosition(cc, user, pos)

	if amt.IsPlus() {
		principal := cont.principal(cc)
		if err := principal.TransferFrom(cc, user, cont.addr, amt); err != nil {
			return err
		}
		strategy := cont.strategy(cc)
		if err := principal.Approve(cc, strategy.Addr, amt); err != nil {
			return err
		}
		if err := strategy.Stake(cc, amt); err != nil {
			return err
		}
	}
	if err := cont.payReward(cc, user, owed); err != nil {
		return err
	}
	cc.EmitEvent("Deposit", user, amt)
	latch.Exit(cc)
	return nil
}

// Withdraw settles the reward of the caller and returns amt of principal
func (cont *VaultContract) Withdraw(cc *types.ContractContext, amt *amount.Amount) error {
	if err := checkAmount(amt); err != nil {
		return err
	}
	if err := latch.Enter(cc); err != nil {
		return err
	}
	return cont.withdraw(cc, amt)
}

// WithdrawAll withdraws the whole principal of the caller
func (cont *VaultContract) WithdrawAll(cc *types.ContractContext) error {
	if err := latch.Enter(cc); err != nil {
		return err
	}
	return cont.withdraw(cc, cont.position(cc, cc.From()).Principal)
}

func (cont *VaultContract) withdraw(cc *types.ContractContext, amt *amount.Amount) error {
	if amt.IsPlus() && cont.IsEmergency(cc) {
		return errors.WithStack(capability.ErrEmergencyMode)
	}
	if err := cont.work(cc); err != nil {
		return err
	}

	user := cc.From()
	pos := cont.position(cc, user)
	if delay := cont.WithdrawalDelayBlocks(cc); cc.TargetHeight()-pos.LastDepositHeight < delay {
		return errors.Wrapf(capability.ErrWithdrawalTooSoon, "deposited at %v, delay %v blocks", pos.LastDepositHeight, delay)
	}
	if pos.Principal.Less(amt) {
		return errors.Wrapf(capability.ErrInsufficientBalance, "principal %v, withdraw %v", pos.Principal.String(), amt.String())
	}
	acc := cont.AccRewardPerShare(cc)
	owed := owedOf(pos, acc)
	if amt.IsPlus() {
		pos.Principal = pos.Principal.Sub(amt)
		cont.setTotalPrincipal(cc, cont.TotalPrincipal(cc).Sub(amt))
	}
	pos.RewardDebt = debtOf(pos.Principal, acc)
	cont.setPosition(cc, user, pos)

	if amt.IsPlus() {
		if _, err := cont.strategy(cc).Unstake(cc, amt); err != nil {
			return err
		}
		if err := cont.principal(cc).Transfer(cc, user, amt); err != nil {
			return err
		}
	}
	if err := cont.payReward(cc, user, owed); err != nil {
		return err
	}
	cc.EmitEvent("Withdraw", user, amt)
	latch.Exit(cc)
	return nil
}

// Work harvests the strategy for every depositor
func (cont *VaultContract) Work(cc *types.ContractContext) error {
	if err := latch.Enter(cc); err != nil {
		return err
	}
	if err := cont.work(cc); err != nil {
		return err
	}
	latch.Exit(cc)
	return nil
}

// UserEmergencyWithdraw returns the principal of the caller out of the vault custody.
// The unclaimed reward of the caller is forfeited.
func (cont *VaultContract) UserEmergencyWithdraw(cc *types.ContractContext) error {
	if err := latch.Enter(cc); err != nil {
		return err
	}
	if !cont.IsEmergency(cc) {
		return errors.WithStack(capability.ErrNotEmergencyMode)
	}
	user := cc.From()
	pos := cont.position(cc, user)
	amt := pos.Principal
	cont.setTotalPrincipal(cc, cont.TotalPrincipal(cc).Sub(amt))
	cont.setPosition(cc, user, &UserPosition{
		Principal:  amount.NewAmount(0, 0),
		RewardDebt: amount.NewAmount(0, 0),
	})
	if amt.IsPlus() {
		if err := cont.principal(cc).Transfer(cc, user, amt); err != nil {
			return err
		}
	}
	cc.EmitEvent("UserEmergencyWithdraw", user, amt)
	latch.Exit(cc)
	return nil
}

//////////////////////////////////////////////////
// Public Writer only owner Functions
//////////////////////////////////////////////////

// EmergencyWithdrawWorker pulls the whole principal out of the strategy into the vault custody
// and switches the vault to the emergency mode
func (cont *VaultContract) EmergencyWithdrawWorker(cc *types.ContractContext) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	if err := latch.Enter(cc); err != nil {
		return err
	}
	amt, err := cont.strategy(cc).EmergencyUnstake(cc)
	if err != nil {
		return err
	}
	cc.SetContractData([]byte{tagEmergency}, []byte{1})
	cc.EmitEvent("EmergencyWithdraw", amt)
	latch.Exit(cc)
	return nil
}

func (cont *VaultContract) SetDelayWithdrawalBlock(cc *types.ContractContext, blocks uint32) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagWithdrawalDelayBlocks}, bin.Uint32Bytes(blocks))
	cc.EmitEvent("WithdrawalDelayUpdated", blocks)
	return nil
}

func (cont *VaultContract) Pause(cc *types.ContractContext) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	pausable.SetPaused(cc, true)
	return nil
}

func (cont *VaultContract) Unpause(cc *types.ContractContext) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	pausable.SetPaused(cc, false)
	return nil
}

// SetFeeManager replaces the fee manager, the zero address takes no fee
func (cont *VaultContract) SetFeeManager(cc *types.ContractContext, feeManager common.Address) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagFeeManager}, feeManager[:])
	cc.EmitEvent("FeeManagerUpdated", feeManager)
	return nil
}

func (cont *VaultContract) TransferOwnership(cc *types.ContractContext, newOwner common.Address) error {
	return ownable.TransferOwnership(cc, newOwner)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *VaultContract) Owner(cc *types.ContractContext) common.Address {
	return ownable.Owner(cc)
}

func (cont *VaultContract) Strategy(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagStrategy}))
}

func (cont *VaultContract) PrincipalToken(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagPrincipalToken}))
}

func (cont *VaultContract) RewardToken(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagRewardToken}))
}

func (cont *VaultContract) FeeManager(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagFeeManager}))
}

func (cont *VaultContract) TotalPrincipal(cc *types.ContractContext) *amount.Amount {
	return amount.NewAmountFromBytes(cc.ContractData([]byte{tagTotalPrincipal}))
}

func (cont *VaultContract) AccRewardPerShare(cc *types.ContractContext) *amount.Amount {
	return amount.NewAmountFromBytes(cc.ContractData([]byte{tagAccRewardPerShare}))
}

func (cont *VaultContract) IsPaused(cc *types.ContractContext) bool {
	return pausable.IsPaused(cc)
}

func (cont *VaultContract) IsEmergency(cc *types.ContractContext) bool {
	bs := cc.ContractData([]byte{tagEmergency})
	return len(bs) == 1 && bs[0] == 1
}

func (cont *VaultContract) WithdrawalDelayBlocks(cc *types.ContractContext) uint32 {
	return bin.Uint32(cc.ContractData([]byte{tagWithdrawalDelayBlocks}))
}

func (cont *VaultContract) State(cc *types.ContractContext) *VaultState {
	return &VaultState{
		TotalPrincipal:        cont.TotalPrincipal(cc),
		AccRewardPerShare:     cont.AccRewardPerShare(cc),
		Paused:                cont.IsPaused(cc),
		EmergencyMode:         cont.IsEmergency(cc),
		WithdrawalDelayBlocks: cont.WithdrawalDelayBlocks(cc),
	}
}

// PendingReward is the reward the strategy would credit on the next harvest
func (cont *VaultContract) PendingReward(cc *types.ContractContext) (*amount.Amount, error) {
	return cont.strategy(cc).PendingReward(cc)
}

// TotalRewardPerShare projects the accumulator with the pending reward of the strategy
func (cont *VaultContract) TotalRewardPerShare(cc *types.ContractContext) (*amount.Amount, error) {
	acc := cont.AccRewardPerShare(cc)
	total := cont.TotalPrincipal(cc)
	if !total.IsPlus() {
		return acc, nil
	}
	pending, err := cont.PendingReward(cc)
	if err != nil {
		return nil, err
	}
	return acc.Add(pending.MulDiv(scale, total)), nil
}

func (cont *VaultContract) UserPendingReward(cc *types.ContractContext, user common.Address) (*amount.Amount, error) {
	acc, err := cont.TotalRewardPerShare(cc)
	if err != nil {
		return nil, err
	}
	return owedOf(cont.position(cc, user), acc), nil
}

func (cont *VaultContract) UserInfo(cc *types.ContractContext, user common.Address) *UserPosition {
	return cont.position(cc, user)
}

// TokenName is served as Name by the front, the same way the token contract serves it.
// Name of the contract itself returns the contract type.
func (cont *VaultContract) TokenName(cc *types.ContractContext) string {
	return string(cc.ContractData([]byte{tagName}))
}

func (cont *VaultContract) Symbol(cc *types.ContractContext) string {
	return string(cc.ContractData([]byte{tagSymbol}))
}

func (cont *VaultContract) Decimals(cc *types.ContractContext) *big.Int {
	return big.NewInt(amount.FractionalCount)
}
