package test

import (
	"math/big"
	"testing"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/feemanager"
	"github.com/meverselabs/yieldvault/contract/vault"
	"github.com/meverselabs/yieldvault/extern/test/mock"
	"github.com/meverselabs/yieldvault/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestVault(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Vault Suite")
}

var (
	tc *util.TestContext

	admin                    = util.Admin
	alice, bob, charlie, eve common.Address
	treasury                 common.Address

	// vault over the mock strategy
	principalToken, rewardToken common.Address
	strategyAddr, vaultAddr     common.Address

	_Funds = amount.NewAmount(100000, 0)
)

var _ = BeforeSuite(func() {
	alice, bob, charlie, eve = util.Users[0], util.Users[1], util.Users[2], util.Users[3]
	treasury = util.Users[9]
})

/////////// fixtures  ///////////

func beforeEachVault() {
	tc = util.NewTestContext()

	principalToken = tc.MakeToken("Principal", "PRI", "1000000")
	rewardToken = tc.MakeToken("Reward", "RWD", "0")

	strategyAddr = tc.DeployContract(&mock.Strategy{}, &mock.StrategyConstruction{
		PrincipalToken: principalToken,
		RewardToken:    rewardToken,
	})
	tc.SetMinter(rewardToken, strategyAddr)

	vaultAddr = deployVault(strategyAddr, principalToken, rewardToken, common.ZeroAddr)
	tc.MustExec(admin, strategyAddr, "SetVault", vaultAddr)

	fund(principalToken, vaultAddr, alice, bob, charlie, eve)
}

func afterEach() {
	if tc != nil {
		tc.Close()
	}
	tc = nil
}

func deployVault(strategy common.Address, principal common.Address, reward common.Address, feeManager common.Address) common.Address {
	return tc.DeployContract(&vault.VaultContract{}, &vault.VaultContractConstruction{
		Owner:          admin,
		Strategy:       strategy,
		PrincipalToken: principal,
		RewardToken:    reward,
		FeeManager:     feeManager,
		Name:           "Vault Receipt",
		Symbol:         "vPRI",
	})
}

func deployFeeManager(discountToken common.Address, base uint16, discount uint16, minDiscount *amount.Amount) common.Address {
	return tc.DeployContract(&feemanager.FeeManagerContract{}, &feemanager.FeeManagerContractConstruction{
		Owner:         admin,
		DiscountToken: discountToken,
		FeeRecipient:  treasury,
		FeeSchedule: feemanager.FeeSchedule{
			BaseFeeBps:         base,
			DiscountFeeBps:     discount,
			MinDiscountBalance: minDiscount,
		},
	})
}

// fund sends _Funds of the token from admin to the users and approves the spender
func fund(token common.Address, spender common.Address, users ...common.Address) {
	for _, u := range users {
		tc.MustExec(admin, token, "Transfer", u, _Funds)
		tc.Approve(u, token, spender, _Funds)
	}
}

func setPending(am *amount.Amount) {
	tc.MustExec(admin, strategyAddr, "SetPending", am)
}

/////////// functions  ///////////

func coin(v uint64) *amount.Amount {
	return amount.NewAmount(v, 0)
}

func raw(v int64) *amount.Amount {
	return amount.NewAmountFromBigInt(big.NewInt(v))
}

func deposit(v common.Address, user common.Address, am *amount.Amount) error {
	_, err := tc.Exec(user, v, "Deposit", am)
	return err
}

func withdraw(v common.Address, user common.Address, am *amount.Amount) error {
	_, err := tc.Exec(user, v, "Withdraw", am)
	return err
}

func userInfo(v common.Address, user common.Address) (*amount.Amount, *amount.Amount, uint32) {
	is := tc.MustView(v, "UserInfo", user)
	return is[0].(*amount.Amount), is[1].(*amount.Amount), is[2].(uint32)
}

func accRewardPerShare(v common.Address) *amount.Amount {
	return util.Amount(tc.MustView(v, "AccRewardPerShare"))
}

func totalPrincipal(v common.Address) *amount.Amount {
	return util.Amount(tc.MustView(v, "TotalPrincipal"))
}

func userPendingReward(v common.Address, user common.Address) *amount.Amount {
	return util.Amount(tc.MustView(v, "UserPendingReward", user))
}

// expectAmount compares the decimal string of the amount
func expectAmount(am *amount.Amount, want string) {
	ExpectWithOffset(1, am.String()).To(Equal(want))
}

// expectRaw compares the raw integer of the amount
func expectRaw(am *amount.Amount, want string) {
	ExpectWithOffset(1, am.Int.String()).To(Equal(want))
}
