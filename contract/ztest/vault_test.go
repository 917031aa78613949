package test

import (
	"math/big"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/meverselabs/yieldvault/extern/test/mock"
	"github.com/meverselabs/yieldvault/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Vault", func() {

	BeforeEach(func() {
		beforeEachVault()
	})

	AfterEach(func() {
		afterEach()
	})

	It("views", func() {
		is, err := tc.View(vaultAddr, "Owner")
		Expect(err).To(Succeed())
		Expect(is[0]).To(Equal(admin))

		Expect(tc.MustView(vaultAddr, "Strategy")[0]).To(Equal(strategyAddr))
		Expect(tc.MustView(vaultAddr, "PrincipalToken")[0]).To(Equal(principalToken))
		Expect(tc.MustView(vaultAddr, "RewardToken")[0]).To(Equal(rewardToken))
		Expect(tc.MustView(vaultAddr, "FeeManager")[0]).To(Equal(common.ZeroAddr))
		Expect(tc.MustView(vaultAddr, "IsPaused")[0]).To(BeFalse())
		Expect(tc.MustView(vaultAddr, "IsEmergency")[0]).To(BeFalse())
		Expect(tc.MustView(vaultAddr, "WithdrawalDelayBlocks")[0]).To(Equal(uint32(0)))
		Expect(tc.MustView(vaultAddr, "Name")[0]).To(Equal("Vault Receipt"))
		Expect(tc.MustView(principalToken, "Name")[0]).To(Equal("Principal"))
		_, err = tc.View(vaultAddr, "TokenName")
		Expect(err).To(MatchError(types.ErrMethodNotExist))
		Expect(tc.MustView(vaultAddr, "Symbol")[0]).To(Equal("vPRI"))
		Expect(tc.MustView(vaultAddr, "Decimals")[0].(*big.Int).Int64()).To(Equal(int64(amount.FractionalCount)))
		expectAmount(totalPrincipal(vaultAddr), "0")
	})

	It("sole depositor gets the whole harvested reward", func() {
		Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
		setPending(coin(500))

		expectAmount(util.Amount(tc.MustView(vaultAddr, "PendingReward")), "500")
		expectRaw(util.Amount(tc.MustView(vaultAddr, "TotalRewardPerShare")), "500000000000")
		expectAmount(userPendingReward(vaultAddr, alice), "500")

		Expect(withdraw(vaultAddr, alice, coin(0))).To(Succeed())
		expectAmount(tc.BalanceOf(rewardToken, alice), "500")
		expectRaw(accRewardPerShare(vaultAddr), "500000000000")
		expectAmount(userPendingReward(vaultAddr, alice), "0")

		principal, debt, _ := userInfo(vaultAddr, alice)
		expectAmount(principal, "1000")
		expectAmount(debt, "500")
	})

	It("late depositor does not share the reward accrued before its deposit", func() {
		Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
		setPending(coin(500))

		Expect(deposit(vaultAddr, bob, coin(100))).To(Succeed())
		principal, debt, _ := userInfo(vaultAddr, bob)
		expectAmount(principal, "100")
		expectAmount(debt, "50")
		expectAmount(userPendingReward(vaultAddr, bob), "0")
		expectAmount(userPendingReward(vaultAddr, alice), "500")

		setPending(coin(110))
		expectAmount(userPendingReward(vaultAddr, alice), "600")
		expectAmount(userPendingReward(vaultAddr, bob), "10")
	})

	It("splits the reward in proportion to the principal", func() {
		Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
		Expect(deposit(vaultAddr, bob, coin(3000))).To(Succeed())
		setPending(coin(400))

		Expect(withdraw(vaultAddr, alice, coin(0))).To(Succeed())
		Expect(withdraw(vaultAddr, bob, coin(0))).To(Succeed())
		expectAmount(tc.BalanceOf(rewardToken, alice), "100")
		expectAmount(tc.BalanceOf(rewardToken, bob), "300")
	})

	It("keeps the total principal equal to the sum of the positions", func() {
		Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
		Expect(deposit(vaultAddr, bob, coin(250))).To(Succeed())
		Expect(deposit(vaultAddr, charlie, coin(40))).To(Succeed())
		Expect(withdraw(vaultAddr, bob, coin(100))).To(Succeed())
		Expect(deposit(vaultAddr, alice, coin(5))).To(Succeed())
		_, err := tc.Exec(charlie, vaultAddr, "WithdrawAll")
		Expect(err).To(Succeed())

		sum := amount.NewAmount(0, 0)
		for _, u := range []common.Address{alice, bob, charlie, eve} {
			principal, _, _ := userInfo(vaultAddr, u)
			sum = sum.Add(principal)
		}
		expectAmount(totalPrincipal(vaultAddr), "1155")
		expectAmount(sum, "1155")
		expectAmount(util.Amount(tc.MustView(strategyAddr, "TotalStaked")), "1155")
		expectAmount(tc.BalanceOf(principalToken, strategyAddr), "1155")
	})

	It("never decreases the reward per share", func() {
		last := accRewardPerShare(vaultAddr)
		steps := []func() error{
			func() error { return deposit(vaultAddr, alice, coin(700)) },
			func() error { setPending(coin(30)); return deposit(vaultAddr, bob, coin(300)) },
			func() error { return withdraw(vaultAddr, alice, coin(700)) },
			func() error { setPending(coin(9)); _, err := tc.Exec(eve, vaultAddr, "Work"); return err },
			func() error { return withdraw(vaultAddr, bob, coin(300)) },
			func() error { setPending(coin(1)); _, err := tc.Exec(eve, vaultAddr, "Work"); return err },
		}
		for _, step := range steps {
			Expect(step()).To(Succeed())
			acc := accRewardPerShare(vaultAddr)
			Expect(acc.Less(last)).To(BeFalse())
			last = acc
		}
	})

	It("returns the principal on a round trip", func() {
		before := tc.BalanceOf(principalToken, alice)
		Expect(deposit(vaultAddr, alice, coin(1234))).To(Succeed())
		expectAmount(tc.BalanceOf(principalToken, alice), before.Sub(coin(1234)).String())
		Expect(withdraw(vaultAddr, alice, coin(1234))).To(Succeed())
		expectAmount(tc.BalanceOf(principalToken, alice), before.String())

		principal, debt, _ := userInfo(vaultAddr, alice)
		expectAmount(principal, "0")
		expectAmount(debt, "0")
	})

	It("rejects invalid amounts", func() {
		Expect(deposit(vaultAddr, alice, raw(-1))).To(MatchError(capability.ErrInvalidAmount))
		Expect(withdraw(vaultAddr, alice, raw(-1))).To(MatchError(capability.ErrInvalidAmount))
		Expect(deposit(vaultAddr, alice, coin(1))).To(Succeed())
		Expect(withdraw(vaultAddr, alice, coin(2))).To(MatchError(capability.ErrInsufficientBalance))
	})

	It("deposit of zero only claims", func() {
		Expect(deposit(vaultAddr, alice, coin(100))).To(Succeed())
		setPending(coin(7))
		Expect(deposit(vaultAddr, alice, coin(0))).To(Succeed())
		expectAmount(tc.BalanceOf(rewardToken, alice), "7")
		principal, _, _ := userInfo(vaultAddr, alice)
		expectAmount(principal, "100")
	})

	It("emits the settlement events", func() {
		Expect(deposit(vaultAddr, alice, coin(100))).To(Succeed())
		setPending(coin(10))
		Expect(withdraw(vaultAddr, alice, coin(40))).To(Succeed())

		events, err := tc.Cn.Events(tc.Height())
		Expect(err).To(Succeed())
		names := []string{}
		for _, e := range events {
			if e.Contract == vaultAddr {
				names = append(names, e.Name)
			}
		}
		Expect(names).To(ContainElements("Deposit", "Harvest", "RewardPaid", "Withdraw"))
	})

	Context("fee", func() {
		var discountToken, feeManagerAddr common.Address

		BeforeEach(func() {
			discountToken = tc.MakeToken("Discount", "DSC", "0")
			feeManagerAddr = deployFeeManager(discountToken, 100, 50, coin(10000))
			_, err := tc.Exec(admin, vaultAddr, "SetFeeManager", feeManagerAddr)
			Expect(err).To(Succeed())
		})

		It("takes the base fee below the discount balance", func() {
			tc.Mint(discountToken, alice, coin(9999))
			Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
			setPending(coin(500))
			Expect(withdraw(vaultAddr, alice, coin(0))).To(Succeed())

			expectAmount(tc.BalanceOf(rewardToken, alice), "495")
			expectAmount(tc.BalanceOf(rewardToken, treasury), "5")
		})

		It("takes the discount fee at the discount balance", func() {
			tc.Mint(discountToken, alice, coin(10000))
			Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
			setPending(coin(500))
			Expect(withdraw(vaultAddr, alice, coin(0))).To(Succeed())

			expectAmount(tc.BalanceOf(rewardToken, alice), "497.5")
			expectAmount(tc.BalanceOf(rewardToken, treasury), "2.5")
		})

		It("conserves the gross reward", func() {
			Expect(deposit(vaultAddr, alice, coin(3))).To(Succeed())
			Expect(deposit(vaultAddr, bob, coin(7))).To(Succeed())
			setPending(raw(1_000_000_007))
			Expect(withdraw(vaultAddr, alice, coin(0))).To(Succeed())
			Expect(withdraw(vaultAddr, bob, coin(0))).To(Succeed())

			paid := tc.BalanceOf(rewardToken, alice).Add(tc.BalanceOf(rewardToken, bob)).Add(tc.BalanceOf(rewardToken, treasury))
			reserve := util.Amount(tc.MustView(strategyAddr, "Reserve"))
			expectRaw(paid.Add(reserve), "1000000007")
			expectRaw(tc.BalanceOf(rewardToken, treasury), "10000000")
		})

		It("takes no fee without a fee manager", func() {
			_, err := tc.Exec(admin, vaultAddr, "SetFeeManager", common.ZeroAddr)
			Expect(err).To(Succeed())
			Expect(deposit(vaultAddr, alice, coin(10))).To(Succeed())
			setPending(coin(10))
			Expect(withdraw(vaultAddr, alice, coin(0))).To(Succeed())
			expectAmount(tc.BalanceOf(rewardToken, alice), "10")
			expectAmount(tc.BalanceOf(rewardToken, treasury), "0")
		})
	})

	Context("emergency", func() {
		BeforeEach(func() {
			Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
			Expect(deposit(vaultAddr, bob, coin(500))).To(Succeed())
		})

		It("returns the recorded principal and stops the reward", func() {
			_, err := tc.Exec(admin, vaultAddr, "EmergencyWithdrawWorker")
			Expect(err).To(Succeed())
			Expect(tc.MustView(vaultAddr, "IsEmergency")[0]).To(BeTrue())
			expectAmount(tc.BalanceOf(principalToken, vaultAddr), "1500")

			before := tc.BalanceOf(principalToken, alice)
			_, err = tc.Exec(alice, vaultAddr, "UserEmergencyWithdraw")
			Expect(err).To(Succeed())
			expectAmount(tc.BalanceOf(principalToken, alice), before.Add(coin(1000)).String())
			expectAmount(totalPrincipal(vaultAddr), "500")

			setPending(coin(300))
			expectAmount(userPendingReward(vaultAddr, alice), "0")
			principal, debt, _ := userInfo(vaultAddr, alice)
			expectAmount(principal, "0")
			expectAmount(debt, "0")
		})

		It("blocks new principal", func() {
			_, err := tc.Exec(admin, vaultAddr, "EmergencyWithdrawWorker")
			Expect(err).To(Succeed())
			Expect(deposit(vaultAddr, charlie, coin(1))).To(MatchError(capability.ErrEmergencyMode))
			Expect(withdraw(vaultAddr, alice, coin(1))).To(MatchError(capability.ErrEmergencyMode))
		})

		It("is closed outside the emergency mode", func() {
			_, err := tc.Exec(alice, vaultAddr, "UserEmergencyWithdraw")
			Expect(err).To(MatchError(capability.ErrNotEmergencyMode))
		})

		It("is switched on by the owner only", func() {
			_, err := tc.Exec(alice, vaultAddr, "EmergencyWithdrawWorker")
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
			Expect(tc.MustView(vaultAddr, "IsEmergency")[0]).To(BeFalse())
		})
	})

	Context("pause", func() {
		It("blocks deposits but not withdrawals", func() {
			Expect(deposit(vaultAddr, alice, coin(100))).To(Succeed())
			_, err := tc.Exec(admin, vaultAddr, "Pause")
			Expect(err).To(Succeed())

			Expect(deposit(vaultAddr, alice, coin(1))).To(MatchError(capability.ErrPausedOperation))
			setPending(coin(5))
			Expect(deposit(vaultAddr, alice, coin(0))).To(Succeed())
			Expect(withdraw(vaultAddr, alice, coin(100))).To(Succeed())
			expectAmount(tc.BalanceOf(rewardToken, alice), "5")

			_, err = tc.Exec(admin, vaultAddr, "Unpause")
			Expect(err).To(Succeed())
			Expect(deposit(vaultAddr, alice, coin(1))).To(Succeed())
		})

		It("is switched by the owner only", func() {
			_, err := tc.Exec(alice, vaultAddr, "Pause")
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
		})
	})

	Context("withdrawal delay", func() {
		BeforeEach(func() {
			_, err := tc.Exec(admin, vaultAddr, "SetDelayWithdrawalBlock", uint32(3))
			Expect(err).To(Succeed())
		})

		It("holds the principal for the delay after the last deposit", func() {
			Expect(deposit(vaultAddr, alice, coin(100))).To(Succeed())
			_, _, height := userInfo(vaultAddr, alice)
			Expect(height).To(Equal(tc.Height()))

			Expect(withdraw(vaultAddr, alice, coin(10))).To(MatchError(capability.ErrWithdrawalTooSoon))
			tc.MustSkipBlock(2)
			Expect(withdraw(vaultAddr, alice, coin(10))).To(MatchError(capability.ErrWithdrawalTooSoon))
			tc.MustSkipBlock(1)
			Expect(withdraw(vaultAddr, alice, coin(10))).To(Succeed())
		})

		It("is set by the owner only", func() {
			_, err := tc.Exec(alice, vaultAddr, "SetDelayWithdrawalBlock", uint32(0))
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
			Expect(tc.MustView(vaultAddr, "WithdrawalDelayBlocks")[0]).To(Equal(uint32(3)))
		})
	})

	Context("permission", func() {
		It("admits only the vault into the strategy", func() {
			_, err := tc.Exec(alice, strategyAddr, "Harvest")
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
		})

		It("transfers the ownership", func() {
			_, err := tc.Exec(alice, vaultAddr, "TransferOwnership", alice)
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
			_, err = tc.Exec(admin, vaultAddr, "TransferOwnership", bob)
			Expect(err).To(Succeed())
			Expect(tc.MustView(vaultAddr, "Owner")[0]).To(Equal(bob))
			_, err = tc.Exec(admin, vaultAddr, "Pause")
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
		})
	})

	It("blocks a reentrant deposit", func() {
		reentrant := tc.DeployContract(&mock.ReentrantToken{}, nil)
		strategy2 := tc.DeployContract(&mock.Strategy{}, &mock.StrategyConstruction{
			PrincipalToken: reentrant,
			RewardToken:    rewardToken,
		})
		vault2 := deployVault(strategy2, reentrant, rewardToken, common.ZeroAddr)
		tc.MustExec(admin, strategy2, "SetVault", vault2)
		tc.MustExec(admin, reentrant, "SetTarget", vault2)
		tc.MustExec(admin, reentrant, "Mint", alice, coin(10))

		Expect(deposit(vault2, alice, coin(1))).To(MatchError(capability.ErrReentrancyBlocked))
		expectAmount(totalPrincipal(vault2), "0")

		// the failed call leaves no latch behind
		tc.MustExec(admin, reentrant, "SetTarget", common.ZeroAddr)
		Expect(deposit(vault2, alice, coin(1))).To(Succeed())
		expectAmount(totalPrincipal(vault2), "1")
	})

	It("exposes the position as a receipt balance", func() {
		Expect(deposit(vaultAddr, alice, coin(12))).To(Succeed())
		Expect(deposit(vaultAddr, bob, coin(8))).To(Succeed())
		expectAmount(util.Amount(tc.MustView(vaultAddr, "BalanceOf", alice)), "12")
		expectAmount(util.Amount(tc.MustView(vaultAddr, "TotalSupply")), "20")
	})
})
