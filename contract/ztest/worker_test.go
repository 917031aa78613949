package test

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/contract/farm"
	"github.com/meverselabs/yieldvault/contract/ibvault"
	"github.com/meverselabs/yieldvault/contract/priceoracle"
	"github.com/meverselabs/yieldvault/contract/swaprouter"
	"github.com/meverselabs/yieldvault/contract/worker"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/meverselabs/yieldvault/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var (
	// farm reward tokens and the intermediary share token
	farmToken, farmToken2, shareToken common.Address

	farmAddr, farm2Addr, routerAddr, oracleAddr, ibVaultAddr, workerAddr common.Address

	_Threshold = uint64(10)
)

/////////// fixtures  ///////////

// beforeEachMarket deploys the tokens, the primary farm, the router and the oracle
func beforeEachMarket() {
	tc = util.NewTestContext()

	principalToken = tc.MakeToken("Principal", "PRI", "1000000")
	rewardToken = tc.MakeToken("Reward", "RWD", "1000000")
	farmToken = tc.MakeToken("FarmA", "FA", "0")

	routerAddr = tc.DeployContract(&swaprouter.RouterContract{}, &swaprouter.RouterContractConstruction{
		Owner: admin,
	})
	tc.MustExec(admin, rewardToken, "Transfer", routerAddr, coin(500000))

	oracleAddr = tc.DeployContract(&priceoracle.PriceOracleContract{}, &priceoracle.PriceOracleContractConstruction{
		Owner:            admin,
		Feeder:           admin,
		Router:           routerAddr,
		ThresholdPercent: _Threshold,
	})

	farmAddr = deployFarm(farmToken, coin(5000))
	tc.MustExec(admin, farmAddr, "Add", uint32(100), principalToken, false)

	setRate(farmToken, rewardToken, coin(1))
	setPrice(farmToken, rewardToken, coin(1))
}

func beforeEachSingleWorker() {
	beforeEachMarket()

	workerAddr = tc.DeployContract(&worker.SingleWorker{}, singleConstruction())
	vaultAddr = deployVault(workerAddr, principalToken, rewardToken, common.ZeroAddr)
	tc.MustExec(admin, workerAddr, "SetVault", vaultAddr)
	fund(principalToken, vaultAddr, alice, bob, charlie, eve)
}

// beforeEachDualWorker adds the intermediary vault and the second farm staking its shares
func beforeEachDualWorker() {
	beforeEachMarket()

	farmToken2 = tc.MakeToken("FarmB", "FB", "0")
	shareToken = tc.MakeToken("ibReward", "ibRWD", "0")
	ibVaultAddr = tc.DeployContract(&ibvault.IBVaultContract{}, &ibvault.IBVaultContractConstruction{
		Underlying: rewardToken,
		ShareToken: shareToken,
	})
	tc.SetMinter(shareToken, ibVaultAddr)

	farm2Addr = deployFarm(farmToken2, coin(1000))
	tc.MustExec(admin, farm2Addr, "Add", uint32(100), shareToken, false)

	setRate(farmToken2, rewardToken, coin(1))
	setPrice(farmToken2, rewardToken, coin(1))

	workerAddr = tc.DeployContract(&worker.DualWorker{}, dualConstruction())
	vaultAddr = deployVault(workerAddr, principalToken, rewardToken, common.ZeroAddr)
	tc.MustExec(admin, workerAddr, "SetVault", vaultAddr)
	fund(principalToken, vaultAddr, alice, bob, charlie, eve)
}

func singleConstruction() *worker.SingleWorkerConstruction {
	return &worker.SingleWorkerConstruction{
		Owner:            admin,
		Oracle:           oracleAddr,
		Router:           routerAddr,
		PrincipalToken:   principalToken,
		VaultRewardToken: rewardToken,
		Farm:             farmAddr,
		PoolID:           0,
		RewardPath:       []common.Address{farmToken, rewardToken},
	}
}

func dualConstruction() *worker.DualWorkerConstruction {
	return &worker.DualWorkerConstruction{
		SingleWorkerConstruction: *singleConstruction(),
		IBVault:                  ibVaultAddr,
		SecondFarm:               farm2Addr,
		SecondPoolID:             0,
		SecondRewardPath:         []common.Address{farmToken2, rewardToken},
	}
}

func deployFarm(token common.Address, perBlock *amount.Amount) common.Address {
	addr := tc.DeployContract(&farm.FarmContract{}, &farm.FarmContractConstruction{
		Owner:         admin,
		FarmToken:     token,
		TokenPerBlock: perBlock,
	})
	tc.SetMinter(token, addr)
	return addr
}

func setRate(tokenIn common.Address, tokenOut common.Address, rate *amount.Amount) {
	tc.MustExec(admin, routerAddr, "SetRate", tokenIn, tokenOut, rate)
}

func setPrice(tokenA common.Address, tokenB common.Address, price *amount.Amount) {
	tc.MustExec(admin, oracleAddr, "SetPrices", []common.Address{tokenA}, []common.Address{tokenB}, []*amount.Amount{price})
}

func work() error {
	_, err := tc.Exec(eve, vaultAddr, "Work")
	return err
}

// workerEvents returns the events of the worker with the name in the pending block
func workerEvents(name string) []*types.Event {
	events, err := tc.Cn.Events(tc.Height())
	Expect(err).To(Succeed())
	found := []*types.Event{}
	for _, e := range events {
		if e.Contract == workerAddr && e.Name == name {
			found = append(found, e)
		}
	}
	return found
}

func farmStaked(f common.Address, who common.Address) *amount.Amount {
	return util.Amount(tc.MustView(f, "UserInfo", uint64(0), who))
}

var _ = Describe("SingleWorker", func() {

	BeforeEach(func() {
		beforeEachSingleWorker()
	})

	AfterEach(func() {
		afterEach()
	})

	It("views", func() {
		Expect(tc.MustView(workerAddr, "Owner")[0]).To(Equal(admin))
		Expect(tc.MustView(workerAddr, "Vault")[0]).To(Equal(vaultAddr))
		Expect(tc.MustView(workerAddr, "Oracle")[0]).To(Equal(oracleAddr))
		Expect(tc.MustView(workerAddr, "Router")[0]).To(Equal(routerAddr))
		Expect(tc.MustView(workerAddr, "PrincipalToken")[0]).To(Equal(principalToken))
		Expect(tc.MustView(workerAddr, "VaultRewardToken")[0]).To(Equal(rewardToken))
		Expect(tc.MustView(workerAddr, "IsPaused")[0]).To(BeFalse())
		expectAmount(util.Amount(tc.MustView(workerAddr, "Reserve")), "0")
	})

	It("stakes the principal in the farm", func() {
		Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
		expectAmount(farmStaked(farmAddr, workerAddr), "1000")
		expectAmount(util.Amount(tc.MustView(workerAddr, "TotalStaked")), "1000")

		Expect(withdraw(vaultAddr, alice, coin(400))).To(Succeed())
		expectAmount(farmStaked(farmAddr, workerAddr), "600")
		expectAmount(tc.BalanceOf(principalToken, alice), _Funds.Sub(coin(600)).String())
	})

	It("swaps the farm reward into the vault reward", func() {
		Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
		tc.MustSkipBlock(1)

		expectAmount(util.Amount(tc.MustView(vaultAddr, "PendingReward")), "5000")
		expectAmount(userPendingReward(vaultAddr, alice), "5000")

		Expect(withdraw(vaultAddr, alice, coin(0))).To(Succeed())
		expectAmount(tc.BalanceOf(rewardToken, alice), "5000")
		expectAmount(util.Amount(tc.MustView(workerAddr, "Reserve")), "0")
		expectAmount(tc.BalanceOf(farmToken, workerAddr), "0")
		expectAmount(tc.BalanceOf(farmToken, routerAddr), "5000")
	})

	It("keeps the harvest in reserve until it is claimed", func() {
		Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
		Expect(deposit(vaultAddr, bob, coin(1000))).To(Succeed())
		tc.MustSkipBlock(1)

		Expect(work()).To(Succeed())
		expectRaw(accRewardPerShare(vaultAddr), "2500000000000")
		expectAmount(util.Amount(tc.MustView(workerAddr, "Reserve")), "5000")

		Expect(withdraw(vaultAddr, alice, coin(0))).To(Succeed())
		expectAmount(tc.BalanceOf(rewardToken, alice), "2500")
		expectAmount(util.Amount(tc.MustView(workerAddr, "Reserve")), "2500")
	})

	It("holds the farm reward below the minimum swap", func() {
		_, err := tc.Exec(admin, workerAddr, "SetMinSwap", coin(10000), coin(0))
		Expect(err).To(Succeed())
		Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())

		tc.MustSkipBlock(1)
		Expect(work()).To(Succeed())
		expectAmount(accRewardPerShare(vaultAddr), "0")
		expectAmount(tc.BalanceOf(farmToken, workerAddr), "5000")
		expectAmount(util.Amount(tc.MustView(vaultAddr, "PendingReward")), "5000")

		tc.MustSkipBlock(1)
		Expect(work()).To(Succeed())
		expectRaw(accRewardPerShare(vaultAddr), "10000000000000")
		expectAmount(tc.BalanceOf(farmToken, workerAddr), "0")
	})

	Context("price guard", func() {
		BeforeEach(func() {
			Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
			tc.MustSkipBlock(1)
		})

		It("stops every call while the live price is too low", func() {
			setRate(farmToken, rewardToken, amount.MustParseAmount("0.85"))

			Expect(work()).To(MatchError(capability.ErrPriceGuardTripped))
			Expect(deposit(vaultAddr, bob, coin(1))).To(MatchError(capability.ErrPriceGuardTripped))
			Expect(withdraw(vaultAddr, alice, coin(1))).To(MatchError(capability.ErrPriceGuardTripped))
			expectAmount(accRewardPerShare(vaultAddr), "0")
		})

		It("lets a drift within the threshold through", func() {
			setRate(farmToken, rewardToken, amount.MustParseAmount("0.95"))
			Expect(work()).To(Succeed())
			expectAmount(util.Amount(tc.MustView(workerAddr, "Reserve")), "4750")
		})

		It("fails without a stored price", func() {
			missing := tc.MakeToken("Missing", "MIS", "0")
			w := singleConstruction()
			w.RewardPath = []common.Address{missing, rewardToken}
			addr := tc.DeployContract(&worker.SingleWorker{}, w)
			v := deployVault(addr, principalToken, rewardToken, common.ZeroAddr)
			tc.MustExec(admin, addr, "SetVault", v)
			tc.Approve(bob, principalToken, v, coin(1))
			Expect(deposit(v, bob, coin(1))).To(MatchError(capability.ErrBadPriceData))
		})
	})

	Context("construction", func() {
		It("rejects a reward path not ending in the vault reward", func() {
			w := singleConstruction()
			w.RewardPath = []common.Address{farmToken, principalToken}
			_, err := tc.Deploy(&worker.SingleWorker{}, w)
			Expect(err).To(MatchError(capability.ErrInvalidAddress))
		})

		It("rejects a reward path starting with the principal", func() {
			w := singleConstruction()
			w.RewardPath = []common.Address{principalToken, rewardToken}
			_, err := tc.Deploy(&worker.SingleWorker{}, w)
			Expect(err).To(MatchError(capability.ErrInvalidAddress))
		})

		It("rejects a short reward path", func() {
			w := singleConstruction()
			w.RewardPath = []common.Address{rewardToken}
			_, err := tc.Deploy(&worker.SingleWorker{}, w)
			Expect(err).To(MatchError(capability.ErrInvalidLength))
		})

		It("rejects the principal as the vault reward", func() {
			w := singleConstruction()
			w.VaultRewardToken = principalToken
			_, err := tc.Deploy(&worker.SingleWorker{}, w)
			Expect(err).To(MatchError(capability.ErrInvalidAddress))
		})
	})

	Context("permission", func() {
		It("binds the vault once", func() {
			_, err := tc.Exec(admin, workerAddr, "SetVault", bob)
			Expect(err).To(MatchError(capability.ErrAlreadyBound))
		})

		It("admits only the vault", func() {
			tc.Approve(alice, principalToken, workerAddr, coin(1))
			_, err := tc.Exec(alice, workerAddr, "Stake", coin(1))
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
			_, err = tc.Exec(alice, workerAddr, "Harvest")
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
			_, err = tc.Exec(alice, workerAddr, "ClaimReward", coin(0))
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
			_, err = tc.Exec(alice, workerAddr, "EmergencyUnstake")
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
		})

		It("leaves the owner operations to the owner", func() {
			_, err := tc.Exec(alice, workerAddr, "Pause")
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
			_, err = tc.Exec(alice, workerAddr, "SetMinSwap", coin(1), coin(1))
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
		})
	})

	It("stops staking while paused", func() {
		Expect(deposit(vaultAddr, alice, coin(100))).To(Succeed())
		_, err := tc.Exec(admin, workerAddr, "Pause")
		Expect(err).To(Succeed())

		Expect(deposit(vaultAddr, alice, coin(1))).To(MatchError(capability.ErrPausedOperation))
		Expect(withdraw(vaultAddr, alice, coin(100))).To(Succeed())
	})

	It("pulls the principal back to the vault in an emergency", func() {
		Expect(deposit(vaultAddr, alice, coin(700))).To(Succeed())
		Expect(deposit(vaultAddr, bob, coin(300))).To(Succeed())
		tc.MustSkipBlock(1)

		_, err := tc.Exec(admin, vaultAddr, "EmergencyWithdrawWorker")
		Expect(err).To(Succeed())
		expectAmount(farmStaked(farmAddr, workerAddr), "0")
		expectAmount(tc.BalanceOf(principalToken, vaultAddr), "1000")

		_, err = tc.Exec(bob, vaultAddr, "UserEmergencyWithdraw")
		Expect(err).To(Succeed())
		expectAmount(tc.BalanceOf(principalToken, bob), _Funds.String())
	})
})

var _ = Describe("DualWorker", func() {

	BeforeEach(func() {
		beforeEachDualWorker()
	})

	AfterEach(func() {
		afterEach()
	})

	It("views", func() {
		Expect(tc.MustView(workerAddr, "IBVault")[0]).To(Equal(ibVaultAddr))
		is := tc.MustView(workerAddr, "Parked")
		expectAmount(is[0].(*amount.Amount), "0")
		expectAmount(is[1].(*amount.Amount), "0")
	})

	It("credits a drained source only once", func() {
		Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())

		tc.MustSkipBlock(1)
		Expect(work()).To(Succeed())
		expectRaw(accRewardPerShare(vaultAddr), "5000000000000")

		is := tc.MustView(workerAddr, "Parked")
		expectAmount(is[0].(*amount.Amount), "5000")
		expectAmount(is[1].(*amount.Amount), "5000")
		expectAmount(farmStaked(farm2Addr, workerAddr), "5000")

		_, err := tc.Exec(admin, farmAddr, "SetTokenPerBlock", coin(0))
		Expect(err).To(Succeed())

		tc.MustSkipBlock(1)
		expectAmount(util.Amount(tc.MustView(vaultAddr, "PendingReward")), "1000")
		Expect(work()).To(Succeed())
		expectRaw(accRewardPerShare(vaultAddr), "6000000000000")
		expectAmount(util.Amount(tc.MustView(workerAddr, "Reserve")), "6000")
	})

	It("returns zero from a harvest with nothing accrued", func() {
		Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
		tc.MustSkipBlock(1)
		Expect(work()).To(Succeed())
		Expect(work()).To(Succeed())
		expectRaw(accRewardPerShare(vaultAddr), "5000000000000")
	})

	It("unparks the reward to pay the vault", func() {
		Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
		tc.MustSkipBlock(1)
		Expect(work()).To(Succeed())
		_, err := tc.Exec(admin, farmAddr, "SetTokenPerBlock", coin(0))
		Expect(err).To(Succeed())
		tc.MustSkipBlock(1)

		Expect(withdraw(vaultAddr, alice, coin(1000))).To(Succeed())
		expectAmount(tc.BalanceOf(rewardToken, alice), "6000")
		expectAmount(tc.BalanceOf(principalToken, alice), _Funds.String())
		expectAmount(util.Amount(tc.MustView(workerAddr, "Reserve")), "0")
		expectAmount(farmStaked(farm2Addr, workerAddr), "0")
	})

	Context("second reward token paused", func() {
		BeforeEach(func() {
			Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
			tc.MustSkipBlock(1)
			Expect(work()).To(Succeed())
			tc.MustExec(admin, farmToken2, "Pause")
			tc.MustSkipBlock(1)
		})

		It("lets the primary source through", func() {
			Expect(work()).To(Succeed())
			expectRaw(accRewardPerShare(vaultAddr), "10000000000000")
			expectAmount(util.Amount(tc.MustView(workerAddr, "Reserve")), "10000")
			expectAmount(tc.BalanceOf(rewardToken, workerAddr), "5000")
			expectAmount(farmStaked(farm2Addr, workerAddr), "5000")

			failed := workerEvents("SourceFailed")
			Expect(failed).NotTo(BeEmpty())
			Expect(failed[0].Fields[0]).To(Equal(farm2Addr))
			Expect(workerEvents("ParkFailed")).NotTo(BeEmpty())
		})

		It("pays the principal and the reward back", func() {
			Expect(work()).To(Succeed())
			Expect(withdraw(vaultAddr, alice, coin(1000))).To(Succeed())
			expectAmount(tc.BalanceOf(principalToken, alice), _Funds.String())
			expectAmount(tc.BalanceOf(rewardToken, alice), "10000")
			expectAmount(util.Amount(tc.MustView(workerAddr, "Reserve")), "0")
			expectAmount(farmStaked(farm2Addr, workerAddr), "0")
			Expect(workerEvents("ParkedRecovered")).NotTo(BeEmpty())

			is := tc.MustView(workerAddr, "Parked")
			expectAmount(is[0].(*amount.Amount), "0")
		})

		It("parks again once the token is back", func() {
			Expect(work()).To(Succeed())
			tc.MustExec(admin, farmToken2, "Unpause")
			tc.MustSkipBlock(1)
			Expect(work()).To(Succeed())
			expectAmount(tc.BalanceOf(rewardToken, workerAddr), "0")
			Expect(farmStaked(farm2Addr, workerAddr).Cmp(coin(10000).Int) >= 0).To(BeTrue())
		})
	})

	It("runs a source and parks only for itself", func() {
		_, err := tc.Exec(alice, workerAddr, "HarvestSource", uint64(0))
		Expect(err).To(MatchError(capability.ErrPermissionDenied))
		_, err = tc.Exec(alice, workerAddr, "Park")
		Expect(err).To(MatchError(capability.ErrPermissionDenied))
	})

	It("checks the price of both sources", func() {
		Expect(deposit(vaultAddr, alice, coin(1000))).To(Succeed())
		tc.MustSkipBlock(1)
		setRate(farmToken2, rewardToken, amount.MustParseAmount("0.5"))
		Expect(work()).To(MatchError(capability.ErrPriceGuardTripped))
	})

	Context("construction", func() {
		It("rejects an intermediary vault of another token", func() {
			other := tc.DeployContract(&ibvault.IBVaultContract{}, &ibvault.IBVaultContractConstruction{
				Underlying: farmToken,
				ShareToken: shareToken,
			})
			w := dualConstruction()
			w.IBVault = other
			_, err := tc.Deploy(&worker.DualWorker{}, w)
			Expect(err).To(MatchError(capability.ErrInvalidAddress))
		})

		It("rejects the intermediary share as the second reward", func() {
			w := dualConstruction()
			w.SecondRewardPath = []common.Address{shareToken, rewardToken}
			_, err := tc.Deploy(&worker.DualWorker{}, w)
			Expect(err).To(MatchError(capability.ErrInvalidAddress))
		})
	})
})
