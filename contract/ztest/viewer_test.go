package test

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/contract/vaultviewer"
	"github.com/meverselabs/yieldvault/extern/test/mock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("VaultViewer", func() {
	var (
		viewerAddr    common.Address
		vault2Addr    common.Address
		strategy2Addr common.Address
		reward2Token  common.Address
	)

	BeforeEach(func() {
		beforeEachVault()

		reward2Token = tc.MakeToken("Reward2", "RWD2", "0")
		strategy2Addr = tc.DeployContract(&mock.Strategy{}, &mock.StrategyConstruction{
			PrincipalToken: principalToken,
			RewardToken:    reward2Token,
		})
		tc.SetMinter(reward2Token, strategy2Addr)
		vault2Addr = deployVault(strategy2Addr, principalToken, reward2Token, common.ZeroAddr)
		tc.MustExec(admin, strategy2Addr, "SetVault", vault2Addr)
		tc.Approve(alice, principalToken, vault2Addr, _Funds)

		viewerAddr = tc.DeployContract(&vaultviewer.VaultViewerContract{}, nil)
	})

	AfterEach(func() {
		afterEach()
	})

	getUserInfo := func(vaults []common.Address, user common.Address) *vaultviewer.UserInfos {
		return tc.MustView(viewerAddr, "GetUserInfo", vaults, user)[0].(*vaultviewer.UserInfos)
	}

	It("reads the position of a user in many vaults", func() {
		Expect(deposit(vaultAddr, alice, coin(100))).To(Succeed())
		Expect(deposit(vault2Addr, alice, coin(300))).To(Succeed())
		setPending(coin(50))
		tc.MustExec(admin, strategy2Addr, "SetPending", coin(30))

		infos := getUserInfo([]common.Address{vaultAddr, vault2Addr}, alice)
		Expect(infos.Vaults).To(Equal([]common.Address{vaultAddr, vault2Addr}))
		Expect(infos.Rewards).To(Equal([]common.Address{rewardToken, reward2Token}))
		Expect(infos.Balances).To(HaveLen(2))
		expectAmount(infos.Balances[0], "100")
		expectAmount(infos.Balances[1], "300")
		expectAmount(infos.Pending[0], "50")
		expectAmount(infos.Pending[1], "30")
	})

	It("reads an empty position", func() {
		infos := getUserInfo([]common.Address{vaultAddr}, bob)
		expectAmount(infos.Balances[0], "0")
		expectAmount(infos.Pending[0], "0")
	})

	It("reads no vault", func() {
		infos := getUserInfo([]common.Address{}, alice)
		Expect(infos.Vaults).To(BeEmpty())
	})

	It("fails on an address that is not a vault", func() {
		_, err := tc.View(viewerAddr, "GetUserInfo", []common.Address{vaultAddr, bob}, alice)
		Expect(err).To(HaveOccurred())
	})
})
