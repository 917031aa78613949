package test

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("fresh chain", func() {

	BeforeEach(func() {
		tc = util.NewTestContext()
	})

	AfterEach(func() {
		afterEach()
	})

	It("deploys the first contract", func() {
		farmToken = tc.MakeToken("FarmA", "FA", "100")
		farmAddr = deployFarm(farmToken, coin(1))

		Expect(tc.MustView(farmAddr, "PoolLength")[0]).To(Equal(uint64(0)))
		Expect(tc.MustView(farmAddr, "TotalAllocPoint")[0]).To(Equal(uint32(0)))
		Expect(tc.MustView(farmAddr, "StartBlock")[0]).To(Equal(uint32(0)))
		_, err := tc.View(farmAddr, "PoolInfo", uint64(0))
		Expect(err).To(HaveOccurred())
	})

	It("sends the first transaction of an account", func() {
		farmToken = tc.MakeToken("FarmA", "FA", "100")
		Expect(tc.Cn.Seq(util.Admin)).To(Equal(uint64(0)))
		_, err := tc.SendTx(util.AdminKey, farmToken, "Transfer", alice, coin(10))
		Expect(err).To(Succeed())
		Expect(tc.Cn.Seq(util.Admin)).To(Equal(uint64(1)))

		_, err = tc.SendTx(util.UserKeys[0], farmToken, "Transfer", bob, coin(4))
		Expect(err).To(Succeed())
		Expect(tc.Cn.Seq(alice)).To(Equal(uint64(1)))
		Expect(tc.Cn.Seq(util.Users[5])).To(Equal(uint64(0)))

		expectAmount(tc.BalanceOf(farmToken, alice), "6")
		expectAmount(tc.BalanceOf(farmToken, bob), "4")
		Expect(tc.BalanceOf(farmToken, common.ZeroAddr).IsZero()).To(BeTrue())
	})
})
