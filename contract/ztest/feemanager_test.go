package test

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/contract/feemanager"
	"github.com/meverselabs/yieldvault/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FeeManager", func() {
	var (
		discountToken common.Address
		feeAddr       common.Address
	)

	BeforeEach(func() {
		tc = util.NewTestContext()
		discountToken = tc.MakeToken("Discount", "DSC", "1000")
		feeAddr = deployFeeManager(discountToken, 100, 50, coin(10))
	})

	AfterEach(func() {
		afterEach()
	})

	computeFee := func(gross *amount.Amount, beneficiary common.Address) (*amount.Amount, *amount.Amount) {
		is := tc.MustView(feeAddr, "ComputeFee", gross, beneficiary)
		return is[0].(*amount.Amount), is[1].(*amount.Amount)
	}

	It("views", func() {
		Expect(tc.MustView(feeAddr, "Owner")[0]).To(Equal(admin))
		Expect(tc.MustView(feeAddr, "DiscountToken")[0]).To(Equal(discountToken))
		Expect(tc.MustView(feeAddr, "FeeRecipient")[0]).To(Equal(treasury))

		is := tc.MustView(feeAddr, "FeeSchedule")
		Expect(is[0]).To(Equal(uint16(100)))
		Expect(is[1]).To(Equal(uint16(50)))
		expectAmount(is[2].(*amount.Amount), "10")
	})

	It("takes the base rate", func() {
		fee, net := computeFee(coin(1000), alice)
		expectAmount(fee, "10")
		expectAmount(net, "990")
	})

	It("takes the discount rate from a holder of the discount token", func() {
		tc.MustExec(admin, discountToken, "Transfer", alice, coin(10))
		fee, net := computeFee(coin(1000), alice)
		expectAmount(fee, "5")
		expectAmount(net, "995")

		fee, _ = computeFee(coin(1000), bob)
		expectAmount(fee, "10")
	})

	It("floors the fee", func() {
		fee, net := computeFee(raw(199), alice)
		expectRaw(fee, "1")
		expectRaw(net, "198")

		fee, net = computeFee(raw(99), alice)
		expectRaw(fee, "0")
		expectRaw(net, "99")
	})

	It("returns nothing for a non-positive amount", func() {
		fee, net := computeFee(coin(0), alice)
		expectAmount(fee, "0")
		expectAmount(net, "0")

		fee, net = computeFee(raw(-5), alice)
		expectAmount(fee, "0")
		expectAmount(net, "0")
	})

	It("falls back to the base rate without a discount token", func() {
		tc.MustExec(admin, feeAddr, "SetDiscountToken", common.ZeroAddr)
		tc.MustExec(admin, discountToken, "Transfer", alice, coin(10))
		fee, _ := computeFee(coin(1000), alice)
		expectAmount(fee, "10")

		tc.MustExec(admin, feeAddr, "SetDiscountToken", bob)
		fee, _ = computeFee(coin(1000), alice)
		expectAmount(fee, "10")
	})

	Context("settings", func() {
		It("rejects a rate over the whole amount", func() {
			_, err := tc.Exec(admin, feeAddr, "SetFeeSchedule", uint16(10001), uint16(0), coin(0))
			Expect(err).To(MatchError(feemanager.ErrInvalidFeeRate))
			_, err = tc.Exec(admin, feeAddr, "SetFeeSchedule", uint16(0), uint16(10001), coin(0))
			Expect(err).To(MatchError(feemanager.ErrInvalidFeeRate))

			_, err = tc.Deploy(&feemanager.FeeManagerContract{}, &feemanager.FeeManagerContractConstruction{
				Owner:        admin,
				FeeRecipient: treasury,
				FeeSchedule:  feemanager.FeeSchedule{BaseFeeBps: 20000, MinDiscountBalance: coin(0)},
			})
			Expect(err).To(MatchError(feemanager.ErrInvalidFeeRate))
		})

		It("takes the whole amount at the maximum rate", func() {
			tc.MustExec(admin, feeAddr, "SetFeeSchedule", uint16(10000), uint16(10000), coin(0))
			fee, net := computeFee(coin(7), alice)
			expectAmount(fee, "7")
			expectAmount(net, "0")
		})

		It("moves the recipient", func() {
			tc.MustExec(admin, feeAddr, "SetFeeRecipient", charlie)
			Expect(tc.MustView(feeAddr, "FeeRecipient")[0]).To(Equal(charlie))

			_, err := tc.Exec(admin, feeAddr, "SetFeeRecipient", common.ZeroAddr)
			Expect(err).To(MatchError(capability.ErrInvalidAddress))
		})

		It("leaves the settings to the owner", func() {
			_, err := tc.Exec(alice, feeAddr, "SetFeeSchedule", uint16(0), uint16(0), coin(0))
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
			_, err = tc.Exec(alice, feeAddr, "SetFeeRecipient", alice)
			Expect(err).To(MatchError(capability.ErrPermissionDenied))
			_, err = tc.Exec(alice, feeAddr, "SetDiscountToken", alice)
			Expect(err).To(MatchError(capability.ErrPermissionDenied))

			tc.MustExec(admin, feeAddr, "TransferOwnership", alice)
			_, err = tc.Exec(alice, feeAddr, "SetFeeSchedule", uint16(0), uint16(0), coin(0))
			Expect(err).To(Succeed())
		})
	})
})
