package test

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PriceOracle", func() {

	BeforeEach(func() {
		beforeEachMarket()
	})

	AfterEach(func() {
		afterEach()
	})

	isOver := func(tokenA common.Address, tokenB common.Address) (bool, error) {
		is, err := tc.View(oracleAddr, "IsPriceDiffOverThreshold", tokenA, tokenB)
		if err != nil {
			return false, err
		}
		return is[0].(bool), nil
	}

	It("views", func() {
		Expect(tc.MustView(oracleAddr, "Owner")[0]).To(Equal(admin))
		Expect(tc.MustView(oracleAddr, "Feeder")[0]).To(Equal(admin))
		Expect(tc.MustView(oracleAddr, "Router")[0]).To(Equal(routerAddr))
		Expect(tc.MustView(oracleAddr, "Threshold")[0]).To(Equal(_Threshold))
	})

	It("stores the price with the block time", func() {
		tc.MustSkipBlock(1)
		setPrice(farmToken, rewardToken, coin(3))

		is := tc.MustView(oracleAddr, "GetPrice", farmToken, rewardToken)
		expectAmount(is[0].(*amount.Amount), "3")
		Expect(is[1]).To(Equal(tc.Timestamp))
	})

	It("keeps the pair ordered", func() {
		_, err := tc.View(oracleAddr, "GetPrice", rewardToken, farmToken)
		Expect(err).To(MatchError(capability.ErrBadPriceData))
		_, err = isOver(rewardToken, farmToken)
		Expect(err).To(MatchError(capability.ErrBadPriceData))
	})

	It("trips only when the live price is lower by more than the threshold", func() {
		setPrice(farmToken, rewardToken, coin(1000))

		for _, c := range []struct {
			live string
			over bool
		}{
			{"1000", false},
			{"900", false},
			{"899.999", true},
			{"899", true},
			{"1001", false},
			{"5000", false},
		} {
			setRate(farmToken, rewardToken, amount.MustParseAmount(c.live))
			over, err := isOver(farmToken, rewardToken)
			Expect(err).To(Succeed())
			Expect(over).To(Equal(c.over), "live %v", c.live)
		}
	})

	It("quotes the whole path", func() {
		mid := tc.MakeToken("Middle", "MID", "0")
		setRate(farmToken, mid, coin(2))
		setRate(mid, rewardToken, amount.MustParseAmount("0.5"))

		path := []common.Address{farmToken, mid, rewardToken}
		over := tc.MustView(oracleAddr, "IsPathPriceDiffOverThreshold", path)[0].(bool)
		Expect(over).To(BeFalse())

		setRate(mid, rewardToken, amount.MustParseAmount("0.4"))
		over = tc.MustView(oracleAddr, "IsPathPriceDiffOverThreshold", path)[0].(bool)
		Expect(over).To(BeTrue())

		_, err := tc.View(oracleAddr, "IsPathPriceDiffOverThreshold", []common.Address{farmToken})
		Expect(err).To(MatchError(capability.ErrInvalidLength))
	})

	It("moves the threshold", func() {
		setRate(farmToken, rewardToken, amount.MustParseAmount("0.85"))
		over, _ := isOver(farmToken, rewardToken)
		Expect(over).To(BeTrue())

		tc.MustExec(admin, oracleAddr, "SetThreshold", uint64(20))
		over, _ = isOver(farmToken, rewardToken)
		Expect(over).To(BeFalse())
	})

	Context("feeder", func() {
		It("accepts prices only from the feeder", func() {
			_, err := tc.Exec(alice, oracleAddr, "SetPrices", []common.Address{farmToken}, []common.Address{rewardToken}, []*amount.Amount{coin(2)})
			Expect(err).To(MatchError(capability.ErrPermissionDenied))

			tc.MustExec(admin, oracleAddr, "SetFeeder", alice)
			_, err = tc.Exec(alice, oracleAddr, "SetPrices", []common.Address{farmToken}, []common.Address{rewardToken}, []*amount.Amount{coin(2)})
			Expect(err).To(Succeed())
			expectAmount(util.Amount(tc.MustView(oracleAddr, "GetPrice", farmToken, rewardToken)), "2")
		})

		It("rejects lists of different length", func() {
			_, err := tc.Exec(admin, oracleAddr, "SetPrices",
				[]common.Address{farmToken, rewardToken},
				[]common.Address{rewardToken},
				[]*amount.Amount{coin(2), coin(3)},
			)
			Expect(err).To(MatchError(capability.ErrInvalidLength))
			expectAmount(util.Amount(tc.MustView(oracleAddr, "GetPrice", farmToken, rewardToken)), "1")
		})

		It("rejects a negative price", func() {
			_, err := tc.Exec(admin, oracleAddr, "SetPrices", []common.Address{farmToken}, []common.Address{rewardToken}, []*amount.Amount{raw(-1)})
			Expect(err).To(MatchError(capability.ErrInvalidAmount))
		})
	})

	It("leaves the settings to the owner", func() {
		_, err := tc.Exec(alice, oracleAddr, "SetThreshold", uint64(1))
		Expect(err).To(MatchError(capability.ErrPermissionDenied))
		_, err = tc.Exec(alice, oracleAddr, "SetFeeder", alice)
		Expect(err).To(MatchError(capability.ErrPermissionDenied))
		_, err = tc.Exec(alice, oracleAddr, "SetRouter", alice)
		Expect(err).To(MatchError(capability.ErrPermissionDenied))
		_, err = tc.Exec(admin, oracleAddr, "SetRouter", common.ZeroAddr)
		Expect(err).To(MatchError(capability.ErrInvalidAddress))
	})
})
