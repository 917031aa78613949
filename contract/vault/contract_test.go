package vault

import (
	"math/big"
	"testing"

	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/stretchr/testify/assert"
)

func TestDebtOf(t *testing.T) {
	acc := amount.NewAmountFromBigInt(big.NewInt(5e11))
	assert.Equal(t, "500", debtOf(amount.NewAmount(1000, 0), acc).String())
	assert.Equal(t, "0", debtOf(amount.NewAmount(0, 0), acc).String())

	// floors below one raw unit
	assert.Equal(t, int64(0), debtOf(amount.NewAmountFromBigInt(big.NewInt(1)), acc).Int64())
}

func TestOwedOf(t *testing.T) {
	acc := amount.NewAmountFromBigInt(big.NewInt(SCALE))
	pos := &UserPosition{
		Principal:  amount.NewAmount(100, 0),
		RewardDebt: amount.NewAmount(40, 0),
	}
	assert.Equal(t, "60", owedOf(pos, acc).String())

	pos.RewardDebt = amount.NewAmount(200, 0)
	assert.True(t, owedOf(pos, acc).IsZero())
}

func TestCheckAmount(t *testing.T) {
	assert.NoError(t, checkAmount(amount.NewAmount(0, 0)))
	assert.NoError(t, checkAmount(amount.NewAmount(1, 0)))
	assert.ErrorIs(t, checkAmount(nil), capability.ErrInvalidAmount)
	assert.ErrorIs(t, checkAmount(&amount.Amount{}), capability.ErrInvalidAmount)
	assert.ErrorIs(t, checkAmount(amount.NewAmountFromBigInt(big.NewInt(-1))), capability.ErrInvalidAmount)
}
