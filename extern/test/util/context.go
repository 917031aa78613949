package util

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/core/backend"
	_ "github.com/meverselabs/yieldvault/core/backend/leveldb_driver"
	"github.com/meverselabs/yieldvault/core/chain"
)

// TestContext is a chain on the memory backend with a clock driven by the test
type TestContext struct {
	Cn        *chain.Chain
	Timestamp uint64
}

func NewTestContext() *TestContext {
	db, err := backend.Create("memory", "")
	if err != nil {
		panic(err)
	}
	st, err := chain.NewStore(db, 1024)
	if err != nil {
		panic(err)
	}
	tc := &TestContext{
		Timestamp: StartTimestamp,
	}
	tc.Cn = chain.NewChain(ChainID, st, tc.Timestamp)
	return tc
}

func (tc *TestContext) Close() {
	tc.Cn.Close()
}

/////////// calls ///////////

// Exec runs the call as user in the pending block
func (tc *TestContext) Exec(user common.Address, contAddr common.Address, methodName string, args ...interface{}) ([]interface{}, error) {
	return tc.Cn.Execute(user, contAddr, methodName, args)
}

func (tc *TestContext) MustExec(user common.Address, contAddr common.Address, methodName string, args ...interface{}) []interface{} {
	is, err := tc.Exec(user, contAddr, methodName, args...)
	if err != nil {
		panic(err)
	}
	return is
}

// View runs the call without changing the state
func (tc *TestContext) View(contAddr common.Address, methodName string, args ...interface{}) ([]interface{}, error) {
	return tc.Cn.View(common.ZeroAddr, contAddr, methodName, args)
}

func (tc *TestContext) MustView(contAddr common.Address, methodName string, args ...interface{}) []interface{} {
	is, err := tc.View(contAddr, methodName, args...)
	if err != nil {
		panic(err)
	}
	return is
}

// SendTx signs the call with the key and executes it as a transaction
func (tc *TestContext) SendTx(key *ecdsa.PrivateKey, contAddr common.Address, methodName string, args ...interface{}) ([]interface{}, error) {
	from := crypto.PubkeyToAddress(key.PublicKey)
	tx, err := chain.NewTransaction(ChainID, tc.Cn.Seq(from)+1, contAddr, methodName, args...)
	if err != nil {
		return nil, err
	}
	stx, err := tx.Sign(key)
	if err != nil {
		return nil, err
	}
	return tc.Cn.ExecuteTx(stx)
}

func (tc *TestContext) MustSendTx(key *ecdsa.PrivateKey, contAddr common.Address, methodName string, args ...interface{}) []interface{} {
	is, err := tc.SendTx(key, contAddr, methodName, args...)
	if err != nil {
		panic(err)
	}
	return is
}

/////////// blocks ///////////

// SkipBlock seals n blocks, one second apart
func (tc *TestContext) SkipBlock(n int) error {
	for i := 0; i < n; i++ {
		tc.Timestamp++
		if err := tc.Cn.NextBlock(tc.Timestamp); err != nil {
			return err
		}
	}
	return nil
}

func (tc *TestContext) MustSkipBlock(n int) {
	if err := tc.SkipBlock(n); err != nil {
		panic(err)
	}
}

// Height returns the height of the pending block
func (tc *TestContext) Height() uint32 {
	return tc.Cn.TargetHeight()
}
