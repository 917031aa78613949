package util

import (
	"crypto/ecdsa"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/rlog"
	"github.com/meverselabs/yieldvault/contract"
)

const (
	ChainID        = uint64(1)
	StartTimestamp = uint64(1_700_000_000)
	userCount      = 10
)

var (
	AdminKey = mustKey("a000000000000000000000000000000000000000000000000000000000000999")
	Admin    = crypto.PubkeyToAddress(AdminKey.PublicKey)
	Users    []common.Address
	UserKeys []*ecdsa.PrivateKey
)

var ClassMap map[string]uint64

func init() {
	rlog.InitializeWithWriter("disabled", io.Discard)

	m, err := contract.RegisterAll()
	if err != nil {
		panic(err)
	}
	ClassMap = m

	for i := 0; i < userCount; i++ {
		k := mustKey(fmt.Sprintf("b%063x", 0x10+i))
		UserKeys = append(UserKeys, k)
		Users = append(Users, crypto.PubkeyToAddress(k.PublicKey))
	}
}

func mustKey(hexkey string) *ecdsa.PrivateKey {
	k, err := crypto.HexToECDSA(hexkey)
	if err != nil {
		panic(err)
	}
	return k
}
