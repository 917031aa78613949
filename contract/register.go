package contract

import (
	"sync"

	"github.com/meverselabs/yieldvault/contract/farm"
	"github.com/meverselabs/yieldvault/contract/feemanager"
	"github.com/meverselabs/yieldvault/contract/ibvault"
	"github.com/meverselabs/yieldvault/contract/priceoracle"
	"github.com/meverselabs/yieldvault/contract/swaprouter"
	"github.com/meverselabs/yieldvault/contract/token"
	"github.com/meverselabs/yieldvault/contract/vault"
	"github.com/meverselabs/yieldvault/contract/vaultviewer"
	"github.com/meverselabs/yieldvault/contract/worker"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

// Class names used by the genesis config and the deploy helpers
const (
	ClassToken        = "Token"
	ClassFarm         = "Farm"
	ClassRouter       = "Router"
	ClassIBVault      = "IBVault"
	ClassPriceOracle  = "PriceOracle"
	ClassFeeManager   = "FeeManager"
	ClassSingleWorker = "SingleWorker"
	ClassDualWorker   = "DualWorker"
	ClassVault        = "Vault"
	ClassVaultViewer  = "VaultViewer"
)

var (
	registerOnce sync.Once
	classMap     = map[string]uint64{}
	registerErr  error
)

// ErrUnknownClass is returned when the class name is not registered
var ErrUnknownClass = errors.New("unknown contract class")

// RegisterAll registers every contract type of the vault system and returns the class map
func RegisterAll() (map[string]uint64, error) {
	registerOnce.Do(func() {
		conts := []struct {
			name string
			cont types.Contract
		}{
			{ClassToken, &token.TokenContract{}},
			{ClassFarm, &farm.FarmContract{}},
			{ClassRouter, &swaprouter.RouterContract{}},
			{ClassIBVault, &ibvault.IBVaultContract{}},
			{ClassPriceOracle, &priceoracle.PriceOracleContract{}},
			{ClassFeeManager, &feemanager.FeeManagerContract{}},
			{ClassSingleWorker, &worker.SingleWorker{}},
			{ClassDualWorker, &worker.DualWorker{}},
			{ClassVault, &vault.VaultContract{}},
			{ClassVaultViewer, &vaultviewer.VaultViewerContract{}},
		}
		for _, c := range conts {
			ClassID, err := types.RegisterContractType(c.cont)
			if err != nil {
				registerErr = errors.Wrapf(err, "register %v", c.name)
				return
			}
			classMap[c.name] = ClassID
		}
	})
	if registerErr != nil {
		return nil, registerErr
	}
	m := make(map[string]uint64, len(classMap))
	for k, v := range classMap {
		m[k] = v
	}
	return m, nil
}

// ClassID returns the class id of the named contract class
func ClassID(name string) (uint64, error) {
	m, err := RegisterAll()
	if err != nil {
		return 0, err
	}
	ClassID, has := m[name]
	if !has {
		return 0, errors.Wrapf(ErrUnknownClass, "%v", name)
	}
	return ClassID, nil
}
