package ibvault

import (
	"io"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/bin"
)

// IBVaultContractConstruction binds the vault to its underlying token and its share token.
// The vault must be a minter of the share token.
type IBVaultContractConstruction struct {
	Underlying common.Address
	ShareToken common.Address
}

func (s *IBVaultContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Underlying); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.ShareToken); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *IBVaultContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Underlying); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.ShareToken); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
