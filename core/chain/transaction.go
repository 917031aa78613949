package chain

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/meverselabs/yieldvault/common/hash"
	"github.com/pkg/errors"
)

// Transaction is a contract call requested by the signer
type Transaction struct {
	ChainID uint64          `json:"chainId"`
	Seq     uint64          `json:"seq"`
	To      common.Address  `json:"to"`
	Method  string          `json:"method"`
	Args    json.RawMessage `json:"args"`
}

// NewTransaction encodes the arguments of the call
func NewTransaction(ChainID uint64, Seq uint64, To common.Address, Method string, Args ...interface{}) (*Transaction, error) {
	if Args == nil {
		Args = []interface{}{}
	}
	bs, err := json.Marshal(Args)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Transaction{
		ChainID: ChainID,
		Seq:     Seq,
		To:      To,
		Method:  Method,
		Args:    bs,
	}, nil
}

// Hash returns the signing hash of the transaction
func (tx *Transaction) Hash() hash.Hash256 {
	var buf bytes.Buffer
	bin.WriteUint64(&buf, tx.ChainID)
	bin.WriteUint64(&buf, tx.Seq)
	bin.WriteBytes(&buf, tx.To[:])
	bin.WriteString(&buf, tx.Method)
	bin.WriteBytes(&buf, tx.Args)
	return hash.Hash(buf.Bytes())
}

// DecodeArgs returns the call arguments, numbers are kept as json.Number
func (tx *Transaction) DecodeArgs() ([]interface{}, error) {
	if len(tx.Args) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(tx.Args))
	dec.UseNumber()
	var args []interface{}
	if err := dec.Decode(&args); err != nil {
		return nil, errors.Wrapf(ErrInvalidTxFormat, "args: %v", err)
	}
	return args, nil
}

// SignedTransaction is a transaction with the secp256k1 signature of its hash
type SignedTransaction struct {
	Tx  *Transaction `json:"tx"`
	Sig []byte       `json:"sig"`
}

// Sign signs the transaction with the key
func (tx *Transaction) Sign(key *ecdsa.PrivateKey) (*SignedTransaction, error) {
	h := tx.Hash()
	sig, err := crypto.Sign(h[:], key)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &SignedTransaction{Tx: tx, Sig: sig}, nil
}

// Sender recovers the address that signed the transaction
func (stx *SignedTransaction) Sender() (common.Address, error) {
	if stx.Tx == nil {
		return common.ZeroAddr, errors.WithStack(ErrInvalidTxFormat)
	}
	if len(stx.Sig) != crypto.SignatureLength {
		return common.ZeroAddr, errors.WithStack(common.ErrInvalidSignature)
	}
	h := stx.Tx.Hash()
	pub, err := crypto.SigToPub(h[:], stx.Sig)
	if err != nil {
		return common.ZeroAddr, errors.Wrapf(common.ErrInvalidSignature, "%v", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
