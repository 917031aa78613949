package viewchain

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/core/chain"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/meverselabs/yieldvault/service/apiserver"
)

// EventSource returns the events of a block that the chain does not keep anymore
type EventSource interface {
	Events(height uint32) ([]*types.Event, error)
}

type viewchain struct {
	api    *apiserver.APIServer
	cn     *chain.Chain
	viewer common.Address
	es     EventSource
}

// NewViewchain registers the vault and chain methods. The viewer is the vault viewer
// contract answering vault.userInfo, es may be nil.
func NewViewchain(api *apiserver.APIServer, cn *chain.Chain, viewer common.Address, es EventSource) error {
	v := &viewchain{
		api:    api,
		cn:     cn,
		viewer: viewer,
		es:     es,
	}
	if err := v.setupChain(); err != nil {
		return err
	}
	return v.setupVault()
}

func (v *viewchain) setupChain() error {
	s, err := v.api.JRPC("chain")
	if err != nil {
		return err
	}
	s.Set("chainId", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return v.cn.ChainID(), nil
	})
	s.Set("height", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return v.cn.Height(), nil
	})
	s.Set("version", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return GetVersion(), nil
	})
	s.Set("events", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		height, err := arg.Uint32(0)
		if err != nil {
			return nil, err
		}
		events, err := v.cn.Events(height)
		if err == nil {
			return events, nil
		}
		if v.es == nil || errors.Cause(err) != chain.ErrNotExistEvents {
			return nil, err
		}
		return v.es.Events(height)
	})
	return nil
}

func (v *viewchain) setupVault() error {
	s, err := v.api.JRPC("vault")
	if err != nil {
		return err
	}
	s.Set("height", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return v.cn.TargetHeight(), nil
	})
	s.Set("seq", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		addr, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		return v.cn.Seq(addr), nil
	})
	// call(to, method, [args]) runs a read-only call on the pending block
	s.Set("call", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		to, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		method, err := arg.String(1)
		if err != nil {
			return nil, err
		}
		var args []interface{}
		if arg.Len() > 2 {
			args, err = arg.Array(2)
			if err != nil {
				return nil, err
			}
		}
		return v.cn.View(common.ZeroAddr, to, method, args)
	})
	// sendTx({tx, sig}) executes a signed transaction
	s.Set("sendTx", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		var stx chain.SignedTransaction
		if err := arg.Decode(0, &stx); err != nil {
			return nil, err
		}
		return v.cn.ExecuteTx(&stx)
	})
	s.Set("userInfo", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		vaults, err := arg.Addresses(0)
		if err != nil {
			return nil, err
		}
		user, err := arg.Address(1)
		if err != nil {
			return nil, err
		}
		if v.viewer == common.ZeroAddr {
			return nil, errors.Wrap(apiserver.ErrInvalidMethod, "no vault viewer")
		}
		is, err := v.cn.View(common.ZeroAddr, v.viewer, "GetUserInfo", []interface{}{vaults, user})
		if err != nil {
			return nil, err
		}
		if len(is) == 0 {
			return nil, nil
		}
		return is[0], nil
	})
	return nil
}
