package txsearch

import (
	"github.com/meverselabs/yieldvault/service/apiserver"
)

// SetupAPI registers the search methods on the api server
func (t *TxSearch) SetupAPI(api *apiserver.APIServer) error {
	s, err := api.JRPC("search")
	if err != nil {
		return err
	}
	s.Set("height", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return t.Height(), nil
	})
	s.Set("events", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		height, err := arg.Uint32(0)
		if err != nil {
			return nil, err
		}
		return t.Events(height)
	})
	s.Set("contractEvents", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		addr, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		from, err := arg.Uint32(1)
		if err != nil {
			return nil, err
		}
		to, err := arg.Uint32(2)
		if err != nil {
			return nil, err
		}
		limit := 100
		if arg.Len() > 3 {
			l, err := arg.Uint32(3)
			if err != nil {
				return nil, err
			}
			limit = int(l)
		}
		return t.ContractEvents(addr, from, to, limit)
	})
	return nil
}
