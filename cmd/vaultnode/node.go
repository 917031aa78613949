package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/meverselabs/yieldvault/cmd/closer"
	"github.com/meverselabs/yieldvault/common/metrics"
	"github.com/meverselabs/yieldvault/common/rlog"
	"github.com/meverselabs/yieldvault/core/backend"
	_ "github.com/meverselabs/yieldvault/core/backend/bolt_driver"
	_ "github.com/meverselabs/yieldvault/core/backend/leveldb_driver"
	"github.com/meverselabs/yieldvault/core/chain"
	"github.com/meverselabs/yieldvault/service/apiserver"
	"github.com/meverselabs/yieldvault/service/apiserver/viewchain"
	"github.com/meverselabs/yieldvault/service/txsearch"
	"github.com/rs/zerolog"
)

// Node seals a block every interval and serves the api
type Node struct {
	cfg    *NodeConfig
	cn     *chain.Chain
	api    *apiserver.APIServer
	ts     *txsearch.TxSearch
	gen    *Genesis
	cm     *closer.Manager
	logger zerolog.Logger
}

func (nd *Node) persistent() bool {
	return nd.cfg.StoreDriver != "memory"
}

// NewNode opens the store, deploys the genesis on an empty chain and registers the api
func NewNode(cfg *NodeConfig, now time.Time) (*Node, error) {
	if cfg.Metrics.Enabled {
		metrics.InitializePrometheusMetrics()
	}
	nd := &Node{
		cfg:    cfg,
		cm:     closer.NewManager(),
		logger: rlog.GetForComponent("node"),
	}
	if err := nd.init(now); err != nil {
		nd.cm.CloseAll()
		return nil, err
	}
	return nd, nil
}

func (nd *Node) init(now time.Time) error {
	cfg := nd.cfg

	var chainPath, searchPath string
	if nd.persistent() {
		chainPath = filepath.Join(cfg.DataDir, "chain")
		searchPath = filepath.Join(cfg.DataDir, "txsearch")
	}
	db, err := backend.Create(cfg.StoreDriver, chainPath)
	if err != nil {
		return err
	}
	st, err := chain.NewStore(db, cfg.CacheSize)
	if err != nil {
		db.Close()
		return err
	}
	nd.cn = chain.NewChain(cfg.ChainID, st, uint64(now.Unix()))
	nd.cm.Add("chain", nd.cn)

	ts, err := txsearch.NewTxSearch(searchPath)
	if err != nil {
		return err
	}
	nd.ts = ts
	nd.cm.Add("txsearch", ts)
	nd.cn.AddService(ts)

	if err := nd.initGenesis(now); err != nil {
		return err
	}

	nd.api = apiserver.NewAPIServer(cfg.API.Workers)
	nd.cm.Add("apiserver", nd.api)
	if cfg.Metrics.Enabled {
		nd.api.SetMetricsHandler(metrics.HTTPHandler())
	}
	if err := ts.SetupAPI(nd.api); err != nil {
		return err
	}
	return viewchain.NewViewchain(nd.api, nd.cn, nd.gen.Viewer, ts)
}

// initGenesis seals the genesis block on an empty chain, otherwise it loads the saved address book
func (nd *Node) initGenesis(now time.Time) error {
	if nd.cn.Height() > 0 {
		gen, err := LoadGenesis(nd.cfg.DataDir)
		if err != nil {
			return err
		}
		nd.gen = gen
		return nil
	}

	gen, err := DeployGenesis(nd.cn, &nd.cfg.Genesis)
	if err != nil {
		return err
	}
	if err := nd.cn.NextBlock(uint64(now.Unix())); err != nil {
		return err
	}
	if nd.persistent() {
		if err := SaveGenesis(nd.cfg.DataDir, gen); err != nil {
			return err
		}
	}
	nd.gen = gen
	nd.logger.Info().Uint32("height", nd.cn.Height()).Int("vaults", len(gen.Vaults)).Msg("genesis sealed")
	return nil
}

// Genesis returns the address book of the chain
func (nd *Node) Genesis() *Genesis {
	return nd.gen
}

// Run serves the api and seals blocks until the context is done
func (nd *Node) Run(ctx context.Context) error {
	go func() {
		if err := nd.api.Run(nd.cfg.API.Bind); err != nil {
			nd.logger.Error().Err(err).Msg("api server stopped")
		}
	}()

	ticker := time.NewTicker(time.Duration(nd.cfg.BlockInterval) * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			if err := nd.cn.NextBlock(uint64(t.Unix())); err != nil {
				return err
			}
		}
	}
}

// Close closes the api, the index and the chain in this order
func (nd *Node) Close() {
	nd.cm.CloseAll()
}
