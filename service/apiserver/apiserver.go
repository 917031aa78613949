package apiserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/meverselabs/yieldvault/common/rlog"
	"github.com/pkg/errors"
)

// APIServer provides json rpc over http and websocket for the chain
type APIServer struct {
	sync.Mutex
	e       *echo.Echo
	subMap  map[string]*JRPCSub
	workers int
	reqCh   chan *reqData
	done    chan struct{}
	isClose bool
}

// NewAPIServer returns a APIServer handling the requests with the number of workers
func NewAPIServer(workers int) *APIServer {
	if workers <= 0 {
		workers = 1
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	s := &APIServer{
		e:       e,
		subMap:  map[string]*JRPCSub{},
		workers: workers,
		reqCh:   make(chan *reqData),
		done:    make(chan struct{}),
	}
	s.setupRoutes()
	return s
}

// Name returns the name of the service
func (s *APIServer) Name() string {
	return "yieldvault.apiserver"
}

// Handler returns the http handler of every route
func (s *APIServer) Handler() http.Handler {
	return s.e
}

// SetMetricsHandler serves the handler at /metrics
func (s *APIServer) SetMetricsHandler(h http.Handler) {
	if h == nil {
		return
	}
	s.e.GET("/metrics", echo.WrapHandler(h))
}

// JRPC provides the json rpc feature as a SubName.FunctionName methods
func (s *APIServer) JRPC(SubName string) (*JRPCSub, error) {
	s.Lock()
	defer s.Unlock()

	if _, has := s.subMap[SubName]; has {
		return nil, errors.Wrapf(ErrExistSubName, "%v", SubName)
	}
	js := NewJRPCSub()
	s.subMap[SubName] = js
	return js, nil
}

// Start runs the workers answering the requests of Handler
func (s *APIServer) Start() {
	for i := 0; i < s.workers; i++ {
		go s.work()
	}
}

// Run starts the workers and serves until Close
func (s *APIServer) Run(BindAddress string) error {
	s.Start()
	logger := rlog.GetForComponent("apiserver")
	logger.Info().Str("bind", BindAddress).Msg("api server started")
	if err := s.e.Start(BindAddress); err != nil && err != http.ErrServerClosed {
		return errors.WithStack(err)
	}
	return nil
}

// Close stops the http server
func (s *APIServer) Close() {
	s.Lock()
	if s.isClose {
		s.Unlock()
		return
	}
	s.isClose = true
	close(s.done)
	s.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.e.Shutdown(ctx); err != nil {
		logger := rlog.GetForComponent("apiserver")
		logger.Warn().Err(err).Msg("shutdown")
	}
}
