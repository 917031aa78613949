package apiserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/meverselabs/yieldvault/common/rlog"
	"github.com/pkg/errors"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type reqData struct {
	req   *JRPCRequest
	resCh chan *JRPCResponse
}

func (s *APIServer) setupRoutes() {
	s.e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	s.e.Use(middleware.Recover())
	s.e.POST("/api/endpoints/http", func(c echo.Context) error {
		defer c.Request().Body.Close()
		data, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return errors.WithStack(err)
		}
		res := s.serve(data)
		if res == nil {
			return c.NoContent(http.StatusOK)
		}
		return c.JSON(http.StatusOK, res)
	})
	s.e.GET("/api/endpoints/websocket", func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
		if err != nil {
			return err
		}
		defer conn.Close()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return nil
				}
				return err
			}
			res := s.serve(data)
			if res == nil {
				continue
			}
			if err := conn.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
				return err
			}
			if err := conn.WriteJSON(res); err != nil {
				return err
			}
		}
	})
}

// serve decodes one request and waits for a worker to answer it
func (s *APIServer) serve(data []byte) *JRPCResponse {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var req JRPCRequest
	if err := dec.Decode(&req); err != nil {
		return &JRPCResponse{
			JSONRPC: "2.0",
			Error:   &JRPCError{Code: CodeParseError, Message: err.Error()},
		}
	}
	resCh := make(chan *JRPCResponse, 1)
	select {
	case s.reqCh <- &reqData{req: &req, resCh: resCh}:
	case <-s.done:
		return nil
	}
	return <-resCh
}

func (s *APIServer) work() {
	for {
		select {
		case r := <-s.reqCh:
			r.resCh <- s.handleJRPC(r.req)
		case <-s.done:
			return
		}
	}
}

func (s *APIServer) handleJRPC(req *JRPCRequest) *JRPCResponse {
	res := &JRPCResponse{
		JSONRPC: req.JSONRPC,
		ID:      req.ID,
	}

	ls := strings.SplitN(req.Method, ".", 2)
	if len(ls) != 2 {
		res.Error = &JRPCError{Code: CodeMethodNotFound, Message: ErrInvalidMethod.Error()}
		return res
	}
	s.Lock()
	sub, has := s.subMap[ls[0]]
	s.Unlock()
	if !has {
		res.Error = &JRPCError{Code: CodeMethodNotFound, Message: ErrInvalidMethod.Error()}
		return res
	}
	fn, has := sub.get(ls[1])
	if !has {
		res.Error = &JRPCError{Code: CodeMethodNotFound, Message: ErrInvalidMethod.Error()}
		return res
	}

	ret, err := fn(req.ID, NewArgument(req.Params))
	if req.ID == nil {
		return nil
	}
	if err != nil {
		logger := rlog.GetForComponent("apiserver")
		logger.Debug().Err(err).Str("method", req.Method).Msg("call failed")
		code := CodeCallFailed
		if errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrInvalidArgumentIndex) || errors.Is(err, ErrInvalidArgumentType) {
			code = CodeInvalidParams
		}
		res.Error = &JRPCError{Code: code, Message: err.Error()}
		return res
	}
	res.Result = ret
	return res
}
