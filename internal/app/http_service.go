package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/bidmart-admin/internal/config"
)

// HTTPService 后台 API 的 HTTP 监听服务
type HTTPService struct {
	server   *http.Server
	listener net.Listener
}

// NewHTTPService 按服务器配置创建 HTTP 服务
func NewHTTPService(cfg config.ServerConfig, handler http.Handler) *HTTPService {
	readHeader := time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second
	if readHeader <= 0 {
		readHeader = 10 * time.Second
	}
	return &HTTPService{
		server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: readHeader,
		},
	}
}

// Name 服务名称
func (s *HTTPService) Name() string {
	return "http"
}

// Start 监听端口并阻塞处理请求；Stop 触发的关闭不视为错误
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	ln := s.listener
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", s.server.Addr)
		if err != nil {
			return err
		}
	}
	s.server.BaseContext = func(net.Listener) context.Context { return ctx }
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 等待进行中的请求完成后关闭
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
