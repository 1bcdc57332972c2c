package websocket

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server exposes the websocket endpoint for the authority. It hands exactly
// one peer to Accept; later upgrade attempts are refused.
type Server struct {
	router   *gin.Engine
	upgrader websocket.Upgrader
	accepted chan *Stream
	taken    atomic.Bool
	log      *zap.SugaredLogger
}

func NewServer(log *zap.SugaredLogger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		accepted: make(chan *Stream, 1),
		log:      log,
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	router.GET("/healthz", s.health)
	router.GET(Path, s.handleWebSocket)
	s.router = router

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debugw("[WS] request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"available": !s.taken.Load(),
	})
}

func (s *Server) handleWebSocket(c *gin.Context) {
	if !s.taken.CompareAndSwap(false, true) {
		s.log.Warnf("[WS] Refusing %s: a game is already in progress", c.ClientIP())
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "game already in progress"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Errorf("[WS] Upgrade error: %v", err)
		s.taken.Store(false)
		return
	}

	s.log.Infof("[WS] Peer connected from %s", conn.RemoteAddr())
	s.accepted <- NewStream(conn)
}

// Accept blocks until the peer has connected or ctx is done.
func (s *Server) Accept(ctx context.Context) (*Stream, error) {
	select {
	case stream := <-s.accepted:
		return stream, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ListenOnce serves the endpoint on port until one peer has connected, then
// stops listening. The upgraded connection outlives the HTTP server.
func ListenOnce(ctx context.Context, port int, log *zap.SugaredLogger) (*Stream, error) {
	s := NewServer(log)

	ln, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: s.Handler()}

	go func() {
		log.Infof("[WS] Waiting for peer on %s%s", ln.Addr(), Path)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("[WS] Server error: %v", err)
		}
	}()

	stream, acceptErr := s.Accept(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("[WS] Shutdown: %v", err)
	}

	return stream, acceptErr
}
