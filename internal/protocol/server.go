package protocol

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/uiprobe/api/schemas"
	"github.com/xkilldash9x/uiprobe/internal/config"
	"github.com/xkilldash9x/uiprobe/internal/player"
	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

// Server accepts driver connections and runs one player session per
// connection. Commands are processed one at a time per connection; a delayed
// command holds the response slot until it completes.
type Server struct {
	cfg       config.ServerConfig
	playerCfg config.PlayerConfig
	app       toolkit.App
	log       *zap.Logger
}

// NewServer builds a server over the host application surface.
func NewServer(app toolkit.App, cfg config.ServerConfig, playerCfg config.PlayerConfig, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{cfg: cfg, playerCfg: playerCfg, app: app, log: log.Named("server")}
}

// ListenAndServe listens on the configured address and serves until ctx is
// canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled. It owns ln and
// closes it on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.log.Info("Listening for driver connections.",
		zap.String("addr", ln.Addr().String()))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})
	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			g.Go(func() error {
				s.handleConn(ctx, conn)
				return nil
			})
		}
	})
	err := g.Wait()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	// Unblock the read loop when the server shuts down.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	log := s.log.With(zap.String("conn_id", uuid.NewString()))
	log.Info("Driver connected.", zap.String("remote", conn.RemoteAddr().String()))

	// Each connection is its own session with its own registry.
	p := player.New(s.app, s.playerCfg, log)
	reader := bufio.NewReader(conn)
	for {
		if ctx.Err() != nil {
			return
		}
		cmd, err := ReadMessage(reader, s.cfg.MaxMessageSize)
		if err != nil {
			if err == io.EOF {
				log.Info("Driver disconnected.")
			} else if ctx.Err() == nil {
				log.Warn("Dropping connection.", zap.Error(err))
			}
			return
		}

		result, delayed := p.Process(cmd)
		if delayed != nil {
			result = s.awaitDelayed(ctx, delayed)
			if result == nil {
				return
			}
		}
		if err := WriteMessage(conn, result); err != nil {
			log.Warn("Failed to write response.", zap.Error(err))
			return
		}
	}
}

// awaitDelayed drives a delayed response to completion, returning nil when
// the server shuts down first.
func (s *Server) awaitDelayed(ctx context.Context, delayed player.DelayedResponse) schemas.Bag {
	done := make(chan schemas.Bag, 1)
	delayed.Start(func(bag schemas.Bag) { done <- bag })
	select {
	case bag := <-done:
		return bag
	case <-ctx.Done():
		return nil
	}
}
