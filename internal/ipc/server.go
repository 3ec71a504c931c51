package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"log/slog"

	"stylus/internal/daemon"
	"stylus/internal/library"
	"stylus/internal/logging"
)

// Server exposes the record catalog via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logging.NewComponentLogger(logger, "ipc"), ctx: ctx}
	if err := rpcServer.RegisterName("Stylus", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) GetByID(req GetByIDRequest, resp *GetByIDResponse) error {
	record, err := s.daemon.Library().GetByID(s.ctx, req.ID)
	if err != nil {
		resp.fail(err)
		return nil
	}
	resp.Record = record
	resp.ok()
	return nil
}

func (s *service) GetByIDs(req GetByIDsRequest, resp *GetByIDsResponse) error {
	if req.AsObject {
		records, err := s.daemon.Library().GetByIDMap(s.ctx, req.IDs)
		if err != nil {
			resp.fail(err)
			return nil
		}
		resp.RecordsByID = records
		resp.ok()
		return nil
	}
	records, err := s.daemon.Library().GetByIDs(s.ctx, req.IDs)
	if err != nil {
		resp.fail(err)
		return nil
	}
	resp.Records = records
	resp.ok()
	return nil
}

func (s *service) GetAll(_ GetAllRequest, resp *GetAllResponse) error {
	records, err := s.daemon.Library().GetAll(s.ctx)
	if err != nil {
		resp.fail(err)
		return nil
	}
	resp.Records = records
	resp.ok()
	return nil
}

func (s *service) GetByArtist(req GetByArtistRequest, resp *GetByArtistResponse) error {
	records, err := s.daemon.Library().GetByArtist(s.ctx, req.Artist)
	if err != nil {
		resp.fail(err)
		return nil
	}
	resp.Records = records
	resp.ok()
	return nil
}

func (s *service) GetByArtists(req GetByArtistsRequest, resp *GetByArtistsResponse) error {
	records, err := s.daemon.Library().GetByArtists(s.ctx, req.Artists)
	if err != nil {
		resp.fail(err)
		return nil
	}
	resp.Records = records
	resp.ok()
	return nil
}

func (s *service) GetByArtistAndTitle(req GetByArtistAndTitleRequest, resp *GetByArtistAndTitleResponse) error {
	matches, err := s.daemon.Library().GetByArtistAndTitle(s.ctx, req.Artist, req.Title, req.TitleFallback)
	if err != nil {
		resp.fail(err)
		return nil
	}
	if req.AsObject {
		byID := make(map[string]library.Match, len(matches))
		for _, m := range matches {
			byID[m.Record.ID] = m
		}
		resp.MatchesByID = byID
	} else {
		resp.Matches = matches
	}
	resp.ok()
	return nil
}

func (s *service) Add(req AddRequest, resp *AddResponse) error {
	record, err := s.daemon.Library().Add(s.ctx, req.Record)
	if err != nil {
		resp.fail(err)
		return nil
	}
	resp.Record = record
	resp.ok()
	s.logger.Info("record added via IPC",
		logging.String("id", record.ID),
		logging.String("title", record.Title))
	return nil
}

func (s *service) Update(req UpdateRequest, resp *UpdateResponse) error {
	if err := s.daemon.Library().Update(s.ctx, req.ID, req.Update); err != nil {
		resp.fail(err)
		return nil
	}
	resp.ok()
	return nil
}

func (s *service) UpdateRating(req UpdateRatingRequest, resp *UpdateRatingResponse) error {
	if err := s.daemon.Library().UpdateRating(s.ctx, req.ID, req.Rating); err != nil {
		resp.fail(err)
		return nil
	}
	resp.ok()
	return nil
}

func (s *service) Delete(req DeleteRequest, resp *DeleteResponse) error {
	if err := s.daemon.Library().Delete(s.ctx, req.ID); err != nil {
		resp.fail(err)
		return nil
	}
	resp.ok()
	s.logger.Info("record deleted via IPC", logging.String("id", req.ID))
	return nil
}

func (s *service) Count(_ CountRequest, resp *CountResponse) error {
	count, err := s.daemon.Library().Count(s.ctx)
	if err != nil {
		resp.fail(err)
		return nil
	}
	resp.Count = count
	resp.ok()
	return nil
}

func (s *service) SetAll(req SetAllRequest, resp *SetAllResponse) error {
	if err := s.daemon.Library().ReplaceAll(s.ctx, req.Records); err != nil {
		resp.fail(err)
		return nil
	}
	resp.Count = len(req.Records)
	resp.ok()
	s.logger.Info("catalog replaced via IPC", logging.Int("records", len(req.Records)))
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status(s.ctx)
	resp.Running = status.Running
	resp.PID = status.PID
	resp.StartedAt = status.StartedAt
	resp.UptimeSecs = int64(status.Uptime.Seconds())
	resp.LockPath = status.LockPath
	resp.DatabasePath = status.DatabasePath
	resp.SocketPath = status.SocketPath
	resp.Records = status.Records
	resp.Indexed = status.Indexed
	resp.ok()
	return nil
}
