package api

import (
	"context"
	"net/http"

	"nearbite/go-backend/internal/adapters/rpc"
	"nearbite/go-backend/internal/app"
)

const DefaultRPCAddr = rpc.DefaultRPCAddr

// Server couples a service with its RPC transport. Token requirements and
// limits are resolved by the transport from the environment.
type Server struct {
	service   app.CoreAPI
	transport *rpc.Server
}

func NewServerWithService(rpcAddr string, svc app.CoreAPI) *Server {
	return &Server{service: svc, transport: rpc.NewServerWithService(rpcAddr, svc)}
}

func (s *Server) Run(ctx context.Context) error {
	return s.transport.Run(ctx)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.transport.HandleHealth(w, r)
}

func (s *Server) HandleRPC(w http.ResponseWriter, r *http.Request) {
	s.transport.HandleRPC(w, r)
}

func (s *Server) HandleRPCStream(w http.ResponseWriter, r *http.Request) {
	s.transport.HandleRPCStream(w, r)
}
