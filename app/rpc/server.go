package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/halsimplicity/halsimplicity/domain/signer"
	"github.com/halsimplicity/halsimplicity/domain/taproot"
	"github.com/pkg/errors"
)

const (
	gracefulShutdownTimeout = 30 * time.Second

	// maxRequestSize bounds request bodies. Programs of the maximum node
	// count fit comfortably.
	maxRequestSize = 32 * 1024 * 1024
)

// Server is a JSON-RPC 2.0 server over HTTP POST.
type Server struct {
	listenAddr string
	oracle     signer.Oracle
	network    *taproot.Network

	httpServer *http.Server
	listener   net.Listener

	requestCount uint64
}

// NewServer returns a server that will listen on listenAddr once started.
// network is the network of the address_unconf field when a request names
// none.
func NewServer(listenAddr string, oracle signer.Oracle, network *taproot.Network) *Server {
	s := &Server{
		listenAddr: listenAddr,
		oracle:     oracle,
		network:    network,
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler serving the JSON-RPC endpoint.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.addRequestMetadataMiddleware)
	router.Use(recoveryMiddleware)
	router.Use(loggingMiddleware)
	router.Use(setJSONMiddleware)
	router.HandleFunc("/", s.handleJSONRPC).Methods(http.MethodPost)
	return router
}

// Start starts listening and serving requests in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return errors.Wrapf(err, "error listening on %s", s.listenAddr)
	}
	s.listener = listener
	log.Infof("RPC server listening on %s", listener.Addr())

	spawn("rpc.Server.serve", func() {
		err := s.httpServer.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("RPC server stopped: %s", err)
		}
	})
	return nil
}

// Address returns the address the server listens on. It is only valid
// after Start.
func (s *Server) Address() string {
	if s.listener == nil {
		return s.listenAddr
	}
	return s.listener.Addr().String()
}

// RequestCount returns the number of HTTP requests received so far.
func (s *Server) RequestCount() uint64 {
	return atomic.LoadUint64(&s.requestCount)
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return errors.Wrap(err, "error shutting down the RPC server")
	}
	log.Infof("RPC server stopped after %d requests", s.RequestCount())
	return nil
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestSize))
	if err != nil {
		rpcErr := NewRPCError(ErrCodeInvalidRequest, "error reading request body: "+err.Error())
		sendResponse(w, r, http.StatusRequestEntityTooLarge, newErrorResponse(nil, rpcErr))
		return
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		s.handleBatch(w, r, trimmed)
		return
	}

	response := s.processRequest(r.Context(), trimmed)
	if response == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	sendResponse(w, r, http.StatusOK, response)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request, body []byte) {
	var rawRequests []json.RawMessage
	err := json.Unmarshal(body, &rawRequests)
	if err != nil {
		sendResponse(w, r, http.StatusOK, newErrorResponse(nil, NewRPCError(ErrCodeParse, err.Error())))
		return
	}
	if len(rawRequests) == 0 {
		rpcErr := NewRPCError(ErrCodeInvalidRequest, "empty batch")
		sendResponse(w, r, http.StatusOK, newErrorResponse(nil, rpcErr))
		return
	}

	responses := make([]*Response, 0, len(rawRequests))
	for _, rawRequest := range rawRequests {
		response := s.processRequest(r.Context(), rawRequest)
		if response != nil {
			responses = append(responses, response)
		}
	}
	if len(responses) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	sendResponse(w, r, http.StatusOK, responses)
}

// processRequest runs a single request. It returns nil for notifications.
func (s *Server) processRequest(ctx context.Context, rawRequest []byte) *Response {
	var request Request
	err := json.Unmarshal(rawRequest, &request)
	if err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) || len(rawRequest) == 0 {
			return newErrorResponse(nil, NewRPCError(ErrCodeParse, "Parse error: "+err.Error()))
		}
		return newErrorResponse(nil, NewRPCError(ErrCodeInvalidRequest, "Invalid request: "+err.Error()))
	}
	if request.JSONRPC != Version || request.Method == "" {
		return newErrorResponse(request.ID, NewRPCError(ErrCodeInvalidRequest,
			"Invalid request: jsonrpc must be \"2.0\" and method must be set"))
	}

	result, rpcErr := s.runHandler(ctx, &request)
	if request.IsNotification() {
		return nil
	}
	if rpcErr != nil {
		return newErrorResponse(request.ID, rpcErr)
	}
	return newResultResponse(request.ID, result)
}

func (s *Server) runHandler(ctx context.Context, request *Request) (json.RawMessage, *RPCError) {
	handler, ok := rpcHandlers[request.Method]
	if !ok {
		return nil, NewRPCError(ErrCodeMethodNotFound, "Method not found: "+request.Method)
	}

	log.Debugf("Request %s: handling %s", requestID(ctx), request.Method)
	result, err := handler(s, request.Params)
	if err != nil {
		var rpcErr *RPCError
		if !errors.As(err, &rpcErr) {
			rpcErr = NewRPCError(ErrCodeInternal, err.Error())
		}
		log.Debugf("Request %s: %s failed: %s", requestID(ctx), request.Method, rpcErr.Message)
		return nil, rpcErr
	}

	marshalled, err := json.Marshal(result)
	if err != nil {
		return nil, NewRPCError(ErrCodeInternal, "Failed to serialize result: "+err.Error())
	}
	return marshalled, nil
}

func sendResponse(w http.ResponseWriter, r *http.Request, status int, response interface{}) {
	marshalled, err := json.Marshal(response)
	if err != nil {
		log.Errorf("Request %s: failed to marshal response: %s", requestID(r.Context()), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, err = w.Write(marshalled)
	if err != nil {
		log.Warnf("Request %s: failed to write response: %s", requestID(r.Context()), err)
	}
}
