package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rxtech-lab/argo-daytrader/internal/logger"
	"github.com/rxtech-lab/argo-daytrader/internal/trading/engine"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"go.uber.org/zap"
)

// Server exposes the engine's imperative surface over HTTP and streams snapshots over a websocket.
type Server struct {
	engine     engine.DayTradingEngine
	hub        *Hub
	router     *mux.Router
	upgrader   websocket.Upgrader
	httpServer *http.Server
	listener   net.Listener
	token      string
	log        *logger.Logger
}

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

type sellAllResponse struct {
	Submitted int `json:"submitted"`
}

type toggleResponse struct {
	TradingState string `json:"trading_state"`
}

// NewServer builds the router. Cross-origin requests are refused. A non-empty token is required
// as a bearer token on every request, or as the token query parameter on the websocket.
func NewServer(eng engine.DayTradingEngine, log *logger.Logger, token string) *Server {
	log = log.Named("api")

	s := &Server{
		engine: eng,
		hub:    NewHub(log),
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{ //nolint:exhaustruct // defaults for buffers and handshake
			CheckOrigin: sameOrigin,
		},
		httpServer: nil,
		listener:   nil,
		token:      token,
		log:        log,
	}

	s.router.Use(s.guard)

	s.router.HandleFunc("/snapshot", s.handleSnapshot).Methods(http.MethodGet)
	s.router.HandleFunc("/watch/{symbol}", s.handleAddToWatch).Methods(http.MethodPost)
	s.router.HandleFunc("/watch/{symbol}", s.handleRemoveFromWatch).Methods(http.MethodDelete)
	s.router.HandleFunc("/watch/{symbol}/tradeable", s.handleSetTradeable).Methods(http.MethodPut)
	s.router.HandleFunc("/buy/{symbol}", s.handleForceBuy).Methods(http.MethodPost)
	s.router.HandleFunc("/sell-all", s.handleSellAll).Methods(http.MethodPost)
	s.router.HandleFunc("/toggle", s.handleToggle).Methods(http.MethodPost)
	s.router.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)

	return s
}

// guard rejects cross-origin and unauthenticated requests before any handler runs.
func (s *Server) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sameOrigin(r) {
			s.log.Warn("Rejected cross-origin request",
				zap.String("origin", r.Header.Get("Origin")),
				zap.String("path", r.URL.Path),
			)
			s.writeError(w, errors.Newf(errors.ErrCodeForbiddenOrigin, "origin %q is not allowed", r.Header.Get("Origin")))

			return
		}

		if !s.authorized(r) {
			s.writeError(w, errors.New(errors.ErrCodeUnauthorized, "missing or invalid token"))

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authorized(r *http.Request) bool {
	if s.token == "" {
		return true
	}

	presented := r.URL.Query().Get("token")
	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		presented = bearer
	}

	return subtle.ConstantTimeCompare([]byte(presented), []byte(s.token)) == 1
}

// sameOrigin accepts requests without an Origin header. Browsers set one on cross-site requests.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}

	return strings.EqualFold(u.Host, r.Host)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on address and serves in the background. ":0" picks a free port.
func (s *Server) Start(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to listen on %s", address)
	}

	s.listener = listener
	s.httpServer = &http.Server{ //nolint:exhaustruct // only the handler and header timeout matter
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Control API stopped", zap.Error(err))
		}
	}()

	s.log.Info("Control API listening", zap.String("address", listener.Addr().String()))

	return nil
}

// Address returns the bound address, or "" before Start.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// Stop disconnects websocket clients and shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	s.hub.Close()

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Publish sends snapshot to every websocket client.
func (s *Server) Publish(snapshot engine.Snapshot) {
	message, err := json.Marshal(snapshot)
	if err != nil {
		s.log.Warn("Failed to encode snapshot", zap.Error(err))

		return
	}

	s.hub.Broadcast(message)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleAddToWatch(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.AddToWatch(mux.Vars(r)["symbol"]); err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusCreated, s.engine.Snapshot())
}

func (s *Server) handleRemoveFromWatch(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.RemoveFromWatch(mux.Vars(r)["symbol"]); err != nil {
		s.writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetTradeable(w http.ResponseWriter, r *http.Request) {
	tradeable, err := strconv.ParseBool(r.URL.Query().Get("value"))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidParameter, "value must be true or false", err))

		return
	}

	if err := s.engine.SetTradeable(mux.Vars(r)["symbol"], tradeable); err != nil {
		s.writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleForceBuy(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ForceBuy(r.Context(), mux.Vars(r)["symbol"]); err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusAccepted, s.engine.Snapshot())
}

func (s *Server) handleSellAll(w http.ResponseWriter, r *http.Request) {
	submitted, err := s.engine.ForceSellAll(r.Context())
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusAccepted, sellAllResponse{Submitted: submitted})
}

func (s *Server) handleToggle(w http.ResponseWriter, _ *http.Request) {
	state, err := s.engine.PauseResume()
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, toggleResponse{TradingState: string(state)})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	initial, err := json.Marshal(s.engine.Snapshot())
	if err != nil {
		s.writeError(w, err)

		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("Websocket upgrade failed", zap.Error(err))

		return
	}

	s.hub.serve(conn, initial)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Debug("Failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Warn("Request failed", zap.Error(err))
	}

	s.writeJSON(w, status, errorResponse{Error: err.Error(), Code: int(errors.GetCode(err))})
}

// statusFor maps an error code onto an HTTP status.
func statusFor(err error) int {
	code := errors.GetCode(err)

	switch {
	case code == errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case code == errors.ErrCodeForbiddenOrigin:
		return http.StatusForbidden
	case code == errors.ErrCodeSymbolNotTracked:
		return http.StatusNotFound
	case code == errors.ErrCodeSymbolDuplicate:
		return http.StatusConflict
	case code == errors.ErrCodeEngineNotInitialized:
		return http.StatusServiceUnavailable
	case code >= 100 && code < 200:
		return http.StatusBadRequest
	case errors.IsPolicyError(err):
		return http.StatusUnprocessableEntity
	case errors.IsOrderError(err), errors.IsConnectivityError(err), errors.IsDataError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
