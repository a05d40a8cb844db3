package compilation

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/NilFoundation/solforge/common/logging"
	"github.com/NilFoundation/solforge/common/version"
	"github.com/NilFoundation/solforge/internal/callargs"
	"github.com/NilFoundation/solforge/internal/contractabi"
	"github.com/NilFoundation/solforge/internal/solc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
)

const (
	shutdownTimeout = 5 * time.Second

	requestIdHeader = "X-Request-Id"
)

type FlattenResponse struct {
	Flattened string `json:"flattened"`
}

type VersionsResponse struct {
	Releases []*solc.Release `json:"releases"`
}

type CategorizeRequest struct {
	Abi json.RawMessage `json:"abi"`
}

type CategorizeResponse struct {
	*contractabi.Categorized
	Selectors map[string]string `json:"selectors"`
	Topics    map[string]string `json:"topics"`
}

type ArgParam struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type ParseArgsRequest struct {
	Params []ArgParam `json:"params"`
}

type ParsedArg struct {
	Value  any    `json:"value"`
	Absent bool   `json:"absent,omitempty"`
	Error  string `json:"error,omitempty"`
}

type ParseArgsResponse struct {
	Args []ParsedArg `json:"args"`
	// Compact holds the values to pass to a call: absent arguments dropped.
	Compact []any `json:"compact"`
}

type FormatArgRequest struct {
	Value any    `json:"value"`
	Type  string `json:"type,omitempty"`
}

type FormatArgResponse struct {
	Value   any    `json:"value"`
	Literal string `json:"literal,omitempty"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

type api struct {
	service *Service
	logger  logging.Logger
}

// NewHandler returns the HTTP API of the service wrapped into the CORS, virtual host and compression layers.
func NewHandler(service *Service, cfg *Config, logger logging.Logger) http.Handler {
	a := &api{service: service, logger: logger}

	mux := chi.NewRouter()
	mux.Use(requestId)
	mux.Use(middleware.Recoverer)
	mux.Use(requestLogger(logger))
	mux.Use(enforceJson)

	mux.Route("/v1", func(r chi.Router) {
		r.Post("/compile", HandleEndpoint(a.compile, logger))
		r.Post("/flatten", HandleEndpoint(a.flatten, logger))
		r.Get("/compilers", HandleEndpoint(a.compilers, logger))
		r.Post("/abi/categorize", HandleEndpoint(a.categorize, logger))
		r.Post("/args/parse", HandleEndpoint(a.parseArgs, logger))
		r.Post("/args/format", HandleEndpoint(a.formatArg, logger))
		r.Get("/version", HandleEndpoint(a.version, logger))
	})

	handler := newCorsHandler(mux, cfg.CorsAllowedOrigins)
	handler = newVHostHandler(cfg.VirtualHosts, handler)
	return handlers.CompressHandlerLevel(handler, gzip.DefaultCompression)
}

// Run serves the API until ctx is done.
func Run(ctx context.Context, cfg *Config, service *Service, logger logging.Logger) error {
	listener, err := net.Listen("tcp", cfg.Endpoint)
	if err != nil {
		return err
	}
	server := &http.Server{
		Handler:           NewHandler(service, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()
	logger.Info().Str(logging.FieldUrl, "http://"+listener.Addr().String()).Msg("Compilation service started")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		logger.Info().Msg("Stopping compilation service...")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *api) compile(r *http.Request) (*Result, error) {
	req, err := decodeBody[Request](r)
	if err != nil {
		return nil, err
	}
	return a.service.Compile(r.Context(), req), nil
}

func (a *api) flatten(r *http.Request) (*FlattenResponse, error) {
	req, err := decodeBody[Request](r)
	if err != nil {
		return nil, err
	}
	flattened, err := a.service.Flatten(r.Context(), req)
	if err != nil {
		return nil, err
	}
	return &FlattenResponse{Flattened: flattened}, nil
}

func (a *api) compilers(r *http.Request) (*VersionsResponse, error) {
	releases, err := a.service.Versions(r.Context())
	if err != nil {
		return nil, err
	}
	return &VersionsResponse{Releases: releases}, nil
}

func (a *api) categorize(r *http.Request) (*CategorizeResponse, error) {
	req, err := decodeBody[CategorizeRequest](r)
	if err != nil {
		return nil, err
	}
	if len(req.Abi) == 0 {
		return nil, NewEndpointError(http.StatusBadRequest, "abi is required")
	}
	entries, err := contractabi.ParseJSON(req.Abi)
	if err != nil {
		return nil, NewEndpointError(http.StatusBadRequest, err.Error())
	}
	c := contractabi.Categorize(entries)
	return &CategorizeResponse{Categorized: c, Selectors: c.Selectors(), Topics: c.Topics()}, nil
}

func (a *api) parseArgs(r *http.Request) (*ParseArgsResponse, error) {
	req, err := decodeBody[ParseArgsRequest](r)
	if err != nil {
		return nil, err
	}
	res := &ParseArgsResponse{Args: make([]ParsedArg, len(req.Params))}
	values := make([]any, len(req.Params))
	for i, p := range req.Params {
		v, err := callargs.Parse(p.Value, p.Type)
		if err != nil {
			res.Args[i] = ParsedArg{Error: err.Error()}
			values[i] = callargs.Absent
			continue
		}
		values[i] = v
		if callargs.IsAbsent(v) {
			res.Args[i] = ParsedArg{Absent: true}
			continue
		}
		res.Args[i] = ParsedArg{Value: callargs.Format(v)}
	}
	res.Compact = callargs.Compact(values)
	for i := range res.Compact {
		res.Compact[i] = callargs.Format(res.Compact[i])
	}
	return res, nil
}

func (a *api) formatArg(r *http.Request) (*FormatArgResponse, error) {
	req, err := decodeBody[FormatArgRequest](r)
	if err != nil {
		return nil, err
	}
	res := &FormatArgResponse{Value: callargs.Format(req.Value)}
	if req.Type != "" {
		literal, err := callargs.FormatLiteral(res.Value, req.Type)
		if err != nil {
			return nil, err
		}
		res.Literal = literal
	}
	return res, nil
}

func (a *api) version(*http.Request) (*VersionResponse, error) {
	return &VersionResponse{Version: version.BuildVersionString("solforge")}, nil
}

func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str(logging.FieldReqId, w.Header().Get(requestIdHeader)).
				Str(logging.FieldMethod, r.Method).
				Str(logging.FieldUrl, r.URL.Path).
				Int(logging.FieldStatus, ww.Status()).
				Dur(logging.FieldDuration, time.Since(start)).
				Msg("Request served")
		})
	}
}

// requestId keeps the caller's request id or assigns a new one, and echoes it in the response.
func requestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIdHeader, id)
		next.ServeHTTP(w, r)
	})
}

func enforceJson(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-Type")
		if r.Method == http.MethodPost && contentType != "" &&
			!strings.HasPrefix(strings.ToLower(contentType), "application/json") {
			http.Error(w, "Content-Type header must be application/json", http.StatusUnsupportedMediaType)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newCorsHandler(srv http.Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		return srv
	}
	return handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowedMethods([]string{http.MethodPost, http.MethodGet}),
		handlers.MaxAge(600),
	)(srv)
}

// virtualHostHandler rejects requests whose Host header names a host outside the configured list.
// IP addresses are always served.
type virtualHostHandler struct {
	vhosts map[string]struct{}
	next   http.Handler
}

func newVHostHandler(vhosts []string, next http.Handler) http.Handler {
	if len(vhosts) == 0 {
		return next
	}
	vhostMap := make(map[string]struct{}, len(vhosts))
	for _, allowedHost := range vhosts {
		vhostMap[strings.ToLower(allowedHost)] = struct{}{}
	}
	return &virtualHostHandler{vhosts: vhostMap, next: next}
}

func (h *virtualHostHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Host == "" {
		h.next.ServeHTTP(w, r)
		return
	}
	host, _, err := net.SplitHostPort(r.Host)
	if err != nil {
		host = r.Host
	}
	if net.ParseIP(host) != nil {
		h.next.ServeHTTP(w, r)
		return
	}
	if _, ok := h.vhosts["*"]; ok {
		h.next.ServeHTTP(w, r)
		return
	}
	if _, ok := h.vhosts[strings.ToLower(host)]; ok {
		h.next.ServeHTTP(w, r)
		return
	}
	http.Error(w, "invalid host specified", http.StatusForbidden)
}
