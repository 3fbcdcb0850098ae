// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/propensive/digression/internal/demangle"
	"github.com/propensive/digression/internal/logger"
	"github.com/propensive/digression/internal/name"
	"github.com/propensive/digression/internal/telemetry"
	"github.com/propensive/digression/internal/trace"
)

// Server represents the JSON-RPC daemon server
type Server struct {
	authToken string
}

// Config holds daemon configuration
type Config struct {
	Port      string
	AuthToken string
}

// RewriteRequest asks for one identifier to be rewritten.
type RewriteRequest struct {
	Name   string `json:"name"`
	Method bool   `json:"method"`
}

// RewriteResponse carries the rewritten display text.
type RewriteResponse struct {
	Display string `json:"display"`
}

// ValidateRequest asks for a dotted name to be validated.
type ValidateRequest struct {
	Name string `json:"name"`
}

// ValidateResponse reports the validation outcome. Reason and Kind are
// only set when Valid is false.
type ValidateResponse struct {
	Valid       bool   `json:"valid"`
	ClassName   string `json:"class_name,omitempty"`
	PackageName string `json:"package_name,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// AssembleRequest carries a printed JVM stack trace.
type AssembleRequest struct {
	Text string `json:"text"`
}

// FrameJSON is the wire form of one assembled frame.
type FrameJSON struct {
	ClassName  string `json:"class_name"`
	MethodName string `json:"method_name"`
	File       string `json:"file"`
	Line       *int   `json:"line,omitempty"`
	Native     bool   `json:"native,omitempty"`
}

// TraceJSON is the wire form of an assembled trace tree.
type TraceJSON struct {
	Component string      `json:"component"`
	ClassName string      `json:"class_name"`
	Message   string      `json:"message"`
	Frames    []FrameJSON `json:"frames"`
	Cause     *TraceJSON  `json:"cause,omitempty"`
}

// AssembleResponse carries the assembled trace tree.
type AssembleResponse struct {
	Trace *TraceJSON `json:"trace"`
}

// LegendRequest has no parameters.
type LegendRequest struct{}

// LegendResponse maps each glyph to its plain-language meaning.
type LegendResponse struct {
	Glyphs map[string]string `json:"glyphs"`
}

// NewServer creates a new JSON-RPC server
func NewServer(config Config) *Server {
	return &Server{authToken: config.AuthToken}
}

// authenticate validates the authorization token
func (s *Server) authenticate(r *http.Request) bool {
	if s.authToken == "" {
		return true // No auth required
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		return false
	}

	// Support "Bearer <token>" format
	if strings.HasPrefix(auth, "Bearer ") {
		token := strings.TrimPrefix(auth, "Bearer ")
		return token == s.authToken
	}

	return auth == s.authToken
}

// Rewrite handles rewrite RPC calls
func (s *Server) Rewrite(r *http.Request, req *RewriteRequest, resp *RewriteResponse) error {
	if !s.authenticate(r) {
		return fmt.Errorf("unauthorized")
	}

	tracer := telemetry.GetTracer()
	_, span := tracer.Start(r.Context(), "rpc_rewrite")
	span.SetAttributes(attribute.String("identifier.raw", req.Name))
	defer span.End()

	logger.Logger.Info("Processing rewrite RPC", "name", req.Name, "method", req.Method)

	resp.Display = demangle.Rewrite(req.Name, req.Method)
	return nil
}

// Validate handles validate RPC calls
func (s *Server) Validate(r *http.Request, req *ValidateRequest, resp *ValidateResponse) error {
	if !s.authenticate(r) {
		return fmt.Errorf("unauthorized")
	}

	tracer := telemetry.GetTracer()
	_, span := tracer.Start(r.Context(), "rpc_validate")
	span.SetAttributes(attribute.String("name.raw", req.Name))
	defer span.End()

	validated, err := name.Validate(req.Name)
	if err != nil {
		nameErr, ok := err.(*name.Error)
		if !ok {
			return err
		}
		resp.Kind = reasonKind(nameErr.Reason)
		resp.Reason = nameErr.Reason.String()
		return nil
	}

	resp.Valid = true
	resp.ClassName = validated.ClassName()
	resp.PackageName = validated.PackageName()
	return nil
}

// Assemble handles assemble RPC calls
func (s *Server) Assemble(r *http.Request, req *AssembleRequest, resp *AssembleResponse) error {
	if !s.authenticate(r) {
		return fmt.Errorf("unauthorized")
	}

	tracer := telemetry.GetTracer()
	_, span := tracer.Start(r.Context(), "rpc_assemble")
	span.SetAttributes(attribute.Int("trace.bytes", len(req.Text)))
	defer span.End()

	logger.Logger.Info("Processing assemble RPC", "bytes", len(req.Text))

	parsed, err := trace.Parse(req.Text)
	if err != nil {
		span.RecordError(err)
		return err
	}

	resp.Trace = toTraceJSON(trace.Assemble(parsed))
	return nil
}

// Legend handles legend RPC calls
func (s *Server) Legend(r *http.Request, req *LegendRequest, resp *LegendResponse) error {
	if !s.authenticate(r) {
		return fmt.Errorf("unauthorized")
	}

	glyphs := make(map[string]string, len(demangle.Legend))
	for glyph, meaning := range demangle.Legend {
		glyphs[glyph] = meaning
	}
	resp.Glyphs = glyphs
	return nil
}

func reasonKind(r name.Reason) string {
	switch r.(type) {
	case name.EmptyName:
		return "empty"
	case name.ReservedWord:
		return "reserved"
	case name.InvalidChar:
		return "invalid_char"
	case name.InvalidStart:
		return "invalid_start"
	default:
		return "unknown"
	}
}

func toTraceJSON(t *trace.StackTrace) *TraceJSON {
	if t == nil {
		return nil
	}
	frames := make([]FrameJSON, 0, len(t.Frames))
	for _, frame := range t.Frames {
		frames = append(frames, FrameJSON{
			ClassName:  frame.Method.ClassName,
			MethodName: frame.Method.MethodName,
			File:       frame.File,
			Line:       frame.Line,
			Native:     frame.Native,
		})
	}
	return &TraceJSON{
		Component: t.Component,
		ClassName: t.ClassName,
		Message:   t.Message.String(),
		Frames:    frames,
		Cause:     toTraceJSON(t.Cause),
	}
}

// handler builds the HTTP handler serving /rpc and /health. Methods are
// exposed under the "Digression" service name, e.g. Digression.Rewrite.
func (s *Server) handler() (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json2.NewCodec(), "application/json")
	server.RegisterCodec(json2.NewCodec(), "application/json;charset=UTF-8")

	if err := server.RegisterService(s, "Digression"); err != nil {
		return nil, fmt.Errorf("failed to register service: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/rpc", server)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	return mux, nil
}

// Start starts the JSON-RPC server
func (s *Server) Start(ctx context.Context, port string) error {
	mux, err := s.handler()
	if err != nil {
		return err
	}

	logger.Logger.Info("Starting JSON-RPC server", "port", port)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()
	logger.Logger.Info("Shutting down JSON-RPC server")
	return srv.Shutdown(context.Background())
}
