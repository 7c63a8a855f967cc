package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"mcpapp/pkg/logging"
)

const (
	TransportStreamableHTTP = "streamable-http"
	TransportSSE            = "sse"
	TransportStdio          = "stdio"
)

// ErrPortInUse is returned by Start when the listen address is taken.
var ErrPortInUse = errors.New("port already in use")

type runningTransport struct {
	name       string
	addr       string
	cancel     context.CancelFunc
	httpServer *http.Server
	sseServer  *server.SSEServer
	done       chan struct{}
	err        error
}

// Start begins serving on the configured transport and returns once the
// transport accepts connections. Serving continues in the background until Stop.
func (s *Server) Start(ctx context.Context) error {
	s.transportMu.Lock()
	defer s.transportMu.Unlock()

	if s.running != nil {
		return fmt.Errorf("server already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	r := &runningTransport{
		name:   s.opts.Transport,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	switch s.opts.Transport {
	case TransportStdio:
		stdin, stdout := s.opts.Stdin, s.opts.Stdout
		if stdin == nil {
			stdin = os.Stdin
		}
		if stdout == nil {
			stdout = os.Stdout
		}
		logging.Info("MCPServer", "Starting MCP server with stdio transport")
		stdioServer := server.NewStdioServer(s.mcp)
		go func() {
			defer close(r.done)
			err := stdioServer.Listen(ctx, stdin, stdout)
			if err != nil && !errors.Is(err, context.Canceled) {
				r.err = err
			}
		}()

	case TransportSSE, TransportStreamableHTTP, "":
		addr := net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			cancel()
			if errors.Is(err, syscall.EADDRINUSE) {
				return fmt.Errorf("%w: %s", ErrPortInUse, addr)
			}
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}
		r.addr = ln.Addr().String()

		var handler http.Handler
		if s.opts.Transport == TransportSSE {
			r.sseServer = server.NewSSEServer(
				s.mcp,
				server.WithBaseURL("http://"+r.addr),
				server.WithSSEEndpoint("/sse"),
				server.WithMessageEndpoint("/message"),
				server.WithKeepAlive(true),
				server.WithKeepAliveInterval(30*time.Second),
			)
			handler = r.sseServer
			logging.Info("MCPServer", "Starting MCP server with SSE transport on %s", r.addr)
		} else {
			r.name = TransportStreamableHTTP
			mux := http.NewServeMux()
			mux.Handle("/mcp", server.NewStreamableHTTPServer(s.mcp))
			handler = mux
			logging.Info("MCPServer", "Starting MCP server with streamable-http transport on %s", r.addr)
		}

		r.httpServer = &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			defer close(r.done)
			if err := r.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				r.err = err
			}
		}()

	default:
		cancel()
		return fmt.Errorf("unknown transport %q", s.opts.Transport)
	}

	s.running = r
	return nil
}

// Addr is the address the HTTP transports listen on, empty otherwise.
func (s *Server) Addr() string {
	s.transportMu.Lock()
	defer s.transportMu.Unlock()
	if s.running == nil {
		return ""
	}
	return s.running.addr
}

// Done is closed when the transport stops serving.
func (s *Server) Done() <-chan struct{} {
	s.transportMu.Lock()
	defer s.transportMu.Unlock()
	if s.running == nil {
		return nil
	}
	return s.running.done
}

// Stop shuts the transport down and waits for it to finish.
func (s *Server) Stop(ctx context.Context) error {
	s.transportMu.Lock()
	r := s.running
	s.running = nil
	s.transportMu.Unlock()

	if r == nil {
		return fmt.Errorf("server not started")
	}

	logging.Info("MCPServer", "Stopping MCP server (%s)", r.name)
	r.cancel()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if r.sseServer != nil {
		if err := r.sseServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("MCPServer", err, "Error shutting down SSE server")
		}
	}
	if r.httpServer != nil {
		if err := r.httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("MCPServer", err, "Error shutting down HTTP server")
		}
	}

	select {
	case <-r.done:
		return r.err
	case <-shutdownCtx.Done():
		return shutdownCtx.Err()
	}
}

// Serve runs the transport until ctx is cancelled or the transport fails.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}

	done := s.Done()
	select {
	case <-ctx.Done():
		return s.Stop(context.Background())
	case <-done:
		// The transport ended on its own (stdin closed or listener error).
		return s.Stop(context.Background())
	}
}
