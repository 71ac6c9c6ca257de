// Package oauth provides the loopback OAuth callback server and browser utilities.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
)

// Ensure CallbackServer implements the interface.
var _ driven.CallbackReceiver = (*CallbackServer)(nil)

// CallbackPath is the path Google redirects to after consent.
const CallbackPath = "/callback"

// CallbackServer receives the OAuth redirect on 127.0.0.1.
// It serves a single login; create a new server for each attempt.
type CallbackServer struct {
	mu            sync.Mutex
	port          int
	expectedState string
	codeChan      chan string
	errChan       chan error
	server        *http.Server
	listener      net.Listener
}

// NewCallbackServer creates a callback server for the given port.
// Port 0 picks a free port when the server starts.
func NewCallbackServer(port int) *CallbackServer {
	return &CallbackServer{
		port:     port,
		codeChan: make(chan string, 1),
		errChan:  make(chan error, 1),
	}
}

// Start begins listening. state is the value the redirect must echo.
func (s *CallbackServer) Start(state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return errors.New("callback server already started")
	}
	s.expectedState = state

	mux := http.NewServeMux()
	mux.HandleFunc(CallbackPath, s.handleCallback)

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	// Store the actual port (important when port was 0)
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.fail(err)
		}
	}()

	return nil
}

// fail reports the first error to Wait and drops the rest.
func (s *CallbackServer) fail(err error) {
	select {
	case s.errChan <- err:
	default:
	}
}

// handleCallback processes the OAuth redirect.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if errParam := q.Get("error"); errParam != "" {
		s.fail(fmt.Errorf("oauth error: %s %s", errParam, q.Get("error_description")))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprint(w, resultHTML("Authorization failed", errParam))
		return
	}

	s.mu.Lock()
	expected := s.expectedState
	s.mu.Unlock()

	if expected == "" || q.Get("state") != expected {
		s.fail(errors.New("state mismatch"))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprint(w, resultHTML("Authorization failed", "The request state did not match. Start the login again."))
		return
	}

	code := q.Get("code")
	if code == "" {
		s.fail(errors.New("no authorization code received"))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprint(w, resultHTML("Authorization failed", "No authorization code was received."))
		return
	}

	select {
	case s.codeChan <- code:
	default:
	}

	_, _ = fmt.Fprint(w, resultHTML("Signed in to sheetpost", "You can close this window and return to the terminal."))
}

// Wait blocks until the authorization code arrives, the redirect reports an
// error, or ctx is done.
func (s *CallbackServer) Wait(ctx context.Context) (string, error) {
	select {
	case code := <-s.codeChan:
		return code, nil
	case err := <-s.errChan:
		return "", err
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for authorization callback: %w", ctx.Err())
	}
}

// Stop shuts down the callback server. Safe to call more than once.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// Port returns the port the server is listening on.
func (s *CallbackServer) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// RedirectURI returns the redirect URI for this callback server.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://localhost:%d%s", s.Port(), CallbackPath)
}

func resultHTML(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>sheetpost</title>
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; display: flex;
               justify-content: center; align-items: center; height: 100vh; margin: 0; background: #F6F7F9; }
        .card { text-align: center; background: #FFFFFF; padding: 40px 56px; border-radius: 12px;
                border: 1px solid #D5D8DD; }
        h1 { color: #1F2A37; margin: 0 0 8px 0; font-size: 22px; }
        p { color: #6B7280; margin: 0; font-size: 15px; }
    </style>
</head>
<body>
    <div class="card">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(message))
}

// OpenBrowser opens the default browser to the given URL.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// FindAvailablePort finds an available port in the given range.
func FindAvailablePort(startPort, endPort int) (int, error) {
	for port := startPort; port <= endPort; port++ {
		addr := fmt.Sprintf("127.0.0.1:%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", startPort, endPort)
}
