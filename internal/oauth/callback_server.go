package oauth

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"
)

// DefaultCallbackPort is the default port for the local OAuth callback server.
const DefaultCallbackPort = 9876

// CallbackTimeout is how long to wait for the OAuth callback.
const CallbackTimeout = 10 * time.Minute

//go:embed templates/callback_success.html
var callbackSuccessHTML string

//go:embed templates/callback_error.html
var callbackErrorHTML string

// CallbackResult represents the outcome of the single OAuth callback.
// Exactly one of Code or Err is set.
type CallbackResult struct {
	// Code is the authorization code from the OAuth provider.
	Code string

	// Err classifies the failure: *DeniedError when the provider redirected
	// back with an error, *StateMismatchError when the anti-CSRF check failed.
	Err error
}

// CallbackServer is a temporary local HTTP server for receiving the OAuth
// callback. It starts, waits for a single callback, then shuts down.
type CallbackServer struct {
	port          int
	expectedState string
	server        *http.Server
	listener      net.Listener
	resultCh      chan *CallbackResult
	errorCh       chan error
	once          sync.Once
	serverURL     string
}

// NewCallbackServer creates a new callback server on the specified port.
// If port is 0, the default port is used. The expected state is validated
// against the callback's state parameter before any code is accepted.
func NewCallbackServer(port int, expectedState string) *CallbackServer {
	if port == 0 {
		port = DefaultCallbackPort
	}

	return &CallbackServer{
		port:          port,
		expectedState: expectedState,
		resultCh:      make(chan *CallbackResult, 1),
		errorCh:       make(chan error, 1),
	}
}

// Start starts the callback server and begins listening for the OAuth callback.
// The server will automatically stop when the context is cancelled.
// Returns the redirect URI to use in the OAuth authorization request.
func (s *CallbackServer) Start(ctx context.Context) (string, error) {
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to start callback server on %s: %w", addr, err)
	}

	s.listener = listener
	s.port = listener.Addr().(*net.TCPAddr).Port
	s.serverURL = fmt.Sprintf("http://localhost:%d", s.port)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", s.handleCallback)

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start serving in a goroutine
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case s.errorCh <- err:
			default:
			}
		}
	}()

	// Monitor context for cancellation and stop server when cancelled
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return s.serverURL + "/callback", nil
}

// WaitForCallback waits for the OAuth callback or timeout.
// Returns the callback result, or *TimeoutError when the context deadline
// passes before any callback arrives.
func (s *CallbackServer) WaitForCallback(ctx context.Context) (*CallbackResult, error) {
	select {
	case result := <-s.resultCh:
		return result, nil
	case err := <-s.errorCh:
		return nil, err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{Wait: CallbackTimeout}
		}
		return nil, ctx.Err()
	}
}

// handleCallback handles the OAuth callback request.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	// Only handle once - use sync.Once to ensure idempotency
	var handled bool
	s.once.Do(func() {
		handled = true
		s.processCallback(w, r)
	})

	if !handled {
		http.Error(w, "Callback already processed", http.StatusBadRequest)
	}
}

// processCallback classifies the single callback request and renders the
// result page for the browser. This is called exactly once via sync.Once.
func (s *CallbackServer) processCallback(w http.ResponseWriter, r *http.Request) {
	// Set security headers
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'unsafe-inline'")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "no-store")

	query := r.URL.Query()
	result := &CallbackResult{}

	switch {
	case query.Get("error") != "":
		result.Err = &DeniedError{
			Code:        query.Get("error"),
			Description: query.Get("error_description"),
		}
	case query.Get("state") != s.expectedState:
		// The state check runs before code extraction: a mismatched callback
		// never yields a code, even when one is present.
		result.Err = &StateMismatchError{}
	case query.Get("code") == "":
		result.Err = &DeniedError{
			Code:        "missing_code",
			Description: "callback did not include an authorization code",
		}
	default:
		result.Code = query.Get("code")
	}

	s.renderResultPage(w, result)

	// Send result to channel
	select {
	case s.resultCh <- result:
	default:
	}

	// Schedule server shutdown after giving time for response to be sent
	go func() {
		time.Sleep(1 * time.Second)
		s.Stop()
	}()
}

// renderResultPage writes the success or failure HTML page to the browser.
func (s *CallbackServer) renderResultPage(w http.ResponseWriter, result *CallbackResult) {
	var tmpl *template.Template
	data := map[string]string{}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if result.Err != nil {
		tmpl = template.Must(template.New("error").Parse(callbackErrorHTML))
		var denied *DeniedError
		if errors.As(result.Err, &denied) {
			data["Error"] = denied.Code
			data["Description"] = denied.Description
		} else {
			data["Error"] = "state_mismatch"
			data["Description"] = result.Err.Error()
		}
		w.WriteHeader(http.StatusBadRequest)
	} else {
		tmpl = template.Must(template.New("success").Parse(callbackSuccessHTML))
	}

	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Stop gracefully shuts down the callback server.
func (s *CallbackServer) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
}

// GetRedirectURI returns the redirect URI for OAuth configuration.
func (s *CallbackServer) GetRedirectURI() string {
	return s.serverURL + "/callback"
}

// GetPort returns the port the server is listening on.
func (s *CallbackServer) GetPort() int {
	return s.port
}
