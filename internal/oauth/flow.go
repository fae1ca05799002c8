package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"linkedinctl/internal/settings"
	"linkedinctl/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// LinkedIn member-auth endpoints and fixed flow parameters.
const (
	// AuthorizationEndpoint is LinkedIn's OAuth authorization URL.
	AuthorizationEndpoint = "https://www.linkedin.com/oauth/v2/authorization"

	// TokenEndpoint is LinkedIn's OAuth token exchange URL.
	TokenEndpoint = "https://www.linkedin.com/oauth/v2/accessToken"

	// UserinfoEndpoint returns the authenticated member's OIDC profile.
	UserinfoEndpoint = "https://api.linkedin.com/v2/userinfo"

	// Scopes is the fixed scope set requested during authorization.
	Scopes = "openid profile w_member_social"

	// FallbackTokenLifetime is applied when the token response omits
	// expires_in. LinkedIn member tokens live 60 days.
	FallbackTokenLifetime = 60 * 24 * time.Hour

	// personURNPrefix templates the userinfo subject into an actor URN.
	personURNPrefix = "urn:li:person:"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// FlowConfig configures a single OAuth flow run.
type FlowConfig struct {
	// ClientID is the LinkedIn application client id.
	ClientID string

	// ClientSecret is the LinkedIn application client secret.
	ClientSecret string

	// Port is the local callback port. Defaults to DefaultCallbackPort.
	Port int

	// Out receives the operator-facing status lines. Defaults to os.Stdout.
	Out io.Writer

	// HTTPClient is an optional custom HTTP client (used by tests).
	HTTPClient *http.Client

	// AuthURL, TokenURL and UserinfoURL override the LinkedIn endpoints
	// (used by tests). Empty means the production endpoints.
	AuthURL     string
	TokenURL    string
	UserinfoURL string

	// SettingsPath overrides where the credential record is written.
	// Empty means the default settings path.
	SettingsPath string

	// OpenBrowser launches the authorization URL in a browser. Defaults to
	// OpenBrowser; a failure to launch is never fatal.
	OpenBrowser func(url string) error

	// Quiet suppresses the waiting spinner.
	Quiet bool
}

// Flow runs the browser-based authorization code flow once.
type Flow struct {
	cfg FlowConfig
	id  string
}

// NewFlow creates a flow with defaults applied.
func NewFlow(cfg FlowConfig) *Flow {
	if cfg.Port == 0 {
		cfg.Port = DefaultCallbackPort
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = AuthorizationEndpoint
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = TokenEndpoint
	}
	if cfg.UserinfoURL == "" {
		cfg.UserinfoURL = UserinfoEndpoint
	}
	if cfg.OpenBrowser == nil {
		cfg.OpenBrowser = OpenBrowser
	}

	return &Flow{cfg: cfg, id: uuid.NewString()}
}

// Run executes the full flow and returns the persisted credential record.
//
// The sequence is linear and terminal on first failure: start the callback
// listener, emit the authorization URL, wait for exactly one callback,
// exchange the code, fetch the identity, persist. Callback failures surface
// as *DeniedError, *StateMismatchError or *TimeoutError.
func (f *Flow) Run(ctx context.Context) (settings.Record, error) {
	logging.Debug("OAuthFlow", "starting flow %s on port %d", f.id, f.cfg.Port)

	state, err := GenerateState()
	if err != nil {
		return settings.Record{}, err
	}

	callbackServer := NewCallbackServer(f.cfg.Port, state)
	redirectURI, err := callbackServer.Start(ctx)
	if err != nil {
		return settings.Record{}, err
	}
	defer callbackServer.Stop()

	conf := &oauth2.Config{
		ClientID:     f.cfg.ClientID,
		ClientSecret: f.cfg.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       strings.Fields(Scopes),
		Endpoint: oauth2.Endpoint{
			AuthURL:  f.cfg.AuthURL,
			TokenURL: f.cfg.TokenURL,
			// LinkedIn expects client credentials in the POST body.
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	authURL := conf.AuthCodeURL(state)
	fmt.Fprintf(f.cfg.Out, "OAUTH_URL=%s\n", authURL)
	fmt.Fprintf(f.cfg.Out, "REDIRECT_URI=%s\n", redirectURI)
	fmt.Fprintf(f.cfg.Out, "STATUS=waiting_for_callback\n")

	if err := f.cfg.OpenBrowser(authURL); err != nil {
		// The operator can still open the printed URL manually.
		logging.Warn("OAuthFlow", "could not open browser: %v", err)
	}

	code, err := f.awaitCallback(ctx, callbackServer)
	if err != nil {
		return settings.Record{}, err
	}

	fmt.Fprintf(f.cfg.Out, "STATUS=exchanging_token\n")
	token, err := f.exchangeCode(ctx, conf, code)
	if err != nil {
		return settings.Record{}, err
	}

	fmt.Fprintf(f.cfg.Out, "STATUS=fetching_profile\n")
	sub, name, err := f.fetchIdentity(ctx, token.AccessToken)
	if err != nil {
		return settings.Record{}, err
	}

	rec := settings.Record{
		ClientID:       f.cfg.ClientID,
		ClientSecret:   f.cfg.ClientSecret,
		AccessToken:    token.AccessToken,
		PersonURN:      personURNPrefix + sub,
		DisplayName:    name,
		TokenExpiresAt: token.Expiry.Unix(),
	}

	settingsPath := f.cfg.SettingsPath
	if settingsPath == "" {
		settingsPath, err = settings.DefaultPath()
		if err != nil {
			return settings.Record{}, err
		}
	}
	if err := settings.SaveTo(settingsPath, rec); err != nil {
		return settings.Record{}, err
	}

	logging.Debug("OAuthFlow", "flow %s complete for %s", f.id, rec.PersonURN)

	fmt.Fprintf(f.cfg.Out, "SUCCESS=Authenticated as %s (%s)\n", rec.DisplayName, rec.PersonURN)
	fmt.Fprintf(f.cfg.Out, "TOKEN_EXPIRES_IN=%d\n", int64(time.Until(token.Expiry).Seconds()))
	fmt.Fprintf(f.cfg.Out, "SETTINGS_PATH=%s\n", settingsPath)

	return rec, nil
}

// awaitCallback blocks until the single callback arrives or the bounded wait
// elapses, and unwraps the classified result.
func (f *Flow) awaitCallback(ctx context.Context, callbackServer *CallbackServer) (string, error) {
	if !f.cfg.Quiet {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " Waiting for browser authorization..."
		s.Start()
		defer s.Stop()
	}

	waitCtx, cancel := context.WithTimeout(ctx, CallbackTimeout)
	defer cancel()

	result, err := callbackServer.WaitForCallback(waitCtx)
	if err != nil {
		return "", err
	}
	if result.Err != nil {
		logging.Warn("OAuthFlow", "flow %s callback rejected: %v", f.id, result.Err)
		return "", result.Err
	}

	return result.Code, nil
}

// exchangeCode performs the server-to-server code exchange and applies the
// fallback lifetime when the provider omits expires_in.
func (f *Flow) exchangeCode(ctx context.Context, conf *oauth2.Config, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.cfg.HTTPClient)

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token exchange returned an empty access token")
	}
	if token.Expiry.IsZero() {
		token.Expiry = time.Now().Add(FallbackTokenLifetime)
	}

	return token, nil
}

// fetchIdentity resolves the authenticated member's stable subject id and
// display name from the userinfo endpoint.
func (f *Flow) fetchIdentity(ctx context.Context, accessToken string) (sub, name string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.UserinfoURL, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := f.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("userinfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var info struct {
		Sub  string `json:"sub"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return "", "", fmt.Errorf("parsing userinfo response: %w", err)
	}
	if info.Sub == "" {
		return "", "", fmt.Errorf("userinfo response did not include a subject identifier")
	}
	if info.Name == "" {
		info.Name = "Unknown"
	}

	return info.Sub, info.Name, nil
}
