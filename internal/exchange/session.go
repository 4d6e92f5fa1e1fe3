// Package exchange talks to the Exchange Online admin endpoint through an
// explicit, run-scoped session handle.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

const (
	// defaultBaseURL is the Exchange Online admin REST endpoint.
	defaultBaseURL = "https://outlook.office365.com/adminapi/beta"
	// tokenScope is the OAuth scope for the admin endpoint.
	tokenScope = "https://outlook.office365.com/.default"
	// requestTimeout bounds a single HTTP exchange with the endpoint.
	requestTimeout = 5 * time.Minute
	// resultSize asks the cmdlet for the whole tenant in one response.
	resultSize = "Unlimited"
	// maxErrorBody caps how much of an error response is read for diagnostics.
	maxErrorBody = 4 << 10
)

// ErrUnsupportedQuery reports that the tenant rejected a cmdlet, typically
// Get-RemoteMailbox on a tenant without a hybrid configuration.
var ErrUnsupportedQuery = errors.New("query not supported by this tenant")

// Credentials holds the Azure AD client-credential triple used to reach the
// admin endpoint.
type Credentials struct {
	TenantID     string // Azure AD tenant ID.
	ClientID     string // Application (client) ID.
	ClientSecret string // Client secret.
}

// Session is an authenticated handle to one tenant's admin endpoint. It is
// created by Connect, threaded explicitly through the fetch calls, and
// released with Logout on every exit path.
type Session struct {
	cred         azcore.TokenCredential
	httpClient   *http.Client
	baseURL      string
	organization string
}

// Connect authenticates against Azure AD and returns a live session. The
// initial token acquisition happens here so that bad credentials surface
// before any fetch is attempted.
func Connect(ctx context.Context, organization string, creds Credentials, baseURL string) (*Session, error) {
	cred, err := azidentity.NewClientSecretCredential(creds.TenantID, creds.ClientID, creds.ClientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("build credential: %w", err)
	}

	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	s := &Session{
		cred:         cred,
		httpClient:   &http.Client{Timeout: requestTimeout},
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		organization: organization,
	}

	if _, err := s.token(ctx); err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	return s, nil
}

// NewWithCredential builds a session around an existing token credential.
// Used by tests to point the session at a fake endpoint.
func NewWithCredential(cred azcore.TokenCredential, organization, baseURL string) *Session {
	return &Session{
		cred:         cred,
		httpClient:   &http.Client{Timeout: requestTimeout},
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		organization: organization,
	}
}

// Logout releases the session. The admin endpoint is stateless over HTTP, so
// release means dropping pooled connections; safe to call exactly once after
// a successful Connect, on any exit path.
func (s *Session) Logout() {
	s.httpClient.CloseIdleConnections()
	s.cred = nil
}

// FetchHostedMailboxes retrieves every hosted mailbox in the tenant. A
// failure here is fatal to the run: the hosted set is the primary dataset.
func (s *Session) FetchHostedMailboxes(ctx context.Context) ([]CloudMailbox, error) {
	var mailboxes []CloudMailbox
	if err := s.invoke(ctx, "Get-Mailbox", map[string]any{"ResultSize": resultSize}, &mailboxes); err != nil {
		return nil, fmt.Errorf("fetch hosted mailboxes: %w", err)
	}
	return mailboxes, nil
}

// FetchRemoteMailboxes retrieves the tenant's remote-mailbox stubs. Tenants
// without a hybrid configuration reject the cmdlet; that surfaces as
// ErrUnsupportedQuery and callers degrade to an empty result.
func (s *Session) FetchRemoteMailboxes(ctx context.Context) ([]RemoteMailbox, error) {
	var mailboxes []RemoteMailbox
	if err := s.invoke(ctx, "Get-RemoteMailbox", map[string]any{"ResultSize": resultSize}, &mailboxes); err != nil {
		return nil, fmt.Errorf("fetch remote mailboxes: %w", err)
	}
	return mailboxes, nil
}

// cmdletRequest is the wire envelope for invoking a cmdlet.
type cmdletRequest struct {
	CmdletInput cmdletInput `json:"CmdletInput"`
}

type cmdletInput struct {
	CmdletName string         `json:"CmdletName"`
	Parameters map[string]any `json:"Parameters,omitempty"`
}

// cmdletResponse is the wire envelope around cmdlet output rows.
type cmdletResponse struct {
	Value json.RawMessage `json:"value"`
}

// invoke posts one cmdlet invocation and decodes its result rows into out.
func (s *Session) invoke(ctx context.Context, cmdlet string, params map[string]any, out any) error {
	if s.cred == nil {
		return fmt.Errorf("session is closed")
	}

	token, err := s.token(ctx)
	if err != nil {
		return fmt.Errorf("acquire token: %w", err)
	}

	body, err := json.Marshal(cmdletRequest{CmdletInput: cmdletInput{CmdletName: cmdlet, Parameters: params}})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/InvokeCommand", s.baseURL, s.organization)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", cmdlet, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if isUnsupported(resp.StatusCode, string(detail)) {
			return fmt.Errorf("%s: %w", cmdlet, ErrUnsupportedQuery)
		}
		return fmt.Errorf("%s: endpoint returned %s: %s", cmdlet, resp.Status, strings.TrimSpace(string(detail)))
	}

	var envelope cmdletResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%s: decode response: %w", cmdlet, err)
	}
	if len(envelope.Value) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Value, out); err != nil {
		return fmt.Errorf("%s: decode rows: %w", cmdlet, err)
	}

	return nil
}

// token acquires a bearer token for the admin scope. azidentity caches and
// refreshes internally, so asking per call is cheap.
func (s *Session) token(ctx context.Context) (string, error) {
	tk, err := s.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{tokenScope}})
	if err != nil {
		return "", err
	}
	return tk.Token, nil
}

// isUnsupported classifies endpoint rejections that mean "this tenant cannot
// answer the query" rather than a transport or auth problem.
func isUnsupported(status int, body string) bool {
	if status == http.StatusNotFound {
		return true
	}
	if status != http.StatusBadRequest {
		return false
	}
	lower := strings.ToLower(body)
	return strings.Contains(lower, "isn't recognized") ||
		strings.Contains(lower, "is not recognized") ||
		strings.Contains(lower, "not supported")
}
