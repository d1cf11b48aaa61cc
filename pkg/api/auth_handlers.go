package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mockaps/mockaps/pkg/httputil"
)

const (
	defaultClientID     = "default-client"
	tokenLifetimeSecond = 3600
)

// tokenResponse is the wire shape of the token endpoint. The refresh token
// stays on the store record only.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// decodeBody decodes an optional JSON request body. An empty body leaves
// the destination zero-valued; malformed JSON is an error.
func decodeBody(r *http.Request, dest interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// issueToken handles POST /authentication/v2/token.
func (s *Server) issueToken(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		httputil.WriteSuccess(w, tokenResponse{
			AccessToken: "mock-token",
			TokenType:   "Bearer",
			ExpiresIn:   tokenLifetimeSecond,
		})
		return
	}

	var req tokenRequest
	if err := decodeBody(r, &req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	if req.ClientID == "" {
		req.ClientID = defaultClientID
	}

	token := s.state.Auth.GenerateToken(req.ClientID, tokenLifetimeSecond, req.Scope)
	s.log.WithField("client_id", req.ClientID).Debug("Issued mock token")

	httputil.WriteSuccess(w, tokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
	})
}
