// Package auth implements the session service client: password
// authentication and the server-join call performed during the
// encryption handshake. The endpoints are package variables so tests
// can point them at a local double.
package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mcwire/mcwire/crypt"
)

var (
	// AuthenticateURL issues session tokens from credentials.
	AuthenticateURL = "https://authserver.mojang.com/authenticate"
	// JoinURL binds a session to a specific server handshake.
	JoinURL = "https://sessionserver.mojang.com/session/minecraft/join"

	// HTTPClient performs both calls.
	HTTPClient = &http.Client{Timeout: 15 * time.Second}
)

// Profile is one playable profile of an account. ID is the undashed
// hex form the service uses.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UUID parses the profile id.
func (p Profile) UUID() (uuid.UUID, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("parse profile id %q: %w", p.ID, err)
	}
	return id, nil
}

// UserProperty is an account preference entry.
type UserProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// UserInfo is the account block of an authentication response.
type UserInfo struct {
	ID         string         `json:"id"`
	Username   string         `json:"username"`
	Properties []UserProperty `json:"properties"`
}

// Session is an authenticated account. It satisfies the facade's
// UserSession interface.
type Session struct {
	AccessToken       string    `json:"accessToken"`
	ClientToken       string    `json:"clientToken"`
	SelectedProfile   Profile   `json:"selectedProfile"`
	AvailableProfiles []Profile `json:"availableProfiles"`
	User              *UserInfo `json:"user,omitempty"`
}

type agent struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

type authenticateRequest struct {
	Agent       agent  `json:"agent"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	ClientToken string `json:"clientToken"`
}

type joinRequest struct {
	AccessToken     string `json:"accessToken"`
	SelectedProfile string `json:"selectedProfile"`
	ServerID        string `json:"serverId"`
}

// Authenticate exchanges credentials for a session.
func Authenticate(username, password string) (*Session, error) {
	body, err := json.Marshal(authenticateRequest{
		Agent:       agent{Name: "Minecraft", Version: 1},
		Username:    username,
		Password:    password,
		ClientToken: uuid.NewString(),
	})
	if err != nil {
		return nil, fmt.Errorf("serialize authenticate request: %w", err)
	}

	resp, err := HTTPClient.Post(AuthenticateURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("authenticate: status %d: %s", resp.StatusCode, msg)
	}

	var s Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("parse authenticate response: %w", err)
	}
	return &s, nil
}

// ProfileName returns the selected profile's player name.
func (s *Session) ProfileName() string {
	return s.SelectedProfile.Name
}

// JoinServer registers this session against a server handshake. The
// server id it submits is the non-standard SHA-1 digest of
// serverID || sharedSecret || publicKey. Success is a bare 204.
func (s *Session) JoinServer(serverID string, sharedSecret, publicKey []byte) error {
	body, err := json.Marshal(joinRequest{
		AccessToken:     s.AccessToken,
		SelectedProfile: s.SelectedProfile.ID,
		ServerID:        crypt.AuthDigest(serverID, sharedSecret, publicKey),
	})
	if err != nil {
		return fmt.Errorf("serialize join request: %w", err)
	}

	resp, err := HTTPClient.Post(JoinURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("join server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("join server: status %d: %s", resp.StatusCode, msg)
	}
	return nil
}
