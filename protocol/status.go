package protocol

import (
	"encoding/json"
	"fmt"
)

// ServerDescription is the status MOTD. Servers send it either as a
// plain JSON string or as an object with a text field; both decode into
// Text. Re-encoding always uses the plain-string form.
type ServerDescription struct {
	Text string
}

func (d *ServerDescription) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.Text = s
		return nil
	}
	var long struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &long); err != nil {
		return fmt.Errorf("parse server description: %w", err)
	}
	d.Text = long.Text
	return nil
}

func (d ServerDescription) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Text)
}

// ServerPlayers is the status player-count block.
type ServerPlayers struct {
	Max    uint32 `json:"max"`
	Online uint32 `json:"online"`
}

// ServerVersion is the status version block. Protocol carries the raw
// reported number, which need not be a supported Version.
type ServerVersion struct {
	Name     string `json:"name"`
	Protocol uint16 `json:"protocol"`
}

// ServerInformation is the full status response payload.
type ServerInformation struct {
	Description ServerDescription `json:"description"`
	Players     ServerPlayers     `json:"players"`
	Version     ServerVersion     `json:"version"`
}
