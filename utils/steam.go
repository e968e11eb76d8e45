package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tix/config"

	"github.com/go-resty/resty/v2"
)

// Failure variants for the profile lookup. Callers that only want the login
// redirect can treat them alike; logs keep them apart.
var (
	ErrPlayerNotFound   = errors.New("steam: no player in response")
	ErrMalformedProfile = errors.New("steam: malformed player summaries response")
)

// PlayerSummary is the subset of the GetPlayerSummaries payload we keep.
// Raw holds the provider's full profile object verbatim, since that is what
// gets handed back to the client on login.
type PlayerSummary struct {
	SteamID    string          `json:"steamid"`
	Persona    string          `json:"personaname"`
	Avatar     string          `json:"avatar"`
	ProfileUrl string          `json:"profileurl"`
	Raw        json.RawMessage `json:"-"`
}

// FetchPlayerSummary fetches a single player profile from the Steam Web API.
func FetchPlayerSummary(steamID string) (*PlayerSummary, error) {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	url := fmt.Sprintf("%s/ISteamUser/GetPlayerSummaries/v0002/", config.AppConfig.SteamApiUrl)

	resp, err := client.R().
		SetQueryParam("key", config.AppConfig.SteamApiKey).
		SetQueryParam("steamids", steamID).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("steam: player summaries request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("steam: player summaries returned status %d", resp.StatusCode())
	}

	var payload struct {
		Response struct {
			Players []json.RawMessage `json:"players"`
		} `json:"response"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, ErrMalformedProfile
	}
	if len(payload.Response.Players) == 0 {
		return nil, ErrPlayerNotFound
	}

	raw := payload.Response.Players[0]
	var summary PlayerSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, ErrMalformedProfile
	}
	if summary.SteamID == "" {
		return nil, ErrMalformedProfile
	}
	summary.Raw = raw

	return &summary, nil
}
