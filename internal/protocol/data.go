// Package protocol implements the line protocol spoken between the game
// server and the hardware pads.
//
// Both message kinds are ;-separated UTF-8 text, one frame per line. The
// first field is a single-character role tag: "c" for client->server hit
// reports, "s" for server->client round maps.
//
// Map layout: the panel is 3x3 and flattened into 9 tiles, rows
// bottom-to-top, left-to-right:
//
//	678
//	345  ->  [0,1,2,...,7,8]
//	012
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"wamserver/internal/game/item"
)

const fieldSep = ";"

const (
	clientRole = "c"
	serverRole = "s"
)

// NoIndex marks a hit report that carries no tile index.
const NoIndex = -1

// ClientData is one decoded hit report: whether any tile was hit this
// round and, if so, which one.
type ClientData struct {
	IsHit    bool
	HitIndex int
}

// DecodeClientData parses a "c;<isHit>;<index>" frame.
//
// The boolean field only accepts the closed token set from parse.go. The
// index field is optional: absent or non-numeric decodes to NoIndex, while
// a numeric index outside [0,8] is rejected as malformed.
func DecodeClientData(line string) (ClientData, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), fieldSep)
	if fields[0] != clientRole {
		return ClientData{}, fmt.Errorf("%w: expected %q, got %q", ErrWrongRole, clientRole, fields[0])
	}
	if len(fields) < 2 {
		return ClientData{}, fmt.Errorf("%w: missing isHit field", ErrMalformed)
	}

	isHit, err := parseBoolToken(fields[1])
	if err != nil {
		return ClientData{}, err
	}

	hitIndex := NoIndex
	if isHit && len(fields) >= 3 {
		if n, convErr := strconv.Atoi(fields[2]); convErr == nil {
			if n < 0 || n >= item.MapSize {
				return ClientData{}, fmt.Errorf("%w: tile index %d out of range", ErrMalformed, n)
			}
			hitIndex = n
		}
	}

	return ClientData{IsHit: isHit, HitIndex: hitIndex}, nil
}

// Encode renders the report in canonical form, the exact inverse of
// DecodeClientData.
func (d ClientData) Encode() string {
	idx := ""
	if d.IsHit && d.HitIndex != NoIndex {
		idx = strconv.Itoa(d.HitIndex)
	}
	return strings.Join([]string{clientRole, strconv.FormatBool(d.IsHit), idx}, fieldSep)
}

// ServerData is one round map: the tile item for each of the 9 panel
// positions in fixed tile order.
type ServerData struct {
	Map item.Map
}

// DecodeServerData parses an "s;DDDDDDDDD" frame. The digit run must be
// exactly 9 characters and every digit must be a known item code.
func DecodeServerData(line string) (ServerData, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), fieldSep)
	if fields[0] != serverRole {
		return ServerData{}, fmt.Errorf("%w: expected %q, got %q", ErrWrongRole, serverRole, fields[0])
	}
	if len(fields) < 2 {
		return ServerData{}, fmt.Errorf("%w: missing map field", ErrMalformed)
	}

	digits := fields[1]
	if len(digits) != item.MapSize {
		return ServerData{}, fmt.Errorf("%w: map has %d digits, want %d", ErrMalformed, len(digits), item.MapSize)
	}

	var m item.Map
	for i := 0; i < item.MapSize; i++ {
		it, ok := item.FromCode(digits[i])
		if !ok {
			return ServerData{}, fmt.Errorf("%w: unknown item code %q at tile %d", ErrMalformed, digits[i], i)
		}
		m[i] = it
	}
	return ServerData{Map: m}, nil
}

// Encode renders the round map in canonical form, the exact inverse of
// DecodeServerData.
func (d ServerData) Encode() string {
	var b strings.Builder
	b.WriteString(serverRole)
	b.WriteString(fieldSep)
	for _, it := range d.Map {
		b.WriteByte(it.Code())
	}
	return b.String()
}

// ConnectedNotification builds the preset frame sent once at pad-bind
// time: every tile carries the player's slot index so the panel can light
// up its assigned slot. Slots outside the item code set are a wiring
// error and panic.
func ConnectedNotification(slot int) ServerData {
	it, ok := item.FromCode(byte('0' + slot))
	if !ok {
		panic(fmt.Sprintf("protocol: slot %d has no displayable code", slot))
	}
	var m item.Map
	for i := range m {
		m[i] = it
	}
	return ServerData{Map: m}
}
