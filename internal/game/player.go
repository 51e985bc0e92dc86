package game

import (
	"context"

	"wamserver/internal/device"
	"wamserver/internal/game/item"
	"wamserver/internal/protocol"
)

// Player is one participant in a session: a borrowed pad plus the mutable
// match state attached to it. A player never outlives its session, and
// all of its state is mutated only on the session goroutine.
type Player struct {
	client  *device.Client
	session *Session
	tuning  Tuning
	slot    int

	health     int
	dead       bool
	currentMap item.Map
}

// newPlayer binds a pad into the session. slot is the binding order (0
// or 1); it is what the pad panel blinks at bind time and it fixes the
// report resolution order.
func newPlayer(client *device.Client, session *Session, slot int) *Player {
	return &Player{
		client:  client,
		session: session,
		tuning:  session.tuning,
		slot:    slot,
		health:  session.tuning.MaxHealth,
	}
}

// Name returns the bound pad's logical name.
func (p *Player) Name() string { return p.client.Name() }

// Slot returns the player's slot within the session.
func (p *Player) Slot() int { return p.slot }

// Health returns the player's current health.
func (p *Player) Health() int { return p.health }

// CurrentMap returns the tile layout sent for the current round.
func (p *Player) CurrentMap() item.Map { return p.currentMap }

// IsDead reports whether the player has reached the death floor.
func (p *Player) IsDead() bool { return p.health <= MinHealth && p.dead }

// Heal raises health by the heal amount, clamped at max health.
func (p *Player) Heal() {
	p.health += p.tuning.HealAmount
	if p.health > p.tuning.MaxHealth {
		p.health = p.tuning.MaxHealth
	}
}

// Damage lowers health by the attack damage. Crossing the death floor
// notifies the owning session exactly once, then health is clamped back
// into range.
func (p *Player) Damage() {
	p.health -= p.tuning.AttackDamage
	if p.health <= MinHealth {
		p.health = MinHealth
		if !p.dead {
			p.dead = true
			p.session.onPlayerDeath(p)
		}
	}
}

// NotifyConnected sends the pad-bind preset so the panel lights up with
// its assigned slot.
func (p *Player) NotifyConnected() error {
	return p.client.WriteLine(protocol.ConnectedNotification(p.Slot()).Encode())
}

// SendRound stores the new layout and ships it to the pad.
func (p *Player) SendRound(m item.Map) error {
	p.currentMap = m
	return p.client.WriteLine(protocol.ServerData{Map: m}.Encode())
}

// ReceiveReport blocks for one hit report, bounded by ctx. Protocol
// errors propagate to the caller; the session degrades them to no-hit.
func (p *Player) ReceiveReport(ctx context.Context) (protocol.ClientData, error) {
	line, err := p.client.ReadLine(ctx)
	if err != nil {
		return protocol.ClientData{HitIndex: protocol.NoIndex}, err
	}
	return protocol.DecodeClientData(line)
}
