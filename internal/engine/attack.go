package engine

import (
	"fmt"

	"github.com/tcgpocket/pocketrules/internal/card"
	"github.com/tcgpocket/pocketrules/internal/effect"
	"github.com/tcgpocket/pocketrules/internal/log"
	"github.com/tcgpocket/pocketrules/internal/state"
)

const weaknessBonus = 20

// ExecuteAttack runs the full attack pipeline: cost check, a Confused
// attacker's coin flip that may redirect the whole attack into a
// self-hit, any pre-damage effect that can fail the attack outright, base
// damage plus this-turn damage bonuses and weakness, application to the
// defender, then the attack's post-damage structured effects in list
// order, then an immediate knockout/point check (not deferred to
// Checkup, since an attack's own turn should reflect its own knockout
// before the attacker ever reaches Checkup) and a transition into Checkup,
// cascading automatically into whatever phase follows it. If the knockout
// check leaves either player owing an active-slot replacement, the
// cascade stops there until Promote is called.
func ExecuteAttack(g state.GameState, attackIndex int, logger log.EventLogger) (state.GameState, error) {
	if g.Phase != state.PhaseAttack {
		return g, newError(PhaseMismatch, "attacks are only legal during Attack phase")
	}
	if g.IsFirstTurn {
		return g, newError(IllegalAction, "neither player may attack on the first turn")
	}
	attacker := g.Players[g.ActiveTag]
	if attacker.Active == nil {
		return g, newError(IllegalAction, "no active Pokémon to attack with")
	}
	if attackIndex < 0 || attackIndex >= len(attacker.Active.Card.Pokemon.Attacks) {
		return g, newError(IllegalAction, "attack index %d out of range", attackIndex)
	}
	atk := attacker.Active.Card.Pokemon.Attacks[attackIndex]
	if !canPayCost(attacker.Active.AttachedEnergy, atk.Cost) {
		return g, newError(IllegalAction, "not enough energy attached to use %s", atk.Name)
	}
	defender := g.Players[g.ActiveTag.Opponent()]
	if defender.Active == nil {
		return g, newError(IllegalAction, "opponent has no active Pokémon to target")
	}

	logEvent(logger, log.NewAttackDeclareEvent(g.TurnNumber, int(g.ActiveTag), attacker.Active.Card.Name, atk.Name))

	if attacker.Active.Status == card.Confused {
		heads, r := g.RNG.CoinFlip()
		g = g.WithRNG(r)
		if !heads {
			active := g.Players[g.ActiveTag].Active.WithDamage(atk.Damage)
			p := g.Players[g.ActiveTag].WithActive(&active)
			g = g.WithPlayer(g.ActiveTag, p)
			logEvent(logger, log.NewDamageCalcEvent(g.TurnNumber, int(g.ActiveTag), fmt.Sprintf("%s is Confused and flips tails, dealing %d damage to itself", attacker.Active.Card.Name, atk.Damage)))
			var err error
			g, err = resolveKnockouts(g, logger)
			if err != nil {
				return g, err
			}
			if g.IsOver() {
				return g, nil
			}
			return AdvancePhase(g, logger)
		}
	}

	ctx := effect.EffectContext{
		State:      g,
		Actor:      g.ActiveTag,
		SourceCard: attacker.Active.Card,
		SourceRef:  effect.PokemonRef{Owner: g.ActiveTag, IsActive: true},
		Targets:    []effect.PokemonRef{{Owner: g.ActiveTag.Opponent(), IsActive: true}},
	}

	damage := atk.Damage
	if attacker.Active.DamageBonusTurn == g.TurnNumber {
		damage += attacker.Active.DamageBonusValue
	}

	preFailed := false
	for _, eff := range atk.Effects {
		if eff.Kind == card.EffectFlipCoinFailOnTails {
			heads, r := g.RNG.CoinFlip()
			ctx.State = ctx.State.WithRNG(r)
			if !heads {
				preFailed = true
			}
		}
	}

	g = ctx.State
	attacker = g.Players[g.ActiveTag]
	defender = g.Players[g.ActiveTag.Opponent()]

	if preFailed {
		logEvent(logger, log.NewDamageCalcEvent(g.TurnNumber, int(g.ActiveTag), fmt.Sprintf("%s's %s does nothing (coin flip: tails)", attacker.Active.Card.Name, atk.Name)))
		return AdvancePhase(g, logger)
	}

	if defender.Active.Card.Pokemon != nil && defender.Active.Card.Pokemon.HasWeakness &&
		attacker.Active.Card.Pokemon != nil && defender.Active.Card.Pokemon.Weakness == attacker.Active.Card.Pokemon.Type {
		damage += weaknessBonus
	}

	defActive := defender.Active.WithDamage(damage)
	defender = defender.WithActive(&defActive)
	g = g.WithPlayer(g.ActiveTag.Opponent(), defender)
	logEvent(logger, log.NewDamageCalcEvent(g.TurnNumber, int(g.ActiveTag), fmt.Sprintf("%s's %s deals %d damage to %s", attacker.Active.Card.Name, atk.Name, damage, defActive.Card.Name)))

	for _, eff := range atk.Effects {
		g = applyAttackEffect(g, eff, attacker.Active.Card, logger)
	}

	var err error
	g, err = resolveKnockouts(g, logger)
	if err != nil {
		return g, err
	}
	if g.IsOver() {
		return g, nil
	}
	return AdvancePhase(g, logger)
}

func canPayCost(attached []card.EnergyType, cost []card.EnergyType) bool {
	pool := make(map[card.EnergyType]int, len(attached))
	for _, e := range attached {
		pool[e]++
	}
	var wildcards int
	needed := make(map[card.EnergyType]int, len(cost))
	for _, c := range cost {
		if c == card.Colorless {
			wildcards++
		} else {
			needed[c]++
		}
	}
	for t, n := range needed {
		if pool[t] < n {
			return false
		}
		pool[t] -= n
	}
	remaining := 0
	for _, n := range pool {
		remaining += n
	}
	return remaining >= wildcards
}

func applyAttackEffect(g state.GameState, eff card.AttackEffect, attackerCard *card.Card, logger log.EventLogger) state.GameState {
	tag := attackTargetOwner(g, eff.Target)
	active := effect.PokemonRef{Owner: tag, IsActive: true}

	switch eff.Kind {
	case card.EffectApplyStatus:
		pk, ok := active.Get(g)
		if !ok {
			return g
		}
		g = active.Set(g, pk.WithStatus(eff.Status))
		logEvent(logger, log.NewStatusAppliedEvent(g.TurnNumber, g.Phase.String(), int(tag), pk.Card.Name, eff.Status.String()))
	case card.EffectHealSelf:
		pk, ok := active.Get(g)
		if !ok {
			return g
		}
		g = active.Set(g, pk.WithDamage(-eff.Amount))
	case card.EffectDiscardOwnEnergy, card.EffectDiscardOpponentEnergy:
		pk, ok := active.Get(g)
		if !ok || len(pk.AttachedEnergy) == 0 {
			return g
		}
		pk.AttachedEnergy = pk.AttachedEnergy[:len(pk.AttachedEnergy)-1]
		g = active.Set(g, pk)
	case card.EffectSwitchOpponentActive:
		p := g.Players[tag]
		if len(p.Bench) == 0 {
			return g
		}
		incoming := p.Bench[0]
		old := p.Active
		p = p.WithBenchRemoved(0)
		if old != nil {
			p = p.WithBenchAppended(*old)
		}
		p = p.WithActive(&incoming)
		g = g.WithPlayer(tag, p)
	}
	return g
}

func attackTargetOwner(g state.GameState, t card.AttackEffectTarget) state.PlayerTag {
	switch t {
	case card.TargetAttacker, card.TargetAttackerBench:
		return g.ActiveTag
	default:
		return g.ActiveTag.Opponent()
	}
}
