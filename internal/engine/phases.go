package engine

import (
	"github.com/tcgpocket/pocketrules/internal/card"
	"github.com/tcgpocket/pocketrules/internal/log"
	"github.com/tcgpocket/pocketrules/internal/state"
)

// statusResolutionOrder is the fixed order checkup resolves status
// conditions in: poison and burn damage tick first, then Asleep's
// coin-flip recovery check, then Paralyzed, which always clears.
var statusResolutionOrder = []card.StatusCondition{card.Poisoned, card.Burned, card.Asleep, card.Paralyzed}

const (
	poisonDamage = 10
	burnDamage   = 20
)

func logEvent(logger log.EventLogger, e log.GameEvent) {
	if logger != nil {
		logger.Log(e)
	}
}

// AdvancePhase moves the game to its next phase, runs that phase's automatic
// entry effects (draw + energy generation on Draw, status ticks and
// knockout/point resolution on Checkup, hand-size enforcement on End), and
// then keeps cascading through any further phases that carry no player
// decision until it reaches Main, Attack, a replacement-owed state, or a
// finished game. It never advances out of a terminal state.
func AdvancePhase(g state.GameState, logger log.EventLogger) (state.GameState, error) {
	if g.IsOver() {
		return g, newError(PhaseMismatch, "game is already over")
	}
	g = g.AdvancePhase()
	logEvent(logger, log.NewPhaseChangeEvent(g.TurnNumber, g.Phase.String()))
	if g.Phase == state.PhaseDraw && g.TurnNumber > 1 {
		logEvent(logger, log.NewTurnEvent(g.TurnNumber, int(g.ActiveTag)))
	}
	return cascadeAutomaticPhases(g, logger)
}

// runPhaseEffects runs the automatic entry effect for whichever of Draw,
// Checkup, or End the game currently sits in; it is a no-op for Main/Attack.
func runPhaseEffects(g state.GameState, logger log.EventLogger) (state.GameState, error) {
	switch g.Phase {
	case state.PhaseDraw:
		return runDrawPhase(g, logger)
	case state.PhaseCheckup:
		return runCheckupPhase(g, logger)
	case state.PhaseEnd:
		return runEndPhase(g, logger)
	default:
		return g, nil
	}
}

// cascadeAutomaticPhases runs the current phase's entry effect — even if a
// replacement already became owed before this call (e.g. an attack that
// just knocked out the defender) — and then keeps stepping to the next
// phase as long as the game remains in one that carries no player decision
// (Draw, Checkup, End). It stops as soon as the game reaches Main or
// Attack, ends, or either player is owed an active-slot replacement — all
// three are points where a caller must supply an action before the engine
// can make further progress on its own. A phase's entry effect always runs
// exactly once: the replacement check gates only whether the cascade
// advances past the phase just processed, never whether that phase's own
// effect runs.
func cascadeAutomaticPhases(g state.GameState, logger log.EventLogger) (state.GameState, error) {
	for {
		if g.IsOver() {
			return g, nil
		}
		var err error
		g, err = runPhaseEffects(g, logger)
		if err != nil {
			return g, err
		}
		if g.IsOver() || RequiresActiveReplacement(g, state.PlayerA) || RequiresActiveReplacement(g, state.PlayerB) {
			return g, nil
		}
		if g.Phase != state.PhaseDraw && g.Phase != state.PhaseCheckup && g.Phase != state.PhaseEnd {
			return g, nil
		}
		g = g.AdvancePhase()
		logEvent(logger, log.NewPhaseChangeEvent(g.TurnNumber, g.Phase.String()))
		if g.Phase == state.PhaseDraw && g.TurnNumber > 1 {
			logEvent(logger, log.NewTurnEvent(g.TurnNumber, int(g.ActiveTag)))
		}
	}
}

func runDrawPhase(g state.GameState, logger log.EventLogger) (state.GameState, error) {
	tag := g.ActiveTag
	p := g.Players[tag]

	skipDraw := g.IsFirstTurn && tag == state.PlayerA
	if !skipDraw {
		if len(p.Deck) == 0 {
			g = g.WithWinner(tag.Opponent(), "opponent decked out")
			logEvent(logger, log.NewDeckOutEvent(g.TurnNumber, g.Phase.String(), int(tag)))
			logEvent(logger, log.NewWinEvent(g.TurnNumber, g.Phase.String(), int(tag.Opponent()), "deck-out"))
			return g, nil
		}
		drawn := p.Deck[0]
		p = p.WithDrawnCard()
		logEvent(logger, log.NewDrawEvent(g.TurnNumber, g.Phase.String(), int(tag), drawn.Name))
	}
	if skipDraw {
		// The first player's first turn generates no energy either.
		return g, nil
	}

	idx, r := g.RNG.Intn(len(p.RegisteredTypes))
	g = g.WithRNG(r)
	energyType := p.RegisteredTypes[idx]
	p = p.WithEnergyZone(energyType)
	logEvent(logger, log.NewEnergyGeneratedEvent(g.TurnNumber, g.Phase.String(), int(tag), energyType.String()))

	g = g.WithPlayer(tag, p)
	return g, nil
}

// runCheckupPhase ticks poison/burn damage, checks for knockouts caused by
// status damage, and awards points.
func runCheckupPhase(g state.GameState, logger log.EventLogger) (state.GameState, error) {
	for _, status := range statusResolutionOrder {
		g = tickStatus(g, g.ActiveTag, status, logger)
		if g.IsOver() {
			return g, nil
		}
	}
	var err error
	g, err = resolveKnockouts(g, logger)
	if err != nil {
		return g, err
	}
	return g, nil
}

func tickStatus(g state.GameState, tag state.PlayerTag, status card.StatusCondition, logger log.EventLogger) state.GameState {
	p := g.Players[tag]
	if p.Active == nil || p.Active.Status != status {
		return g
	}
	switch status {
	case card.Poisoned:
		active := p.Active.WithDamage(poisonDamage)
		p = p.WithActive(&active)
		logEvent(logger, log.NewStatusTickEvent(g.TurnNumber, g.Phase.String(), int(tag), p.Active.Card.Name, status.String(), poisonDamage))
		g = g.WithPlayer(tag, p)
	case card.Burned:
		active := p.Active.WithDamage(burnDamage)
		name := active.Card.Name
		p = p.WithActive(&active)
		logEvent(logger, log.NewStatusTickEvent(g.TurnNumber, g.Phase.String(), int(tag), name, status.String(), burnDamage))
		g = g.WithPlayer(tag, p)

		var heads bool
		heads, g.RNG = g.RNG.CoinFlip()
		if heads {
			p = g.Players[tag]
			cleared := p.Active.WithStatus(card.NoStatus)
			p = p.WithActive(&cleared)
			g = g.WithPlayer(tag, p)
			logEvent(logger, log.NewStatusAppliedEvent(g.TurnNumber, g.Phase.String(), int(tag), name, "none (burn wore off)"))
		}
	case card.Asleep:
		var heads bool
		heads, g.RNG = g.RNG.CoinFlip()
		if heads {
			name := p.Active.Card.Name
			active := p.Active.WithStatus(card.NoStatus)
			p = p.WithActive(&active)
			g = g.WithPlayer(tag, p)
			logEvent(logger, log.NewStatusAppliedEvent(g.TurnNumber, g.Phase.String(), int(tag), name, "none (woke up)"))
		}
	case card.Paralyzed:
		name := p.Active.Card.Name
		active := p.Active.WithStatus(card.NoStatus)
		p = p.WithActive(&active)
		g = g.WithPlayer(tag, p)
		logEvent(logger, log.NewStatusAppliedEvent(g.TurnNumber, g.Phase.String(), int(tag), name, "none (paralysis wore off)"))
	}
	return g
}

// resolveKnockouts removes any knocked-out active Pokémon for both
// players, awards points to the opponent (2 for an EX Pokémon, 1
// otherwise), and declares a winner if a player reaches PointsToWin or has
// no replacement available.
func resolveKnockouts(g state.GameState, logger log.EventLogger) (state.GameState, error) {
	for _, tag := range [2]state.PlayerTag{state.PlayerA, state.PlayerB} {
		p := g.Players[tag]
		if p.Active == nil || !p.Active.IsKnockedOut() {
			continue
		}
		ko := p.Active
		logEvent(logger, log.NewKnockoutEvent(g.TurnNumber, g.Phase.String(), int(tag), ko.Card.Name))
		if ko.Tool != nil {
			p = p.WithCardDiscarded(ko.Tool)
		}
		p = p.WithCardDiscarded(ko.Card)
		p = p.WithActive(nil)
		g = g.WithPlayer(tag, p)

		points := 1
		if ko.Card.Pokemon != nil && ko.Card.Pokemon.IsEX {
			points = 2
		}
		opp := g.Players[tag.Opponent()].WithPoints(points)
		g = g.WithPlayer(tag.Opponent(), opp)
		logEvent(logger, log.NewPointsAwardedEvent(g.TurnNumber, g.Phase.String(), int(tag.Opponent()), points, opp.Points))

		if opp.Points >= state.PointsToWin {
			g = g.WithWinner(tag.Opponent(), "reached point threshold")
			logEvent(logger, log.NewWinEvent(g.TurnNumber, g.Phase.String(), int(tag.Opponent()), "points"))
			return g, nil
		}
	}

	for _, tag := range [2]state.PlayerTag{state.PlayerA, state.PlayerB} {
		p := g.Players[tag]
		if p.Active == nil && len(p.Bench) == 0 {
			g = g.WithWinner(tag.Opponent(), "opponent has no Pokémon left in play")
			logEvent(logger, log.NewWinEvent(g.TurnNumber, g.Phase.String(), int(tag.Opponent()), "no Pokémon remaining"))
			return g, nil
		}
	}
	return g, nil
}

// runEndPhase discards down to MaxHandSize, discarding the highest-index
// cards from the end of the hand (a fixed, deterministic tie-break — there
// is no player choice modeled for which cards to discard).
func runEndPhase(g state.GameState, logger log.EventLogger) (state.GameState, error) {
	tag := g.ActiveTag
	p := g.Players[tag]
	for len(p.Hand) > state.MaxHandSize {
		discarded := p.Hand[len(p.Hand)-1]
		p = p.WithCardRemovedFromHand(len(p.Hand) - 1)
		p = p.WithCardDiscarded(discarded)
		logEvent(logger, log.NewHandSizeDiscardEvent(g.TurnNumber, g.Phase.String(), int(tag), discarded.Name))
	}
	g = g.WithPlayer(tag, p)
	return g, nil
}

// RequiresActiveReplacement reports whether player tag (either player, not
// only the turn's active one) must place a bench Pokémon into its empty
// active spot before anything else can happen
// (post-knockout, mid-checkup edge case surfaced to callers of Step).
func RequiresActiveReplacement(g state.GameState, tag state.PlayerTag) bool {
	p := g.Players[tag]
	return p.Active == nil && len(p.Bench) > 0
}

// playerOwingReplacement reports which player, if any, currently owes an
// active-slot replacement. The turn's active player is checked first since
// a self-inflicted knockout (e.g. confusion recoil) is the common case, but
// a knockout an attacker inflicts on the defender mid-turn equally leaves
// the defender owing a replacement before the attacker's turn can proceed.
func playerOwingReplacement(g state.GameState) (state.PlayerTag, bool) {
	if RequiresActiveReplacement(g, g.ActiveTag) {
		return g.ActiveTag, true
	}
	if RequiresActiveReplacement(g, g.ActiveTag.Opponent()) {
		return g.ActiveTag.Opponent(), true
	}
	return g.ActiveTag, false
}
