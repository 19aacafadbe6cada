package dex

import "time"

// Ids with cosmetic effects.
const (
	PikachuID  = 25
	MagikarpID = 129
	DittoID    = 132
	SnorlaxID  = 143
	MewID      = 151
)

// EffectKind names a transient cosmetic effect.
type EffectKind string

// Effect kinds. Cry is not keyed on an id; it is triggered by the cry control.
const (
	EffectFlash     EffectKind = "flash"
	EffectTransform EffectKind = "transform"
	EffectSplash    EffectKind = "splash"
	EffectTaunt     EffectKind = "taunt"
	EffectSleep     EffectKind = "sleep"
	EffectZzz       EffectKind = "zzz"
	EffectCongrats  EffectKind = "congrats"
	EffectCry       EffectKind = "cry"
)

// Effect durations.
const (
	FlashDuration     = 500 * time.Millisecond
	TransformDuration = 600 * time.Millisecond
	SplashDuration    = 600 * time.Millisecond
	TauntDuration     = 2 * time.Second
	SleepDuration     = 2 * time.Second
	CongratsDuration  = 2 * time.Second
	CryDuration       = 500 * time.Millisecond
)

// Effect messages.
const (
	TauntMessage    = "...pathetic... or is it? 🐟"
	ZzzMessage      = "💤"
	CongratsMessage = "🎉 Congratulations! You found all 151 Pokémon!"
)

// Effect is a decorative overlay that expires after Duration.
type Effect struct {
	Kind     EffectKind
	Duration time.Duration
	Message  string
}

// TriggerEffects returns the effects for displaying newID after prevID
// (0 when nothing was displayed before). It has no side effects.
func TriggerEffects(newID, prevID int) []Effect {
	switch newID {
	case PikachuID:
		return []Effect{{Kind: EffectFlash, Duration: FlashDuration}}
	case DittoID:
		if prevID != 0 && prevID != DittoID {
			return []Effect{{Kind: EffectTransform, Duration: TransformDuration}}
		}
	case MagikarpID:
		return []Effect{
			{Kind: EffectSplash, Duration: SplashDuration},
			{Kind: EffectTaunt, Duration: TauntDuration, Message: TauntMessage},
		}
	case SnorlaxID:
		return []Effect{
			{Kind: EffectSleep, Duration: SleepDuration},
			{Kind: EffectZzz, Duration: SleepDuration, Message: ZzzMessage},
		}
	case MewID:
		return []Effect{{Kind: EffectCongrats, Duration: CongratsDuration, Message: CongratsMessage}}
	}
	return nil
}
