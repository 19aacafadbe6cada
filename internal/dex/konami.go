package dex

// KonamiSequence is the hidden input that toggles the display mode, in
// Bubble Tea key names.
//
//nolint:gochecknoglobals // Fixed sequence.
var KonamiSequence = []string{"up", "up", "down", "down", "left", "right", "left", "right", "b", "a"}

// KonamiMatcher tracks progress through KonamiSequence.
type KonamiMatcher struct {
	progress int
}

// Feed advances the matcher with key. It returns true when key completes the
// sequence, after which progress starts over. Any key that does not match
// the next expected step resets progress to zero.
func (k *KonamiMatcher) Feed(key string) bool {
	if key != KonamiSequence[k.progress] {
		k.progress = 0
		return false
	}
	k.progress++
	if k.progress == len(KonamiSequence) {
		k.progress = 0
		return true
	}
	return false
}

// Progress returns how many steps have matched so far.
func (k *KonamiMatcher) Progress() int {
	return k.progress
}
