package compat

// Bonus for combined playtime saturates at 20 hours total.
const bonusSaturation = 1200.0

// CompatibilityFactor scores how similarly two users engaged with one shared
// game, on a [0,1] scale. Games below the minimum playtime on both sides get a
// flat floor; asymmetric engagement gets a middle tier; otherwise the score
// blends playtime closeness with absolute combined playtime.
func CompatibilityFactor(playtime1, playtime2, minPlaytime int64) float64 {
	below1 := playtime1 < minPlaytime
	below2 := playtime2 < minPlaytime

	if below1 && below2 {
		return 0.1
	}
	if below1 || below2 {
		return 0.4
	}

	maxPlay := playtime1
	minPlay := playtime2
	if playtime2 > playtime1 {
		maxPlay = playtime2
		minPlay = playtime1
	}

	similarity := 0.0
	if maxPlay > 0 {
		similarity = float64(minPlay) / float64(maxPlay)
	}

	bonus := float64(playtime1+playtime2) / bonusSaturation
	if bonus > 1 {
		bonus = 1
	}

	factor := similarity*0.7 + bonus*0.3
	if factor > 1 {
		factor = 1
	}
	return factor
}
