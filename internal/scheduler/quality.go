package scheduler

// ResponseToQuality maps a raw interaction to an SM-2 quality score.
//
// Incorrect answers score 0-2 depending on hints; correct answers score 3 when
// hints were used, otherwise 3-5 by how the response time compares with the
// expected time. A non-positive expected time carries no timing signal and is
// treated as on-pace.
func ResponseToQuality(wasCorrect bool, responseTimeMs, expectedTimeMs int64, hintsUsed int) int {
	if !wasCorrect {
		switch {
		case hintsUsed > 1:
			return 0
		case hintsUsed == 1:
			return 1
		default:
			return 2
		}
	}
	if hintsUsed > 0 {
		return 3
	}
	if expectedTimeMs <= 0 {
		return 5
	}
	ratio := float64(responseTimeMs) / float64(expectedTimeMs)
	switch {
	case ratio > 2:
		return 3
	case ratio > 1.5:
		return 4
	default:
		return 5
	}
}
