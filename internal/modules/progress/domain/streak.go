package domain

// NextStreak is the streak after a session completed today. A second session
// on the same day leaves it unchanged, yesterday extends it, anything else
// starts over at 1.
func NextStreak(current int, last *Date, today Date) int {
	if last == nil {
		return 1
	}
	switch last.DaysUntil(today) {
	case 0:
		if current < 1 {
			return 1
		}
		return current
	case 1:
		return current + 1
	default:
		return 1
	}
}
