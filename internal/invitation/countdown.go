package invitation

import "time"

// Countdown is the time remaining until the wedding, floored at zero.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Until computes the countdown from now to the invitation date (local
// midnight). An unparseable date, or a date in the past, yields the zero
// countdown — the model never rejects a bad date, it just stops counting.
func Until(date string, now time.Time) Countdown {
	target, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return Countdown{}
	}
	d := target.Sub(now)
	if d <= 0 {
		return Countdown{}
	}
	return Countdown{
		Days:    int(d.Hours()) / 24,
		Hours:   int(d.Hours()) % 24,
		Minutes: int(d.Minutes()) % 60,
		Seconds: int(d.Seconds()) % 60,
	}
}
