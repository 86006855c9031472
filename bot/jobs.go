package bot

import (
	"time"

	"github.com/go-co-op/gocron/v2"
)

// backups run at night in the bot's local time
const jobHour = 3

type jobScale struct {
	Scale time.Duration
	Def   gocron.JobDefinition
}

func atHours(hours ...uint) gocron.AtTimes {
	times := make([]gocron.AtTime, 0, len(hours))
	for _, h := range hours {
		times = append(times, gocron.NewAtTime(h, 0, 0))
	}
	return gocron.NewAtTimes(times[0], times[1:]...)
}

// ordered from the largest to the smallest scale
var scales = []jobScale{
	{Scale: 720 * time.Hour, Def: gocron.MonthlyJob(1, gocron.NewDaysOfTheMonth(1), atHours(jobHour))},
	{Scale: 168 * time.Hour, Def: gocron.WeeklyJob(1, gocron.NewWeekdays(time.Monday), atHours(jobHour))},
	{Scale: 24 * time.Hour, Def: gocron.DailyJob(1, atHours(jobHour))},
	{Scale: 12 * time.Hour, Def: gocron.DailyJob(1, atHours(jobHour, jobHour+12))},
	{Scale: 6 * time.Hour, Def: gocron.DailyJob(1, atHours(jobHour, jobHour+6, jobHour+12, jobHour+18))},
}

// SelectJobDefinition aligns intervals that are a multiple of a known scale
// to fixed times of day. Other intervals run every interval*factor.
func SelectJobDefinition(interval time.Duration, factor ...int) gocron.JobDefinition {
	n := time.Duration(1)
	if len(factor) > 0 && factor[0] > 1 {
		n = time.Duration(factor[0])
	}

	s, ok := selectScale(interval, n)
	if ok {
		return s.Def
	}
	return gocron.DurationJob(interval * n)
}

func selectScale(interval, n time.Duration) (jobScale, bool) {
	for _, s := range scales {
		if interval%(s.Scale*n) == 0 {
			return s, true
		}
	}
	return jobScale{}, false
}
