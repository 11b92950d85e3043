package analysis

import (
	"sort"
	"time"

	"github.com/jwulff/cgm-go/internal/glucose"
)

// comboMinReadings is the minimum observations a (weekday, hour) pair
// needs before it is ranked.
const comboMinReadings = 10

// HourStat summarizes one hour-of-day bucket.
type HourStat struct {
	Hour       int     `json:"hour"`
	InRangePct float64 `json:"in_range_pct"`
	Mean       float64 `json:"mean"`
	Readings   int     `json:"readings"`
}

// DayStat summarizes one day-of-week bucket.
type DayStat struct {
	Day        string  `json:"day"`
	InRangePct float64 `json:"in_range_pct"`
	Mean       float64 `json:"mean"`
	Readings   int     `json:"readings"`
}

// ComboStat summarizes one (weekday, hour) bucket.
type ComboStat struct {
	Day        string  `json:"day"`
	Hour       int     `json:"hour"`
	InRangePct float64 `json:"in_range_pct"`
	Readings   int     `json:"readings"`
}

// LowEvents summarizes below-target readings and where they cluster.
type LowEvents struct {
	Count          int    `json:"count"`
	MostCommonHour int    `json:"most_common_hour"`
	MostCommonDay  string `json:"most_common_day"`
}

// Patterns is the pattern miner output.
type Patterns struct {
	Readings     int         `json:"readings"`
	BestHour     *HourStat   `json:"best_hour"`
	WorstHour    *HourStat   `json:"worst_hour"`
	BestDay      *DayStat    `json:"best_day"`
	WorstDay     *DayStat    `json:"worst_day"`
	ProblemTimes []ComboStat `json:"problem_combinations"`
	BestTimes    []ComboStat `json:"best_combinations"`
	LowEvents    LowEvents   `json:"low_events"`
	Unit         string      `json:"unit"`
}

type bucket struct {
	count   int
	inRange int
	sum     int
}

func (b *bucket) add(v int, t glucose.Thresholds) {
	b.count++
	b.sum += v
	if t.Classify(v) == glucose.BandInRange {
		b.inRange++
	}
}

func (b *bucket) inRangePct() float64 {
	if b.count == 0 {
		return 0
	}
	return glucose.Round1(float64(b.inRange) / float64(b.count) * 100)
}

func (b *bucket) mean(d Display) float64 {
	if b.count == 0 {
		return 0
	}
	return d.Convert(glucose.Round1(float64(b.sum) / float64(b.count)))
}

// MinePatterns groups readings by hour of day, day of week, and their
// combination, and ranks the buckets by in-range percentage. Ties are
// broken deterministically toward the lowest hour number or earliest
// weekday. Readings with unparseable timestamps are ignored.
func MinePatterns(readings []glucose.Reading, t glucose.Thresholds, d Display) Patterns {
	var hours [24]bucket
	var days [7]bucket
	combos := map[[2]int]*bucket{}
	lowHours := map[int]int{}
	lowDays := map[int]int{}
	lowCount := 0
	counted := 0

	for _, r := range readings {
		ts, ok := r.Time()
		if !ok {
			continue
		}
		counted++
		hour, day := ts.Hour(), int(ts.Weekday())
		hours[hour].add(r.SGV, t)
		days[day].add(r.SGV, t)

		key := [2]int{day, hour}
		if combos[key] == nil {
			combos[key] = &bucket{}
		}
		combos[key].add(r.SGV, t)

		if r.SGV < t.LowTarget {
			lowCount++
			lowHours[hour]++
			lowDays[day]++
		}
	}

	p := Patterns{Readings: counted, Unit: d.Unit}

	// Best/worst hour of day. Ascending scan with strict comparisons
	// keeps the lowest hour on ties.
	for h := 0; h < 24; h++ {
		b := hours[h]
		if b.count == 0 {
			continue
		}
		stat := HourStat{Hour: h, InRangePct: b.inRangePct(), Mean: b.mean(d), Readings: b.count}
		if p.BestHour == nil || stat.InRangePct > p.BestHour.InRangePct {
			s := stat
			p.BestHour = &s
		}
		if p.WorstHour == nil || stat.InRangePct < p.WorstHour.InRangePct {
			s := stat
			p.WorstHour = &s
		}
	}

	for day := 0; day < 7; day++ {
		b := days[day]
		if b.count == 0 {
			continue
		}
		stat := DayStat{Day: time.Weekday(day).String(), InRangePct: b.inRangePct(), Mean: b.mean(d), Readings: b.count}
		if p.BestDay == nil || stat.InRangePct > p.BestDay.InRangePct {
			s := stat
			p.BestDay = &s
		}
		if p.WorstDay == nil || stat.InRangePct < p.WorstDay.InRangePct {
			s := stat
			p.WorstDay = &s
		}
	}

	// (weekday, hour) pairs with enough data, ranked both directions.
	var ranked []ComboStat
	for key, b := range combos {
		if b.count < comboMinReadings {
			continue
		}
		ranked = append(ranked, ComboStat{
			Day:        time.Weekday(key[0]).String(),
			Hour:       key[1],
			InRangePct: b.inRangePct(),
			Readings:   b.count,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].InRangePct != ranked[j].InRangePct {
			return ranked[i].InRangePct < ranked[j].InRangePct
		}
		if ranked[i].Day != ranked[j].Day {
			return ranked[i].Day < ranked[j].Day
		}
		return ranked[i].Hour < ranked[j].Hour
	})
	p.ProblemTimes = topCombos(ranked, 3)
	reversed := make([]ComboStat, len(ranked))
	for i, c := range ranked {
		reversed[len(ranked)-1-i] = c
	}
	p.BestTimes = topCombos(reversed, 3)

	p.LowEvents = LowEvents{
		Count:          lowCount,
		MostCommonHour: mostCommon(lowHours, 24),
		MostCommonDay:  time.Weekday(mostCommon(lowDays, 7)).String(),
	}
	return p
}

func topCombos(combos []ComboStat, n int) []ComboStat {
	if len(combos) > n {
		combos = combos[:n]
	}
	out := make([]ComboStat, len(combos))
	copy(out, combos)
	return out
}

// mostCommon returns the key with the highest count, lowest key on
// ties, or 0 for an empty map.
func mostCommon(counts map[int]int, keySpace int) int {
	best, bestCount := 0, 0
	for k := 0; k < keySpace; k++ {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}
