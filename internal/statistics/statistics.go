package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult is the outcome of one simulated game, seen from the hero: the
// seat whose strategy is being measured.
type GameResult struct {
	Seed          int64  // seed the game was dealt from (for replay)
	Mode          string // variant name
	HeroSeat      int    // seat the hero played from
	Winner        int    // seat with the highest score, -1 when tied
	Scores        []int  // final scores by seat
	Rounds        int    // rounds played
	BlockedRounds int    // rounds that ended with nobody able to move
}

// Margin is the hero's final score minus the best opposing score.
func (r GameResult) Margin() float64 {
	if r.HeroSeat < 0 || r.HeroSeat >= len(r.Scores) {
		return 0
	}
	best := math.MinInt
	for i, s := range r.Scores {
		if i != r.HeroSeat && s > best {
			best = s
		}
	}
	if best == math.MinInt {
		return 0
	}
	return float64(r.Scores[r.HeroSeat] - best)
}

// SeatStats tracks how the hero fared from one seat.
type SeatStats struct {
	Games     int
	Wins      int
	SumMargin float64
}

// Statistics aggregates simulated games. Margins are in game points.
type Statistics struct {
	Games      int
	SumMargin  float64
	SumMargin2 float64   // sum of squares for variance calculation
	Values     []float64 // every margin, for median/percentile calculation

	HeroWins   int
	HeroLosses int
	Ties       int

	Rounds        int
	BlockedRounds int
	MaxScore      int // highest final score seen at any seat

	Seats []SeatStats // indexed by hero seat
}

// Mean returns the mean margin per game.
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Games)
}

// Variance returns the sample variance of the margins.
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumMargin2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
	if v < 0 {
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation of the margins.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the share of games the hero won outright.
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.HeroWins) / float64(s.Games)
}

// BlockedRate returns the share of rounds that ended blocked.
func (s *Statistics) BlockedRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.BlockedRounds) / float64(s.Rounds)
}

// Add incorporates a game result.
func (s *Statistics) Add(result GameResult) {
	margin := result.Margin()
	s.Games++
	s.SumMargin += margin
	s.SumMargin2 += margin * margin
	s.Values = append(s.Values, margin)

	switch result.Winner {
	case -1:
		s.Ties++
	case result.HeroSeat:
		s.HeroWins++
	default:
		s.HeroLosses++
	}

	s.Rounds += result.Rounds
	s.BlockedRounds += result.BlockedRounds
	for _, score := range result.Scores {
		if score > s.MaxScore {
			s.MaxScore = score
		}
	}

	if seat := result.HeroSeat; seat >= 0 {
		for len(s.Seats) <= seat {
			s.Seats = append(s.Seats, SeatStats{})
		}
		s.Seats[seat].Games++
		s.Seats[seat].SumMargin += margin
		if result.Winner == seat {
			s.Seats[seat].Wins++
		}
	}
}

// Median returns the median margin.
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the margin at the given percentile (0.0 to 1.0).
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// SeatMean returns the hero's mean margin from seat.
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= len(s.Seats) || s.Seats[seat].Games == 0 {
		return 0
	}
	return s.Seats[seat].SumMargin / float64(s.Seats[seat].Games)
}

// Validate checks the counters agree with each other.
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)", len(s.Values), s.Games)
	}
	if total := s.HeroWins + s.HeroLosses + s.Ties; total != s.Games {
		return fmt.Errorf("wins+losses+ties (%d) does not match games count (%d)", total, s.Games)
	}
	if s.BlockedRounds > s.Rounds {
		return fmt.Errorf("blocked rounds (%d) exceed rounds (%d)", s.BlockedRounds, s.Rounds)
	}
	seatGames := 0
	for _, seat := range s.Seats {
		seatGames += seat.Games
	}
	if seatGames != s.Games {
		return fmt.Errorf("seat games total (%d) does not match games count (%d)", seatGames, s.Games)
	}
	return nil
}
