package standings

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/qaztech-league/esports-league/models"
)

var (
	ErrSwissTeamFinalized  = errors.New("swiss record is final for this team")
	ErrSwissUnknownOutcome = errors.New("unknown swiss outcome")
)

// SwissRules — пороги швейцарского этапа. Стандарт CS2: до трёх побед
// или трёх поражений.
type SwissRules struct {
	WinThreshold  int `json:"win_threshold"`
	LossThreshold int `json:"loss_threshold"`
}

func DefaultSwissRules() SwissRules {
	return SwissRules{WinThreshold: 3, LossThreshold: 3}
}

// StatusFor выводит статус из пары (wins, losses). Статус — чистая
// проекция счётчиков, отдельным состоянием он не живёт.
func (r SwissRules) StatusFor(wins, losses int) models.SwissStatus {
	switch {
	case wins >= r.WinThreshold:
		return models.SwissQualified
	case losses >= r.LossThreshold:
		return models.SwissEliminated
	default:
		return models.SwissActive
	}
}

// ApplyResult применяет исход к записи команды. Квалифицированные и
// выбывшие состояния поглощающие: дальнейшие результаты отклоняются,
// запись не меняется.
func ApplyResult(standing *models.SwissStanding, outcome models.SwissOutcome, roundsWon, roundsLost int, rules SwissRules) error {
	if rules.StatusFor(standing.Wins, standing.Losses) != models.SwissActive {
		return fmt.Errorf("%w: %s is %d-%d", ErrSwissTeamFinalized, standing.TeamName, standing.Wins, standing.Losses)
	}
	if roundsWon < 0 || roundsLost < 0 {
		return fmt.Errorf("%w: rounds %d:%d", ErrNegativeScore, roundsWon, roundsLost)
	}

	switch outcome {
	case models.SwissWin:
		standing.Wins++
	case models.SwissLoss:
		standing.Losses++
	default:
		return fmt.Errorf("%w: %q", ErrSwissUnknownOutcome, outcome)
	}

	standing.RoundsWon += roundsWon
	standing.RoundsLost += roundsLost
	standing.Status = rules.StatusFor(standing.Wins, standing.Losses)
	standing.UpdatedAt = time.Now()
	return nil
}

// SwissRecord — счёт W-L, ключ корзины.
type SwissRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

func (r SwissRecord) String() string {
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// SwissBucket — корзина для отображения: все команды с одинаковым
// счётом плюс статус корзины.
type SwissBucket struct {
	Record SwissRecord             `json:"record"`
	Status models.SwissStatus      `json:"status"`
	Teams  []*models.SwissStanding `json:"teams"`
}

// Buckets разбивает записи по счёту. Каждая команда ровно в одной
// корзине, сумма размеров корзин равна числу команд этапа.
func Buckets(list []*models.SwissStanding, rules SwissRules) []SwissBucket {
	grouped := make(map[SwissRecord][]*models.SwissStanding)
	for _, st := range list {
		rec := SwissRecord{Wins: st.Wins, Losses: st.Losses}
		grouped[rec] = append(grouped[rec], st)
	}

	buckets := make([]SwissBucket, 0, len(grouped))
	for rec, teams := range grouped {
		sort.Slice(teams, func(i, j int) bool {
			di := teams[i].RoundsWon - teams[i].RoundsLost
			dj := teams[j].RoundsWon - teams[j].RoundsLost
			if di != dj {
				return di > dj
			}
			return teams[i].TeamName < teams[j].TeamName
		})
		buckets = append(buckets, SwissBucket{
			Record: rec,
			Status: rules.StatusFor(rec.Wins, rec.Losses),
			Teams:  teams,
		})
	}

	// Квалифицированные сверху, выбывшие снизу, активные по убыванию побед.
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Record.Wins != buckets[j].Record.Wins {
			return buckets[i].Record.Wins > buckets[j].Record.Wins
		}
		return buckets[i].Record.Losses < buckets[j].Record.Losses
	})

	return buckets
}
