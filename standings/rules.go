package standings

import (
	"errors"
	"fmt"
	"sort"

	"github.com/qaztech-league/esports-league/models"
)

var (
	ErrGroupConfigRequired = errors.New("group configuration is required")
	ErrDrawNotAllowed      = errors.New("drawn result is not allowed for this stage")
	ErrNegativeScore       = errors.New("match score cannot be negative")
)

// PointRules — очковая схема этапа. Значения конфигурируются на турнир,
// алгоритм агрегации их не хардкодит.
type PointRules struct {
	WinPoints  int  `json:"win_points"`
	DrawPoints int  `json:"draw_points"`
	AllowDraws bool `json:"allow_draws"`
}

// DefaultCS2Rules — правила группового этапа CS2: BO1 без ничьих.
func DefaultCS2Rules() PointRules {
	return PointRules{WinPoints: 3, DrawPoints: 1, AllowDraws: false}
}

// TierCutline — отсечка общего зачёта: ранги до MaxRank включительно
// получают Tier. Отсечки проверяются по возрастанию MaxRank.
type TierCutline struct {
	MaxRank int                      `json:"max_rank"`
	Tier    models.QualificationTier `json:"tier"`
}

// DefaultCutlines — сезонные отсечки: топ-11 напрямую, 12–21 во второй
// этап, остальные выбывают.
func DefaultCutlines() []TierCutline {
	return []TierCutline{
		{MaxRank: 11, Tier: models.TierDirect},
		{MaxRank: 21, Tier: models.TierSecondary},
	}
}

// TierForRank возвращает тир для 1-based ранга по упорядоченным отсечкам.
func TierForRank(cutlines []TierCutline, rank int) models.QualificationTier {
	sorted := make([]TierCutline, len(cutlines))
	copy(sorted, cutlines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MaxRank < sorted[j].MaxRank })

	for _, c := range sorted {
		if rank <= c.MaxRank {
			return c.Tier
		}
	}
	return models.TierEliminated
}

// ClassifyParams — вход варианта классификации этапа.
type ClassifyParams struct {
	Matches []*models.MatchResult
	Group   *models.GroupConfiguration
	Rules   PointRules
}

// Classification — результат классификации: ранжированная таблица плюс
// матчи, исключённые из подсчёта (ссылаются на команды вне состава).
type Classification struct {
	Standings []*models.GroupStanding
	Skipped   []*models.MatchResult
}

// StageClassifier — общий контракт вариантов этапа (круговая группа,
// общий зачёт). Швейцарка и сетка плей-офф управляются переходами
// состояния, а не свёрткой матчей, и живут в swiss.go / bracket.go.
type StageClassifier interface {
	Classify(params ClassifyParams) (*Classification, error)

	GetName() string
}

func validateScores(m *models.MatchResult) error {
	if m.Team1Score < 0 || m.Team2Score < 0 {
		return fmt.Errorf("%w: %s vs %s (%d:%d)", ErrNegativeScore, m.Team1Name, m.Team2Name, m.Team1Score, m.Team2Score)
	}
	return nil
}
