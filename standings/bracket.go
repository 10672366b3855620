package standings

import (
	"errors"
	"fmt"
	"time"

	"github.com/qaztech-league/esports-league/models"
)

var (
	ErrBracketPositionUnknown = errors.New("unknown bracket position")
	ErrBracketSlotUnresolved  = errors.New("bracket feeder slots are not resolved yet")
	ErrBracketSlotLocked      = errors.New("downstream bracket match already played")
	ErrBracketDrawNotAllowed  = errors.New("bracket match cannot end in a draw")
	ErrBracketInvalidWinner   = errors.New("technical winner is not a participant of this match")
	ErrBracketBadTopology     = errors.New("invalid bracket topology")
)

// PositionSpec — статический узел сетки. SourcePosition1/2 ссылаются на
// более ранние позиции, чьи победители занимают слоты (пустая строка —
// команда посеяна напрямую). DestSlot — номер слота (1 или 2) в
// DestPosition, куда уходит победитель; у финала назначения нет.
type PositionSpec struct {
	Position        string
	SourcePosition1 string
	SourcePosition2 string
	DestPosition    string
	DestSlot        int
}

// Topology — проверенный набор позиций в порядке раундов.
type Topology struct {
	order []string
	specs map[string]PositionSpec
}

func NewTopology(specs []PositionSpec) (*Topology, error) {
	t := &Topology{specs: make(map[string]PositionSpec, len(specs))}
	for _, spec := range specs {
		if spec.Position == "" {
			return nil, fmt.Errorf("%w: empty position name", ErrBracketBadTopology)
		}
		if _, exists := t.specs[spec.Position]; exists {
			return nil, fmt.Errorf("%w: duplicate position %s", ErrBracketBadTopology, spec.Position)
		}
		t.specs[spec.Position] = spec
		t.order = append(t.order, spec.Position)
	}
	for _, spec := range specs {
		if spec.DestPosition == "" {
			continue
		}
		if _, ok := t.specs[spec.DestPosition]; !ok {
			return nil, fmt.Errorf("%w: %s feeds unknown position %s", ErrBracketBadTopology, spec.Position, spec.DestPosition)
		}
		if spec.DestSlot != 1 && spec.DestSlot != 2 {
			return nil, fmt.Errorf("%w: %s has invalid destination slot %d", ErrBracketBadTopology, spec.Position, spec.DestSlot)
		}
	}
	return t, nil
}

// DefaultPlayoffTopology — сетка плей-офф лиги на восемь команд:
// QF1..QF4 → SF1/SF2 → FINAL.
func DefaultPlayoffTopology() *Topology {
	t, err := NewTopology([]PositionSpec{
		{Position: "QF1", DestPosition: "SF1", DestSlot: 1},
		{Position: "QF2", DestPosition: "SF1", DestSlot: 2},
		{Position: "QF3", DestPosition: "SF2", DestSlot: 1},
		{Position: "QF4", DestPosition: "SF2", DestSlot: 2},
		{Position: "SF1", SourcePosition1: "QF1", SourcePosition2: "QF2", DestPosition: "FINAL", DestSlot: 1},
		{Position: "SF2", SourcePosition1: "QF3", SourcePosition2: "QF4", DestPosition: "FINAL", DestSlot: 2},
		{Position: "FINAL", SourcePosition1: "SF1", SourcePosition2: "SF2"},
	})
	if err != nil {
		panic(err) // статическая сетка, ошибка здесь — баг
	}
	return t
}

// Tracker ведёт прогресс сетки по её топологии. Матчи мутируются на
// месте; изменённые строки возвращает RecordResult, персист — забота
// вызывающего.
type Tracker struct {
	topo    *Topology
	matches map[string]*models.BracketMatch
}

// NewTracker строит трекер из сохранённых матчей этапа. Позиции без
// строки в БД получают пустой незаполненный узел.
func NewTracker(topo *Topology, existing []*models.BracketMatch) *Tracker {
	t := &Tracker{topo: topo, matches: make(map[string]*models.BracketMatch, len(topo.order))}
	for _, m := range existing {
		if _, ok := topo.specs[m.BracketPosition]; ok {
			t.matches[m.BracketPosition] = m
		}
	}
	for _, pos := range topo.order {
		if _, ok := t.matches[pos]; !ok {
			t.matches[pos] = &models.BracketMatch{BracketPosition: pos}
		}
	}
	return t
}

// Matches возвращает узлы сетки в порядке топологии.
func (t *Tracker) Matches() []*models.BracketMatch {
	out := make([]*models.BracketMatch, 0, len(t.topo.order))
	for _, pos := range t.topo.order {
		out = append(out, t.matches[pos])
	}
	return out
}

// Champion возвращает победителя финала, если он сыгран.
func (t *Tracker) Champion() (string, bool) {
	for _, pos := range t.topo.order {
		spec := t.topo.specs[pos]
		if spec.DestPosition != "" {
			continue
		}
		m := t.matches[pos]
		if m.IsPlayed && m.WinnerName != nil {
			return *m.WinnerName, true
		}
	}
	return "", false
}

// RecordResult фиксирует результат позиции и продвигает победителя в
// слот следующего раунда. Отклоняется без изменения состояния, если
// фидерные слоты не заполнены, счёт ничейный без технического
// победителя, или результат позиции уже потреблён сыгранным матчем
// следующего раунда (перезапись заблокирована — сначала нужно снять
// результат ниже по сетке).
func (t *Tracker) RecordResult(position string, score1, score2 int, technicalWinner *string) ([]*models.BracketMatch, string, error) {
	match, ok := t.matches[position]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrBracketPositionUnknown, position)
	}
	if score1 < 0 || score2 < 0 {
		return nil, "", fmt.Errorf("%w: %d:%d", ErrNegativeScore, score1, score2)
	}
	if match.Team1Name == nil || match.Team2Name == nil {
		return nil, "", fmt.Errorf("%w: %s", ErrBracketSlotUnresolved, position)
	}

	spec := t.topo.specs[position]
	var dest *models.BracketMatch
	if spec.DestPosition != "" {
		dest = t.matches[spec.DestPosition]
	}
	if match.IsPlayed && dest != nil && dest.IsPlayed {
		return nil, "", fmt.Errorf("%w: %s feeds %s", ErrBracketSlotLocked, position, spec.DestPosition)
	}

	var winner string
	switch {
	case technicalWinner != nil:
		if *technicalWinner != *match.Team1Name && *technicalWinner != *match.Team2Name {
			return nil, "", fmt.Errorf("%w: %q in %s", ErrBracketInvalidWinner, *technicalWinner, position)
		}
		winner = *technicalWinner
	case score1 > score2:
		winner = *match.Team1Name
	case score2 > score1:
		winner = *match.Team2Name
	default:
		return nil, "", fmt.Errorf("%w: %s %d:%d", ErrBracketDrawNotAllowed, position, score1, score2)
	}

	now := time.Now()
	match.Team1Score = &score1
	match.Team2Score = &score2
	match.WinnerName = &winner
	match.IsPlayed = true
	match.UpdatedAt = now

	changed := []*models.BracketMatch{match}
	if dest != nil {
		name := winner
		if spec.DestSlot == 2 {
			dest.Team2Name = &name
		} else {
			dest.Team1Name = &name
		}
		dest.UpdatedAt = now
		changed = append(changed, dest)
	}

	return changed, winner, nil
}
