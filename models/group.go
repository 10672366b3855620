package models

// GroupConfiguration привязывает команды к группе этапа.
// Состав — источник истины для агрегатора: команда без сыгранных матчей
// всё равно попадает в таблицу.
type GroupConfiguration struct {
	ID          int    `json:"id" db:"id"`
	GroupName   string `json:"group_name" db:"group_name"`
	DisplayName string `json:"display_name" db:"display_name"`
	Stage       string `json:"stage" db:"stage"`

	Teams []Team `json:"teams,omitempty" db:"-"`
}

// TeamNames возвращает состав группы в заданном конфигурацией порядке.
func (g *GroupConfiguration) TeamNames() []string {
	names := make([]string, 0, len(g.Teams))
	for _, t := range g.Teams {
		names = append(names, t.Name)
	}
	return names
}
