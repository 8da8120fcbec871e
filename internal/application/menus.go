package application

import (
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/pagination"
)

// Menus builds the static inline keyboards from the catalog.
type Menus struct {
	catalog *model.Catalog
	tr      Translator
}

func NewMenus(catalog *model.Catalog, tr Translator) *Menus {
	return &Menus{catalog: catalog, tr: tr}
}

func (m *Menus) Back() pagination.Button {
	return pagination.Button{Text: m.tr.T("btn_back"), Data: model.CallbackMainMenu}
}

// Main lists every source that has categories, then Settings and Help.
func (m *Menus) Main() *pagination.Keyboard {
	var sources []pagination.Button
	for _, s := range m.catalog.Sources() {
		if len(s.Categories) == 0 {
			continue
		}
		sources = append(sources, pagination.Button{Text: s.Title, Data: model.SourceCallback(s.Code)})
	}
	return keyboard(
		sources,
		[]pagination.Button{
			{Text: m.tr.T("btn_settings"), Data: model.CallbackSettings},
			{Text: m.tr.T("btn_help"), Data: model.CallbackHelp},
		},
	)
}

func (m *Menus) Settings() *pagination.Keyboard {
	return keyboard(
		[]pagination.Button{
			{Text: m.tr.T("btn_pagination_off"), Data: model.CallbackPaginationOff},
			{Text: m.tr.T("btn_pagination_on"), Data: model.CallbackPaginationOn},
		},
		[]pagination.Button{m.Back()},
	)
}

// Source lays the categories out three, two or one per row depending on how
// many there are, followed by Back.
func (m *Menus) Source(src model.Source) (*pagination.Keyboard, error) {
	buttons := make([]pagination.Button, 0, len(src.Categories))
	for _, c := range src.Categories {
		data, err := pagination.Callback{Kind: pagination.KindCategory, Page: 1, Source: src.Code, Category: c.Code}.Encode()
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, pagination.Button{Text: c.Title, Data: data})
	}
	width := 1
	switch {
	case len(buttons) >= 5:
		width = 3
	case len(buttons) >= 2:
		width = 2
	}
	var rows [][]pagination.Button
	for start := 0; start < len(buttons); start += width {
		end := start + width
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[start:end])
	}
	rows = append(rows, []pagination.Button{m.Back()})
	return keyboard(rows...), nil
}

func keyboard(rows ...[]pagination.Button) *pagination.Keyboard {
	kb := &pagination.Keyboard{}
	for _, r := range rows {
		if len(r) > 0 {
			kb.Rows = append(kb.Rows, r)
		}
	}
	if len(kb.Rows) == 0 {
		return nil
	}
	return kb
}
