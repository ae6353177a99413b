package assetlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/theme"
)

// AssetItem wraps an asset so it can be used in a bubbles/list.
type AssetItem struct {
	Asset   model.Asset
	Pending string
}

// FilterValue returns the string used for filtering.
func (i AssetItem) FilterValue() string { return i.Asset.ItemName }

// Title returns the asset name.
func (i AssetItem) Title() string { return i.Asset.ItemName }

// Description returns brand, category and location.
func (i AssetItem) Description() string {
	a := i.Asset
	var parts []string
	for _, s := range []string{a.BrandName, a.Category, a.CurrentLocation} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if a.PurchaseDate != nil {
		parts = append(parts, "bought "+a.PurchaseDate.Format("2006-01-02"))
	}
	return strings.Join(parts, " | ")
}

// AssetDelegate implements list.ItemDelegate for rendering asset rows.
type AssetDelegate struct{}

// Height returns the number of lines each item takes.
func (d AssetDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d AssetDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d AssetDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single asset row.
func (d AssetDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ai, ok := item.(AssetItem)
	if !ok {
		return
	}

	star := " "
	if ai.Asset.Favorite {
		star = theme.FavoriteStyle.Render("★")
	}
	line := fmt.Sprintf("%s %s  %s", star, ai.Title(), theme.DimmedStyle.Render(ai.Description()))
	if ai.Asset.Status != "" && ai.Asset.Status != model.AssetAvailable {
		line += " " + theme.AssetStatusStyle(string(ai.Asset.Status)).Render(string(ai.Asset.Status))
	}
	if ai.Pending != "" {
		line += "  " + theme.PendingStyle.Render(ai.Pending)
	}

	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
		return
	}
	fmt.Fprint(w, theme.ListItemStyle.Render(line))
}
