package ui

import (
	"fmt"

	"github.com/Olle-svg/ponggamebyolle/components"
	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

// LobbyUI shows the party code and its participants until the match starts.
type LobbyUI struct {
	UI    *ebitenui.UI
	Lobby *components.LobbyData

	// Callbacks
	OnStartMatch func()
	OnGoBack     func()

	// Widget references for updates
	titleLabel  *widget.Label
	codeLabel   *widget.Label
	countLabel  *widget.Label
	slotLabels  []*widget.Label
	startButton *widget.Button
	statusLabel *widget.Label

	faces
}

// NewLobbyUI builds the lobby over lobby, which the scene keeps in sync with
// the party record.
func NewLobbyUI(lobby *components.LobbyData, onStartMatch, onGoBack func()) *LobbyUI {
	lui := &LobbyUI{
		Lobby:        lobby,
		OnStartMatch: onStartMatch,
		OnGoBack:     onGoBack,
	}
	lui.loadFonts()
	lui.buildUI()
	return lui
}

// LobbyTitle names the kind of party.
func LobbyTitle(lobby *components.LobbyData) string {
	if lobby.Royale {
		return "BATTLE ROYALE"
	}
	return "ONLINE 1V1"
}

// SlotLabel is the text of player row i: a participant, an open seat or
// nothing past the party size.
func SlotLabel(lobby *components.LobbyData, i int) string {
	if i < len(lobby.Players) {
		name := lobby.Players[i]
		if name == lobby.Self {
			name += " (you)"
		}
		if i == 0 {
			name += " - host"
		}
		return name
	}
	if i < lobby.MaxPlayers {
		return "open"
	}
	return ""
}

func (lui *LobbyUI) buildUI() {
	root, content := screenRoot()

	lui.titleLabel = lui.label(LobbyTitle(lui.Lobby), &lui.titleFace, cfg.Menu.TitleColor)
	content.AddChild(lui.titleLabel)

	lui.codeLabel = lui.label(".....", &lui.titleFace, cfg.Yellow)
	content.AddChild(lui.codeLabel)
	content.AddChild(lui.label("Share this code with your friends", &lui.smallFace, cfg.Menu.TextColorNormal))

	lui.countLabel = lui.label("", &lui.normalFace, cfg.Palette.Text)
	content.AddChild(lui.countLabel)
	content.AddChild(lui.buildSlotsContainer())

	lui.statusLabel = lui.label("", &lui.smallFace, statusColor)
	content.AddChild(lui.statusLabel)

	buttons := rowContainer(10)
	buttons.AddChild(lui.button("Leave", 80, 28, buttonImage(), lui.OnGoBack))
	lui.startButton = lui.button("START", 100, 28, startButtonImage(), func() {
		if lui.Lobby.CanStart && lui.OnStartMatch != nil {
			lui.OnStartMatch()
		}
	})
	lui.startButton.GetWidget().Disabled = true
	buttons.AddChild(lui.startButton)
	content.AddChild(buttons)

	lui.UI = &ebitenui.UI{Container: root}
}

func (lui *LobbyUI) buildSlotsContainer() *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(2),
		)),
	)

	lui.slotLabels = make([]*widget.Label, cfg.Poly.MaxPlayers)
	for i := range lui.slotLabels {
		padding := widget.Insets{Top: 2, Bottom: 2, Left: 6, Right: 6}
		row := widget.NewContainer(
			widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(rowColor)),
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Padding(&padding),
				widget.RowLayoutOpts.Spacing(6),
			)),
			widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(260, 0)),
		)
		row.AddChild(lui.label(fmt.Sprintf("P%d:", i+1), &lui.normalFace,
			cfg.Palette.Players[i%len(cfg.Palette.Players)]))
		lui.slotLabels[i] = lui.label("", &lui.normalFace, cfg.Palette.Text)
		row.AddChild(lui.slotLabels[i])
		container.AddChild(row)
	}
	return container
}

// UpdateUI updates all UI elements to reflect current lobby state
func (lui *LobbyUI) UpdateUI() {
	lobby := lui.Lobby
	lui.titleLabel.Label = LobbyTitle(lobby)
	if lobby.Code != "" {
		lui.codeLabel.Label = lobby.Code
	}
	lui.countLabel.Label = fmt.Sprintf("Players %d / %d", len(lobby.Players), lobby.MaxPlayers)
	for i, l := range lui.slotLabels {
		l.Label = SlotLabel(lobby, i)
	}
	lui.startButton.GetWidget().Disabled = !lobby.CanStart
	lui.statusLabel.Label = lobby.Status
}

// Update runs the widgets and refreshes them from the lobby state.
func (lui *LobbyUI) Update() {
	lui.UI.Update()
	lui.UpdateUI()
}
