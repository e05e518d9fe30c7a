package ui

import (
	"fmt"
	"image/color"
	"strings"
	"unicode"

	"github.com/Olle-svg/ponggamebyolle/components"
	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

// JoinUI is the join screen: a party code field and the open party list.
type JoinUI struct {
	UI *ebitenui.UI

	OnJoin    func(code string)
	OnRefresh func()
	OnGoBack  func()

	codeInput   *widget.TextInput
	partyList   *widget.Container
	statusLabel *widget.Label
	joinBtn     *widget.Button
	refreshBtn  *widget.Button
	busy        bool

	faces

	initialized bool
}

func NewJoinUI(lastCode string, onJoin func(code string), onRefresh, onGoBack func()) *JoinUI {
	ui := &JoinUI{
		OnJoin:    onJoin,
		OnRefresh: onRefresh,
		OnGoBack:  onGoBack,
	}
	ui.loadFonts()
	ui.buildUI()
	ui.codeInput.SetText(CleanCode(lastCode))
	return ui
}

// CleanCode keeps the characters of s that belong to the code alphabet,
// upper-cased and cut to the code length.
func CleanCode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() >= party.CodeLength {
			break
		}
		r = unicode.ToUpper(r)
		if strings.ContainsRune(party.CodeAlphabet, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PartyLabel is the list row for an open party.
func PartyLabel(p components.PartyEntry) string {
	return fmt.Sprintf("%s   %-13s %d/%d", p.Code, p.Mode, p.CurrentPlayers, p.MaxPlayers)
}

// checkCode returns the status to show for a code that cannot be joined.
func checkCode(code string) string {
	if !party.ValidCode(code) {
		return fmt.Sprintf("A party code has %d characters", party.CodeLength)
	}
	return ""
}

func (ui *JoinUI) buildUI() {
	root, content := screenRoot()

	content.AddChild(ui.label("JOIN PARTY", &ui.titleFace, cfg.Menu.TitleColor))
	content.AddChild(ui.buildCodeRow())

	content.AddChild(ui.label("Open parties", &ui.normalFace, cfg.Palette.Text))
	padding := widget.Insets{Top: 6, Bottom: 6, Left: 8, Right: 8}
	ui.partyList = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&padding),
			widget.RowLayoutOpts.Spacing(4),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(320, 40)),
	)
	ui.partyList.AddChild(ui.label("Searching...", &ui.smallFace, cfg.Menu.TextColorNormal))
	content.AddChild(ui.partyList)

	ui.statusLabel = ui.label("", &ui.smallFace, statusColor)
	content.AddChild(ui.statusLabel)

	buttons := rowContainer(10)
	buttons.AddChild(ui.button("Back", 80, 28, buttonImage(), ui.OnGoBack))
	ui.refreshBtn = ui.button("Refresh", 100, 28, buttonImage(), ui.OnRefresh)
	buttons.AddChild(ui.refreshBtn)
	content.AddChild(buttons)

	ui.UI = &ebitenui.UI{Container: root}
}

func (ui *JoinUI) buildCodeRow() *widget.Container {
	row := rowContainer(6)
	row.AddChild(ui.label("Code:", &ui.normalFace, cfg.Palette.Text))

	ui.codeInput = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(120, 28)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(rowColor),
			Disabled: image.NewNineSliceColor(panelColor),
		}),
		widget.TextInputOpts.Face(&ui.normalFace),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          cfg.Yellow,
			Disabled:      disabledText,
			Caret:         cfg.White,
			DisabledCaret: disabledText,
		}),
		widget.TextInputOpts.Placeholder(strings.Repeat("_", party.CodeLength)),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
		widget.TextInputOpts.Validation(func(newInputText string) (bool, *string) {
			clean := CleanCode(newInputText)
			if clean == newInputText {
				return true, nil
			}
			return false, &clean
		}),
		widget.TextInputOpts.AllowDuplicateSubmit(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			ui.submit(args.InputText)
		}),
	)
	row.AddChild(ui.codeInput)

	ui.joinBtn = ui.button("Join", 80, 28, startButtonImage(), func() {
		ui.submit(ui.codeInput.GetText())
	})
	row.AddChild(ui.joinBtn)
	return row
}

func (ui *JoinUI) submit(code string) {
	if ui.busy {
		return
	}
	code = party.NormalizeCode(code)
	if msg := checkCode(code); msg != "" {
		ui.SetStatus(msg)
		return
	}
	ui.SetStatus("Joining " + code + "...")
	ui.SetBusy(true)
	if ui.OnJoin != nil {
		ui.OnJoin(code)
	}
}

// SetParties replaces the open party list. Picking a row joins it.
func (ui *JoinUI) SetParties(parties []components.PartyEntry) {
	ui.partyList.RemoveChildren()
	if len(parties) == 0 {
		ui.partyList.AddChild(ui.label("No open parties", &ui.smallFace, cfg.Menu.TextColorNormal))
		return
	}
	for _, p := range parties {
		code := p.Code
		btn := widget.NewButton(
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(300, 24)),
			widget.ButtonOpts.Image(&widget.ButtonImage{
				Idle:     image.NewNineSliceColor(rowColor),
				Hover:    image.NewNineSliceColor(color.RGBA{50, 60, 100, 255}),
				Pressed:  image.NewNineSliceColor(panelColor),
				Disabled: image.NewNineSliceColor(panelColor),
			}),
			widget.ButtonOpts.Text(PartyLabel(p), &ui.smallFace, buttonText()),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				ui.codeInput.SetText(code)
				ui.submit(code)
			}),
		)
		btn.GetWidget().Disabled = ui.busy
		ui.partyList.AddChild(btn)
	}
}

func (ui *JoinUI) SetStatus(msg string) {
	if ui.statusLabel != nil {
		ui.statusLabel.Label = msg
	}
}

// SetBusy disables joining while a join is in flight.
func (ui *JoinUI) SetBusy(busy bool) {
	ui.busy = busy
	if ui.joinBtn != nil {
		ui.joinBtn.GetWidget().Disabled = busy
	}
	ui.codeInput.GetWidget().Disabled = busy
	for _, child := range ui.partyList.Children() {
		if btn, ok := child.(*widget.Button); ok {
			btn.GetWidget().Disabled = busy
		}
	}
}

// SetRefreshing disables the refresh button while a listing is in flight.
func (ui *JoinUI) SetRefreshing(refreshing bool) {
	if ui.refreshBtn != nil {
		ui.refreshBtn.GetWidget().Disabled = refreshing
	}
}

func (ui *JoinUI) Update() {
	ui.UI.Update()
	// Focus once the widgets have been laid out
	if !ui.initialized {
		ui.initialized = true
		ui.codeInput.Focus(true)
	}
}
