package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/api"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/identity"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/keys"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/maintenance"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/service"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/sync"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/theme"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui/assetform"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui/assetlist"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui/borrowform"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui/borrowlist"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui/command"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui/detail"
	helpview "github.com/GportDev/the-hippo-exchange-sub000/internal/ui/help"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui/maintform"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui/maintlist"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui/sidebar"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewAssets ViewState = iota
	ViewDetail
	ViewAssetForm
	ViewMaintenance
	ViewMaintenanceForm
	ViewBorrow
	ViewBorrowForm
	ViewHelp
	ViewCommand
	ViewSignedOut
)

// Model is the root Bubble Tea model that manages view routing, layout
// and the services behind each view.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	svc          Services
	keys         *keys.KeyMap
	session      identity.Session

	sidebar     sidebar.Model
	assetList   assetlist.Model
	detail      detail.Model
	assetForm   assetform.Model
	maintList   maintlist.Model
	maintForm   maintform.Model
	borrowList  borrowlist.Model
	borrowForm  borrowform.Model
	helpView    helpview.Model
	commandView command.Model

	// scopeAsset is the asset the maintenance list is scoped to, if any.
	scopeAsset *model.Asset

	status    string
	statusErr bool
	ready     bool
}

// New creates the root model.
func New(svc Services) Model {
	k := keys.DefaultKeyMap()
	expanded := svc.Prefs.SidebarExpanded(context.Background())

	return Model{
		currentView: ViewAssets,
		svc:         svc,
		keys:        k,
		sidebar:     sidebar.New(expanded),
		assetList:   assetlist.New(k, 80, 24),
		detail:      detail.New(k, 80, 24),
		assetForm:   assetform.New(80, 24),
		maintList:   maintlist.New(k, 80, 24),
		maintForm:   maintform.New(80, 24),
		borrowList:  borrowlist.New(k, 80, 24),
		borrowForm:  borrowform.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
	}
}

// Init checks the session, loads the asset list and starts the poller.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.checkSession(), m.loadAssets()}
	if m.svc.Poller != nil {
		cmds = append(cmds, m.svc.Poller.Start())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height, m.sidebar.Expanded())
		m.ready = true
		m.resize()
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case sessionMsg:
		if msg.err != nil {
			return m, m.signOut(msg.err)
		}
		m.session = msg.session
		return m, nil

	case sync.TickMsg:
		return m, m.handleTick(msg)

	case sidebar.ToggledMsg:
		m.layout.SetSidebar(msg.Expanded)
		m.resize()
		return m, m.persistSidebar(msg.Expanded)

	case sidebar.SelectedMsg:
		return m, m.openSection(msg.Section)

	// Asset list.
	case assetlist.LoadedMsg:
		if cmd, ok := m.authFailure(msg.Err); ok {
			return m, cmd
		}
		var cmd tea.Cmd
		m.assetList, cmd = m.assetList.Update(msg)
		return m, cmd

	case assetlist.SelectedMsg:
		return m, m.openDetail(msg.Asset)

	case assetlist.NewAssetMsg:
		return m, m.openAssetForm(nil)

	case assetlist.EditAssetMsg:
		return m, m.openAssetForm(&msg.Asset)

	case assetlist.FavoriteMsg:
		return m, tea.Batch(m.assetList.SetPending(msg.Asset.ID, "saving..."), m.favoriteAsset(msg.Asset))

	case assetlist.DeleteAssetMsg:
		return m, tea.Batch(m.assetList.SetPending(msg.Asset.ID, "deleting..."), m.deleteAsset(msg.Asset.ID))

	case assetlist.MaintenanceMsg:
		return m, m.openMaintenance(&msg.Asset)

	// Asset detail.
	case detail.LoadedMsg:
		if cmd, ok := m.authFailure(msg.Err); ok {
			return m, cmd
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case detail.BackMsg:
		m.currentView = ViewAssets
		return m, nil

	case detail.ActionMsg:
		switch msg.Action {
		case detail.ActionEdit:
			return m, m.openAssetForm(&msg.Asset)
		case detail.ActionFavorite:
			return m, m.favoriteAsset(msg.Asset)
		case detail.ActionMaintenance:
			return m, m.openMaintenance(&msg.Asset)
		case detail.ActionBorrow:
			m.previousView = m.currentView
			m.currentView = ViewBorrowForm
			return m, m.borrowForm.StartRequest(msg.Asset, m.svc.now())
		}
		return m, nil

	// Asset form.
	case assetform.SubmittedMsg:
		m.currentView = m.previousView
		m.setStatus("saving "+msg.Asset.ItemName+"...", false)
		return m, m.saveAsset(msg.Asset, msg.Editing, msg.ImagePath)

	case assetform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case assetSavedMsg:
		if cmd, ok := m.authFailure(msg.err); ok {
			return m, cmd
		}
		if msg.err != nil {
			m.previousView = m.currentView
			m.currentView = ViewAssetForm
			m.setStatus("", false)
			return m, m.assetForm.ShowError(errorText(msg.err))
		}
		m.setStatus("saved "+msg.asset.ItemName, false)
		return m, m.refreshCurrent()

	case assetFavoritedMsg:
		m.assetList.SetPending(msg.asset.ID, "")
		if cmd, ok := m.authFailure(msg.err); ok {
			return m, cmd
		}
		if msg.err != nil {
			m.setStatus("favorite failed: "+errorText(msg.err), true)
		}
		return m, m.refreshCurrent()

	case assetDeletedMsg:
		m.assetList.SetPending(msg.id, "")
		if cmd, ok := m.authFailure(msg.err); ok {
			return m, cmd
		}
		if msg.err != nil {
			m.setStatus("delete failed: "+errorText(msg.err), true)
		} else {
			m.setStatus("asset deleted", false)
		}
		return m, m.loadAssets()

	// Maintenance list.
	case maintlist.LoadedMsg:
		if cmd, ok := m.authFailure(msg.Err); ok {
			return m, cmd
		}
		var cmd tea.Cmd
		m.maintList, cmd = m.maintList.Update(msg)
		return m, cmd

	case maintlist.NewTaskMsg:
		if m.scopeAsset == nil {
			m.setStatus("open an asset (m) to add maintenance to it", true)
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewMaintenanceForm
		rec := m.svc.Prefs.RecurrenceDefaults(context.Background())
		return m, m.maintForm.StartCreate(*m.scopeAsset, rec, m.svc.now())

	case maintlist.EditTaskMsg:
		m.previousView = m.currentView
		m.currentView = ViewMaintenanceForm
		return m, m.maintForm.StartEdit(msg.Task, m.svc.now().Location())

	case maintlist.ToggleTaskMsg:
		label := "completing..."
		if msg.Task.IsCompleted {
			label = "reopening..."
		}
		return m, tea.Batch(m.maintList.SetPending(msg.Task.ID, label), m.toggleMaintenance(msg.Task))

	case maintlist.DeleteTaskMsg:
		return m, tea.Batch(m.maintList.SetPending(msg.Task.ID, "deleting..."), m.deleteMaintenance(msg.Task))

	case maintlist.BackMsg:
		if m.scopeAsset != nil {
			m.currentView = ViewDetail
			return m, m.loadDetail(m.scopeAsset.ID)
		}
		return m, nil

	// Maintenance form.
	case maintform.SubmittedMsg:
		m.currentView = m.previousView
		m.setStatus("saving "+msg.Form.Title+"...", false)
		if msg.Mode == maintenance.ModeEdit {
			return m, m.updateMaintenance(msg.Original, msg.Form)
		}
		return m, m.createMaintenance(msg.Asset, msg.Form)

	case maintform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case maintenanceSavedMsg:
		if cmd, ok := m.authFailure(msg.err); ok {
			return m, cmd
		}
		var errs maintenance.Errors
		if errors.As(msg.err, &errs) {
			m.previousView = m.currentView
			m.currentView = ViewMaintenanceForm
			m.setStatus("", false)
			return m, m.maintForm.ShowErrors(errs)
		}
		if msg.err != nil {
			m.previousView = m.currentView
			m.currentView = ViewMaintenanceForm
			m.setStatus("save failed: "+errorText(msg.err), true)
			return m, m.maintForm.ShowErrors(nil)
		}
		m.reportResult("saved "+msg.result.Task.Title, msg.result)
		return m, m.refreshMaintenance()

	case maintenanceToggledMsg:
		m.maintList.SetPending(msg.task.ID, "")
		if cmd, ok := m.authFailure(msg.err); ok {
			return m, cmd
		}
		if msg.err != nil {
			m.setStatus("could not update "+msg.task.Title+": "+errorText(msg.err), true)
		} else {
			verb := "completed "
			if !msg.result.Task.IsCompleted {
				verb = "reopened "
			}
			m.reportResult(verb+msg.task.Title, msg.result)
		}
		return m, m.refreshMaintenance()

	case maintenanceDeletedMsg:
		m.maintList.SetPending(msg.task.ID, "")
		if cmd, ok := m.authFailure(msg.err); ok {
			return m, cmd
		}
		if msg.err != nil {
			m.setStatus("delete failed: "+errorText(msg.err), true)
		} else {
			m.setStatus("deleted "+msg.task.Title, false)
		}
		return m, m.refreshMaintenance()

	// Borrowing.
	case borrowlist.LoadedMsg:
		if cmd, ok := m.authFailure(msg.Err); ok {
			return m, cmd
		}
		var cmd tea.Cmd
		m.borrowList, cmd = m.borrowList.Update(msg)
		return m, cmd

	case borrowlist.ActionMsg:
		return m, m.runBorrowAction(msg)

	case borrowform.DecisionSubmittedMsg:
		m.currentView = m.previousView
		m.setStatus("approving...", false)
		svc := m.svc.Borrow
		return m, m.borrowAction(msg.Request.ID, "approved", func(ctx context.Context) error {
			return svc.Decide(ctx, msg.Request.ID, api.DecisionApprove, msg.Note, msg.DueDate)
		})

	case borrowform.RequestSubmittedMsg:
		m.currentView = m.previousView
		m.setStatus("sending request...", false)
		svc := m.svc.Borrow
		return m, m.borrowAction("", "requested", func(ctx context.Context) error {
			_, err := svc.Create(ctx, msg.AssetID, msg.StartDate, msg.EndDate, msg.Note)
			return err
		})

	case borrowform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case borrowDoneMsg:
		if cmd, ok := m.authFailure(msg.err); ok {
			return m, cmd
		}
		if msg.err != nil {
			m.setStatus("borrow request failed: "+errorText(msg.err), true)
		} else {
			m.setStatus("request "+msg.action, false)
		}
		return m, m.loadBorrow()

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(command.Name(msg))

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work across views. Forms and text
// inputs receive everything except ctrl+c.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}
	if m.currentView == ViewSignedOut {
		if key.Matches(msg, m.keys.Quit) || msg.Type == tea.KeyEsc {
			return tea.Quit, true
		}
		return nil, true
	}
	if m.currentView == ViewCommand && msg.Type == tea.KeyEsc {
		m.currentView = m.previousView
		return nil, true
	}
	if m.capturesInput() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m.commandView.Focus(), true

	case m.currentView == ViewHelp:
		if msg.Type == tea.KeyEsc {
			m.currentView = m.previousView
		}
		return nil, true

	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keys.Sidebar):
		return m.sidebar.Toggle(), true

	case key.Matches(msg, m.keys.NextSection):
		return m.sidebar.Next(), true

	case key.Matches(msg, m.keys.Refresh):
		m.svc.Cache.Flush()
		return m.refreshCurrent(), true
	}
	return nil, false
}

// handleTick reloads the visible view so derived statuses follow the
// clock. Forms and the palette are left alone.
func (m *Model) handleTick(msg sync.TickMsg) tea.Cmd {
	var wait tea.Cmd
	if m.svc.Poller != nil {
		wait = m.svc.Poller.Wait()
	}
	if m.currentView == ViewSignedOut || m.capturesInput() {
		return wait
	}
	if msg.DayChanged {
		m.setStatus("new day, statuses updated", false)
	}
	m.svc.Cache.Flush()
	return tea.Batch(m.checkSession(), m.refreshCurrent(), wait)
}

// capturesInput reports whether the active view owns all keystrokes.
func (m Model) capturesInput() bool {
	switch m.currentView {
	case ViewAssetForm, ViewMaintenanceForm, ViewBorrowForm, ViewCommand:
		return true
	case ViewAssets:
		return m.assetList.Searching()
	}
	return false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAssets:
		m.assetList, cmd = m.assetList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewAssetForm:
		m.assetForm, cmd = m.assetForm.Update(msg)
	case ViewMaintenance:
		m.maintList, cmd = m.maintList.Update(msg)
	case ViewMaintenanceForm:
		m.maintForm, cmd = m.maintForm.Update(msg)
	case ViewBorrow:
		m.borrowList, cmd = m.borrowList.Update(msg)
	case ViewBorrowForm:
		m.borrowForm, cmd = m.borrowForm.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

func (m *Model) resize() {
	w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
	m.sidebar.SetHeight(h)
	m.assetList.SetSize(w, h)
	m.detail.SetSize(w, h)
	m.assetForm.SetSize(w, h)
	m.maintList.SetSize(w, h)
	m.maintForm.SetSize(w, h)
	m.borrowList.SetSize(w, h)
	m.borrowForm.SetSize(w, h)
	m.helpView.SetSize(w, h)
	m.commandView.SetSize(w, h)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// reportResult sets the status line for a maintenance write, including
// what happened to a recurring task's next occurrence.
func (m *Model) reportResult(done string, res service.Result) {
	switch {
	case res.SuccessorErr != nil:
		m.setStatus(done+", but the next occurrence could not be scheduled: "+errorText(res.SuccessorErr), true)
	case res.Successor != nil:
		m.setStatus(fmt.Sprintf("%s; next due %s", done, res.Successor.DueDate.Format(maintenance.DateLayout)), false)
	default:
		m.setStatus(done, false)
	}
}

// authFailure signs out when err means the session is gone.
func (m *Model) authFailure(err error) (tea.Cmd, bool) {
	if err == nil {
		return nil, false
	}
	if api.IsAuthError(err) || errors.Is(err, identity.ErrSignedOut) || errors.Is(err, identity.ErrSessionExpired) {
		return m.signOut(err), true
	}
	return nil, false
}

// signOut forgets the session and every cached query, then shows the
// signed-out screen.
func (m *Model) signOut(reason error) tea.Cmd {
	m.svc.Logger.Warn("signing out", slog.Any("reason", reason))
	if err := m.svc.Session.SignOut(); err != nil {
		m.svc.Logger.Error("clearing session", slog.Any("error", err))
	}
	m.svc.Cache.Flush()
	m.session = identity.Session{}
	m.currentView = ViewSignedOut
	switch {
	case errors.Is(reason, identity.ErrSessionExpired):
		m.setStatus("session expired", true)
	case errors.Is(reason, identity.ErrSignedOut):
		m.setStatus("not signed in", true)
	default:
		m.setStatus(errorText(reason), true)
	}
	return nil
}

func (m Model) persistSidebar(expanded bool) tea.Cmd {
	p, logger := m.svc.Prefs, m.svc.Logger
	return func() tea.Msg {
		if err := p.SetSidebarExpanded(context.Background(), expanded); err != nil {
			logger.Error("saving sidebar state", slog.Any("error", err))
		}
		return nil
	}
}

func (m *Model) openSection(s sidebar.Section) tea.Cmd {
	m.setStatus("", false)
	switch s {
	case sidebar.SectionMaintenance:
		return m.openMaintenance(nil)
	case sidebar.SectionBorrowing:
		m.currentView = ViewBorrow
		return m.loadBorrow()
	default:
		m.currentView = ViewAssets
		return m.loadAssets()
	}
}

func (m *Model) openDetail(a model.Asset) tea.Cmd {
	m.previousView = m.currentView
	m.currentView = ViewDetail
	m.detail.SetLoading(true)
	return m.loadDetail(a.ID)
}

func (m *Model) openAssetForm(a *model.Asset) tea.Cmd {
	m.previousView = m.currentView
	m.currentView = ViewAssetForm
	m.assetForm.SetCategories(service.Categories(m.assetList.Assets()))
	if a == nil {
		return m.assetForm.StartCreate()
	}
	return m.assetForm.StartEdit(*a)
}

// openMaintenance shows the maintenance list, scoped to a when non-nil.
func (m *Model) openMaintenance(a *model.Asset) tea.Cmd {
	m.currentView = ViewMaintenance
	m.scopeAsset = a
	if a == nil {
		m.maintList.SetScope("", "")
		if m.sidebar.Active() != sidebar.SectionMaintenance {
			m.sidebar.Select(sidebar.SectionMaintenance)
		}
		return m.loadMaintenance("")
	}
	m.maintList.SetScope(a.ID, a.ItemName)
	return m.loadMaintenance(a.ID)
}

func (m *Model) runBorrowAction(msg borrowlist.ActionMsg) tea.Cmd {
	svc := m.svc.Borrow
	id := msg.Request.ID
	switch msg.Action {
	case model.ActionApprove:
		m.previousView = m.currentView
		m.currentView = ViewBorrowForm
		return m.borrowForm.StartDecision(msg.Request)
	case model.ActionDeny:
		m.setStatus("denying...", false)
		return m.borrowAction(id, "denied", func(ctx context.Context) error { return svc.Deny(ctx, id) })
	case model.ActionCancel:
		m.setStatus("cancelling...", false)
		return m.borrowAction(id, "cancelled", func(ctx context.Context) error { return svc.Cancel(ctx, id) })
	case model.ActionComplete:
		m.setStatus("marking returned...", false)
		return m.borrowAction(id, "marked returned", func(ctx context.Context) error { return svc.Complete(ctx, id, "") })
	}
	return nil
}

func (m Model) refreshMaintenance() tea.Cmd {
	return m.loadMaintenance(m.maintList.AssetID())
}

// refreshCurrent reloads whatever the active view shows.
func (m Model) refreshCurrent() tea.Cmd {
	switch m.currentView {
	case ViewDetail:
		if a, ok := m.detail.Asset(); ok {
			return tea.Batch(m.loadDetail(a.ID), m.loadAssets())
		}
	case ViewMaintenance:
		return m.refreshMaintenance()
	case ViewBorrow:
		return m.loadBorrow()
	}
	return m.loadAssets()
}

// executeCommand handles a command from the command palette.
func (m *Model) executeCommand(name command.Name) tea.Cmd {
	switch name {
	case command.Assets:
		return m.sidebar.Select(sidebar.SectionAssets)
	case command.Maintenance:
		return m.sidebar.Select(sidebar.SectionMaintenance)
	case command.Overdue:
		cmd := m.openMaintenance(nil)
		m.maintList.SetFilter(maintenance.FilterOverdue)
		return cmd
	case command.Borrowing:
		return m.sidebar.Select(sidebar.SectionBorrowing)
	case command.NewAsset:
		return m.openAssetForm(nil)
	case command.Refresh:
		m.svc.Cache.Flush()
		return m.refreshCurrent()
	case command.Sidebar:
		return m.sidebar.Toggle()
	case command.Logout:
		m.signOut(identity.ErrSignedOut)
		return tea.Quit
	case command.Quit:
		return tea.Quit
	}
	return nil
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	user := "signed out"
	if m.session.UserID != "" {
		user = m.session.UserID
	}
	header := m.layout.RenderHeader("Hippo Exchange", user)
	body := m.layout.RenderBody(m.sidebar.View(), m.renderContent())
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, body, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAssets:
		return m.assetList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewAssetForm:
		return m.assetForm.View()
	case ViewMaintenance:
		return m.maintList.View()
	case ViewMaintenanceForm:
		return m.maintForm.View()
	case ViewBorrow:
		return m.borrowList.View()
	case ViewBorrowForm:
		return m.borrowForm.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewSignedOut:
		return lipgloss.NewStyle().
			Width(m.layout.ContentWidth()).
			Height(m.layout.ContentHeight()).
			Align(lipgloss.Center, lipgloss.Center).
			Render("You are signed out.\n\nRun `hippo login` to sign in, then start hippo again.\n\nq quit")
	default:
		return ""
	}
}

// statusLine shows the latest status message, or key hints when there is
// none.
func (m Model) statusLine() string {
	if m.status != "" {
		if m.statusErr {
			return theme.ErrorStyle.Render(m.status)
		}
		return m.status
	}
	return m.keyHints()
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewDetail:
		return "esc back | m maintenance | e edit | f favorite | n borrow | j/k scroll"
	case ViewAssetForm, ViewMaintenanceForm, ViewBorrowForm:
		return "enter next | esc cancel"
	case ViewMaintenance:
		return "n new | e edit | x done | d delete | s filter | esc back | ? help"
	case ViewBorrow:
		return "h/l tabs | a approve | D deny | c cancel | R returned | ? help"
	case ViewSignedOut:
		return "q quit"
	default:
		return m.assetList.FilterSummary() + " | / search | F favorites | o sort | n new | q quit"
	}
}
