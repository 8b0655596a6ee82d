package command

import (
	"context"
	"encoding/json"
	"time"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
	"github.com/acadbox/acadbox-engine/internal/domain/snapshot"
	"github.com/acadbox/acadbox-engine/pkg/logger"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE SETTINGS COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateSettingsCommand applies a partial preferences patch. Nil fields keep
// their stored value.
type UpdateSettingsCommand struct {
	Patch shared.SettingsPatch
}

// Validate validates the command.
func (c UpdateSettingsCommand) Validate() error {
	if c.Patch.Theme != nil && *c.Patch.Theme != shared.ThemeLight && *c.Patch.Theme != shared.ThemeDark {
		return shared.NewDomainError("settings", "Update", shared.ErrInvalidInput, "unknown theme")
	}
	if c.Patch.DailyGoal != nil && *c.Patch.DailyGoal <= 0 {
		return shared.NewDomainError("settings", "Update", shared.ErrValueOutOfRange, "daily goal must be positive")
	}
	return nil
}

// UpdateSettingsResult contains the settings after the patch.
type UpdateSettingsResult struct {
	Settings shared.Settings
}

// UpdateSettingsHandler handles the UpdateSettingsCommand.
type UpdateSettingsHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewUpdateSettingsHandler creates a new UpdateSettingsHandler.
func NewUpdateSettingsHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *UpdateSettingsHandler {
	return &UpdateSettingsHandler{state: st, events: events, log: log}
}

// Handle executes the update settings command.
func (h *UpdateSettingsHandler) Handle(ctx context.Context, cmd UpdateSettingsCommand) (*UpdateSettingsResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	settings := h.state.UpdateSettings(cmd.Patch)
	h.log.Info("settings updated",
		logger.String("theme", string(settings.Theme)),
		logger.Int("daily_goal", settings.DailyGoal),
		logger.Bool("notifications", settings.Notifications),
	)
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventSettingsUpdated, "settings"))

	return &UpdateSettingsResult{Settings: settings}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// RESET ALL COMMAND
// Wipes every collection and reseeds the defaults. Irreversible; the caller
// is expected to have confirmed.
// ══════════════════════════════════════════════════════════════════════════════

// ResetAllCommand clears the whole state back to the first-run seed.
type ResetAllCommand struct{}

// ResetAllHandler handles the ResetAllCommand.
type ResetAllHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewResetAllHandler creates a new ResetAllHandler.
func NewResetAllHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *ResetAllHandler {
	return &ResetAllHandler{state: st, events: events, log: log}
}

// Handle executes the reset.
func (h *ResetAllHandler) Handle(ctx context.Context, cmd ResetAllCommand) error {
	h.state.ResetAll()
	h.log.Warn("state reset to defaults")
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventStateReset, "state"))
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// IMPORT SNAPSHOT COMMAND
// Replaces the whole state with a previously exported document. A document
// that does not decode is refused and the running state stays untouched.
// ══════════════════════════════════════════════════════════════════════════════

// ImportSnapshotCommand restores state from an exported JSON document.
type ImportSnapshotCommand struct {
	Data []byte
}

// Validate validates the command.
func (c ImportSnapshotCommand) Validate() error {
	if len(c.Data) == 0 {
		return shared.NewDomainError("snapshot", "Import", shared.ErrEmptyValue, "import document is empty")
	}
	return nil
}

// ImportSnapshotResult summarizes what was restored.
type ImportSnapshotResult struct {
	Courses  int
	Tasks    int
	Grades   int
	Sessions int
	TakenAt  time.Time
}

// ImportSnapshotHandler handles the ImportSnapshotCommand.
type ImportSnapshotHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewImportSnapshotHandler creates a new ImportSnapshotHandler.
func NewImportSnapshotHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *ImportSnapshotHandler {
	return &ImportSnapshotHandler{state: st, events: events, log: log}
}

// Handle executes the import.
func (h *ImportSnapshotHandler) Handle(ctx context.Context, cmd ImportSnapshotCommand) (*ImportSnapshotResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal(cmd.Data, &snap); err != nil {
		return nil, shared.NewDomainError("snapshot", "Import", shared.ErrInvalidFormat, "import document does not decode")
	}
	h.state.RestoreSnapshot(&snap)

	h.log.Info("snapshot imported",
		logger.Int("courses", len(snap.Courses)),
		logger.Int("tasks", len(snap.Tasks)),
		logger.Int("grades", len(snap.Grades)),
		logger.Int("sessions", len(snap.Sessions)),
	)
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventStateImported, "state"))

	return &ImportSnapshotResult{
		Courses:  len(snap.Courses),
		Tasks:    len(snap.Tasks),
		Grades:   len(snap.Grades),
		Sessions: len(snap.Sessions),
		TakenAt:  snap.TakenAt,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// CHECK STREAK DECAY COMMAND
// Boot-time check: a gap of more than one day since the last logged day
// cracks the streak visual without resetting the counter.
// ══════════════════════════════════════════════════════════════════════════════

// CheckStreakDecayCommand runs the load-time streak decay rule.
type CheckStreakDecayCommand struct {
	// Now anchors the gap check; zero means the wall clock.
	Now time.Time
}

// CheckStreakDecayResult reports whether the streak cracked.
type CheckStreakDecayResult struct {
	Cracked       bool
	CurrentStreak int
}

// CheckStreakDecayHandler handles the CheckStreakDecayCommand.
type CheckStreakDecayHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewCheckStreakDecayHandler creates a new CheckStreakDecayHandler.
func NewCheckStreakDecayHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *CheckStreakDecayHandler {
	return &CheckStreakDecayHandler{state: st, events: events, log: log}
}

// Handle executes the decay check.
func (h *CheckStreakDecayHandler) Handle(ctx context.Context, cmd CheckStreakDecayCommand) (*CheckStreakDecayResult, error) {
	now := cmd.Now
	if now.IsZero() {
		now = timeutil.Now()
	}

	st := h.state.Streak()
	cracked := st.DecayCheck(now)
	if cracked {
		h.log.Info("streak cracked", logger.StreakDays(st.Current))
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventStreakCracked, "streak"))
	}

	return &CheckStreakDecayResult{Cracked: cracked, CurrentStreak: st.Current}, nil
}
