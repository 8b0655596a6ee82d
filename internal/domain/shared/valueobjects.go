package shared

// Theme identifies a presentation theme. The engine only stores the value;
// rendering is the host's concern.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings is the process-wide preferences singleton.
type Settings struct {
	Theme         Theme `json:"theme"`
	DailyGoal     int   `json:"dailyGoal"` // target study hours per day
	Notifications bool  `json:"notifications"`
}

// DefaultSettings returns the seed preferences for a fresh state.
func DefaultSettings() Settings {
	return Settings{
		Theme:         ThemeLight,
		DailyGoal:     4,
		Notifications: true,
	}
}

// SettingsPatch carries a partial settings update; nil fields are left as-is.
type SettingsPatch struct {
	Theme         *Theme
	DailyGoal     *int
	Notifications *bool
}

// Apply merges the patch into s and returns the result.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.DailyGoal != nil {
		s.DailyGoal = *p.DailyGoal
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	return s
}
