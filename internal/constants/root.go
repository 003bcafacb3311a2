package constants

const (
	// DateFormat is the calendar-date layout used everywhere an entry date or
	// question history is stored (YYYY-MM-DD, no time of day).
	DateFormat = "2006-01-02"

	// TimeFormat is the layout for time-of-day answers (HH:MM).
	TimeFormat = "15:04"

	// DefaultConfigPath is the default storage location. The extension picks
	// the backend: .json selects the JSON store, anything else SQLite.
	DefaultConfigPath = "~/.config/trackdown/trackdown.db"

	// AppName is used for the log prefix and the keyring service name.
	AppName = "trackdown"
)

// Storage document version for the JSON backend.
const StoreVersion = 1

// Summary windows (days) shown by the summary command.
var SummaryWindows = []int{7, 30}
