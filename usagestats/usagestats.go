// Package usagestats defines the contract with the platform usage-stats
// bridge. The OS-side query mechanism is an external capability; this
// package only fixes the shape of what it reports.
package usagestats

// Reading is one observation from the platform: cumulative foreground
// minutes per app plus the aggregate, both for a single window.
type Reading struct {
	AppUsage     map[string]float64 `json:"appUsage"`
	TotalMinutes float64            `json:"totalMinutes"`
}

// Source is the platform usage-stats bridge. Implementations must return
// empty readings, not errors, when no data exists for the window.
type Source interface {
	// HasPermission reports whether the OS usage-access permission is
	// granted. False is a distinct state from "zero usage".
	HasPermission() (bool, error)

	// RequestPermission opens the OS settings screen. The result is only
	// observable through a later HasPermission call.
	RequestPermission() error

	// QueryToday returns today's cumulative usage.
	QueryToday() (Reading, error)

	// QueryWindow returns usage between two unix-millisecond instants.
	QueryWindow(startMs, endMs int64) (Reading, error)
}

// App describes a tracked social-media app.
type App struct {
	ID          string
	Name        string
	PackageName string
	BundleID    string
}

// SocialApps is the fixed set of apps the tracker watches.
var SocialApps = []App{
	{ID: "instagram", Name: "Instagram", PackageName: "com.instagram.android", BundleID: "com.burbn.instagram"},
	{ID: "twitter", Name: "Twitter/X", PackageName: "com.twitter.android", BundleID: "com.atebits.Tweetie2"},
	{ID: "reddit", Name: "Reddit", PackageName: "com.reddit.frontpage", BundleID: "com.reddit.Reddit"},
	{ID: "youtube", Name: "YouTube", PackageName: "com.google.android.youtube", BundleID: "com.google.ios.youtube"},
	{ID: "threads", Name: "Threads", PackageName: "com.instagram.barcelona", BundleID: "com.burbn.barcelona"},
}

// Unsupported is the Source for platforms without a usage-stats API. It
// mirrors the bridge's own fallback: never permitted, always empty.
type Unsupported struct{}

func (Unsupported) HasPermission() (bool, error) { return false, nil }
func (Unsupported) RequestPermission() error     { return nil }
func (Unsupported) QueryToday() (Reading, error) {
	return Reading{AppUsage: map[string]float64{}}, nil
}
func (Unsupported) QueryWindow(startMs, endMs int64) (Reading, error) {
	return Reading{AppUsage: map[string]float64{}}, nil
}
