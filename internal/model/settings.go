package model

// UserSettings holds per-user preferences, keyed 1:1 by user ID.
//
// The struct is written wholesale on Replace (the store contract is "replace the
// whole document"), so the JSON tags here define the persisted field names:
//
//	{"newsApiKey":"...","favoriteTopics":["ai","crypto"],"onboardingCompleted":true}
//
// FavoriteTopics preserves insertion order for display; lookups don't depend on
// order. OnboardingCompleted only ever transitions false → true — nothing in the
// codebase sets it back, and the one-way gate is what stops the dashboard from
// re-rendering the onboarding flow.
type UserSettings struct {
	NewsAPIKey          string   `json:"newsApiKey"`
	FavoriteTopics      []string `json:"favoriteTopics"`
	OnboardingCompleted bool     `json:"onboardingCompleted"`
}

// OnboardingStatus is the result of checking whether a user finished onboarding.
// Completed defaults to false when no settings document exists yet.
type OnboardingStatus struct {
	Completed bool          `json:"completed"`
	Settings  *UserSettings `json:"settings,omitempty"`
}
