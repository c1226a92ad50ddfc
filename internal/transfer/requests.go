package transfer

type CreatorCreation struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

type AccountCreation struct {
	CreatorID   int64    `json:"creator_id"`
	Platform    string   `json:"platform"`
	Handle      string   `json:"handle"`
	DeviceLabel string   `json:"device_label"`
	ProfileLink string   `json:"profile_link"`
	BaseTimes   []string `json:"base_times"`
}

type AccountUpdate struct {
	Handle      string    `json:"handle"`
	DeviceLabel string    `json:"device_label"`
	ProfileLink string    `json:"profile_link"`
	BaseTimes   *[]string `json:"base_times"`
	Active      *bool     `json:"active"`
}

type SettingsUpdate struct {
	Timezone             string `json:"timezone"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

type PostLogCreation struct {
	SlotID    string   `json:"slot_id"`
	AccountID int64    `json:"account_id"`
	Notes     string   `json:"notes"`
	Checklist []string `json:"checklist"`
}
