package settings

type UpdateSettingsDTO struct {
	InventoryLimit       int  `json:"inventory_limit"`
	NotificationsEnabled bool `json:"notifications_enabled"`
	ExpiryDays           int  `json:"expiry_days"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d UpdateSettingsDTO) Validate() error {
	if d.InventoryLimit < 0 {
		return ValidationError{Msg: "inventory_limit must not be negative"}
	}
	if d.ExpiryDays < 0 {
		return ValidationError{Msg: "expiry_days must not be negative"}
	}
	return nil
}
