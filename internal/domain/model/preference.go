package model

import (
	"strings"
	"time"

	"github.com/Brze0x/sixties-life-bot/internal/domain"
)

// PaginationStatus controls whether a user reads news page by page or as a full list.
type PaginationStatus string

const (
	PaginationOn  PaginationStatus = "pagination_on"
	PaginationOff PaginationStatus = "pagination_off"
)

// ParseStatus accepts the stored values as well as the short "on"/"off" forms.
func ParseStatus(s string) (PaginationStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pagination_on", "on":
		return PaginationOn, nil
	case "pagination_off", "off":
		return PaginationOff, nil
	default:
		return "", domain.ErrInvalidStatus
	}
}

// Enabled reports whether paginated rendering is on.
func (s PaginationStatus) Enabled() bool { return s == PaginationOn }

// Preference is the single settings row kept per Telegram user.
type Preference struct {
	UserID    int64            `json:"user_id"`
	Status    PaginationStatus `json:"pagination_status"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewPreference validates the status and stamps the update time.
func NewPreference(userID int64, status PaginationStatus) (*Preference, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidArgument
	}
	if status != PaginationOn && status != PaginationOff {
		return nil, domain.ErrInvalidStatus
	}
	return &Preference{UserID: userID, Status: status, UpdatedAt: time.Now().UTC()}, nil
}
