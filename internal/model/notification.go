package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID         string    `bun:"id,pk,type:varchar(60)" json:"id"`
	UserID     string    `bun:"user_id,notnull,type:varchar(60)" json:"user_id"`
	Message    string    `bun:"message,notnull" json:"message"`
	ReadStatus bool      `bun:"read_status,notnull,default:false" json:"read_status"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

type NotificationCreate struct {
	UserID     string `json:"user_id"`
	Message    string `json:"message"`
	ReadStatus bool   `json:"read_status"`
}

func (r NotificationCreate) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return invalid("user_id", "is required")
	}
	if strings.TrimSpace(r.Message) == "" {
		return invalid("message", "is required")
	}
	return nil
}

func (r NotificationCreate) Build() *Notification {
	return &Notification{
		ID:         uuid.NewString(),
		UserID:     r.UserID,
		Message:    r.Message,
		ReadStatus: r.ReadStatus,
	}
}

type NotificationEdit struct {
	UserID     *string `json:"user_id"`
	Message    *string `json:"message"`
	ReadStatus *bool   `json:"read_status"`
}

func (r NotificationEdit) Validate() error {
	if r.UserID != nil && strings.TrimSpace(*r.UserID) == "" {
		return invalid("user_id", "cannot be blank")
	}
	if r.Message != nil && strings.TrimSpace(*r.Message) == "" {
		return invalid("message", "cannot be blank")
	}
	return nil
}

func (r NotificationEdit) Apply(n *Notification) []string {
	var cols []string
	if r.UserID != nil {
		n.UserID = *r.UserID
		cols = append(cols, "user_id")
	}
	if r.Message != nil {
		n.Message = *r.Message
		cols = append(cols, "message")
	}
	if r.ReadStatus != nil {
		n.ReadStatus = *r.ReadStatus
		cols = append(cols, "read_status")
	}
	return cols
}
