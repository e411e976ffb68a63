package models

import (
	"encoding/json"
	"time"
)

// DropRecord is one persisted drop outcome. Frames are never stored; the
// seed plus board config re-derives the full path.
type DropRecord struct {
	ID           int       `db:"id" json:"id"`
	SessionToken string    `db:"session_token" json:"session_token"`
	Seed         int64     `db:"seed" json:"seed"`
	TargetSlot   int       `db:"target_slot" json:"target_slot"`
	LandedSlot   int       `db:"landed_slot" json:"landed_slot"`
	FrameCount   int       `db:"frame_count" json:"frame_count"`
	Attempts     int       `db:"attempts" json:"attempts"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// AdminAccount guards the dev tooling (force-outcome, diagnostics).
type AdminAccount struct {
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"display_name"`
	TokenHash   string    `db:"token_hash" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// AdminAudit records every admin action against the dev endpoints.
type AdminAudit struct {
	ID        int             `db:"id" json:"id"`
	AdminUser string          `db:"admin_user" json:"admin_user"`
	IP        string          `db:"ip" json:"ip"`
	Route     string          `db:"route" json:"route"`
	Action    string          `db:"action" json:"action"`
	Details   json.RawMessage `db:"details" json:"details"`
	Success   bool            `db:"success" json:"success"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
