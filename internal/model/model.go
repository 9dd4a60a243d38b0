// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the data transfer objects exchanged with the
// reservation backend. The backend owns these records; the client treats
// them as opaque DTOs and passes them through unmodified.
package model // import "github.com/resvlab/resv/internal/model"

import "fmt"

// User is the authenticated admin identity attached to a session.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Admin roles understood by the backend.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Session is the process-wide auth state: an opaque bearer token plus the
// user it belongs to. A zero Session means "not logged in".
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// IsLoggedIn reports whether the session holds a token.
func (s Session) IsLoggedIn() bool { return s.Token != "" }

// IsAdmin reports whether the session user has the admin role.
func (s Session) IsAdmin() bool { return s.User.Role == RoleAdmin }

// IsSuperAdmin reports whether the session user has the superadmin role.
func (s Session) IsSuperAdmin() bool { return s.User.Role == RoleSuperAdmin }

// Equipment is a reservable device record.
type Equipment struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	Model             string `json:"model,omitempty"`
	Location          string `json:"location,omitempty"`
	Status            string `json:"status,omitempty"`
	Description       string `json:"description,omitempty"`
	ImagePath         string `json:"image_path,omitempty"`
	UserGuide         string `json:"user_guide,omitempty"`
	VideoTutorial     string `json:"video_tutorial,omitempty"`
	AllowSimultaneous bool   `json:"allow_simultaneous,omitempty"`
	MaxSimultaneous   int    `json:"max_simultaneous,omitempty"`
	CurrentlyReserved bool   `json:"currently_reserved,omitempty"`
	CreatedAt         string `json:"created_at,omitempty"`
	UpdatedAt         string `json:"updated_at,omitempty"`
}

// String returns the name with its category, e.g. "Oscilloscope (lab)".
func (e Equipment) String() string {
	if e.Category == "" {
		return e.Name
	}
	return fmt.Sprintf("%s (%s)", e.Name, e.Category)
}

// EquipmentList is the paged list envelope the backend returns.
type EquipmentList struct {
	Items []Equipment `json:"items"`
	Total int         `json:"total"`
}

// Category is an equipment category record.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// CategoryList is the paged category envelope.
type CategoryList struct {
	Items []Category `json:"items"`
	Total int        `json:"total"`
}

// Reservation is a single booking of one piece of equipment. It carries
// two identifiers: the opaque reservation code used in most URLs, and
// the human-oriented "RN-..." reservation number used to disambiguate
// among reservations sharing one code (recurring children).
type Reservation struct {
	ID                int    `json:"id"`
	ReservationNumber string `json:"reservation_number"`
	ReservationCode   string `json:"reservation_code"`
	EquipmentID       int    `json:"equipment_id"`
	EquipmentName     string `json:"equipment_name,omitempty"`
	EquipmentCategory string `json:"equipment_category,omitempty"`
	EquipmentLocation string `json:"equipment_location,omitempty"`
	UserName          string `json:"user_name"`
	UserDepartment    string `json:"user_department"`
	UserContact       string `json:"user_contact"`
	UserEmail         string `json:"user_email,omitempty"`
	StartDatetime     string `json:"start_datetime"`
	EndDatetime       string `json:"end_datetime"`
	Purpose           string `json:"purpose,omitempty"`
	Status            string `json:"status"`
	QRCodeURL         string `json:"qrcode_url,omitempty"`
	CreatedAt         string `json:"created_at,omitempty"`
}

// ReservationList is the paged reservation envelope.
type ReservationList struct {
	Items []Reservation `json:"items"`
	Total int           `json:"total"`
}

// HistoryEntry is one audit record in a reservation's change history.
type HistoryEntry struct {
	ID                int    `json:"id"`
	ReservationCode   string `json:"reservation_code"`
	ReservationNumber string `json:"reservation_number,omitempty"`
	Action            string `json:"action"`
	Detail            string `json:"detail,omitempty"`
	CreatedAt         string `json:"created_at"`
}

// RecurringReservation owns zero or more child Reservations generated
// from a repeat pattern.
type RecurringReservation struct {
	ID                int      `json:"id"`
	ReservationCode   string   `json:"reservation_code,omitempty"`
	EquipmentID       int      `json:"equipment_id"`
	EquipmentName     string   `json:"equipment_name,omitempty"`
	EquipmentCategory string   `json:"equipment_category,omitempty"`
	EquipmentLocation string   `json:"equipment_location,omitempty"`
	PatternType       string   `json:"pattern_type"`
	DaysOfWeek        []int    `json:"days_of_week,omitempty"`
	DaysOfMonth       []int    `json:"days_of_month,omitempty"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	UserName          string   `json:"user_name"`
	UserDepartment    string   `json:"user_department"`
	UserContact       string   `json:"user_contact"`
	UserEmail         string   `json:"user_email,omitempty"`
	Purpose           string   `json:"purpose,omitempty"`
	Status            string   `json:"status"`
	Conflicts         string   `json:"conflicts,omitempty"`
	TotalPlanned      int      `json:"total_planned,omitempty"`
	CreatedCount      int      `json:"created_count,omitempty"`
	ConflictDates     []string `json:"conflict_dates,omitempty"`
	CreatedAt         string   `json:"created_at,omitempty"`
}

// RecurringReservationList is the paged recurring-reservation envelope.
type RecurringReservationList struct {
	Items []RecurringReservation `json:"items"`
	Total int                    `json:"total"`
}

// Announcement is a site-wide notice shown on the dashboard.
type Announcement struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Admin is an administrator account record (superadmin management).
type Admin struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

// AdminList is the paged admin envelope.
type AdminList struct {
	Items []Admin `json:"items"`
	Total int     `json:"total"`
}

// Settings is the free-form system settings document. The client never
// interprets individual keys; it renders and round-trips them.
type Settings map[string]any

// AvailabilitySlot describes one free/busy window for a device.
type AvailabilitySlot struct {
	StartDatetime string `json:"start_datetime"`
	EndDatetime   string `json:"end_datetime"`
	Available     bool   `json:"available"`
}

// Availability is the response of the per-device availability query.
type Availability struct {
	EquipmentID int                `json:"equipment_id"`
	Slots       []AvailabilitySlot `json:"slots"`
}

// DBColumn describes one column of a backend table (raw DB viewer).
type DBColumn struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
	Primary  bool   `json:"primary_key"`
}

// DBRows is one page of raw rows from a backend table.
type DBRows struct {
	Rows  []map[string]any `json:"rows"`
	Total int              `json:"total"`
}

// UnsplashPhoto is the subset of the image-proxy response the client
// cares about.
type UnsplashPhoto struct {
	ID          string            `json:"id"`
	Description string            `json:"description,omitempty"`
	URLs        map[string]string `json:"urls"`
}

// URL returns the photo URL for the requested size, falling back to
// "regular" when the size is missing.
func (p UnsplashPhoto) URL(size string) string {
	if p.URLs == nil {
		return ""
	}
	if u, ok := p.URLs[size]; ok && u != "" {
		return u
	}
	return p.URLs["regular"]
}

// UnsplashSearchResult is the paged photo search envelope.
type UnsplashSearchResult struct {
	Results []UnsplashPhoto `json:"results"`
	Total   int             `json:"total"`
}
