package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// EntityModel is the base for entities addressed by stable string ids.
// Ids must survive export/import round-trips unchanged, so they are
// client-visible slugs or uuids rather than auto-increment integers.
type EntityModel struct {
	ID        string         `json:"id" gorm:"primaryKey;size:100"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// IntList is an int slice stored as a JSON column
type IntList []int

func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *IntList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			b = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(b, l)
}

// StringList is a string slice stored as a JSON column
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			b = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(b, l)
}

// Dedupe returns the list with repeated values dropped, first-seen
// order kept. Instructor id lists are sets; a duplicated id must not
// count as two slot occupants.
func (l StringList) Dedupe() StringList {
	seen := make(map[string]bool, len(l))
	out := make(StringList, 0, len(l))
	for _, s := range l {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Contains reports whether the list holds the given value
func (l StringList) Contains(v string) bool {
	for _, s := range l {
		if s == v {
			return true
		}
	}
	return false
}

// Program model - one offering of the schedule (year/term/group) with its
// own calendar parameters. Exactly one program is active at a time.
type Program struct {
	EntityModel
	AcademicYear string     `json:"academic_year" gorm:"size:20"`
	Term         string     `json:"term" gorm:"size:50"`
	GroupName    string     `json:"group" gorm:"size:100"`
	StartDate    string     `json:"start_date" gorm:"size:10"` // YYYY-MM-DD, treated as a Monday
	TotalWeeks   int        `json:"total_weeks" gorm:"default:14"`
	Holidays     StringList `json:"holidays" gorm:"type:json"`      // ISO dates
	SessionTimes StringList `json:"session_times" gorm:"type:json"` // allowed HH:MM slots
	HasSubgroups bool       `json:"has_subgroups" gorm:"default:false"`
	Subgroups    StringList `json:"subgroups" gorm:"type:json"` // e.g. ["A","B"]
	Active       bool       `json:"active" gorm:"default:false;index"`
}

// Block model - a named curriculum segment spanning a contiguous run of
// weeks. Order is dense 1..N; the union of all blocks' weeks must cover
// 1..totalWeekCount with no gaps (scheduler.Reorder enforces this).
type Block struct {
	EntityModel
	Name      string  `json:"name" gorm:"size:255;not null"`
	ShortName string  `json:"short_name" gorm:"size:50"`
	Order     int     `json:"order" gorm:"column:block_order;not null"`
	Weeks     IntList `json:"weeks" gorm:"type:json"`
	Color     string  `json:"color" gorm:"size:50"`
}

// Course model
type Course struct {
	EntityModel
	Name    string `json:"name" gorm:"size:255;not null"`
	BlockID string `json:"block_id" gorm:"size:100;index"`
}

// Instructor model
type Instructor struct {
	EntityModel
	Name       string `json:"name" gorm:"size:255;not null"`
	Title      string `json:"title" gorm:"size:100"`
	Department string `json:"department" gorm:"size:255"`
}

// DisplayName returns "title + name" the way the schedule renders it
func (i Instructor) DisplayName() string {
	if i.Title == "" {
		return i.Name
	}
	return i.Title + " " + i.Name
}

// Session types
const (
	SessionTypeLecture  = "lecture"
	SessionTypePractice = "practice"
)

// SubgroupAll marks a session attended by every subgroup together
const SubgroupAll = "all"

// Session model - one class meeting located abstractly by
// (block, week-of-block, day-of-week) rather than by absolute date.
// An empty ProgramID means legacy/global: the session belongs to every
// program.
type Session struct {
	EntityModel
	ProgramID     string     `json:"program_id" gorm:"size:100;index"`
	BlockID       string     `json:"block_id" gorm:"size:100;not null;index"`
	WeekOfBlock   int        `json:"week_of_block" gorm:"default:1"`
	DayOfWeek     int        `json:"day_of_week" gorm:"default:0"` // 0=Monday .. 4=Friday
	Time          string     `json:"time" gorm:"size:5"`           // HH:MM
	CourseID      string     `json:"course_id" gorm:"size:100;index"`
	InstructorIDs StringList `json:"instructor_ids" gorm:"type:json"`
	Type          string     `json:"type" gorm:"size:20;default:'lecture';type:enum('lecture','practice')"`
	Subgroup      string     `json:"subgroup" gorm:"size:50;default:'all'"`
	Location      string     `json:"location" gorm:"size:255;index"`
}

// Log model for activity tracking
type ActivityLog struct {
	BaseModel
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID string `json:"resource_id" gorm:"size:100"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`
}

// LogArchive model for tracking archived logs
type LogArchive struct {
	BaseModel
	FileName    string    `json:"file_name" gorm:"size:255;not null"`
	S3Key       string    `json:"s3_key" gorm:"size:500;not null"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	RecordCount int       `json:"record_count" gorm:"not null"`
	FileSize    int64     `json:"file_size" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:50;not null;default:'pending';type:enum('pending','completed','failed')"` // pending, completed, failed
	Error       string    `json:"error" gorm:"type:text"`
}
