// Package domain defines the persistence models for the PawPal marketplace:
// users, dog listings, adoption requests, abuse reports, moderation actions,
// and personality tags. These types are mapped with GORM and form the core
// data layer of the application.
package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User roles. A user's role drives authorization only; it does not change
// which listings or requests the user can own.
const (
	RoleAdopter = "adopter"
	RoleFeeder  = "feeder"
	RoleShelter = "shelter"
	RoleAdmin   = "admin"
)

// Dog listing lifecycle.
const (
	DogAvailable = "available"
	DogPending   = "pending"
	DogAdopted   = "adopted"
)

// Adoption request lifecycle. A request starts pending; the three other
// states are terminal.
const (
	RequestPending   = "pending"
	RequestApproved  = "approved"
	RequestDeclined  = "declined"
	RequestCancelled = "cancelled"
)

// Report lifecycle.
const (
	ReportOpen      = "open"
	ReportActioned  = "actioned"
	ReportDismissed = "dismissed"
)

// Moderation actions an admin may take on a report.
const (
	ActionHideDog        = "hide-dog"
	ActionUnhideDog      = "unhide-dog"
	ActionSoftDeleteDog  = "soft-delete-dog"
	ActionOverrideStatus = "override-status"
	ActionDismiss        = "dismiss"
)

// User is the internal identity record, linked 1:1 to an external auth
// identity. Rows are created lazily on first authenticated request
// (bootstrap-on-login). The auth linkage is immutable; profile fields and
// role are mutable by the user or an admin.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - AuthUserID: external auth identity; unique, never rewritten.
//   - Role: one of adopter/feeder/shelter/admin (enforced by DB constraint).
//   - Phone / Locality: optional profile fields.
type User struct {
	ID         string    `json:"id"           gorm:"type:char(36);primaryKey"`
	AuthUserID string    `json:"auth_user_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_users_auth"`
	Name       string    `json:"name"         gorm:"type:varchar(120);not null"`
	Email      string    `json:"email"        gorm:"type:varchar(255);not null"`
	Phone      *string   `json:"phone,omitempty"    gorm:"type:varchar(32)"`
	Role       string    `json:"role"         gorm:"type:varchar(16);not null;default:'adopter';check:role IN ('adopter','feeder','shelter','admin')"`
	Locality   *string   `json:"locality,omitempty" gorm:"type:varchar(120)"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Dog is a street-dog listing posted by exactly one caretaker. It carries
// the searchable attributes (area, coordinates, energy, compatibility),
// media URLs, health flags, a lifecycle status, and two moderation markers:
// IsHidden (reversible) and DeletedAt (soft delete).
//
// Image and video URLs are stored as JSON arrays; tag associations live in
// the dog_personality_tags join table.
type Dog struct {
	ID          string   `json:"id"          gorm:"type:char(36);primaryKey"`
	PostedBy    string   `json:"posted_by"   gorm:"type:char(36);not null;index:idx_dogs_owner"`
	Name        *string  `json:"name"        gorm:"type:varchar(80)"`
	Breed       *string  `json:"breed"       gorm:"type:varchar(80)"`
	AgeYears    *float64 `json:"age_years"`
	Gender      string   `json:"gender"      gorm:"type:varchar(8);not null;default:'unknown';check:gender IN ('male','female','unknown')"`
	Description *string  `json:"description" gorm:"type:text"`
	Area        string   `json:"area"        gorm:"type:varchar(120);not null;index:idx_dogs_area"`
	LocationLat *float64 `json:"location_lat"`
	LocationLng *float64 `json:"location_lng"`

	Images datatypes.JSONSlice[string] `json:"images" gorm:"not null"`
	Videos datatypes.JSONSlice[string] `json:"videos"`

	HealthSterilised bool    `json:"health_sterilised" gorm:"not null;default:false"`
	HealthVaccinated bool    `json:"health_vaccinated" gorm:"not null;default:false"`
	HealthDewormed   bool    `json:"health_dewormed"   gorm:"not null;default:false"`
	MicrochipID      *string `json:"microchip_id" gorm:"type:varchar(80)"`

	// Compatibility flags are tri-state: true/false when assessed, null
	// when unknown.
	CompatibilityKids *bool `json:"compatibility_kids"`
	CompatibilityDogs *bool `json:"compatibility_dogs"`
	CompatibilityCats *bool `json:"compatibility_cats"`

	EnergyLevel  *string `json:"energy_level" gorm:"type:varchar(20)"`
	Temperament  *string `json:"temperament"  gorm:"type:varchar(100)"`
	Playfulness  *string `json:"playfulness"  gorm:"type:varchar(100)"`
	SpecialNeeds *string `json:"special_needs" gorm:"type:varchar(200)"`

	Status   string `json:"status"    gorm:"type:varchar(16);not null;default:'available';index:idx_dogs_status;check:status IN ('available','pending','adopted')"`
	IsHidden bool   `json:"is_hidden" gorm:"not null;default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	PersonalityTags []PersonalityTag `json:"personality_tags,omitempty" gorm:"many2many:dog_personality_tags;"`

	// Owner is the caretaker who posted the listing.
	Owner User `json:"-" gorm:"foreignKey:PostedBy;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Dog.
func (Dog) TableName() string { return "dogs" }

// AdoptionRequest links one dog and one adopter. At most one pending request
// may exist per (dog, adopter) pair; that invariant is backed by a partial
// unique index created during migration (see repo.Migrate).
type AdoptionRequest struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	DogID     string    `json:"dog_id"     gorm:"type:char(36);not null;index:idx_requests_dog"`
	AdopterID string    `json:"adopter_id" gorm:"type:char(36);not null;index:idx_requests_adopter"`
	Message   *string   `json:"message"    gorm:"type:varchar(500)"`
	Status    string    `json:"status"     gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','approved','declined','cancelled')"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Dog     Dog  `json:"-" gorm:"foreignKey:DogID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Adopter User `json:"-" gorm:"foreignKey:AdopterID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for AdoptionRequest.
func (AdoptionRequest) TableName() string { return "adoption_requests" }

// Terminal reports whether the request has reached a final state.
func (r AdoptionRequest) Terminal() bool { return r.Status != RequestPending }

// Report is an abuse report filed by an authenticated user against a dog
// listing. Only admins mutate reports, and only via moderation actions.
type Report struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	TargetType  string    `json:"target_type" gorm:"type:varchar(16);not null;default:'dog';check:target_type IN ('dog')"`
	TargetID    string    `json:"target_id"   gorm:"type:char(36);not null;index:idx_reports_target"`
	ReporterID  string    `json:"reporter_id" gorm:"type:char(36);not null;index:idx_reports_reporter"`
	Category    string    `json:"category"    gorm:"type:varchar(16);not null;check:category IN ('abuse','spam','wrong-info','duplicate','other')"`
	Message     *string   `json:"message"     gorm:"type:varchar(500)"`
	EvidenceURL *string   `json:"evidence_url" gorm:"type:varchar(2048)"`
	Status      string    `json:"status"      gorm:"type:varchar(16);not null;default:'open';index:idx_reports_status;check:status IN ('open','actioned','dismissed')"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Reporter User `json:"-" gorm:"foreignKey:ReporterID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Report.
func (Report) TableName() string { return "reports" }

// ModerationAction is an append-only log row recording a single admin
// action. Meta carries action-specific payload, e.g. {"status":"adopted"}
// for a status override. Rows are never updated or deleted.
type ModerationAction struct {
	ID          string            `json:"id"        gorm:"type:char(36);primaryKey"`
	ReportID    *string           `json:"report_id" gorm:"type:char(36);index:idx_modactions_report"`
	ActorUserID string            `json:"actor_user_id" gorm:"type:char(36);not null"`
	Action      string            `json:"action"    gorm:"type:varchar(32);not null"`
	Notes       *string           `json:"notes"     gorm:"type:varchar(500)"`
	Meta        datatypes.JSONMap `json:"meta"`
	CreatedAt   time.Time         `json:"created_at"`

	Actor User `json:"-" gorm:"foreignKey:ActorUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ModerationAction.
func (ModerationAction) TableName() string { return "moderation_actions" }

// PersonalityTag is a small lookup table, many-to-many with dogs.
type PersonalityTag struct {
	ID        uint      `json:"id"       gorm:"primaryKey"`
	TagName   string    `json:"tag_name" gorm:"type:varchar(60);not null;uniqueIndex:ux_tags_name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name for PersonalityTag.
func (PersonalityTag) TableName() string { return "personality_tags" }
