package tasktrack

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the principal model. The password hash is never serialized.
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash   string     `bun:"password_hash,notnull" json:"-"`
	LoginAttempts  int        `bun:"login_attempts" json:"-"`
	LoginAttemptAt *time.Time `bun:"login_attempt_at" json:"-"`
	LoggedInAt     *time.Time `bun:"loggedin_at" json:"-"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Identity implementation, so a User can be handed straight to TokenService.

func (u *User) Identity() Identity { return userIdentity{u} }

type userIdentity struct {
	user *User
}

func (i userIdentity) ID() string    { return i.user.ID.String() }
func (i userIdentity) Email() string { return i.user.Email }

// PublicProfile is the redacted user shape returned by issuance endpoints.
type PublicProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile returns the redacted projection of the user.
func (u *User) Profile() PublicProfile {
	return PublicProfile{ID: u.ID.String(), Email: u.Email}
}

// Todo is an owned resource. Every access path filters by UserID.
type Todo struct {
	bun.BaseModel `bun:"table:todos,alias:tdo"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id"`
	Title         string     `bun:"title,notnull" json:"title"`
	Description   string     `bun:"description" json:"description"`
	Completed     bool       `bun:"completed,default:false" json:"completed"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
