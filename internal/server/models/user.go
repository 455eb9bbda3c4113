package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a registered account. The role pointer is resolved by the
// repository when the user is loaded; an anonymous caller is a nil
// *User, which satisfies none of the permission checks.
type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Confirmed    bool      `db:"confirmed"`
	Name         string    `db:"name"`
	Location     string    `db:"location"`
	AboutMe      string    `db:"about_me"`
	MemberSince  time.Time `db:"member_since"`
	LastSeen     time.Time `db:"last_seen"`
	AvatarHash   string    `db:"avatar_hash"`
	RoleID       int64     `db:"role_id"`

	Role *Role `db:"-"`
}

// Can reports whether the user's role grants every bit of the
// requested mask. A nil user or a user without a loaded role grants
// nothing.
func (u *User) Can(p Permission) bool {
	return u != nil && u.Role.Can(p)
}

// IsAdministrator reports whether the user holds the Administer bit.
func (u *User) IsAdministrator() bool {
	return u.Can(PermissionAdminister)
}

// SetPassword hashes the plaintext password with bcrypt and stores
// only the hash.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword checks a plaintext candidate against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// AvatarHash is the md5 hex digest of the lower-cased email, used as
// the gravatar key.
func AvatarHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(email)))
	return hex.EncodeToString(sum[:])
}

// Gravatar builds the avatar URL for the user. Falls back to hashing
// the email when the cached hash is empty.
func (u *User) Gravatar(size int, defaultStyle, rating string) string {
	hash := u.AvatarHash
	if hash == "" {
		hash = AvatarHash(u.Email)
	}
	return fmt.Sprintf("https://secure.gravatar.com/avatar/%s?s=%d&d=%s&r=%s",
		hash, size, defaultStyle, rating)
}

// UserProjection is the JSON view of a user returned over the API.
type UserProjection struct {
	URL          string    `json:"url"`
	Username     string    `json:"username"`
	MemberSince  time.Time `json:"member_since"`
	LastSeen     time.Time `json:"last_seen"`
	Machines     string    `json:"machines"`
	MachineCount int64     `json:"machine_count"`
}

// Projection renders the user for API responses. The machine count is
// supplied by the caller; no lazy collections cross this boundary.
func (u *User) Projection(urls *URLBuilder, machineCount int64) UserProjection {
	return UserProjection{
		URL:          urls.User(u.ID),
		Username:     u.Username,
		MemberSince:  u.MemberSince,
		LastSeen:     u.LastSeen,
		Machines:     urls.UserMachines(u.ID),
		MachineCount: machineCount,
	}
}
