package models

// TimestampLayout is the ISO-8601 layout used for created_at, millisecond precision in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// User represents a user of the service.
// ID is assigned by the store; UUID and CreatedAt are assigned on creation. None of them change afterwards.
type User struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	UUID      string `json:"uuid" gorm:"type:varchar(36);not null;uniqueIndex:users_uuid_idx"`
	Name      string `json:"name" gorm:"type:text;not null"`
	Email     string `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	CreatedAt string `json:"created_at" gorm:"type:text;not null"`
}

// UserChanges holds the mutable fields of a user. Nil fields are left untouched.
type UserChanges struct {
	Name  *string
	Email *string
}

// Empty reports whether no field is set.
func (c UserChanges) Empty() bool {
	return c.Name == nil && c.Email == nil
}

// Columns returns the changed fields keyed by column name.
func (c UserChanges) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 2)
	if c.Name != nil {
		cols["name"] = *c.Name
	}
	if c.Email != nil {
		cols["email"] = *c.Email
	}
	return cols
}
