// Package userdir reads the account directory: profiles, roles and push
// tokens. Accounts are managed by the identity service; this adapter only
// reads them, plus it owns the in-app notification inbox rows.
package userdir

import (
	"context"
	"errors"
	"time"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/ports"
	"valet/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDTO is the database row of one account.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(16);index"`
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// PushTokenDTO is one registered device token of an account.
type PushTokenDTO struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token  string    `gorm:"primaryKey"`
}

// TableName overrides GORM's default naming to use "push_tokens".
func (PushTokenDTO) TableName() string {
	return "push_tokens"
}

// InboxDTO is one in-app notification row.
type InboxDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	Title       string
	Body        string
	OrderNumber *int64
	Read        bool
	CreatedAt   time.Time
}

// TableName overrides GORM's default naming to use "notifications".
func (InboxDTO) TableName() string {
	return "notifications"
}

// GormUserDirectory implements ports.UserDirectory using GORM.
type GormUserDirectory struct {
	db *gorm.DB
}

// NewGormUserDirectory creates a new GORM user directory adapter.
func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

// Get retrieves one profile with its push tokens.
func (d *GormUserDirectory) Get(ctx context.Context, id kernel.UUID) (ports.Profile, error) {
	if err := id.Validate(); err != nil {
		return ports.Profile{}, err
	}

	var dto UserDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Profile{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return ports.Profile{}, err
	}

	return d.toProfile(ctx, dto)
}

// GetAdmins retrieves every admin profile.
func (d *GormUserDirectory) GetAdmins(ctx context.Context) ([]ports.Profile, error) {
	var dtos []UserDTO
	if err := d.db.WithContext(ctx).
		Find(&dtos, "role = ?", actor.RoleAdmin.String()).Error; err != nil {
		return nil, err
	}

	profiles := make([]ports.Profile, 0, len(dtos))
	for _, dto := range dtos {
		profile, err := d.toProfile(ctx, dto)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// AddInboxRow persists one in-app notification.
func (d *GormUserDirectory) AddInboxRow(ctx context.Context, userID kernel.UUID, title, body string, number *kernel.OrderNumber) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	row := InboxDTO{
		ID:        uuid.New(),
		UserID:    userID.Bytes(),
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if number != nil {
		seq := number.Seq()
		row.OrderNumber = &seq
	}

	return d.db.WithContext(ctx).Create(&row).Error
}

func (d *GormUserDirectory) toProfile(ctx context.Context, dto UserDTO) (ports.Profile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Profile{}, err
	}
	role, err := actor.ParseRole(dto.Role)
	if err != nil {
		return ports.Profile{}, err
	}

	var tokens []PushTokenDTO
	if err = d.db.WithContext(ctx).
		Find(&tokens, "user_id = ?", dto.ID).Error; err != nil {
		return ports.Profile{}, err
	}

	pushTokens := make([]string, 0, len(tokens))
	for _, t := range tokens {
		pushTokens = append(pushTokens, t.Token)
	}

	return ports.Profile{
		ID:         id,
		Role:       role,
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		Email:      dto.Email,
		Phone:      dto.Phone,
		PushTokens: pushTokens,
	}, nil
}
