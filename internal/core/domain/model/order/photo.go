package order

import (
	"errors"
	"fmt"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/errs"
	"valet/internal/pkg/guard"
)

// ErrHandoverPhotoIsNotConstructed indicates a zero-value HandoverPhoto.
var ErrHandoverPhotoIsNotConstructed = errors.New(
	"HandoverPhoto must be created via NewHandoverPhoto or RestoreHandoverPhoto")

// PhotoSide tags a handover photo with the vehicle side it documents.
// At most one current photo exists per (order, side); uploading a new one
// supersedes the previous.
type PhotoSide int

const (
	// SideUnknown represents an invalid side.
	SideUnknown PhotoSide = iota
	// SideFront is the vehicle front.
	SideFront
	// SideBack is the vehicle back.
	SideBack
	// SideLeft is the vehicle left side.
	SideLeft
	// SideRight is the vehicle right side.
	SideRight
)

func photoSideStrings() map[PhotoSide]string {
	return map[PhotoSide]string{
		SideUnknown: "unknown",
		SideFront:   "front",
		SideBack:    "back",
		SideLeft:    "left",
		SideRight:   "right",
	}
}

// ParsePhotoSide converts the wire form ("front", "back", "left", "right").
func ParsePhotoSide(s string) (PhotoSide, error) {
	for side, str := range photoSideStrings() {
		if side != SideUnknown && str == s {
			return side, nil
		}
	}
	return SideUnknown, errs.NewValueIsInvalidErrorWithCause("photo side",
		fmt.Errorf("%q is not a valid side", s))
}

// String returns the wire form of the side.
func (s PhotoSide) String() string {
	if str, ok := photoSideStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects SideUnknown and out-of-range values.
func (s PhotoSide) Validate() error {
	if s < SideFront || s > SideRight {
		return errs.NewValueIsInvalidErrorWithCause("photo side",
			fmt.Errorf("%d is not a valid side", s))
	}
	return nil
}

// HandoverPhoto is a reference pointer to a vehicle handover photo document.
// The engine records references only; media handling is out of scope.
type HandoverPhoto struct {
	id          kernel.UUID
	orderNumber kernel.OrderNumber
	side        PhotoSide
	url         string
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewHandoverPhoto creates a photo reference for one side of the vehicle.
func NewHandoverPhoto(
	id kernel.UUID,
	orderNumber kernel.OrderNumber,
	side PhotoSide,
	url string,
) (*HandoverPhoto, error) {
	if err := errors.Join(
		id.Validate(),
		orderNumber.Validate(),
		side.Validate(),
	); err != nil {
		return nil, err
	}
	if url == "" {
		return nil, errs.NewValueIsRequiredError("photo url")
	}

	return &HandoverPhoto{
		id:          id,
		orderNumber: orderNumber,
		side:        side,
		url:         url,
		createdAt:   time.Now().UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreHandoverPhoto reconstructs a photo reference from persistence.
func RestoreHandoverPhoto(
	id kernel.UUID,
	orderNumber kernel.OrderNumber,
	side PhotoSide,
	url string,
	createdAt time.Time,
) (*HandoverPhoto, error) {
	photo, err := NewHandoverPhoto(id, orderNumber, side, url)
	if err != nil {
		return nil, err
	}

	photo.createdAt = createdAt
	return photo, nil
}

// Validate ensures the photo was created through a constructor.
func (p *HandoverPhoto) Validate() error {
	if p == nil {
		return ErrHandoverPhotoIsNotConstructed
	}
	return p.guard.Validate(ErrHandoverPhotoIsNotConstructed)
}

// ID returns the photo's identifier.
func (p *HandoverPhoto) ID() kernel.UUID {
	return p.id
}

// OrderNumber returns the parent order reference.
func (p *HandoverPhoto) OrderNumber() kernel.OrderNumber {
	return p.orderNumber
}

// Side returns the vehicle side the photo documents.
func (p *HandoverPhoto) Side() PhotoSide {
	return p.side
}

// URL returns the photo document pointer.
func (p *HandoverPhoto) URL() string {
	return p.url
}

// CreatedAt returns the upload timestamp.
func (p *HandoverPhoto) CreatedAt() time.Time {
	return p.createdAt
}
