package order

import (
	"valet/internal/pkg/errs"
)

// Contact is the optional emergency contact recorded on an order.
type Contact struct {
	name  string
	phone string
}

// NewContact creates a Contact; both name and phone are required.
func NewContact(name string, phone string) (Contact, error) {
	if name == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact name")
	}
	if phone == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact phone")
	}
	return Contact{name: name, phone: phone}, nil
}

// Name returns the contact's name.
func (c Contact) Name() string {
	return c.name
}

// Phone returns the contact's phone number.
func (c Contact) Phone() string {
	return c.phone
}
