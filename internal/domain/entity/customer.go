package entity

import "time"

// Customer cliente de la farmacia.
type Customer struct {
	ID                   string     `json:"id"`
	LastName             string     `json:"last_name"`
	FirstName            string     `json:"first_name"`
	Phone                string     `json:"phone,omitempty"`
	Email                string     `json:"email,omitempty"`
	Address              string     `json:"address,omitempty"`
	BirthDate            *time.Time `json:"birth_date,omitempty"`
	SocialSecurityNumber string     `json:"social_security_number,omitempty"`
	RegisteredAt         time.Time  `json:"registered_at"`
}

// FullName nombre y apellido.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
