package models

// Credentials represents a LinkedIn account login identity
type Credentials struct {
	Email    string
	Password string
}
