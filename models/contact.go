package models

// ContactForm carries a visitor's contact submission. Nothing is persisted;
// the payload is relayed as an email and discarded.
type ContactForm struct {
	FirstName string `json:"first_name" form:"firstName" validate:"required"`
	LastName  string `json:"last_name" form:"lastName" validate:"required"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Phone     string `json:"phone" form:"phone"`
	Subject   string `json:"subject" form:"subject" validate:"required"`
	Message   string `json:"message" form:"message" validate:"required"`
}
