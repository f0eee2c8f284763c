package domain

import (
	"maps"
	"net/mail"
	"slices"
	"strings"
	"time"
)

// InquiryKind distinguishes the two intake forms.
type InquiryKind string

const (
	KindContact InquiryKind = "contact"
	KindQuote   InquiryKind = "quote"
)

// InquiryStatus tracks the follow-up lifecycle of a stored inquiry.
type InquiryStatus string

const (
	StatusReceived InquiryStatus = "received"
	StatusNotified InquiryStatus = "notified"
	StatusFailed   InquiryStatus = "failed"
)

// ContactForm is a general contact-page message.
type ContactForm struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone,omitempty" form:"phone"`
	Company string `json:"company,omitempty" form:"company"`
	Service string `json:"service,omitempty" form:"service"`
	Message string `json:"message" form:"message"`
}

// QuoteForm is a fuel supply quote request.
type QuoteForm struct {
	CustomerType     string  `json:"customer_type" form:"customerType"`
	CompanyName      string  `json:"company_name,omitempty" form:"companyName"`
	ContactName      string  `json:"contact_name" form:"contactName"`
	Email            string  `json:"email" form:"email"`
	Phone            string  `json:"phone" form:"phone"`
	FuelType         string  `json:"fuel_type" form:"fuelType"`
	Quantity         float64 `json:"quantity" form:"quantity"` // litres
	DeliveryLocation string  `json:"delivery_location" form:"deliveryLocation"`
	Message          string  `json:"message,omitempty" form:"message"`
}

// Inquiry is a submitted, validated form travelling across the intake boundary.
type Inquiry struct {
	ID          string        `json:"id"`
	Kind        InquiryKind   `json:"kind"`
	Contact     *ContactForm  `json:"contact,omitempty"`
	Quote       *QuoteForm    `json:"quote,omitempty"`
	Status      InquiryStatus `json:"status"`
	SubmittedAt time.Time     `json:"submitted_at"`
}

// Email returns the submitter's email address.
func (i Inquiry) Email() string {
	switch {
	case i.Contact != nil:
		return i.Contact.Email
	case i.Quote != nil:
		return i.Quote.Email
	}
	return ""
}

// SubmitterName returns the submitter's name.
func (i Inquiry) SubmitterName() string {
	switch {
	case i.Contact != nil:
		return i.Contact.Name
	case i.Quote != nil:
		return i.Quote.ContactName
	}
	return ""
}

// Acknowledgment is returned to the submitter once the inquiry crosses the boundary.
type Acknowledgment struct {
	Reference    string       `json:"reference"`
	Kind         InquiryKind  `json:"kind"`
	Confirmation Confirmation `json:"confirmation"`
}

// AcknowledgmentFor returns the user-facing confirmation for an inquiry kind.
func AcknowledgmentFor(kind InquiryKind) Confirmation {
	if kind == KindQuote {
		return Confirmation{
			Title:       "Quote Request Submitted",
			Description: "We'll get back to you within 24 hours with a detailed quote.",
		}
	}
	return Confirmation{
		Title:       "Message Sent!",
		Description: "Thank you for your inquiry. We'll get back to you soon.",
	}
}

// CustomerTypes and FuelTypes enumerate the quote form choices.
var (
	CustomerTypes = []string{"individual", "business", "fleet"}
	FuelTypes     = []string{"pms", "ago", "dpk", "mixed"}
)

// ValidationError carries per-field messages for a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(slices.Sorted(maps.Keys(e.Fields)), ", ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func required(v *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
}

func validEmail(v *ValidationError, field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v.add(field, "must be a valid email address")
		return
	}
	host := value[strings.LastIndex(value, "@")+1:]
	if !strings.Contains(host, ".") {
		v.add(field, "must be a valid email address")
	}
}

func oneOf(v *ValidationError, field, value string, allowed []string) {
	if value == "" {
		return
	}
	if slices.Contains(allowed, value) {
		return
	}
	v.add(field, "must be one of "+strings.Join(allowed, ", "))
}

// Normalize trims every field.
func (f *ContactForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Company = strings.TrimSpace(f.Company)
	f.Service = strings.TrimSpace(f.Service)
	f.Message = strings.TrimSpace(f.Message)
}

// Validate checks required fields and email shape.
func (f ContactForm) Validate() error {
	v := &ValidationError{}
	required(v, "name", f.Name)
	required(v, "email", f.Email)
	validEmail(v, "email", f.Email)
	required(v, "message", f.Message)
	return v.errOrNil()
}

// Normalize trims text fields and lower-cases the enumerations.
func (f *QuoteForm) Normalize() {
	f.CustomerType = strings.ToLower(strings.TrimSpace(f.CustomerType))
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.ContactName = strings.TrimSpace(f.ContactName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.FuelType = strings.ToLower(strings.TrimSpace(f.FuelType))
	f.DeliveryLocation = strings.TrimSpace(f.DeliveryLocation)
	f.Message = strings.TrimSpace(f.Message)
}

// Validate checks required fields, email shape and quantity. Customer and fuel
// type are optional but must come from their lists when set.
func (f QuoteForm) Validate() error {
	v := &ValidationError{}
	oneOf(v, "customer_type", f.CustomerType, CustomerTypes)
	required(v, "contact_name", f.ContactName)
	required(v, "email", f.Email)
	validEmail(v, "email", f.Email)
	required(v, "phone", f.Phone)
	oneOf(v, "fuel_type", f.FuelType, FuelTypes)
	if f.Quantity <= 0 {
		v.add("quantity", "must be a positive number of litres")
	}
	required(v, "delivery_location", f.DeliveryLocation)
	return v.errOrNil()
}
