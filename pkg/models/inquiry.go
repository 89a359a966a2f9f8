package models

import (
	"fmt"

	"github.com/campusbridge/campusbridge/pkg/repository/document"
)

// InquirySector identifies which side of the marketplace a contact
// form submission concerns.
type InquirySector string

const (
	SectorUniversity InquirySector = "University Sector"
	SectorIndustrial InquirySector = "Industrial Sector"
	SectorOther      InquirySector = "Other"
)

// InquiryStatus tracks admin triage of a submission.
type InquiryStatus string

const (
	InquiryPending  InquiryStatus = "pending"
	InquiryReviewed InquiryStatus = "reviewed"
	InquiryResolved InquiryStatus = "resolved"
)

// Valid reports whether the status is one of the known values.
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryPending, InquiryReviewed, InquiryResolved:
		return true
	}
	return false
}

// Inquiry is a standalone contact-form record with no foreign
// references.
type Inquiry struct {
	document.Base
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Sector  InquirySector `json:"sector"`
	Message string        `json:"message"`
	Status  InquiryStatus `json:"status"`
}

func (i *Inquiry) Collection() string { return "inquiries" }

// CreatorRef returns nil; inquiries are anonymous submissions.
func (i *Inquiry) CreatorRef() *document.Ref { return nil }

func (i *Inquiry) Validate() error {
	if err := requireString("name", i.Name); err != nil {
		return err
	}
	if err := requireString("email", i.Email); err != nil {
		return err
	}
	if err := requireString("message", i.Message); err != nil {
		return err
	}
	switch i.Sector {
	case SectorUniversity, SectorIndustrial, SectorOther:
	default:
		return fmt.Errorf("invalid sector: %s", i.Sector)
	}
	if i.Status != "" && !i.Status.Valid() {
		return fmt.Errorf("invalid status: %s", i.Status)
	}
	return nil
}
