package controller

import (
	"net/http"

	"github.com/campusbridge/campusbridge/pkg/email"
	"github.com/campusbridge/campusbridge/pkg/models"
	"github.com/campusbridge/campusbridge/pkg/observability/logger"
	"github.com/campusbridge/campusbridge/pkg/repository/document"
	"github.com/campusbridge/campusbridge/pkg/server/router"
)

// InquiryController accepts public contact-form submissions.
type InquiryController struct {
	inquiries *document.Repository[models.Inquiry, *models.Inquiry]
	notifier  email.Notifier
	log       logger.Logger
}

// NewInquiryController builds the controller. notifier may be nil when
// email notification is disabled.
func NewInquiryController(inquiries *document.Repository[models.Inquiry, *models.Inquiry], notifier email.Notifier, log logger.Logger) *InquiryController {
	return &InquiryController{inquiries: inquiries, notifier: notifier, log: log}
}

// Create stores a new inquiry with status pending and notifies the
// admin inbox best effort.
func (i *InquiryController) Create(c router.Context) error {
	var inquiry models.Inquiry
	if err := c.Bind(&inquiry); err != nil {
		return Fail(c, http.StatusBadRequest, err.Error())
	}

	inquiry.SetID("")
	inquiry.Status = models.InquiryPending

	if err := inquiry.Validate(); err != nil {
		return Fail(c, http.StatusBadRequest, err.Error())
	}
	if err := i.inquiries.Save(c.Request().Context(), &inquiry); err != nil {
		i.log.Error("inquiry save failed", "error", err)
		return Error(c, NewInternalError("inquiry save failed", err))
	}

	if i.notifier != nil {
		snapshot := inquiry
		go func() {
			if err := i.notifier.NotifyInquiry(&snapshot); err != nil {
				i.log.Warn("inquiry notification failed", "error", err, "inquiry_id", snapshot.GetID())
			}
		}()
	}
	return Created(c, &inquiry)
}
