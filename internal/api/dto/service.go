package dto

import (
	"github.com/oficinago/oficinago/internal/domain/receipt"
	"github.com/oficinago/oficinago/internal/domain/service"
	ierr "github.com/oficinago/oficinago/internal/errors"
	"github.com/oficinago/oficinago/internal/types"
	"github.com/oficinago/oficinago/internal/validator"
)

// FileInput is one uploaded attachment as received at the form boundary
type FileInput struct {
	Name        string
	ContentType string
	Data        []byte
}

// CreateServiceRequest carries the validated form fields. The core pipeline
// only ever consumes the typed Record built from it, never a raw field map.
type CreateServiceRequest struct {
	Client      string `json:"client" form:"cliente" validate:"required"`
	Phone       string `json:"phone" form:"telefone" validate:"required,br_phone"`
	Equipment   string `json:"equipment" form:"veiculo" validate:"required"`
	Plate       string `json:"plate" form:"placa" validate:"required"`
	Status      string `json:"status" form:"status" validate:"required,service_status"`
	Description string `json:"description" form:"servico" validate:"required"`
	Price       string `json:"price" form:"valor"`

	Files []FileInput `json:"-" form:"-"`
}

// Validate rejects malformed records at the boundary: the br_phone and
// service_status validations run before any persistence or rendering attempt
func (r *CreateServiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToRecord builds the domain record, normalizing the phone to digits and the
// price to the two-decimal form with the zero sentinel for "quote pending"
func (r *CreateServiceRequest) ToRecord() (*service.Record, error) {
	phone, err := types.ValidatePhone(r.Phone)
	if err != nil {
		return nil, err
	}

	record := service.NewRecord()
	record.Client = r.Client
	record.Phone = phone
	record.Equipment = r.Equipment
	record.Plate = r.Plate
	record.ServiceStatus = types.ServiceStatus(r.Status)
	record.Description = r.Description
	record.Price = types.ParsePrice(r.Price)

	for _, f := range r.Files {
		if len(f.Data) == 0 {
			return nil, ierr.NewErrorf("attachment %s is empty", f.Name).
				WithHint("Arquivo anexado está vazio").
				Mark(ierr.ErrValidation)
		}
		record.Attachments = append(record.Attachments, service.NewAttachment(f.Name, f.ContentType, f.Data))
	}
	return record, nil
}

// ServiceRecordResponse is the API shape of a persisted record
type ServiceRecordResponse struct {
	*service.Record
	// PriceDisplay is the headline form: formatted currency, or the quote
	// pending label for the sentinel
	PriceDisplay string `json:"price_display"`
}

func NewServiceRecordResponse(record *service.Record, display string) *ServiceRecordResponse {
	return &ServiceRecordResponse{Record: record, PriceDisplay: display}
}

// ListServicesResponse is the history view: most recent records first
type ListServicesResponse struct {
	Items []*ServiceRecordResponse `json:"items"`
	Total int                      `json:"total"`
}

// DeliveryResponse wraps the cascade's terminal outcome
type DeliveryResponse struct {
	*receipt.Delivery
}

// InteractionStatusResponse is a snapshot of the interaction state machine
type InteractionStatusResponse struct {
	Busy       bool   `json:"busy"`
	Action     string `json:"action,omitempty"`
	StatusText string `json:"status_text,omitempty"`
}

