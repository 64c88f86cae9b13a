package types

import (
	ierr "github.com/oficinago/oficinago/internal/errors"
)

// Status is the lifecycle status of a stored entity
type Status string

const (
	StatusPublished Status = "published"
	StatusDeleted   Status = "deleted"
	StatusArchived  Status = "archived"
)

// ServiceStatus is the workshop-facing progress status of a service record.
// The values are the exact labels shown to the client on the receipt and in
// the caption text, hence the Portuguese strings.
type ServiceStatus string

const (
	ServiceStatusUnderReview  ServiceStatus = "Em análise"
	ServiceStatusAwaitingPart ServiceStatus = "Aguardando peça"
	ServiceStatusInProgress   ServiceStatus = "Em execução"
	ServiceStatusDone         ServiceStatus = "Finalizado"
	ServiceStatusDelivered    ServiceStatus = "Entregue"
)

func (s ServiceStatus) String() string {
	return string(s)
}

func (s ServiceStatus) Validate() error {
	switch s {
	case ServiceStatusUnderReview,
		ServiceStatusAwaitingPart,
		ServiceStatusInProgress,
		ServiceStatusDone,
		ServiceStatusDelivered:
		return nil
	default:
		return ierr.NewErrorf("invalid service status: %s", s).
			WithHint("Status must be one of the workshop progress labels").
			Mark(ierr.ErrValidation)
	}
}
