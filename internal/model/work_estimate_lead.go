package model

// Lead statuses accepted in WorkEstimateLead.LeadStatus.
const (
	LeadStatusDraft     = "DRAFT"
	LeadStatusSubmitted = "SUBMITTED"
	LeadStatusApproved  = "APPROVED"
	LeadStatusRejected  = "REJECTED"
)

// WorkEstimateLead is the header record of a work estimate.
type WorkEstimateLead struct {
	ID             *int64   `json:"id,omitempty"`
	WorkEstimateID *int64   `json:"workEstimateId,omitempty" validate:"omitempty,gt=0" patch:"omitempty,gt=0"`
	Title          *string  `json:"title,omitempty" validate:"required,max=255" patch:"omitempty,max=255"`
	Notes          *string  `json:"notes,omitempty" validate:"omitempty,max=4000" patch:"omitempty,max=4000"`
	LeadAmount     *float64 `json:"leadAmount,omitempty" validate:"omitempty,gte=0" patch:"omitempty,gte=0"`
	LeadStatus     *string  `json:"leadStatus,omitempty" validate:"omitempty,oneof=DRAFT SUBMITTED APPROVED REJECTED" patch:"omitempty,oneof=DRAFT SUBMITTED APPROVED REJECTED"`
}

func (w *WorkEstimateLead) GetID() *int64 { return w.ID }

func (w *WorkEstimateLead) SetID(id int64) { w.ID = &id }

// Merge applies a merge-patch: nil fields in patch leave the receiver untouched.
func (w *WorkEstimateLead) Merge(patch *WorkEstimateLead) {
	if patch == nil {
		return
	}
	mergeField(&w.WorkEstimateID, patch.WorkEstimateID)
	mergeField(&w.Title, patch.Title)
	mergeField(&w.Notes, patch.Notes)
	mergeField(&w.LeadAmount, patch.LeadAmount)
	mergeField(&w.LeadStatus, patch.LeadStatus)
}
