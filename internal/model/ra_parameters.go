package model

// RaParameters is a rate-analysis parameter record.
type RaParameters struct {
	ID          *int64   `json:"id,omitempty"`
	Name        *string  `json:"name,omitempty" validate:"required,max=255" patch:"omitempty,max=255"`
	Value       *float64 `json:"value,omitempty" validate:"omitempty,gte=0" patch:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000" patch:"omitempty,max=2000"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

func (r *RaParameters) GetID() *int64 { return r.ID }

func (r *RaParameters) SetID(id int64) { r.ID = &id }

// Merge applies a merge-patch: nil fields in patch leave the receiver untouched.
// The identifier is never changed.
func (r *RaParameters) Merge(patch *RaParameters) {
	if patch == nil {
		return
	}
	mergeField(&r.Name, patch.Name)
	mergeField(&r.Value, patch.Value)
	mergeField(&r.Description, patch.Description)
	mergeField(&r.IsActive, patch.IsActive)
}
