package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestRaParameters_Merge(t *testing.T) {
	stored := &RaParameters{ID: ptr(int64(1)), Name: ptr("old"), Description: ptr("keep me")}
	stored.Merge(&RaParameters{ID: ptr(int64(9)), Name: ptr("new"), Value: ptr(2.5)})

	assert.Equal(t, int64(1), *stored.ID)
	assert.Equal(t, "new", *stored.Name)
	assert.Equal(t, 2.5, *stored.Value)
	assert.Equal(t, "keep me", *stored.Description)
	assert.Nil(t, stored.IsActive)
}

func TestWorkEstimateLead_MergeIgnoresNull(t *testing.T) {
	stored := &WorkEstimateLead{ID: ptr(int64(5)), Title: ptr("old"), Notes: ptr("prior notes")}
	patch := &WorkEstimateLead{ID: ptr(int64(5)), Title: ptr("T")}
	stored.Merge(patch)

	assert.Equal(t, "T", *stored.Title)
	assert.Equal(t, "prior notes", *stored.Notes)

	// merged values must not alias the patch
	*patch.Title = "changed"
	assert.Equal(t, "T", *stored.Title)
}

func TestMerge_NilPatch(t *testing.T) {
	stored := &RaParameters{Name: ptr("x")}
	stored.Merge(nil)
	assert.Equal(t, "x", *stored.Name)
}

func TestSetID(t *testing.T) {
	r := &RaParameters{}
	assert.Nil(t, r.GetID())
	r.SetID(42)
	require.NotNil(t, r.GetID())
	assert.Equal(t, int64(42), *r.GetID())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		payload   any
		wantField string
		wantTag   string
	}{
		{name: "valid parameters", payload: &RaParameters{Name: ptr("X")}},
		{name: "missing name", payload: &RaParameters{}, wantField: "name", wantTag: "required"},
		{name: "name too long", payload: &RaParameters{Name: ptr(strings.Repeat("a", 256))}, wantField: "name", wantTag: "max"},
		{name: "negative value", payload: &RaParameters{Name: ptr("X"), Value: ptr(-1.0)}, wantField: "value", wantTag: "gte"},
		{name: "valid lead", payload: &WorkEstimateLead{Title: ptr("T"), LeadStatus: ptr(LeadStatusDraft)}},
		{name: "unknown status", payload: &WorkEstimateLead{Title: ptr("T"), LeadStatus: ptr("LOST")}, wantField: "leadStatus", wantTag: "oneof"},
		{name: "missing title", payload: &WorkEstimateLead{Notes: ptr("n")}, wantField: "title", wantTag: "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.payload)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field())
			assert.Equal(t, tt.wantTag, verrs[0].Tag())
		})
	}
}

func TestValidatePatch(t *testing.T) {
	assert.NoError(t, ValidatePatch(&WorkEstimateLead{ID: ptr(int64(5)), Notes: ptr("only notes")}))
	assert.NoError(t, ValidatePatch(&RaParameters{ID: ptr(int64(1))}))
	assert.Error(t, ValidatePatch(&RaParameters{Name: ptr(strings.Repeat("a", 300))}))
	assert.Error(t, ValidatePatch(&WorkEstimateLead{LeadStatus: ptr("LOST")}))
}
