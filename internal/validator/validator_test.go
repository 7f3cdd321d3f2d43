package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDTO struct {
	Name       string `json:"name" validate:"required,max=10"`
	Phone      string `json:"phone_number" validate:"omitempty,phone"`
	Gender     string `json:"gender" validate:"omitempty,is-gender"`
	BloodGroup string `json:"blood_group" validate:"omitempty,is-blood-group"`
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&sampleDTO{Phone: "not-a-phone"})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, verr.Errors, "name")
	assert.Contains(t, verr.Errors, "phone_number")
}

func TestValidator_PhoneRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sampleDTO{Name: "ok", Phone: "+12025550123"}))
	assert.NoError(t, v.Validate(&sampleDTO{Name: "ok", Phone: "79990001122"}))
	assert.Error(t, v.Validate(&sampleDTO{Name: "ok", Phone: "12"}))
	assert.Error(t, v.Validate(&sampleDTO{Name: "ok", Phone: "phone123"}))
}

func TestValidator_DomainRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sampleDTO{Name: "ok", Gender: "female", BloodGroup: "O+"}))
	assert.Error(t, v.Validate(&sampleDTO{Name: "ok", Gender: "robot"}))
	assert.Error(t, v.Validate(&sampleDTO{Name: "ok", BloodGroup: "Z+"}))
}
