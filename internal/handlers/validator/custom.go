package validator

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/commstack/org-access/internal/service/mappers"
)

const maxOrgNameLength = 255

func orgNameValidator(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if strings.TrimSpace(name) == "" {
		return false
	}
	return len(name) <= maxOrgNameLength
}

func planEndValidator(fl validator.FieldLevel) bool {
	_, err := time.Parse(mappers.PlanEndLayout, fl.Field().String())
	return err == nil
}
