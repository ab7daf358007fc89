package mappers

import (
	"fmt"
	"time"

	// timezone validation must not depend on the host zoneinfo database
	_ "time/tzdata"

	api "github.com/commstack/org-access/api/v1"
	"github.com/commstack/org-access/internal/store/model"
)

// PlanEndLayout is the canonical wire format of plan_end timestamps.
const PlanEndLayout = "2006-01-02 15:04:05"

// checkTimezone requires a canonical zone name. LoadLocation resolves ""
// and "Local" without consulting the zone database, so both are rejected
// up front.
func checkTimezone(name string) error {
	if name == "" || name == "Local" {
		return fmt.Errorf("timezone: %q is not a recognized timezone", name)
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("timezone: %q is not a recognized timezone", name)
	}
	return nil
}

type OrgCreateForm struct {
	Name     string
	Timezone string
	UserID   int64
}

func OrgCreateFormFromApi(req *api.OrgCreateRequest) OrgCreateForm {
	return OrgCreateForm{
		Name:     req.Name,
		Timezone: req.Timezone,
		UserID:   req.UserId,
	}
}

// ToOrg builds a new org owned by the creator. The timezone is checked
// before anything reaches the store.
func (f OrgCreateForm) ToOrg(creator model.User) (model.Org, error) {
	if err := checkTimezone(f.Timezone); err != nil {
		return model.Org{}, err
	}

	return model.Org{
		Name:         f.Name,
		Timezone:     f.Timezone,
		IsActive:     true,
		CreatedByID:  creator.ID,
		ModifiedByID: creator.ID,
	}, nil
}

// OrgUpdateForm carries the sparse field set of an update. Nil fields are
// left untouched on the target org.
type OrgUpdateForm struct {
	OrgID       int64
	UserID      int64
	Name        *string
	Timezone    *string
	DateFormat  *string
	Plan        *string
	PlanEnd     *string
	Brand       *string
	IsAnon      *bool
	IsMultiUser *bool
	IsMultiOrg  *bool
	IsSuspended *bool
}

func OrgUpdateFormFromApi(req *api.OrgUpdateRequest) OrgUpdateForm {
	return OrgUpdateForm{
		OrgID:       req.Id,
		UserID:      req.UserId,
		Name:        req.Name,
		Timezone:    req.Timezone,
		DateFormat:  req.DateFormat,
		Plan:        req.Plan,
		PlanEnd:     req.PlanEnd,
		Brand:       req.Brand,
		IsAnon:      req.IsAnon,
		IsMultiUser: req.IsMultiUser,
		IsMultiOrg:  req.IsMultiOrg,
		IsSuspended: req.IsSuspended,
	}
}

// Apply assigns the explicitly-set fields onto the org and returns the
// column list for a sparse store update. Unset fields stay untouched.
func (f OrgUpdateForm) Apply(org *model.Org) ([]string, error) {
	fields := []string{}

	if f.Name != nil {
		org.Name = *f.Name
		fields = append(fields, "name")
	}
	if f.Timezone != nil {
		if err := checkTimezone(*f.Timezone); err != nil {
			return nil, err
		}
		org.Timezone = *f.Timezone
		fields = append(fields, "timezone")
	}
	if f.DateFormat != nil {
		org.DateFormat = *f.DateFormat
		fields = append(fields, "date_format")
	}
	if f.Plan != nil {
		org.Plan = *f.Plan
		fields = append(fields, "plan")
	}
	if f.PlanEnd != nil {
		planEnd, err := time.Parse(PlanEndLayout, *f.PlanEnd)
		if err != nil {
			return nil, fmt.Errorf("plan_end: %q is not in the %q format", *f.PlanEnd, PlanEndLayout)
		}
		org.PlanEnd = &planEnd
		fields = append(fields, "plan_end")
	}
	if f.Brand != nil {
		org.Brand = *f.Brand
		fields = append(fields, "brand")
	}
	if f.IsAnon != nil {
		org.IsAnon = *f.IsAnon
		fields = append(fields, "is_anon")
	}
	if f.IsMultiUser != nil {
		org.IsMultiUser = *f.IsMultiUser
		fields = append(fields, "is_multi_user")
	}
	if f.IsMultiOrg != nil {
		org.IsMultiOrg = *f.IsMultiOrg
		fields = append(fields, "is_multi_org")
	}
	if f.IsSuspended != nil {
		org.IsSuspended = *f.IsSuspended
		fields = append(fields, "is_suspended")
	}

	return fields, nil
}
