// Package v1 defines the wire types of the org access RPC surface.
package v1

// Org is the wire representation of an organization.
type Org struct {
	Id          int64     `json:"id"`
	Name        string    `json:"name"`
	Timezone    string    `json:"timezone"`
	DateFormat  string    `json:"date_format"`
	Plan        string    `json:"plan"`
	PlanEnd     string    `json:"plan_end,omitempty"`
	Brand       string    `json:"brand"`
	IsAnon      bool      `json:"is_anon"`
	IsMultiUser bool      `json:"is_multi_user"`
	IsMultiOrg  bool      `json:"is_multi_org"`
	IsSuspended bool      `json:"is_suspended"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   int64     `json:"created_by"`
	ModifiedBy  int64     `json:"modified_by"`
	Users       []OrgUser `json:"users"`
}

// OrgUser is a member of an org, regardless of its role.
type OrgUser struct {
	Id    int64  `json:"id"`
	Email string `json:"email"`
}

type OrgListRequest struct {
	UserEmail string `json:"user_email"`
}

type OrgCreateRequest struct {
	Name     string `json:"name" validate:"required,org_name"`
	Timezone string `json:"timezone" validate:"required,timezone"`
	UserId   int64  `json:"user_id" validate:"required"`
}

// OrgUpdateRequest carries a sparse field set: nil fields are left
// untouched on the target org.
type OrgUpdateRequest struct {
	Id          int64   `json:"id" validate:"required"`
	UserId      int64   `json:"user_id"`
	Name        *string `json:"name,omitempty" validate:"omitempty,org_name"`
	Timezone    *string `json:"timezone,omitempty" validate:"omitempty,timezone"`
	DateFormat  *string `json:"date_format,omitempty" validate:"omitempty,oneof=D M"`
	Plan        *string `json:"plan,omitempty"`
	PlanEnd     *string `json:"plan_end,omitempty" validate:"omitempty,plan_end"`
	Brand       *string `json:"brand,omitempty"`
	IsAnon      *bool   `json:"is_anon,omitempty"`
	IsMultiUser *bool   `json:"is_multi_user,omitempty"`
	IsMultiOrg  *bool   `json:"is_multi_org,omitempty"`
	IsSuspended *bool   `json:"is_suspended,omitempty"`
}

type OrgDestroyRequest struct {
	Id     int64 `json:"id" validate:"required"`
	UserId int64 `json:"user_id"`
}

// OrgSender is the server-side view of the List stream.
type OrgSender interface {
	Send(*Org) error
}
