package mappers

import (
	api "github.com/commstack/org-access/api/v1"
	"github.com/commstack/org-access/internal/service/mappers"
	"github.com/commstack/org-access/internal/store/model"
)

func OrgToApi(org model.Org) *api.Org {
	planEnd := ""
	if org.PlanEnd != nil {
		planEnd = org.PlanEnd.Format(mappers.PlanEndLayout)
	}

	members := org.Members()
	users := make([]api.OrgUser, 0, len(members))
	for _, u := range members {
		users = append(users, api.OrgUser{Id: u.ID, Email: u.Email})
	}

	return &api.Org{
		Id:          org.ID,
		Name:        org.Name,
		Timezone:    org.Timezone,
		DateFormat:  org.DateFormat,
		Plan:        org.Plan,
		PlanEnd:     planEnd,
		Brand:       org.Brand,
		IsAnon:      org.IsAnon,
		IsMultiUser: org.IsMultiUser,
		IsMultiOrg:  org.IsMultiOrg,
		IsSuspended: org.IsSuspended,
		IsActive:    org.IsActive,
		CreatedBy:   org.CreatedByID,
		ModifiedBy:  org.ModifiedByID,
		Users:       users,
	}
}

func OrgListToApi(orgs model.OrgList) []*api.Org {
	result := make([]*api.Org, 0, len(orgs))
	for _, org := range orgs {
		result = append(result, OrgToApi(org))
	}
	return result
}
