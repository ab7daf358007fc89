package model

import (
	"encoding/json"
	"time"
)

// Org is the tenant entity. Role membership lives in three dedicated join
// tables so that per-user lookups stay indexed.
type Org struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Timezone    string `gorm:"not null"`
	DateFormat  string `gorm:"size:1;default:D"`
	Plan        string
	PlanEnd     *time.Time
	Brand       string
	IsAnon      bool
	IsMultiUser bool
	IsMultiOrg  bool
	IsSuspended bool
	IsActive    bool `gorm:"default:true"`

	CreatedByID  int64 `gorm:"not null"`
	CreatedBy    User  `gorm:"foreignKey:CreatedByID"`
	ModifiedByID int64 `gorm:"not null"`
	ModifiedBy   User  `gorm:"foreignKey:ModifiedByID"`

	Administrators []User `gorm:"many2many:org_administrators;"`
	Editors        []User `gorm:"many2many:org_editors;"`
	Viewers        []User `gorm:"many2many:org_viewers;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrgList []Org

func (o Org) String() string {
	val, _ := json.Marshal(o)
	return string(val)
}

// Members returns the union of the three role sets, administrators first,
// then editors, then viewers, duplicates suppressed.
func (o Org) Members() UserList {
	seen := make(map[int64]struct{})
	members := UserList{}
	for _, set := range [][]User{o.Administrators, o.Editors, o.Viewers} {
		for _, u := range set {
			if _, ok := seen[u.ID]; ok {
				continue
			}
			seen[u.ID] = struct{}{}
			members = append(members, u)
		}
	}
	return members
}
