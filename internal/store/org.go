package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/commstack/org-access/internal/store/model"
)

// membership join tables, in union order
var membershipTables = []string{"org_administrators", "org_editors", "org_viewers"}

type Org interface {
	Get(ctx context.Context, id int64) (*model.Org, error)
	Create(ctx context.Context, org model.Org) (*model.Org, error)
	Update(ctx context.Context, org model.Org, fields []string) (*model.Org, error)
	ListForUser(ctx context.Context, userID int64) (model.OrgList, error)
	AddAdministrator(ctx context.Context, orgID int64, userID int64) error
	AddEditor(ctx context.Context, orgID int64, userID int64) error
	AddViewer(ctx context.Context, orgID int64, userID int64) error
}

type OrgStore struct {
	db *gorm.DB
}

// Make sure we conform to Org interface
var _ Org = (*OrgStore)(nil)

func NewOrgStore(db *gorm.DB) Org {
	return &OrgStore{db: db}
}

func (s *OrgStore) Get(ctx context.Context, id int64) (*model.Org, error) {
	org := model.Org{}
	result := s.withMembers(s.getDB(ctx)).First(&org, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &org, nil
}

func (s *OrgStore) Create(ctx context.Context, org model.Org) (*model.Org, error) {
	result := s.getDB(ctx).Omit("Administrators", "Editors", "Viewers", "CreatedBy", "ModifiedBy").Create(&org)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &org, nil
}

// Update writes only the given columns, leaving the rest of the row as is.
func (s *OrgStore) Update(ctx context.Context, org model.Org, fields []string) (*model.Org, error) {
	db := s.getDB(ctx)
	result := db.Model(&model.Org{ID: org.ID}).Select(fields).Updates(&org)
	if result.Error != nil {
		return nil, result.Error
	}

	updated := model.Org{}
	if err := s.withMembers(db).First(&updated, "id = ?", org.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// ListForUser returns the union of the orgs where the user is an
// administrator, editor or viewer, in that order, duplicates suppressed.
func (s *OrgStore) ListForUser(ctx context.Context, userID int64) (model.OrgList, error) {
	db := s.getDB(ctx)

	seen := make(map[int64]struct{})
	union := model.OrgList{}
	for _, table := range membershipTables {
		var orgs model.OrgList
		err := s.withMembers(db).
			Joins(fmt.Sprintf("JOIN %s m ON m.org_id = orgs.id", table)).
			Where("m.user_id = ?", userID).
			Order("orgs.id").
			Find(&orgs).Error
		if err != nil {
			return nil, err
		}
		for _, org := range orgs {
			if _, ok := seen[org.ID]; ok {
				continue
			}
			seen[org.ID] = struct{}{}
			union = append(union, org)
		}
	}
	return union, nil
}

func (s *OrgStore) AddAdministrator(ctx context.Context, orgID int64, userID int64) error {
	return s.addMember(ctx, "Administrators", orgID, userID)
}

func (s *OrgStore) AddEditor(ctx context.Context, orgID int64, userID int64) error {
	return s.addMember(ctx, "Editors", orgID, userID)
}

func (s *OrgStore) AddViewer(ctx context.Context, orgID int64, userID int64) error {
	return s.addMember(ctx, "Viewers", orgID, userID)
}

func (s *OrgStore) addMember(ctx context.Context, relation string, orgID int64, userID int64) error {
	org := model.Org{ID: orgID}
	user := model.User{ID: userID}
	return s.getDB(ctx).Model(&org).Omit(relation + ".*").Association(relation).Append(&user)
}

func (s *OrgStore) withMembers(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Org{}).
		Preload("Administrators").
		Preload("Editors").
		Preload("Viewers")
}

func (s *OrgStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}
