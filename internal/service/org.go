package service

import (
	"context"
	"errors"

	"github.com/thoas/go-funk"
	"go.uber.org/zap"

	"github.com/commstack/org-access/internal/service/mappers"
	"github.com/commstack/org-access/internal/store"
	"github.com/commstack/org-access/internal/store/model"
	"github.com/commstack/org-access/pkg/metrics"
)

// DestroyPolicy decides whether a user may soft-delete an org. The default
// only requires a resolvable user.
type DestroyPolicy func(user model.User, org model.Org) bool

type OrgServiceOption func(s *OrgService)

func WithDestroyPolicy(policy DestroyPolicy) OrgServiceOption {
	return func(s *OrgService) {
		s.canDestroy = policy
	}
}

type OrgService struct {
	store      store.Store
	canDestroy DestroyPolicy
}

func NewOrgService(store store.Store, opts ...OrgServiceOption) *OrgService {
	s := &OrgService{
		store:      store,
		canDestroy: func(model.User, model.Org) bool { return true },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// List resolves the user by email and returns the orgs visible to it:
// the union of the administrator, editor and viewer memberships. A missing
// or unknown email fails the call; it never degrades to an empty list.
func (s *OrgService) List(ctx context.Context, userEmail string) (model.OrgList, error) {
	user, err := s.store.User().GetByEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrUserNotFound(userEmail)
		}
		return nil, err
	}

	orgs, err := s.store.Org().ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	metrics.IncreaseOrgOperationsTotal("list")
	return orgs, nil
}

// Create validates the creating user and the timezone, then persists a new
// active org owned by that user.
func (s *OrgService) Create(ctx context.Context, form mappers.OrgCreateForm) (*model.Org, error) {
	user, err := s.store.User().GetByID(ctx, form.UserID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrUserNotResolvable(form.UserID)
		}
		return nil, err
	}

	org, err := form.ToOrg(*user)
	if err != nil {
		return nil, NewErrInvalidRequest("%s", err.Error())
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Org().Create(ctx, org)
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	zap.S().Named("org_service").Infow("org created", "org_id", created.ID, "user_id", user.ID)
	metrics.IncreaseOrgOperationsTotal("create")
	return created, nil
}

// Update applies the explicitly-set fields of the form onto the org.
// The acting user must be a superuser and an administrator of the org.
func (s *OrgService) Update(ctx context.Context, form mappers.OrgUpdateForm) (*model.Org, error) {
	user, err := s.store.User().GetByID(ctx, form.UserID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrUserNotResolvable(form.UserID)
		}
		return nil, err
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	org, err := s.store.Org().Get(ctx, form.OrgID)
	if err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrOrgNotFound(form.OrgID)
		}
		return nil, err
	}

	if !s.canUpdate(*user, *org) {
		_, _ = store.Rollback(ctx)
		return nil, NewErrOrgUpdateForbidden(user.ID, org.ID)
	}

	fields, err := form.Apply(org)
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, NewErrInvalidRequest("%s", err.Error())
	}

	org.ModifiedByID = user.ID
	fields = append(fields, "modified_by_id")

	updated, err := s.store.Org().Update(ctx, *org, fields)
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	zap.S().Named("org_service").Infow("org updated", "org_id", org.ID, "user_id", user.ID, "fields", fields)
	metrics.IncreaseOrgOperationsTotal("update")
	return updated, nil
}

// Destroy marks the org inactive. The row is kept; there is no hard delete.
// Missing entities surface at the call level here, not as validation
// failures.
func (s *OrgService) Destroy(ctx context.Context, orgID int64, userID int64) (*model.Org, error) {
	user, err := s.store.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrUserNotFound(userID)
		}
		return nil, err
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	org, err := s.store.Org().Get(ctx, orgID)
	if err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrOrgNotFound(orgID)
		}
		return nil, err
	}

	if !s.canDestroy(*user, *org) {
		_, _ = store.Rollback(ctx)
		return nil, NewErrOrgUpdateForbidden(user.ID, org.ID)
	}

	org.IsActive = false
	org.ModifiedByID = user.ID

	destroyed, err := s.store.Org().Update(ctx, *org, []string{"is_active", "modified_by_id"})
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	zap.S().Named("org_service").Infow("org destroyed", "org_id", org.ID, "user_id", user.ID)
	metrics.IncreaseOrgOperationsTotal("destroy")
	return destroyed, nil
}

func (s *OrgService) canUpdate(user model.User, org model.Org) bool {
	if !user.IsSuperuser {
		return false
	}
	return funk.Contains(org.Administrators, func(u model.User) bool {
		return u.ID == user.ID
	})
}
