package v1

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	api "github.com/commstack/org-access/api/v1"
	"github.com/commstack/org-access/internal/handlers/v1/mappers"
	"github.com/commstack/org-access/internal/handlers/validator"
	"github.com/commstack/org-access/internal/service"
	srvMappers "github.com/commstack/org-access/internal/service/mappers"
)

// OrgHandler exposes the org access operations over the RPC surface and
// routes each failure to its error channel: client-correctable input errors
// become InvalidArgument, unresolvable entities on the call-level channel
// become NotFound.
type OrgHandler struct {
	orgSrv *service.OrgService
}

func NewOrgHandler(orgService *service.OrgService) *OrgHandler {
	return &OrgHandler{orgSrv: orgService}
}

func (h *OrgHandler) List(ctx context.Context, request *api.OrgListRequest, stream api.OrgSender) error {
	orgs, err := h.orgSrv.List(ctx, request.UserEmail)
	if err != nil {
		return translateError(err)
	}

	for _, org := range mappers.OrgListToApi(orgs) {
		if err := stream.Send(org); err != nil {
			return err
		}
	}
	return nil
}

func (h *OrgHandler) Create(ctx context.Context, request *api.OrgCreateRequest) (*api.Org, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	org, err := h.orgSrv.Create(ctx, srvMappers.OrgCreateFormFromApi(request))
	if err != nil {
		return nil, translateError(err)
	}
	return mappers.OrgToApi(*org), nil
}

func (h *OrgHandler) Update(ctx context.Context, request *api.OrgUpdateRequest) (*api.Org, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	org, err := h.orgSrv.Update(ctx, srvMappers.OrgUpdateFormFromApi(request))
	if err != nil {
		return nil, translateError(err)
	}
	return mappers.OrgToApi(*org), nil
}

func (h *OrgHandler) Destroy(ctx context.Context, request *api.OrgDestroyRequest) (*api.Org, error) {
	org, err := h.orgSrv.Destroy(ctx, request.Id, request.UserId)
	if err != nil {
		return nil, translateError(err)
	}
	return mappers.OrgToApi(*org), nil
}

func validateRequest(request any) error {
	v := validator.NewValidator()
	v.Register(validator.NewOrgValidationRules()...)
	if err := v.Struct(request); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

func translateError(err error) error {
	var notFound *service.ErrResourceNotFound
	var invalid *service.ErrInvalidRequest
	var forbidden *service.ErrOrgUpdateForbidden

	switch {
	case errors.As(err, &notFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &invalid), errors.As(err, &forbidden):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
