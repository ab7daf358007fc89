package apiserver

import (
	"context"

	"google.golang.org/grpc"

	api "github.com/commstack/org-access/api/v1"
)

const serviceName = "orgs.v1.OrgService"

// OrgServer is the contract the registered handler must satisfy.
type OrgServer interface {
	List(ctx context.Context, request *api.OrgListRequest, stream api.OrgSender) error
	Create(ctx context.Context, request *api.OrgCreateRequest) (*api.Org, error)
	Update(ctx context.Context, request *api.OrgUpdateRequest) (*api.Org, error)
	Destroy(ctx context.Context, request *api.OrgDestroyRequest) (*api.Org, error)
}

// orgServiceDesc is written by hand; the wire types live in api/v1 and
// travel through the json codec.
var orgServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*OrgServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Create",
			Handler:    createHandler,
		},
		{
			MethodName: "Update",
			Handler:    updateHandler,
		},
		{
			MethodName: "Destroy",
			Handler:    destroyHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "List",
			Handler:       listHandler,
			ServerStreams: true,
		},
	},
	Metadata: "api/v1/org.go",
}

func createHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(api.OrgCreateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrgServer).Create(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/Create",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrgServer).Create(ctx, req.(*api.OrgCreateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func updateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(api.OrgUpdateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrgServer).Update(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/Update",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrgServer).Update(ctx, req.(*api.OrgUpdateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func destroyHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(api.OrgDestroyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrgServer).Destroy(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/Destroy",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrgServer).Destroy(ctx, req.(*api.OrgDestroyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listHandler(srv any, stream grpc.ServerStream) error {
	in := new(api.OrgListRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(OrgServer).List(stream.Context(), in, &orgListSender{stream})
}

type orgListSender struct {
	grpc.ServerStream
}

func (s *orgListSender) Send(org *api.Org) error {
	return s.SendMsg(org)
}
