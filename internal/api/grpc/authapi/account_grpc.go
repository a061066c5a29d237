package authapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	AccountServiceName = "auth.v1.Account"

	Account_Profile_FullMethodName = "/auth.v1.Account/Profile"
)

// AccountServer is the server API for the authenticated auth.v1.Account service.
type AccountServer interface {
	Profile(context.Context, *ProfileRequest) (*User, error)
}

// UnimplementedAccountServer must be embedded for forward compatibility.
type UnimplementedAccountServer struct{}

func (UnimplementedAccountServer) Profile(context.Context, *ProfileRequest) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method Profile not implemented")
}

func RegisterAccountServer(s grpc.ServiceRegistrar, srv AccountServer) {
	s.RegisterService(&Account_ServiceDesc, srv)
}

// Account_ServiceDesc is the grpc.ServiceDesc for the auth.v1.Account service.
var Account_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AccountServiceName,
	HandlerType: (*AccountServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Profile",
			Handler: unaryHandler(Account_Profile_FullMethodName, func(srv any, ctx context.Context, req *ProfileRequest) (*User, error) {
				return srv.(AccountServer).Profile(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auth/v1/account.proto",
}

// AccountClient is the client API for the auth.v1.Account service.
type AccountClient interface {
	Profile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*User, error)
}

type accountClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountClient(cc grpc.ClientConnInterface) AccountClient {
	return &accountClient{cc: cc}
}

func (c *accountClient) Profile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, Account_Profile_FullMethodName, in, opts)
}
