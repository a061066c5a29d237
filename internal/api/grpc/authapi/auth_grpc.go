package authapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	AuthServiceName = "auth.v1.Auth"

	Auth_Signup_FullMethodName          = "/auth.v1.Auth/Signup"
	Auth_Login_FullMethodName           = "/auth.v1.Auth/Login"
	Auth_RequestRecovery_FullMethodName = "/auth.v1.Auth/RequestRecovery"
	Auth_ResetPassword_FullMethodName   = "/auth.v1.Auth/ResetPassword"
)

// AuthServer is the server API for the public auth.v1.Auth service.
type AuthServer interface {
	Signup(context.Context, *SignupRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	RequestRecovery(context.Context, *RequestRecoveryRequest) (*AckResponse, error)
	ResetPassword(context.Context, *ResetPasswordRequest) (*AckResponse, error)
}

// UnimplementedAuthServer must be embedded for forward compatibility.
type UnimplementedAuthServer struct{}

func (UnimplementedAuthServer) Signup(context.Context, *SignupRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Signup not implemented")
}

func (UnimplementedAuthServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedAuthServer) RequestRecovery(context.Context, *RequestRecoveryRequest) (*AckResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestRecovery not implemented")
}

func (UnimplementedAuthServer) ResetPassword(context.Context, *ResetPasswordRequest) (*AckResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResetPassword not implemented")
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&Auth_ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(srv any, ctx context.Context, req *Req) (*Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Auth_ServiceDesc is the grpc.ServiceDesc for the auth.v1.Auth service.
var Auth_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Signup",
			Handler: unaryHandler(Auth_Signup_FullMethodName, func(srv any, ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
				return srv.(AuthServer).Signup(ctx, req)
			}),
		},
		{
			MethodName: "Login",
			Handler: unaryHandler(Auth_Login_FullMethodName, func(srv any, ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
				return srv.(AuthServer).Login(ctx, req)
			}),
		},
		{
			MethodName: "RequestRecovery",
			Handler: unaryHandler(Auth_RequestRecovery_FullMethodName, func(srv any, ctx context.Context, req *RequestRecoveryRequest) (*AckResponse, error) {
				return srv.(AuthServer).RequestRecovery(ctx, req)
			}),
		},
		{
			MethodName: "ResetPassword",
			Handler: unaryHandler(Auth_ResetPassword_FullMethodName, func(srv any, ctx context.Context, req *ResetPasswordRequest) (*AckResponse, error) {
				return srv.(AuthServer).ResetPassword(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auth/v1/auth.proto",
}

// AuthClient is the client API for the auth.v1.Auth service.
type AuthClient interface {
	Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	RequestRecovery(ctx context.Context, in *RequestRecoveryRequest, opts ...grpc.CallOption) (*AckResponse, error)
	ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*AckResponse, error)
}

type authClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) AuthClient {
	return &authClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, Auth_Signup_FullMethodName, in, opts)
}

func (c *authClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, Auth_Login_FullMethodName, in, opts)
}

func (c *authClient) RequestRecovery(ctx context.Context, in *RequestRecoveryRequest, opts ...grpc.CallOption) (*AckResponse, error) {
	return invoke[AckResponse](ctx, c.cc, Auth_RequestRecovery_FullMethodName, in, opts)
}

func (c *authClient) ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*AckResponse, error) {
	return invoke[AckResponse](ctx, c.cc, Auth_ResetPassword_FullMethodName, in, opts)
}
