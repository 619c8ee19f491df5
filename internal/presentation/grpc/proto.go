package grpc

// proto.go defines the gRPC server interface derived from
// banca/cuenta/v1/cuenta.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with
// the import from github.com/bancacore/cuenta-ledger/api/gen/go/banca/cuenta/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LedgerServiceServer is the server API for LedgerService.
// It mirrors the proto-generated interface from banca.cuenta.v1.LedgerService.
type LedgerServiceServer interface {
	CreateAccount(context.Context, *CreateAccountRequest) (*AccountResponse, error)
	GetAccount(context.Context, *GetAccountRequest) (*AccountResponse, error)
	ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error)
	UpdateAccount(context.Context, *UpdateAccountRequest) (*AccountResponse, error)
	DeactivateAccount(context.Context, *DeactivateAccountRequest) (*AccountResponse, error)
	PostMovement(context.Context, *PostMovementRequest) (*MovementResponse, error)
	GetMovement(context.Context, *GetMovementRequest) (*MovementResponse, error)
	ListMovements(context.Context, *ListMovementsRequest) (*ListMovementsResponse, error)
	GetCustomerStatement(context.Context, *GetCustomerStatementRequest) (*StatementResponse, error)
	GetAccountStatement(context.Context, *GetAccountStatementRequest) (*StatementResponse, error)
	mustEmbedUnimplementedLedgerServiceServer()
}

// UnimplementedLedgerServiceServer provides forward-compatible default implementations.
type UnimplementedLedgerServiceServer struct{}

func (UnimplementedLedgerServiceServer) CreateAccount(context.Context, *CreateAccountRequest) (*AccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateAccount not implemented")
}
func (UnimplementedLedgerServiceServer) GetAccount(context.Context, *GetAccountRequest) (*AccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAccount not implemented")
}
func (UnimplementedLedgerServiceServer) ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAccounts not implemented")
}
func (UnimplementedLedgerServiceServer) UpdateAccount(context.Context, *UpdateAccountRequest) (*AccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateAccount not implemented")
}
func (UnimplementedLedgerServiceServer) DeactivateAccount(context.Context, *DeactivateAccountRequest) (*AccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeactivateAccount not implemented")
}
func (UnimplementedLedgerServiceServer) PostMovement(context.Context, *PostMovementRequest) (*MovementResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PostMovement not implemented")
}
func (UnimplementedLedgerServiceServer) GetMovement(context.Context, *GetMovementRequest) (*MovementResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetMovement not implemented")
}
func (UnimplementedLedgerServiceServer) ListMovements(context.Context, *ListMovementsRequest) (*ListMovementsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListMovements not implemented")
}
func (UnimplementedLedgerServiceServer) GetCustomerStatement(context.Context, *GetCustomerStatementRequest) (*StatementResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCustomerStatement not implemented")
}
func (UnimplementedLedgerServiceServer) GetAccountStatement(context.Context, *GetAccountStatementRequest) (*StatementResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAccountStatement not implemented")
}
func (UnimplementedLedgerServiceServer) mustEmbedUnimplementedLedgerServiceServer() {}

// RegisterLedgerServiceServer registers the LedgerServiceServer with the gRPC server.
func RegisterLedgerServiceServer(s *grpclib.Server, srv LedgerServiceServer) {
	s.RegisterService(&_LedgerService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _LedgerService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "banca.cuenta.v1.LedgerService",
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CreateAccount", Handler: _LedgerService_CreateAccount_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "GetAccount", Handler: _LedgerService_GetAccount_Handler},                     //nolint:revive // gRPC handler registration
		{MethodName: "ListAccounts", Handler: _LedgerService_ListAccounts_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "UpdateAccount", Handler: _LedgerService_UpdateAccount_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "DeactivateAccount", Handler: _LedgerService_DeactivateAccount_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "PostMovement", Handler: _LedgerService_PostMovement_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "GetMovement", Handler: _LedgerService_GetMovement_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "ListMovements", Handler: _LedgerService_ListMovements_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "GetCustomerStatement", Handler: _LedgerService_GetCustomerStatement_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetAccountStatement", Handler: _LedgerService_GetAccountStatement_Handler},   //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_CreateAccount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).CreateAccount(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/banca.cuenta.v1.LedgerService/CreateAccount",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).CreateAccount(ctx, req.(*CreateAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_GetAccount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetAccount(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/banca.cuenta.v1.LedgerService/GetAccount",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).GetAccount(ctx, req.(*GetAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_ListAccounts_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListAccountsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).ListAccounts(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/banca.cuenta.v1.LedgerService/ListAccounts",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).ListAccounts(ctx, req.(*ListAccountsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_UpdateAccount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).UpdateAccount(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/banca.cuenta.v1.LedgerService/UpdateAccount",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).UpdateAccount(ctx, req.(*UpdateAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_DeactivateAccount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeactivateAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).DeactivateAccount(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/banca.cuenta.v1.LedgerService/DeactivateAccount",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).DeactivateAccount(ctx, req.(*DeactivateAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_PostMovement_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(PostMovementRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).PostMovement(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/banca.cuenta.v1.LedgerService/PostMovement",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).PostMovement(ctx, req.(*PostMovementRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_GetMovement_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetMovementRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetMovement(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/banca.cuenta.v1.LedgerService/GetMovement",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).GetMovement(ctx, req.(*GetMovementRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_ListMovements_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListMovementsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).ListMovements(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/banca.cuenta.v1.LedgerService/ListMovements",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).ListMovements(ctx, req.(*ListMovementsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_GetCustomerStatement_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetCustomerStatementRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetCustomerStatement(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/banca.cuenta.v1.LedgerService/GetCustomerStatement",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).GetCustomerStatement(ctx, req.(*GetCustomerStatementRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_GetAccountStatement_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetAccountStatementRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetAccountStatement(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/banca.cuenta.v1.LedgerService/GetAccountStatement",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).GetAccountStatement(ctx, req.(*GetAccountStatementRequest))
	}
	return interceptor(ctx, in, info, handler)
}
