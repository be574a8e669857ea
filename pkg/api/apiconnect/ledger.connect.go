// Package apiconnect wires the splitledger.v1.LedgerService API to Connect
// handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/splitledger/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "splitledger.v1.LedgerService"

// Procedure names, of the form "/<service>/<method>".
const (
	LedgerServiceAddExpenseProcedure       = "/splitledger.v1.LedgerService/AddExpense"
	LedgerServiceAddParticipantProcedure   = "/splitledger.v1.LedgerService/AddParticipant"
	LedgerServiceCreateGroupProcedure      = "/splitledger.v1.LedgerService/CreateGroup"
	LedgerServiceAddMemberProcedure        = "/splitledger.v1.LedgerService/AddMember"
	LedgerServiceCalculateSplitProcedure   = "/splitledger.v1.LedgerService/CalculateSplit"
	LedgerServiceListExpensesProcedure     = "/splitledger.v1.LedgerService/ListExpenses"
	LedgerServiceListParticipantsProcedure = "/splitledger.v1.LedgerService/ListParticipants"
	LedgerServiceListGroupsProcedure       = "/splitledger.v1.LedgerService/ListGroups"
	LedgerServiceGetGroupMembersProcedure  = "/splitledger.v1.LedgerService/GetGroupMembers"
	LedgerServiceListGroupSharesProcedure  = "/splitledger.v1.LedgerService/ListGroupShares"
	LedgerServiceDeleteExpenseProcedure    = "/splitledger.v1.LedgerService/DeleteExpense"
	LedgerServiceDeleteGroupProcedure      = "/splitledger.v1.LedgerService/DeleteGroup"
	LedgerServiceMarkSharePaidProcedure    = "/splitledger.v1.LedgerService/MarkSharePaid"
	LedgerServiceGenerateReportProcedure   = "/splitledger.v1.LedgerService/GenerateReport"
	LedgerServiceExportReportPDFProcedure  = "/splitledger.v1.LedgerService/ExportReportPDF"
)

// LedgerServiceClient is a client for the splitledger.v1.LedgerService service.
type LedgerServiceClient interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error)
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
	ListExpenses(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListExpensesResponse], error)
	ListParticipants(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListParticipantsResponse], error)
	ListGroups(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListGroupsResponse], error)
	GetGroupMembers(context.Context, *connect.Request[api.GetGroupMembersRequest]) (*connect.Response[api.GetGroupMembersResponse], error)
	ListGroupShares(context.Context, *connect.Request[api.ListGroupSharesRequest]) (*connect.Response[api.ListGroupSharesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[emptypb.Empty], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[emptypb.Empty], error)
	MarkSharePaid(context.Context, *connect.Request[api.MarkSharePaidRequest]) (*connect.Response[emptypb.Empty], error)
	GenerateReport(context.Context, *connect.Request[api.GenerateReportRequest]) (*connect.Response[api.GenerateReportResponse], error)
	ExportReportPDF(context.Context, *connect.Request[api.ExportReportPDFRequest]) (*connect.Response[api.ExportReportPDFResponse], error)
}

// NewLedgerServiceClient constructs a client for the LedgerService service.
// Messages are sent as JSON; opts may add interceptors or other settings.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &ledgerServiceClient{
		addExpense: connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](
			httpClient,
			baseURL+LedgerServiceAddExpenseProcedure,
			opts...,
		),
		addParticipant: connect.NewClient[api.AddParticipantRequest, api.AddParticipantResponse](
			httpClient,
			baseURL+LedgerServiceAddParticipantProcedure,
			opts...,
		),
		createGroup: connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](
			httpClient,
			baseURL+LedgerServiceCreateGroupProcedure,
			opts...,
		),
		addMember: connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](
			httpClient,
			baseURL+LedgerServiceAddMemberProcedure,
			opts...,
		),
		calculateSplit: connect.NewClient[api.CalculateSplitRequest, api.CalculateSplitResponse](
			httpClient,
			baseURL+LedgerServiceCalculateSplitProcedure,
			opts...,
		),
		listExpenses: connect.NewClient[emptypb.Empty, api.ListExpensesResponse](
			httpClient,
			baseURL+LedgerServiceListExpensesProcedure,
			opts...,
		),
		listParticipants: connect.NewClient[emptypb.Empty, api.ListParticipantsResponse](
			httpClient,
			baseURL+LedgerServiceListParticipantsProcedure,
			opts...,
		),
		listGroups: connect.NewClient[emptypb.Empty, api.ListGroupsResponse](
			httpClient,
			baseURL+LedgerServiceListGroupsProcedure,
			opts...,
		),
		getGroupMembers: connect.NewClient[api.GetGroupMembersRequest, api.GetGroupMembersResponse](
			httpClient,
			baseURL+LedgerServiceGetGroupMembersProcedure,
			opts...,
		),
		listGroupShares: connect.NewClient[api.ListGroupSharesRequest, api.ListGroupSharesResponse](
			httpClient,
			baseURL+LedgerServiceListGroupSharesProcedure,
			opts...,
		),
		deleteExpense: connect.NewClient[api.DeleteExpenseRequest, emptypb.Empty](
			httpClient,
			baseURL+LedgerServiceDeleteExpenseProcedure,
			opts...,
		),
		deleteGroup: connect.NewClient[api.DeleteGroupRequest, emptypb.Empty](
			httpClient,
			baseURL+LedgerServiceDeleteGroupProcedure,
			opts...,
		),
		markSharePaid: connect.NewClient[api.MarkSharePaidRequest, emptypb.Empty](
			httpClient,
			baseURL+LedgerServiceMarkSharePaidProcedure,
			opts...,
		),
		generateReport: connect.NewClient[api.GenerateReportRequest, api.GenerateReportResponse](
			httpClient,
			baseURL+LedgerServiceGenerateReportProcedure,
			opts...,
		),
		exportReportPDF: connect.NewClient[api.ExportReportPDFRequest, api.ExportReportPDFResponse](
			httpClient,
			baseURL+LedgerServiceExportReportPDFProcedure,
			opts...,
		),
	}
}

type ledgerServiceClient struct {
	addExpense       *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	addParticipant   *connect.Client[api.AddParticipantRequest, api.AddParticipantResponse]
	createGroup      *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	addMember        *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	calculateSplit   *connect.Client[api.CalculateSplitRequest, api.CalculateSplitResponse]
	listExpenses     *connect.Client[emptypb.Empty, api.ListExpensesResponse]
	listParticipants *connect.Client[emptypb.Empty, api.ListParticipantsResponse]
	listGroups       *connect.Client[emptypb.Empty, api.ListGroupsResponse]
	getGroupMembers  *connect.Client[api.GetGroupMembersRequest, api.GetGroupMembersResponse]
	listGroupShares  *connect.Client[api.ListGroupSharesRequest, api.ListGroupSharesResponse]
	deleteExpense    *connect.Client[api.DeleteExpenseRequest, emptypb.Empty]
	deleteGroup      *connect.Client[api.DeleteGroupRequest, emptypb.Empty]
	markSharePaid    *connect.Client[api.MarkSharePaidRequest, emptypb.Empty]
	generateReport   *connect.Client[api.GenerateReportRequest, api.GenerateReportResponse]
	exportReportPDF  *connect.Client[api.ExportReportPDFRequest, api.ExportReportPDFResponse]
}

func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return c.calculateSplit.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListParticipants(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListGroups(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetGroupMembers(ctx context.Context, req *connect.Request[api.GetGroupMembersRequest]) (*connect.Response[api.GetGroupMembersResponse], error) {
	return c.getGroupMembers.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListGroupShares(ctx context.Context, req *connect.Request[api.ListGroupSharesRequest]) (*connect.Response[api.ListGroupSharesResponse], error) {
	return c.listGroupShares.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) MarkSharePaid(ctx context.Context, req *connect.Request[api.MarkSharePaidRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.markSharePaid.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GenerateReport(ctx context.Context, req *connect.Request[api.GenerateReportRequest]) (*connect.Response[api.GenerateReportResponse], error) {
	return c.generateReport.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ExportReportPDF(ctx context.Context, req *connect.Request[api.ExportReportPDFRequest]) (*connect.Response[api.ExportReportPDFResponse], error) {
	return c.exportReportPDF.CallUnary(ctx, req)
}

// LedgerServiceHandler is implemented by servers of the LedgerService service.
type LedgerServiceHandler interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error)
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
	ListExpenses(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListExpensesResponse], error)
	ListParticipants(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListParticipantsResponse], error)
	ListGroups(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListGroupsResponse], error)
	GetGroupMembers(context.Context, *connect.Request[api.GetGroupMembersRequest]) (*connect.Response[api.GetGroupMembersResponse], error)
	ListGroupShares(context.Context, *connect.Request[api.ListGroupSharesRequest]) (*connect.Response[api.ListGroupSharesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[emptypb.Empty], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[emptypb.Empty], error)
	MarkSharePaid(context.Context, *connect.Request[api.MarkSharePaidRequest]) (*connect.Response[emptypb.Empty], error)
	GenerateReport(context.Context, *connect.Request[api.GenerateReportRequest]) (*connect.Response[api.GenerateReportResponse], error)
	ExportReportPDF(context.Context, *connect.Request[api.ExportReportPDFRequest]) (*connect.Response[api.ExportReportPDFResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	addExpenseHandler := connect.NewUnaryHandler(
		LedgerServiceAddExpenseProcedure,
		svc.AddExpense,
		opts...,
	)
	addParticipantHandler := connect.NewUnaryHandler(
		LedgerServiceAddParticipantProcedure,
		svc.AddParticipant,
		opts...,
	)
	createGroupHandler := connect.NewUnaryHandler(
		LedgerServiceCreateGroupProcedure,
		svc.CreateGroup,
		opts...,
	)
	addMemberHandler := connect.NewUnaryHandler(
		LedgerServiceAddMemberProcedure,
		svc.AddMember,
		opts...,
	)
	calculateSplitHandler := connect.NewUnaryHandler(
		LedgerServiceCalculateSplitProcedure,
		svc.CalculateSplit,
		opts...,
	)
	listExpensesHandler := connect.NewUnaryHandler(
		LedgerServiceListExpensesProcedure,
		svc.ListExpenses,
		opts...,
	)
	listParticipantsHandler := connect.NewUnaryHandler(
		LedgerServiceListParticipantsProcedure,
		svc.ListParticipants,
		opts...,
	)
	listGroupsHandler := connect.NewUnaryHandler(
		LedgerServiceListGroupsProcedure,
		svc.ListGroups,
		opts...,
	)
	getGroupMembersHandler := connect.NewUnaryHandler(
		LedgerServiceGetGroupMembersProcedure,
		svc.GetGroupMembers,
		opts...,
	)
	listGroupSharesHandler := connect.NewUnaryHandler(
		LedgerServiceListGroupSharesProcedure,
		svc.ListGroupShares,
		opts...,
	)
	deleteExpenseHandler := connect.NewUnaryHandler(
		LedgerServiceDeleteExpenseProcedure,
		svc.DeleteExpense,
		opts...,
	)
	deleteGroupHandler := connect.NewUnaryHandler(
		LedgerServiceDeleteGroupProcedure,
		svc.DeleteGroup,
		opts...,
	)
	markSharePaidHandler := connect.NewUnaryHandler(
		LedgerServiceMarkSharePaidProcedure,
		svc.MarkSharePaid,
		opts...,
	)
	generateReportHandler := connect.NewUnaryHandler(
		LedgerServiceGenerateReportProcedure,
		svc.GenerateReport,
		opts...,
	)
	exportReportPDFHandler := connect.NewUnaryHandler(
		LedgerServiceExportReportPDFProcedure,
		svc.ExportReportPDF,
		opts...,
	)
	return "/splitledger.v1.LedgerService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceAddExpenseProcedure:
			addExpenseHandler.ServeHTTP(w, r)
		case LedgerServiceAddParticipantProcedure:
			addParticipantHandler.ServeHTTP(w, r)
		case LedgerServiceCreateGroupProcedure:
			createGroupHandler.ServeHTTP(w, r)
		case LedgerServiceAddMemberProcedure:
			addMemberHandler.ServeHTTP(w, r)
		case LedgerServiceCalculateSplitProcedure:
			calculateSplitHandler.ServeHTTP(w, r)
		case LedgerServiceListExpensesProcedure:
			listExpensesHandler.ServeHTTP(w, r)
		case LedgerServiceListParticipantsProcedure:
			listParticipantsHandler.ServeHTTP(w, r)
		case LedgerServiceListGroupsProcedure:
			listGroupsHandler.ServeHTTP(w, r)
		case LedgerServiceGetGroupMembersProcedure:
			getGroupMembersHandler.ServeHTTP(w, r)
		case LedgerServiceListGroupSharesProcedure:
			listGroupSharesHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteExpenseProcedure:
			deleteExpenseHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteGroupProcedure:
			deleteGroupHandler.ServeHTTP(w, r)
		case LedgerServiceMarkSharePaidProcedure:
			markSharePaidHandler.ServeHTTP(w, r)
		case LedgerServiceGenerateReportProcedure:
			generateReportHandler.ServeHTTP(w, r)
		case LedgerServiceExportReportPDFProcedure:
			exportReportPDFHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.AddExpense is not implemented"))
}

func (UnimplementedLedgerServiceHandler) AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.AddParticipant is not implemented"))
}

func (UnimplementedLedgerServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.CreateGroup is not implemented"))
}

func (UnimplementedLedgerServiceHandler) AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.AddMember is not implemented"))
}

func (UnimplementedLedgerServiceHandler) CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.CalculateSplit is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListExpenses(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.ListExpenses is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListParticipants(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListParticipantsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.ListParticipants is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListGroups(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.ListGroups is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetGroupMembers(context.Context, *connect.Request[api.GetGroupMembersRequest]) (*connect.Response[api.GetGroupMembersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.GetGroupMembers is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListGroupShares(context.Context, *connect.Request[api.ListGroupSharesRequest]) (*connect.Response[api.ListGroupSharesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.ListGroupShares is not implemented"))
}

func (UnimplementedLedgerServiceHandler) DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.DeleteExpense is not implemented"))
}

func (UnimplementedLedgerServiceHandler) DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.DeleteGroup is not implemented"))
}

func (UnimplementedLedgerServiceHandler) MarkSharePaid(context.Context, *connect.Request[api.MarkSharePaidRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.MarkSharePaid is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GenerateReport(context.Context, *connect.Request[api.GenerateReportRequest]) (*connect.Response[api.GenerateReportResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.GenerateReport is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ExportReportPDF(context.Context, *connect.Request[api.ExportReportPDFRequest]) (*connect.Response[api.ExportReportPDFResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.ExportReportPDF is not implemented"))
}
