package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/report"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService on top of a Ledger.
// Every error is returned to the caller as a Connect error; none of them
// stops the server.
type LedgerService struct {
	apiconnect.UnimplementedLedgerServiceHandler
	ledger *ledger.Ledger
}

// NewLedgerService creates a new LedgerService backed by l.
func NewLedgerService(l *ledger.Ledger) *LedgerService {
	return &LedgerService{ledger: l}
}

// AddExpense records an expense, optionally tagged with a group.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"name", req.Msg.Name,
		"amount", req.Msg.Amount,
		"group", req.Msg.Group,
	)

	amount, err := models.ParseAmount(req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}

	var expense models.Expense
	if req.Msg.Group != "" {
		expense, err = s.ledger.AddGroupExpense(ctx, req.Msg.Group, req.Msg.Name, amount)
	} else {
		expense, err = s.ledger.AddExpense(ctx, req.Msg.Name, amount)
	}
	if err != nil {
		slog.Error("AddExpense failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddExpenseResponse{
		Expense: expenseToAPI(expense),
	}), nil
}

// AddParticipant registers a participant.
func (s *LedgerService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	slog.Info("AddParticipant request received", "name", req.Msg.Name)

	p, err := s.ledger.AddParticipant(ctx, req.Msg.Name, req.Msg.Email)
	if err != nil {
		slog.Error("AddParticipant failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddParticipantResponse{
		Participant: participantToAPI(p),
	}), nil
}

// CreateGroup creates an empty group.
func (s *LedgerService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received", "name", req.Msg.Name)

	g, err := s.ledger.CreateGroup(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreateGroupResponse{
		Group: groupToAPI(g),
	}), nil
}

// AddMember adds a participant to a group.
func (s *LedgerService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	slog.Info("AddMember request received",
		"group", req.Msg.Group,
		"participant", req.Msg.Participant,
	)

	g, err := s.ledger.AddMember(ctx, req.Msg.Group, req.Msg.Participant)
	if err != nil {
		slog.Error("AddMember failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddMemberResponse{
		Group: groupToAPI(g),
	}), nil
}

// CalculateSplit splits the recorded expenses equally across a group.
func (s *LedgerService) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	slog.Info("CalculateSplit request received", "group", req.Msg.Group)

	result, err := s.ledger.CalculateSplit(ctx, req.Msg.Group)
	if err != nil {
		slog.Error("CalculateSplit failed", "group", req.Msg.Group, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(splitToAPI(result)), nil
}

// ListExpenses returns all expenses, newest first.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListExpensesResponse], error) {
	expenses := s.ledger.ListExpenses()

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = expenseToAPI(e)
	}

	slog.Info("ListExpenses successful", "count", len(out))
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// ListParticipants returns all participants in creation order.
func (s *LedgerService) ListParticipants(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListParticipantsResponse], error) {
	participants := s.ledger.ListParticipants()

	out := make([]*api.Participant, len(participants))
	for i, p := range participants {
		out[i] = participantToAPI(p)
	}

	slog.Info("ListParticipants successful", "count", len(out))
	return connect.NewResponse(&api.ListParticipantsResponse{Participants: out}), nil
}

// ListGroups returns all groups in creation order.
func (s *LedgerService) ListGroups(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListGroupsResponse], error) {
	groups := s.ledger.ListGroups()

	out := make([]*api.Group, len(groups))
	for i, g := range groups {
		out[i] = groupToAPI(g)
	}

	slog.Info("ListGroups successful", "count", len(out))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// GetGroupMembers returns the members of a group.
func (s *LedgerService) GetGroupMembers(ctx context.Context, req *connect.Request[api.GetGroupMembersRequest]) (*connect.Response[api.GetGroupMembersResponse], error) {
	members, err := s.ledger.GroupMembers(req.Msg.Group)
	if err != nil {
		slog.Error("GetGroupMembers failed", "group", req.Msg.Group, "error", err)
		return nil, toConnectError(err)
	}
	if members == nil {
		members = []string{}
	}

	return connect.NewResponse(&api.GetGroupMembersResponse{Members: members}), nil
}

// ListGroupShares returns the recorded shares of a group's members.
func (s *LedgerService) ListGroupShares(ctx context.Context, req *connect.Request[api.ListGroupSharesRequest]) (*connect.Response[api.ListGroupSharesResponse], error) {
	shares, err := s.ledger.GroupShares(ctx, req.Msg.Group)
	if err != nil {
		slog.Error("ListGroupShares failed", "group", req.Msg.Group, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Share, len(shares))
	for i, share := range shares {
		out[i] = shareToAPI(share)
	}
	return connect.NewResponse(&api.ListGroupSharesResponse{Shares: out}), nil
}

// DeleteExpense removes an expense and its shares.
func (s *LedgerService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[emptypb.Empty], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ID)

	if err := s.ledger.DeleteExpense(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&emptypb.Empty{}), nil
}

// DeleteGroup removes a group and its memberships.
func (s *LedgerService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[emptypb.Empty], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.ID)

	if err := s.ledger.DeleteGroup(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&emptypb.Empty{}), nil
}

// MarkSharePaid flags a participant's share of an expense as paid.
func (s *LedgerService) MarkSharePaid(ctx context.Context, req *connect.Request[api.MarkSharePaidRequest]) (*connect.Response[emptypb.Empty], error) {
	slog.Info("MarkSharePaid request received",
		"expense_id", req.Msg.ExpenseID,
		"participant", req.Msg.Participant,
	)

	if err := s.ledger.MarkSharePaid(ctx, req.Msg.ExpenseID, req.Msg.Participant); err != nil {
		slog.Error("MarkSharePaid failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&emptypb.Empty{}), nil
}

// GenerateReport summarizes paid and outstanding shares of a group.
func (s *LedgerService) GenerateReport(ctx context.Context, req *connect.Request[api.GenerateReportRequest]) (*connect.Response[api.GenerateReportResponse], error) {
	slog.Info("GenerateReport request received", "group", req.Msg.Group)

	r, err := s.ledger.GenerateReport(ctx, req.Msg.Group)
	if err != nil {
		slog.Error("GenerateReport failed", "group", req.Msg.Group, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GenerateReportResponse{Report: reportToAPI(r)}), nil
}

// ExportReportPDF renders a group report as a PDF document.
func (s *LedgerService) ExportReportPDF(ctx context.Context, req *connect.Request[api.ExportReportPDFRequest]) (*connect.Response[api.ExportReportPDFResponse], error) {
	slog.Info("ExportReportPDF request received", "group", req.Msg.Group)

	r, err := s.ledger.GenerateReport(ctx, req.Msg.Group)
	if err != nil {
		slog.Error("ExportReportPDF failed", "group", req.Msg.Group, "error", err)
		return nil, toConnectError(err)
	}

	content, err := report.RenderPDF(r)
	if err != nil {
		slog.Error("ExportReportPDF render failed", "group", req.Msg.Group, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.ExportReportPDFResponse{
		Filename: report.Filename(r),
		Content:  content,
	}), nil
}
