package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T, opts ...ledger.Option) (apiconnect.LedgerServiceClient, func()) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	l, err := ledger.New(context.Background(), store, opts...)
	if err != nil {
		store.Close()
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create ledger: %v", err)
	}

	path, handler := apiconnect.NewLedgerServiceHandler(
		NewLedgerService(l),
		connect.WithInterceptors(
			middleware.LoggingInterceptor(),
			middleware.MetricsInterceptor(metrics.New()),
		),
	)

	mux := http.NewServeMux()
	mux.Handle(path, handler)

	server := httptest.NewServer(mux)

	client := apiconnect.NewLedgerServiceClient(
		http.DefaultClient,
		server.URL,
	)

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return client, cleanup
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil error", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}

// setupTrip creates group "Trip" with the given members.
func setupTrip(t *testing.T, client apiconnect.LedgerServiceClient, members ...string) *api.Group {
	t.Helper()
	ctx := context.Background()

	resp, err := client.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "Trip"}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	group := resp.Msg.Group
	for _, m := range members {
		if _, err := client.AddParticipant(ctx, connect.NewRequest(&api.AddParticipantRequest{Name: m})); err != nil {
			t.Fatalf("AddParticipant(%s) failed: %v", m, err)
		}
		memberResp, err := client.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{Group: "Trip", Participant: m}))
		if err != nil {
			t.Fatalf("AddMember(%s) failed: %v", m, err)
		}
		group = memberResp.Msg.Group
	}
	return group
}

func TestAddExpense(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := client.AddExpense(context.Background(), connect.NewRequest(&api.AddExpenseRequest{
		Name:   "Groceries",
		Amount: "12,5",
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	if resp.Msg.Expense.ID == 0 {
		t.Error("expected store-assigned ID")
	}
	if resp.Msg.Expense.Amount != "12.50" {
		t.Errorf("amount: expected '12.50', got '%s'", resp.Msg.Expense.Amount)
	}
	if resp.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected request ID header in response")
	}

	listResp, err := client.ListExpenses(context.Background(), connect.NewRequest(&emptypb.Empty{}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(listResp.Msg.Expenses) != 1 || listResp.Msg.Expenses[0].Name != "Groceries" {
		t.Errorf("expected Groceries to be listed, got %+v", listResp.Msg.Expenses)
	}
}

func TestAddExpense_InvalidInput(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	tests := []struct {
		name string
		req  *api.AddExpenseRequest
		code connect.Code
	}{
		{"non-numeric amount", &api.AddExpenseRequest{Name: "Lunch", Amount: "abc"}, connect.CodeInvalidArgument},
		{"zero amount", &api.AddExpenseRequest{Name: "Lunch", Amount: "0"}, connect.CodeInvalidArgument},
		{"negative amount", &api.AddExpenseRequest{Name: "Lunch", Amount: "-3"}, connect.CodeInvalidArgument},
		{"huge exponent", &api.AddExpenseRequest{Name: "Lunch", Amount: "1e999999999"}, connect.CodeInvalidArgument},
		{"missing amount", &api.AddExpenseRequest{Name: "Lunch"}, connect.CodeInvalidArgument},
		{"missing name", &api.AddExpenseRequest{Amount: "3"}, connect.CodeInvalidArgument},
		{"unknown group", &api.AddExpenseRequest{Name: "Lunch", Amount: "3", Group: "Nowhere"}, connect.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.AddExpense(context.Background(), connect.NewRequest(tt.req))
			expectCode(t, err, tt.code)
		})
	}
}

func TestAddParticipant_Duplicate(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	resp, err := client.AddParticipant(ctx, connect.NewRequest(&api.AddParticipantRequest{
		Name:  "Alice",
		Email: "alice@example.com",
	}))
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}
	if resp.Msg.Participant.Email != "alice@example.com" {
		t.Errorf("email: expected 'alice@example.com', got '%s'", resp.Msg.Participant.Email)
	}

	_, err = client.AddParticipant(ctx, connect.NewRequest(&api.AddParticipantRequest{Name: "Alice"}))
	expectCode(t, err, connect.CodeAlreadyExists)

	listResp, err := client.ListParticipants(ctx, connect.NewRequest(&emptypb.Empty{}))
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	if len(listResp.Msg.Participants) != 1 {
		t.Errorf("expected 1 participant, got %d", len(listResp.Msg.Participants))
	}
}

func TestGroupMembership(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	group := setupTrip(t, client, "Bob", "Alice")
	if len(group.Members) != 2 || group.Members[0] != "Alice" {
		t.Errorf("expected sorted members [Alice Bob], got %v", group.Members)
	}

	_, err := client.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{Group: "Trip", Participant: "Alice"}))
	expectCode(t, err, connect.CodeAlreadyExists)

	_, err = client.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{Group: "Trip", Participant: "Mallory"}))
	expectCode(t, err, connect.CodeNotFound)

	_, err = client.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "Trip"}))
	expectCode(t, err, connect.CodeAlreadyExists)

	membersResp, err := client.GetGroupMembers(ctx, connect.NewRequest(&api.GetGroupMembersRequest{Group: "Trip"}))
	if err != nil {
		t.Fatalf("GetGroupMembers failed: %v", err)
	}
	if len(membersResp.Msg.Members) != 2 {
		t.Errorf("expected 2 members, got %v", membersResp.Msg.Members)
	}

	_, err = client.GetGroupMembers(ctx, connect.NewRequest(&api.GetGroupMembersRequest{Group: "Nowhere"}))
	expectCode(t, err, connect.CodeNotFound)

	groupsResp, err := client.ListGroups(ctx, connect.NewRequest(&emptypb.Empty{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groupsResp.Msg.Groups) != 1 {
		t.Errorf("expected 1 group, got %d", len(groupsResp.Msg.Groups))
	}
}

func TestCalculateSplit(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	setupTrip(t, client, "Alice", "Bob")
	if _, err := client.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{Name: "Hotel", Amount: "100.00"})); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	resp, err := client.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{Group: "Trip"}))
	if err != nil {
		t.Fatalf("CalculateSplit failed: %v", err)
	}

	if resp.Msg.Total != "100.00" {
		t.Errorf("total: expected '100.00', got '%s'", resp.Msg.Total)
	}
	for _, name := range []string{"Alice", "Bob"} {
		if resp.Msg.PerMember[name] != "50.00" {
			t.Errorf("%s: expected '50.00', got '%s'", name, resp.Msg.PerMember[name])
		}
	}
	if len(resp.Msg.Shares) != 2 {
		t.Errorf("expected 2 shares, got %d", len(resp.Msg.Shares))
	}

	sharesResp, err := client.ListGroupShares(ctx, connect.NewRequest(&api.ListGroupSharesRequest{Group: "Trip"}))
	if err != nil {
		t.Fatalf("ListGroupShares failed: %v", err)
	}
	if len(sharesResp.Msg.Shares) != 2 {
		t.Fatalf("expected 2 shares, got %d", len(sharesResp.Msg.Shares))
	}
	for _, share := range sharesResp.Msg.Shares {
		if share.Amount != "50.00" || share.Paid {
			t.Errorf("unexpected share: %+v", share)
		}
	}

	_, err = client.ListGroupShares(ctx, connect.NewRequest(&api.ListGroupSharesRequest{Group: "Nowhere"}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestCalculateSplit_Preconditions(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	setupTrip(t, client)

	// No members and no expenses.
	_, err := client.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{Group: "Trip"}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	_, err = client.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{Group: "Nowhere"}))
	expectCode(t, err, connect.CodeNotFound)

	_, err = client.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{Group: "  "}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestReportFlow(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	group := setupTrip(t, client, "Alice", "Bob")

	reportResp, err := client.GenerateReport(ctx, connect.NewRequest(&api.GenerateReportRequest{Group: "Trip"}))
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}
	r := reportResp.Msg.Report
	if r.Total != "0.00" || r.Paid != "0.00" || r.Remaining != "0.00" || r.ExpenseCount != 0 {
		t.Errorf("expected zeroed report, got %+v", r)
	}

	expResp, err := client.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{Name: "Hotel", Amount: "80"}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if _, err := client.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{Group: "Trip"})); err != nil {
		t.Fatalf("CalculateSplit failed: %v", err)
	}
	if _, err := client.MarkSharePaid(ctx, connect.NewRequest(&api.MarkSharePaidRequest{
		ExpenseID:   expResp.Msg.Expense.ID,
		Participant: "Alice",
	})); err != nil {
		t.Fatalf("MarkSharePaid failed: %v", err)
	}

	reportResp, err = client.GenerateReport(ctx, connect.NewRequest(&api.GenerateReportRequest{Group: "Trip"}))
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}
	r = reportResp.Msg.Report
	if r.Total != "80.00" || r.Paid != "40.00" || r.Remaining != "40.00" || r.ExpenseCount != 1 {
		t.Errorf("unexpected report: %+v", r)
	}
	if len(r.Members) != 2 || r.Members[0].Outstanding != "0.00" {
		t.Errorf("expected Alice settled, got %+v", r.Members)
	}

	pdfResp, err := client.ExportReportPDF(ctx, connect.NewRequest(&api.ExportReportPDFRequest{Group: "Trip"}))
	if err != nil {
		t.Fatalf("ExportReportPDF failed: %v", err)
	}
	if !bytes.HasPrefix(pdfResp.Msg.Content, []byte("%PDF-")) {
		t.Error("expected PDF content")
	}
	if pdfResp.Msg.Filename == "" {
		t.Error("expected a filename")
	}

	_, err = client.MarkSharePaid(ctx, connect.NewRequest(&api.MarkSharePaidRequest{ExpenseID: 9999, Participant: "Alice"}))
	expectCode(t, err, connect.CodeNotFound)

	if _, err := client.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ID: expResp.Msg.Expense.ID})); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	if _, err := client.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ID: expResp.Msg.Expense.ID})); err != nil {
		t.Errorf("expected repeated DeleteExpense to succeed, got %v", err)
	}

	if _, err := client.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{ID: group.ID})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	_, err = client.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{ID: group.ID}))
	expectCode(t, err, connect.CodeNotFound)

	_, err = client.ExportReportPDF(ctx, connect.NewRequest(&api.ExportReportPDFRequest{Group: "Trip"}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestGroupScopedSplit(t *testing.T) {
	client, cleanup := setupTestServer(t, ledger.WithScope(ledger.ScopeGroup))
	defer cleanup()
	ctx := context.Background()

	setupTrip(t, client, "Alice", "Bob")
	client.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{Name: "Untagged", Amount: "500"}))
	if _, err := client.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{Name: "Fuel", Amount: "30", Group: "Trip"})); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	resp, err := client.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{Group: "Trip"}))
	if err != nil {
		t.Fatalf("CalculateSplit failed: %v", err)
	}
	if resp.Msg.Total != "30.00" || resp.Msg.PerMember["Alice"] != "15.00" {
		t.Errorf("expected only the tagged expense to be split, got %+v", resp.Msg)
	}
}

func TestToConnectError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want connect.Code
	}{
		{"validation", &models.ValidationError{Field: "name", Reason: "required"}, connect.CodeInvalidArgument},
		{"invalid amount", models.ErrInvalidAmount, connect.CodeInvalidArgument},
		{"duplicate", models.ErrDuplicateEntity, connect.CodeAlreadyExists},
		{"already member", models.ErrAlreadyMember, connect.CodeAlreadyExists},
		{"insufficient data", models.ErrInsufficientData, connect.CodeFailedPrecondition},
		{"no members", models.ErrNoMembers, connect.CodeFailedPrecondition},
		{"not found", models.ErrNotFound, connect.CodeNotFound},
		{"persistence", &models.PersistenceError{Op: "add expense", Err: errors.New("disk I/O error")}, connect.CodeUnavailable},
		{"unknown", errors.New("boom"), connect.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toConnectError(tt.err).Code(); got != tt.want {
				t.Errorf("toConnectError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
