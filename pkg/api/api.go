// Package api defines the request and response messages of the
// splitledger.v1.LedgerService RPC API.
//
// Monetary amounts are decimal strings with two fractional digits
// (for example "12.50"). Timestamps are Unix seconds.
package api

// Participant is a person who can share expenses.
type Participant struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// Group is a named set of participants. Members holds names, sorted.
type Group struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"createdAt"`
}

// Expense is a recorded cost. GroupID is zero for untagged expenses.
type Expense struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	GroupID   int64  `json:"groupId,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// Share is one participant's portion of one expense.
type Share struct {
	ExpenseID   int64  `json:"expenseId"`
	Participant string `json:"participant"`
	Amount      string `json:"amount"`
	Paid        bool   `json:"paid"`
}

// MemberSummary is one member's line in a Report.
type MemberSummary struct {
	Participant string `json:"participant"`
	Owed        string `json:"owed"`
	Paid        string `json:"paid"`
	Outstanding string `json:"outstanding"`
}

// Report aggregates the shares of a group's current members.
// Remaining is Total minus Paid.
type Report struct {
	Group        string           `json:"group"`
	Total        string           `json:"total"`
	ExpenseCount int              `json:"expenseCount"`
	Paid         string           `json:"paid"`
	Remaining    string           `json:"remaining"`
	Members      []*MemberSummary `json:"members"`
	GeneratedAt  int64            `json:"generatedAt"`
}

// AddExpenseRequest records an expense. Group is optional and tags the
// expense for group-scoped splits.
type AddExpenseRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Group  string `json:"group,omitempty"`
}

// AddExpenseResponse returns the stored expense with its assigned ID.
type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

// AddParticipantRequest registers a participant. Email is optional.
type AddParticipantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type AddParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

// CreateGroupRequest creates an empty group.
type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

// AddMemberRequest adds a registered participant to a group, both by name.
type AddMemberRequest struct {
	Group       string `json:"group"`
	Participant string `json:"participant"`
}

// AddMemberResponse returns the group with its updated member list.
type AddMemberResponse struct {
	Group *Group `json:"group"`
}

// CalculateSplitRequest splits the in-scope expenses across a group.
type CalculateSplitRequest struct {
	Group string `json:"group"`
}

// CalculateSplitResponse holds the split total, what each member owes
// overall (PerMember) and the per-expense shares that were recorded.
type CalculateSplitResponse struct {
	Group        string            `json:"group"`
	Total        string            `json:"total"`
	ExpenseCount int               `json:"expenseCount"`
	PerMember    map[string]string `json:"perMember"`
	Shares       []*Share          `json:"shares"`
}

// ListExpensesResponse lists expenses newest first.
type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type ListParticipantsResponse struct {
	Participants []*Participant `json:"participants"`
}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// GetGroupMembersRequest names the group whose members are listed.
type GetGroupMembersRequest struct {
	Group string `json:"group"`
}

type GetGroupMembersResponse struct {
	Members []string `json:"members"`
}

// ListGroupSharesRequest names the group whose members' shares are listed.
type ListGroupSharesRequest struct {
	Group string `json:"group"`
}

// ListGroupSharesResponse lists shares ordered by expense, then participant.
type ListGroupSharesResponse struct {
	Shares []*Share `json:"shares"`
}

// DeleteExpenseRequest removes an expense and its shares. Unknown IDs are
// not an error.
type DeleteExpenseRequest struct {
	ID int64 `json:"id"`
}

// DeleteGroupRequest removes a group and its memberships.
type DeleteGroupRequest struct {
	ID int64 `json:"id"`
}

// MarkSharePaidRequest flags one participant's share of an expense as paid.
type MarkSharePaidRequest struct {
	ExpenseID   int64  `json:"expenseId"`
	Participant string `json:"participant"`
}

// GenerateReportRequest names the group to summarize.
type GenerateReportRequest struct {
	Group string `json:"group"`
}

type GenerateReportResponse struct {
	Report *Report `json:"report"`
}

// ExportReportPDFRequest renders the group report as a PDF.
type ExportReportPDFRequest struct {
	Group string `json:"group"`
}

// ExportReportPDFResponse carries the rendered document; Content is
// base64-encoded on the wire.
type ExportReportPDFResponse struct {
	Filename string `json:"filename"`
	Content  []byte `json:"content"`
}
