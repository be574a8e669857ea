package service

import (
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

func participantToAPI(p models.Participant) *api.Participant {
	return &api.Participant{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
}

func groupToAPI(g models.Group) *api.Group {
	members := g.Members
	if members == nil {
		members = []string{}
	}
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

func expenseToAPI(e models.Expense) *api.Expense {
	return &api.Expense{
		ID:        e.ID,
		Name:      e.Name,
		Amount:    e.Amount.StringFixed(2),
		GroupID:   e.GroupID,
		CreatedAt: e.CreatedAt,
	}
}

func splitToAPI(r *models.SplitResult) *api.CalculateSplitResponse {
	resp := &api.CalculateSplitResponse{
		Group:        r.Group,
		Total:        r.Total.StringFixed(2),
		ExpenseCount: r.ExpenseCount,
		PerMember:    make(map[string]string, len(r.PerMember)),
		Shares:       make([]*api.Share, len(r.Shares)),
	}
	for name, amount := range r.PerMember {
		resp.PerMember[name] = amount.StringFixed(2)
	}
	for i, s := range r.Shares {
		resp.Shares[i] = shareToAPI(s)
	}
	return resp
}

func shareToAPI(s models.ExpenseShare) *api.Share {
	return &api.Share{
		ExpenseID:   s.ExpenseID,
		Participant: s.Participant,
		Amount:      s.Amount.StringFixed(2),
		Paid:        s.Paid,
	}
}

func reportToAPI(r *models.Report) *api.Report {
	out := &api.Report{
		Group:        r.Group,
		Total:        r.Total.StringFixed(2),
		ExpenseCount: r.ExpenseCount,
		Paid:         r.Paid.StringFixed(2),
		Remaining:    r.Remaining.StringFixed(2),
		Members:      make([]*api.MemberSummary, len(r.Members)),
		GeneratedAt:  r.GeneratedAt,
	}
	for i, m := range r.Members {
		out.Members[i] = &api.MemberSummary{
			Participant: m.Participant,
			Owed:        m.Owed.StringFixed(2),
			Paid:        m.Paid.StringFixed(2),
			Outstanding: m.Outstanding().StringFixed(2),
		}
	}
	return out
}
