package client

import (
	"sort"

	"github.com/crewlane/go-board"
)

// SortDirection orders tickets by assignee username
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// DeriveView is the pure projection from the full ticket collection to a
// rendered view: filter by assignee username when selectedUser is set,
// filter by status bucket when status is set, then stable-sort by assignee
// username. Unassigned tickets sort as the empty string, first ascending.
// Ties keep their original relative order. Inputs are never mutated; the
// result is always recomputed wholesale, never incrementally patched.
func DeriveView(tickets []board.Ticket, selectedUser string, dir SortDirection, status board.TicketStatus) []board.Ticket {
	view := make([]board.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if selectedUser != "" && t.AssigneeUsername() != selectedUser {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		view = append(view, t)
	}

	sort.SliceStable(view, func(i, j int) bool {
		a, b := view[i].AssigneeUsername(), view[j].AssigneeUsername()
		if dir == SortDescending {
			return a > b
		}
		return a < b
	})

	return view
}

// UniqueAssignees returns the distinct non-empty assignee usernames in
// first-seen order, for populating the filter control.
func UniqueAssignees(tickets []board.Ticket) []string {
	seen := make(map[string]struct{}, len(tickets))
	names := make([]string, 0, len(tickets))

	for _, t := range tickets {
		name := t.AssigneeUsername()
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}
