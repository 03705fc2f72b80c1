// Package assigner fills a provider's open role slots from a candidate
// staff pool. It is a greedy heuristic: every eligible (staff, role)
// pair is scored, pairs are claimed in score order, and each staff
// member is used for at most one role per call. The result is
// explainable and deterministic but not a global optimum.
package assigner

import (
	"sort"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
)

// Scoring weights. Scores are only comparable within a single
// AutoAssign call.
const (
	// scoreRoleCapable is the base score for holding the requested role.
	// Candidates are pre-filtered on capability, so this term is always
	// present; it keeps scores well above the preference bonuses.
	scoreRoleCapable = 100

	// scorePreferredLocation rewards staff whose preferred location is
	// the provider's home location
	scorePreferredLocation = 20

	// Provider-side preference: index i in the provider's ordered staff
	// preference list scores max(0, 50 - 5i)
	scoreProviderPrefBase = 50
	scoreProviderPrefStep = 5

	// Staff-side preference: index i in the staff member's ordered
	// provider preference list scores max(0, 30 - 3i)
	scoreStaffPrefBase = 30
	scoreStaffPrefStep = 3

	// scorePriorAssignmentPenalty discourages stacking multiple roles
	// for the same visit onto one person
	scorePriorAssignmentPenalty = 10
)

// Score rates how desirable it is to assign the staff member to the
// given role for this provider. Higher is better. existing is the
// assignment list accumulated so far in the current batch.
func Score(staff model.Staff, provider model.Provider, role model.Role, existing []model.StaffAssignment) int {
	score := 0

	if staff.CanPerform(role) {
		score += scoreRoleCapable
	}

	if staff.PreferredLocation != "" && staff.PreferredLocation == provider.DefaultLocation {
		score += scorePreferredLocation
	}

	if i := indexOf(provider.StaffPreferences, staff.ID); i >= 0 {
		score += max(0, scoreProviderPrefBase-scoreProviderPrefStep*i)
	}

	if i := indexOf(staff.PreferredProviders, provider.ID); i >= 0 {
		score += max(0, scoreStaffPrefBase-scoreStaffPrefStep*i)
	}

	for _, a := range existing {
		if a.StaffID == staff.ID {
			score -= scorePriorAssignmentPenalty
		}
	}

	return score
}

// scoredCandidate pairs one eligible (staff, role) combination with its score
type scoredCandidate struct {
	staffID string
	role    model.Role
	score   int
}

// AutoAssign fills the provider's role requirements from the candidate
// pool for the given weekday and time slot.
//
// Candidates must be available for the slot and capable of the role.
// All eligible pairs are scored against existing (the prior-batch
// context), sorted by score descending with a stable sort, and claimed
// greedily: a role stops accepting once its requirement is met, and a
// staff member is placed at most once per call. Ties keep enumeration
// order (fixed role order, then pool order), so identical inputs always
// produce identical output.
//
// Unmet requirements stay unmet; the returned list holds whatever could
// be filled and is never nil.
func AutoAssign(
	provider model.Provider,
	pool []model.Staff,
	day model.WeekDay,
	slot model.TimeSlot,
	existing []model.StaffAssignment,
) []model.StaffAssignment {
	remaining := provider.Requirements

	var candidates []scoredCandidate
	for _, role := range model.Roles {
		if remaining.Get(role) == 0 {
			continue
		}
		for _, staff := range pool {
			if !staff.IsAvailable(day, slot) {
				continue
			}
			if !staff.CanPerform(role) {
				continue
			}
			candidates = append(candidates, scoredCandidate{
				staffID: staff.ID,
				role:    role,
				score:   Score(staff, provider, role, existing),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	assignments := []model.StaffAssignment{}
	placed := make(map[string]bool)

	for _, c := range candidates {
		if remaining.Get(c.role) == 0 || placed[c.staffID] {
			continue
		}
		assignments = append(assignments, model.StaffAssignment{
			StaffID:      c.staffID,
			AssignedRole: c.role,
		})
		remaining.Set(c.role, remaining.Get(c.role)-1)
		placed[c.staffID] = true
	}

	return assignments
}

func indexOf(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}
