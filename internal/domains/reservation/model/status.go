package model

import "fmt"

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusSeated    Status = "seated"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

const (
	ActorCustomer = "customer"
	ActorStaff    = "staff"
)

// Transition defines a valid lifecycle change and who may perform it.
type Transition struct {
	From  Status
	To    Status
	Actor string
}

var validTransitions = []Transition{
	{From: StatusConfirmed, To: StatusSeated, Actor: ActorStaff},
	{From: StatusConfirmed, To: StatusCancelled, Actor: ActorStaff},
	{From: StatusConfirmed, To: StatusCancelled, Actor: ActorCustomer},
	{From: StatusConfirmed, To: StatusNoShow, Actor: ActorStaff},
	{From: StatusSeated, To: StatusCompleted, Actor: ActorStaff},
}

type transitionKey struct {
	From  Status
	To    Status
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}

	return m
}()

func ValidStatus(status Status) bool {
	switch status {
	case StatusConfirmed, StatusSeated, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}

	return false
}

// Terminal reports whether a status absorbs all further transitions.
func Terminal(status Status) bool {
	switch status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}

	return false
}

// ReleasesHolds reports whether entering a status frees the reservation's
// table slots.
func ReleasesHolds(to Status) bool {
	return to == StatusCancelled || to == StatusNoShow
}

// ValidTransitionsFrom lists the statuses reachable from the given one,
// across all actors.
func ValidTransitionsFrom(status Status) []Status {
	var nexts []Status

	seen := map[Status]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}

	return nexts
}

// CanTransition checks whether the actor may move a reservation between the
// two statuses.
func CanTransition(from, to Status, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}

	if Terminal(from) {
		return fmt.Errorf("reservation is already %s and cannot change", from)
	}

	return fmt.Errorf("cannot move reservation from %s to %s as %s", from, to, actor)
}
