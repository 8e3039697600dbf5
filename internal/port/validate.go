package port

import (
	"fmt"
	"sort"
	"strings"
)

var (
	vesselStatuses = map[string]bool{
		VesselStatusApproaching: true,
		VesselStatusDocked:      true,
		VesselStatusDeparted:    true,
		VesselStatusAnchored:    true,
	}
	containerStatuses = map[string]bool{
		ContainerStatusEmpty:       true,
		ContainerStatusLoaded:      true,
		ContainerStatusInTransit:   true,
		ContainerStatusCustomsHold: true,
	}
	berthStatuses = map[string]bool{
		BerthStatusAvailable:   true,
		BerthStatusOccupied:    true,
		BerthStatusMaintenance: true,
	}
	integrationStatuses = map[string]bool{
		IntegrationStatusConnected:    true,
		IntegrationStatusDisconnected: true,
		IntegrationStatusError:        true,
	}
	taskPriorities = map[string]bool{
		PriorityLow:      true,
		PriorityMedium:   true,
		PriorityHigh:     true,
		PriorityCritical: true,
	}
	gateDirections = map[string]bool{
		GateDirectionIn:  true,
		GateDirectionOut: true,
	}
)

func enumProblem(field, value string, allowed map[string]bool) string {
	keys := make([]string, 0, len(allowed))
	for k := range allowed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s: %q is not one of %s", field, value, strings.Join(keys, ", "))
}

// Validate reports field level problems; an empty slice means the input is
// acceptable.
func (in InsertVessel) Validate() []string {
	var problems []string
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name: is required")
	}
	if in.Status != "" && !vesselStatuses[in.Status] {
		problems = append(problems, enumProblem("status", in.Status, vesselStatuses))
	}
	if in.ETA != nil && in.ETD != nil && in.ETD.Before(*in.ETA) {
		problems = append(problems, "etd: must not precede eta")
	}
	return problems
}

func (upd VesselUpdate) Validate() []string {
	var problems []string
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		problems = append(problems, "name: must not be blank")
	}
	if upd.Status != nil && !vesselStatuses[*upd.Status] {
		problems = append(problems, enumProblem("status", *upd.Status, vesselStatuses))
	}
	return problems
}

func (in InsertContainer) Validate() []string {
	var problems []string
	if strings.TrimSpace(in.ContainerNumber) == "" {
		problems = append(problems, "containerNumber: is required")
	}
	if in.Status != "" && !containerStatuses[in.Status] {
		problems = append(problems, enumProblem("status", in.Status, containerStatuses))
	}
	if in.Weight != nil && *in.Weight < 0 {
		problems = append(problems, "weight: must not be negative")
	}
	return problems
}

func (upd ContainerUpdate) Validate() []string {
	var problems []string
	if upd.Status != nil && !containerStatuses[*upd.Status] {
		problems = append(problems, enumProblem("status", *upd.Status, containerStatuses))
	}
	return problems
}

func (in InsertTask) Validate() []string {
	var problems []string
	if strings.TrimSpace(in.Title) == "" {
		problems = append(problems, "title: is required")
	}
	if in.Priority != "" && !taskPriorities[in.Priority] {
		problems = append(problems, enumProblem("priority", in.Priority, taskPriorities))
	}
	if in.EstimatedDuration != nil && *in.EstimatedDuration < 0 {
		problems = append(problems, "estimatedDuration: must not be negative")
	}
	seen := make(map[string]bool, len(in.Checklist))
	for i, item := range in.Checklist {
		if strings.TrimSpace(item.ID) == "" {
			problems = append(problems, fmt.Sprintf("checklist[%d].id: is required", i))
			continue
		}
		if seen[item.ID] {
			problems = append(problems, fmt.Sprintf("checklist[%d].id: duplicate id %q", i, item.ID))
		}
		seen[item.ID] = true
	}
	return problems
}

func (upd TaskUpdate) Validate() []string {
	var problems []string
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		problems = append(problems, "title: must not be blank")
	}
	if upd.Priority != nil && !taskPriorities[*upd.Priority] {
		problems = append(problems, enumProblem("priority", *upd.Priority, taskPriorities))
	}
	return problems
}

func (in InsertGateTransaction) Validate() []string {
	var problems []string
	if strings.TrimSpace(in.TruckNumber) == "" {
		problems = append(problems, "truckNumber: is required")
	}
	if !gateDirections[in.TransactionType] {
		problems = append(problems, enumProblem("transactionType", in.TransactionType, gateDirections))
	}
	return problems
}

func (upd BerthUpdate) Validate() []string {
	var problems []string
	if upd.Status != nil && !berthStatuses[*upd.Status] {
		problems = append(problems, enumProblem("status", *upd.Status, berthStatuses))
	}
	return problems
}

func (upd IntegrationUpdate) Validate() []string {
	var problems []string
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		problems = append(problems, "name: must not be blank")
	}
	if upd.Status != nil && !integrationStatuses[*upd.Status] {
		problems = append(problems, enumProblem("status", *upd.Status, integrationStatuses))
	}
	return problems
}
