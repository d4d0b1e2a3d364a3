package optimizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	mk "github.com/gitrdm/gokanlogic/pkg/minikanren"
)

// ErrInfeasible signals that a must-have covering constraint could not be
// satisfied. Partitioning filters uncoverable titles out before modeling, so
// hitting this means the model and the availability snapshot disagree.
var ErrInfeasible = errors.New("covering model is infeasible")

// Booleans are finite-domain variables over {1, 2}: 1 means false, 2 means
// true. Sums over booleans come back encoded as count+1.
const (
	encFalse = 1
	encTrue  = 2
)

func intRange(lo, hi int) []int {
	vals := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		vals = append(vals, v)
	}
	return vals
}

// solveSelection solves one weight run to proven optimality and returns the
// indexes of the selected services. Variables are created in candidate order
// (lexicographic by service ID), which fixes the search order and makes
// tie-breaking among equal-cost optima deterministic.
func solveSelection(ctx context.Context, inst modelInstance, timeout time.Duration) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if inst.degenerate() {
		return []int{}, nil
	}

	model := mk.NewModel()

	selected := make([]*mk.FDVariable, len(inst.Services))
	for i, svc := range inst.Services {
		selected[i] = model.NewVariableWithName(
			mk.NewBitSetDomainFromValues(encTrue, []int{encFalse, encTrue}),
			svc.ID,
		)
	}

	pick := func(indexes []int) []*mk.FDVariable {
		vars := make([]*mk.FDVariable, len(indexes))
		for i, idx := range indexes {
			vars[i] = selected[idx]
		}
		return vars
	}

	// Every coverable must-have title needs at least one covering service:
	// the boolean sum over its covering variables gets a domain excluding the
	// zero count.
	for _, covering := range inst.MustHave {
		m := len(covering)
		count := model.NewVariable(mk.NewBitSetDomainFromValues(m+1, intRange(2, m+1)))
		bs, err := mk.NewBoolSum(pick(covering), count)
		if err != nil {
			return nil, fmt.Errorf("failed to build covering constraint: %w", err)
		}
		model.AddConstraint(bs)
	}

	// Nice-to-have coverage is a derived indicator: covered = min(count, 2)
	// is true exactly when at least one covering service is selected, so the
	// bonus can never be claimed for free and is never withheld once earned.
	coverage := make([]*mk.FDVariable, len(inst.NiceToHave))
	for j, covering := range inst.NiceToHave {
		m := len(covering)
		count := model.NewVariable(mk.NewBitSetDomain(m + 1))
		bs, err := mk.NewBoolSum(pick(covering), count)
		if err != nil {
			return nil, fmt.Errorf("failed to build coverage count: %w", err)
		}
		model.AddConstraint(bs)

		two := model.NewVariable(mk.NewBitSetDomainFromValues(encTrue, []int{encTrue}))
		covered := model.NewVariable(mk.NewBitSetDomainFromValues(encTrue, []int{encFalse, encTrue}))
		mc, err := mk.NewMin([]*mk.FDVariable{count, two}, covered)
		if err != nil {
			return nil, fmt.Errorf("failed to build coverage indicator: %w", err)
		}
		model.AddConstraint(mc)
		coverage[j] = covered
	}

	// Objective: sum(price_i * x_i) - bonus * sum(covered_j), shifted by a
	// constant so the encoded value stays in a positive domain. The shift
	// does not change the argmin.
	sumPrice := 0
	for _, svc := range inst.Services {
		sumPrice += int(svc.PriceCents)
	}
	offset := 2*inst.BonusCents*len(coverage) + 1

	vars := make([]*mk.FDVariable, 0, len(selected)+len(coverage)+1)
	coeffs := make([]int, 0, cap(vars))
	for i, x := range selected {
		vars = append(vars, x)
		coeffs = append(coeffs, int(inst.Services[i].PriceCents))
	}
	for _, cov := range coverage {
		vars = append(vars, cov)
		coeffs = append(coeffs, -inst.BonusCents)
	}
	offsetVar := model.NewVariable(mk.NewBitSetDomainFromValues(offset, []int{offset}))
	vars = append(vars, offsetVar)
	coeffs = append(coeffs, 1)

	objective := model.NewVariable(mk.NewBitSetDomain(2*sumPrice + offset))
	ls, err := mk.NewLinearSum(vars, coeffs, objective)
	if err != nil {
		return nil, fmt.Errorf("failed to build objective: %w", err)
	}
	model.AddConstraint(ls)

	solver := mk.NewSolver(model)

	var sol []int
	if timeout > 0 {
		sol, _, err = solver.SolveOptimalWithOptions(ctx, objective, true, mk.WithTimeLimit(timeout))
	} else {
		sol, _, err = solver.SolveOptimal(ctx, objective, true)
	}
	if err != nil {
		// a time-limited run still yields a usable incumbent
		if !errors.Is(err, mk.ErrSearchLimitReached) || sol == nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("solve cancelled: %w", ctx.Err())
			}
			return nil, fmt.Errorf("%w: %v", ErrInfeasible, err)
		}
	}
	if sol == nil {
		return nil, ErrInfeasible
	}

	picked := make([]int, 0, len(selected))
	for i, x := range selected {
		if sol[x.ID()] == encTrue {
			picked = append(picked, i)
		}
	}

	return picked, nil
}
