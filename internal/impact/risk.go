package impact

// Risk weights. Each component is capped so no single signal can saturate
// the score on its own.
const (
	affectedWeight   = 2
	affectedCap      = 30
	breakingWeight   = 15
	breakingCap      = 30
	violationErrPts  = 20
	violationWarnPts = 10
	violationCap     = 25
	fanInCap         = 15
)

// riskScore aggregates affected-module count, breaking API changes,
// boundary violations, and fan-in of the directly changed symbols into a
// 0-100 score.
func (a *Analyzer) riskScore(r *Result) float64 {
	score := capped(len(r.AffectedModules)*affectedWeight, affectedCap)

	breaking := 0
	for _, c := range r.PublicAPIChanges {
		if c.Kind == APIBreaking {
			breaking++
		}
	}
	score += capped(breaking*breakingWeight, breakingCap)

	violationPts := 0
	for _, v := range r.BoundaryViolations {
		if v.Severity == SeverityError {
			violationPts += violationErrPts
		} else {
			violationPts += violationWarnPts
		}
	}
	score += capped(violationPts, violationCap)

	score += capped(a.changedFanIn(r.DirectlyChanged), fanInCap)

	if score > 100 {
		score = 100
	}
	return float64(score)
}

// changedFanIn sums the reference counts of the distinct exported symbol
// names among the directly changed symbols.
func (a *Analyzer) changedFanIn(changed []ChangedSymbol) int {
	seen := make(map[string]bool, len(changed))
	total := 0
	for _, cs := range changed {
		if !cs.Symbol.Exported || seen[cs.Symbol.Name] {
			continue
		}
		seen[cs.Symbol.Name] = true
		total += a.symbols.ReferenceCount(cs.Symbol.Name, a.graph)
	}
	return total
}

func capped(v, limit int) int {
	if v > limit {
		return limit
	}
	return v
}

// ClassifyRisk maps an aggregate score to its fixed level. Thresholds are
// inclusive: exactly 80 is critical, 60 high, 30 medium.
func ClassifyRisk(score float64) RiskLevel {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 30:
		return RiskMedium
	default:
		return RiskLow
	}
}
