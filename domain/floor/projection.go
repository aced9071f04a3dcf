package floor

// OpportunityEfficiency projects a volume-driven stat as projected
// opportunities times season-long per-opportunity efficiency. Projected
// opportunities blend the season and recent averages 40/60 and are
// scaled by the game-script volume modifier before efficiency is
// applied. Returns false when efficiency is undefined (no opportunities
// or no production), in which case callers fall back to the EWMA
// projection.
func OpportunityEfficiency(seasonOpp, recentOpp, seasonProduction []float64, volumeModifier float64) (float64, bool) {
	var totalOpp, totalProd float64
	for _, v := range seasonOpp {
		totalOpp += v
	}
	for _, v := range seasonProduction {
		totalProd += v
	}
	if totalOpp <= 0 || totalProd <= 0 {
		return 0, false
	}
	efficiency := totalProd / totalOpp

	projected := seasonWeight*Mean(seasonOpp) + recentWeight*Mean(recentOpp)
	if volumeModifier > 0 {
		projected *= volumeModifier
	}
	return projected * efficiency, true
}
