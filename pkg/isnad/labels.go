package isnad

var statusLabels = map[Locale]map[Status]string{
	LocaleEnglish: {
		StatusProphet:     "Prophet",
		StatusCompanion:   "Companion",
		StatusTrustworthy: "Trustworthy",
		StatusTruthful:    "Truthful",
		StatusUnknown:     "Unknown",
		StatusWeak:        "Weak",
		StatusCollector:   "Collector",
	},
	LocaleArabic: {
		StatusProphet:     "النبي ﷺ",
		StatusCompanion:   "صحابي",
		StatusTrustworthy: "ثقة",
		StatusTruthful:    "صدوق",
		StatusUnknown:     "مجهول",
		StatusWeak:        "ضعيف",
		StatusCollector:   "مصنّف",
	},
	LocaleFrench: {
		StatusProphet:     "Prophète",
		StatusCompanion:   "Compagnon",
		StatusTrustworthy: "Digne de confiance",
		StatusTruthful:    "Véridique",
		StatusUnknown:     "Inconnu",
		StatusWeak:        "Faible",
		StatusCollector:   "Compilateur",
	},
}

var generationLabels = map[Locale]map[Generation]string{
	LocaleEnglish: {
		GenerationProphet:               "The Prophet",
		GenerationCompanions:            "Companions",
		GenerationSuccessors:            "Successors",
		GenerationSuccessorsOfSuccessor: "Successors of the Successors",
		GenerationLater:                 "Later Scholars",
	},
	LocaleArabic: {
		GenerationProphet:               "النبي ﷺ",
		GenerationCompanions:            "الصحابة",
		GenerationSuccessors:            "التابعون",
		GenerationSuccessorsOfSuccessor: "أتباع التابعين",
		GenerationLater:                 "من بعدهم",
	},
	LocaleFrench: {
		GenerationProphet:               "Le Prophète",
		GenerationCompanions:            "Compagnons",
		GenerationSuccessors:            "Successeurs",
		GenerationSuccessorsOfSuccessor: "Successeurs des Successeurs",
		GenerationLater:                 "Savants ultérieurs",
	},
}

var pivotMarkers = map[Locale]string{
	LocaleEnglish: "(common link)",
	LocaleArabic:  "(المدار)",
	LocaleFrench:  "(lien commun)",
}

// StatusLabel returns the display name of s in locale l.
func StatusLabel(l Locale, s Status) string {
	if t, ok := statusLabels[l]; ok {
		if v, ok := t[s]; ok {
			return v
		}
	}
	return statusLabels[DefaultLocale][s]
}

// GenerationLabel returns the display name of g in locale l.
func GenerationLabel(l Locale, g Generation) string {
	if t, ok := generationLabels[l]; ok {
		if v, ok := t[g]; ok {
			return v
		}
	}
	return generationLabels[DefaultLocale][g]
}

// PivotMarker returns the suffix appended to the common-link label.
func PivotMarker(l Locale) string {
	if m, ok := pivotMarkers[l]; ok {
		return m
	}
	return pivotMarkers[DefaultLocale]
}
