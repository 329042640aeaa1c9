// Package fixtures holds a small named narrator set and a few hadiths used
// by tests across the module and by the in-memory demo store.
package fixtures

import "github.com/mki/isnad/pkg/isnad"

// Narrator indices.
const (
	Prophet       = 1
	IbnMasud      = 2
	IbnAbbas      = 3
	Masruq        = 4
	IbrahimNakhai = 5
	Amash         = 6
	SufyanUyayna  = 7
	Waki          = 8
	Bukhari       = 9
	Muslim        = 10

	// Missing is never present in the fixture set.
	Missing = 9999
)

// Hadith ids.
const (
	TwoChainID    = "bukhari-convergence"
	SingleChainID = "muslim-single"
	EmptyID       = "orphan-chain"
	PartialID     = "bukhari-partial"
)

func year(y int) *int { return &y }

// Narrators returns a fresh copy of the fixture narrators ordered by index.
func Narrators() []isnad.Narrator {
	return []isnad.Narrator{
		{
			Index:      Prophet,
			Names:      isnad.LocalizedText{isnad.LocaleEnglish: "Prophet Muhammad", isnad.LocaleArabic: "رسول الله ﷺ", isnad.LocaleFrench: "Le Prophète Muhammad"},
			Status:     isnad.StatusProphet,
			Generation: isnad.GenerationProphet,
			Grade:      "Prophet Muhammad",
			DeathYear:  year(11),
		},
		{
			Index:      IbnMasud,
			Names:      isnad.LocalizedText{isnad.LocaleEnglish: "Abdullah ibn Mas'ud", isnad.LocaleArabic: "عبد الله بن مسعود"},
			Status:     isnad.StatusCompanion,
			Generation: isnad.GenerationCompanions,
			Grade:      "Comp.(RA) [1st Generation]",
			DeathYear:  year(32),
		},
		{
			Index:      IbnAbbas,
			Names:      isnad.LocalizedText{isnad.LocaleEnglish: "Abdullah ibn Abbas", isnad.LocaleArabic: "عبد الله بن عباس"},
			Status:     isnad.StatusCompanion,
			Generation: isnad.GenerationCompanions,
			Grade:      "Comp.(RA) [1st Generation]",
			BirthYear:  year(-3),
			DeathYear:  year(68),
		},
		{
			Index:      Masruq,
			Names:      isnad.LocalizedText{isnad.LocaleEnglish: "Masruq ibn al-Ajda'", isnad.LocaleArabic: "مسروق بن الأجدع"},
			Status:     isnad.StatusTrustworthy,
			Generation: isnad.GenerationSuccessors,
			Grade:      "Follower(Tabi') [2nd Generation]",
			DeathYear:  year(63),
		},
		{
			Index:      IbrahimNakhai,
			Names:      isnad.LocalizedText{isnad.LocaleEnglish: "Ibrahim al-Nakha'i", isnad.LocaleArabic: "إبراهيم النخعي"},
			Status:     isnad.StatusTrustworthy,
			Generation: isnad.GenerationSuccessors,
			Grade:      "Thiqah Faqih [3rd Generation]",
			DeathYear:  year(96),
		},
		{
			Index:      Amash,
			Names:      isnad.LocalizedText{isnad.LocaleEnglish: "Sulayman al-A'mash", isnad.LocaleArabic: "سليمان الأعمش"},
			Status:     isnad.StatusTrustworthy,
			Generation: isnad.GenerationSuccessorsOfSuccessor,
			Grade:      "Thiqah Hafiz [5th Generation]",
			BirthYear:  year(61),
			DeathYear:  year(148),
		},
		{
			Index:      SufyanUyayna,
			Names:      isnad.LocalizedText{isnad.LocaleEnglish: "Sufyan ibn Uyayna", isnad.LocaleArabic: "سفيان بن عيينة"},
			Status:     isnad.StatusTrustworthy,
			Generation: isnad.GenerationSuccessorsOfSuccessor,
			Grade:      "Thiqah Hafiz Imam [6th Generation]",
			DeathYear:  year(198),
		},
		{
			Index:      Waki,
			Names:      isnad.LocalizedText{isnad.LocaleEnglish: "Waki' ibn al-Jarrah", isnad.LocaleArabic: "وكيع بن الجراح"},
			Status:     isnad.StatusTrustworthy,
			Generation: isnad.GenerationLater,
			Grade:      "Thiqah Hafiz [9th Generation]",
			DeathYear:  year(197),
		},
		{
			Index:      Bukhari,
			Names:      isnad.LocalizedText{isnad.LocaleEnglish: "Imam al-Bukhari", isnad.LocaleArabic: "الإمام البخاري"},
			Status:     isnad.StatusCollector,
			Generation: isnad.GenerationLater,
			Grade:      "Imam, author of the Sahih",
			BirthYear:  year(194),
			DeathYear:  year(256),
		},
		{
			Index:      Muslim,
			Names:      isnad.LocalizedText{isnad.LocaleEnglish: "Imam Muslim", isnad.LocaleArabic: "الإمام مسلم"},
			Status:     isnad.StatusCollector,
			Generation: isnad.GenerationLater,
			Grade:      "Imam, author of the Sahih",
			DeathYear:  year(261),
		},
	}
}

// ConvergentChains returns the two chains that meet at al-A'mash.
func ConvergentChains() []isnad.Chain {
	return []isnad.Chain{
		{NarratorIndices: []int{Bukhari, Waki, Amash, IbrahimNakhai, Masruq, IbnMasud, Prophet}},
		{NarratorIndices: []int{Muslim, Waki, SufyanUyayna, Amash, IbnAbbas, Prophet}},
	}
}

// Hadiths returns a fresh copy of the fixture hadiths.
func Hadiths() []isnad.Hadith {
	return []isnad.Hadith{
		{
			ID:     TwoChainID,
			Number: 1,
			Source: "bukhari",
			Text:   isnad.LocalizedText{isnad.LocaleEnglish: "Actions are judged by intentions.", isnad.LocaleArabic: "إنما الأعمال بالنيات"},
			Chains: ConvergentChains(),
		},
		{
			ID:     SingleChainID,
			Number: 2,
			Source: "muslim",
			Text:   isnad.LocalizedText{isnad.LocaleEnglish: "Religion is sincerity."},
			Chains: []isnad.Chain{
				{NarratorIndices: []int{Muslim, SufyanUyayna, Amash, IbnAbbas, Prophet}},
			},
		},
		{
			ID:     EmptyID,
			Number: 3,
			Source: "bukhari",
			Text:   isnad.LocalizedText{isnad.LocaleEnglish: "A report whose narrators are unknown."},
			Chains: []isnad.Chain{
				{NarratorIndices: []int{Missing, Missing + 1}},
			},
		},
		{
			ID:     PartialID,
			Number: 4,
			Source: "bukhari",
			Text:   isnad.LocalizedText{isnad.LocaleEnglish: "A report with a gap in its chain."},
			Chains: []isnad.Chain{
				{NarratorIndices: []int{Bukhari, Waki, Missing, Amash, IbnAbbas, Prophet}},
			},
		},
	}
}
